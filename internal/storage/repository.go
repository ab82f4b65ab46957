package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/san-kum/memtree/internal/gallery"
)

// ErrMalformed indicates the stored list could not be decoded.
var ErrMalformed = errors.New("storage: malformed project list")

// Repository persists the ordered project list as one JSON array under a
// single key, rewriting the whole list on every change.
type Repository struct {
	store Store
	key   string
	log   *slog.Logger
}

func NewRepository(store Store, key string, log *slog.Logger) *Repository {
	if log == nil {
		log = slog.Default()
	}
	return &Repository{store: store, key: key, log: log}
}

func (r *Repository) Key() string { return r.key }

// Load returns the stored list. A missing key is an empty list; undecodable
// data is ErrMalformed.
func (r *Repository) Load(ctx context.Context) ([]gallery.Project, error) {
	data, err := r.store.Get(ctx, r.key)
	if errors.Is(err, ErrNotFound) {
		return []gallery.Project{}, nil
	}
	if err != nil {
		return nil, err
	}

	var projects []gallery.Project
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if projects == nil {
		projects = []gallery.Project{}
	}
	return projects, nil
}

// LoadOrDefault never fails: any load error is logged and the default
// empty list returned instead.
func (r *Repository) LoadOrDefault(ctx context.Context) []gallery.Project {
	projects, err := r.Load(ctx)
	if err != nil {
		r.log.Warn("failed to load memories, starting empty", "key", r.key, "err", err)
		return []gallery.Project{}
	}
	return projects
}

// Save writes the full list. Empty lists are not written so a fresh start
// never clobbers stored data.
func (r *Repository) Save(ctx context.Context, projects []gallery.Project) error {
	if len(projects) == 0 {
		return nil
	}
	data, err := json.Marshal(projects)
	if err != nil {
		return err
	}
	return r.store.Put(ctx, r.key, data)
}

// Append returns a new list with p added at the end and persists it. The
// input slice is never modified, so callers holding it see a change of
// identity.
func (r *Repository) Append(ctx context.Context, projects []gallery.Project, p gallery.Project) ([]gallery.Project, error) {
	next := make([]gallery.Project, len(projects), len(projects)+1)
	copy(next, projects)
	next = append(next, p)
	if err := r.Save(ctx, next); err != nil {
		return projects, err
	}
	return next, nil
}

// Find returns the project with the given id or a project whose
// description matches exactly.
func Find(projects []gallery.Project, ref string) (gallery.Project, bool) {
	for _, p := range projects {
		if p.ID == ref || p.Description == ref {
			return p, true
		}
	}
	return gallery.Project{}, false
}
