// Package automation imports memories in bulk from a YAML manifest.
package automation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/memtree/internal/gallery"
	"github.com/san-kum/memtree/internal/storage"
	"github.com/san-kum/memtree/internal/upload"
	"gopkg.in/yaml.v3"
)

var ErrEmptyManifest = errors.New("automation: manifest lists no memories")

// Manifest is a batch of memories to add, e.g.
//
//	name: winter-2025
//	memories:
//	  - image: photos/launch.jpg
//	    description: Launch day
type Manifest struct {
	Name     string  `yaml:"name"`
	Memories []Entry `yaml:"memories"`

	dir string
}

type Entry struct {
	Image       string `yaml:"image"`
	Description string `yaml:"description"`
}

// LoadManifest reads a manifest. Relative image paths resolve against the
// manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	if len(m.Memories) == 0 {
		return nil, ErrEmptyManifest
	}
	m.dir = filepath.Dir(path)
	return &m, nil
}

func (m *Manifest) resolve(image string) string {
	if filepath.IsAbs(image) || m.dir == "" {
		return image
	}
	return filepath.Join(m.dir, image)
}

// Build turns every entry into a project without saving anything. Ids are
// creation times in unix milliseconds; entries built in the same
// millisecond are pushed forward so ids stay unique against existing.
func (m *Manifest) Build(existing []gallery.Project, now time.Time) ([]gallery.Project, error) {
	taken := make(map[string]bool, len(existing))
	for _, p := range existing {
		taken[p.ID] = true
	}

	out := make([]gallery.Project, 0, len(m.Memories))
	for i, e := range m.Memories {
		p, err := upload.FromFile(m.resolve(e.Image), e.Description, now)
		if err != nil {
			return nil, fmt.Errorf("entry %d (%s): %w", i+1, e.Image, err)
		}
		for taken[p.ID] {
			now = now.Add(time.Millisecond)
			p.ID = strconv.FormatInt(now.UnixMilli(), 10)
		}
		taken[p.ID] = true
		out = append(out, p)
	}
	return out, nil
}

type Report struct {
	Added  []gallery.Project
	Total  int
	DryRun bool
}

// Import validates the whole manifest first, then appends the memories one
// by one. A failed save stops the import; memories saved before it stay.
func Import(ctx context.Context, repo *storage.Repository, m *Manifest, now time.Time, dryRun bool, log *slog.Logger) (*Report, error) {
	if log == nil {
		log = slog.Default()
	}
	projects, err := repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	batch, err := m.Build(projects, now)
	if err != nil {
		return nil, err
	}
	rep := &Report{DryRun: dryRun, Total: len(projects)}
	if dryRun {
		rep.Added = batch
		rep.Total += len(batch)
		return rep, nil
	}

	for i, p := range batch {
		if err := ctx.Err(); err != nil {
			return rep, err
		}
		projects, err = repo.Append(ctx, projects, p)
		if err != nil {
			return rep, fmt.Errorf("save entry %d: %w", i+1, err)
		}
		rep.Added = append(rep.Added, p)
		log.Info("imported memory", "id", p.ID, "manifest", m.Name, "step", fmt.Sprintf("%d/%d", i+1, len(batch)))
	}
	rep.Total = len(projects)
	return rep, nil
}
