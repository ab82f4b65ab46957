package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/san-kum/memtree/internal/config"
)

var (
	// ErrNotFound indicates no value is stored under the key.
	ErrNotFound = errors.New("storage: key not found")

	// ErrUnknownBackend indicates a backend name Open does not know.
	ErrUnknownBackend = errors.New("storage: unknown backend")
)

// Store keeps opaque blobs under string keys. Get returns ErrNotFound for
// a key that was never written.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Close() error
}

// Backends lists the names Open accepts.
var Backends = []string{"file", "sqlite", "valkey", "memory"}

// Open builds the backend named in cfg. Relative sqlite paths live under
// the data directory.
func Open(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Backend {
	case "file", "":
		fs := NewFileStore(cfg.Dir)
		if err := fs.Init(); err != nil {
			return nil, err
		}
		return fs, nil
	case "sqlite":
		path := cfg.SQLitePath
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Dir, path)
		}
		return OpenSQLite(ctx, path)
	case "valkey":
		return OpenValkey(ctx, cfg.ValkeyAddr)
	case "memory":
		return NewMemoryStore(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
}
