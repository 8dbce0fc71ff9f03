// Package storage provides the public factory for objcat document stores.
// It selects one of the internal backends from a Config while keeping the
// backend implementations internal.
package storage

import (
	"fmt"
	"path/filepath"

	"github.com/mesh-intelligence/objcat/internal/badgerstore"
	"github.com/mesh-intelligence/objcat/internal/filestore"
	"github.com/mesh-intelligence/objcat/internal/sqlite"
	"github.com/mesh-intelligence/objcat/pkg/types"
)

// Open creates and opens the store named by config.Backend inside
// config.DataDir. The caller must Close the returned store.
//
// Example:
//
//	store, err := storage.Open(types.Config{
//	    Backend: types.BackendSQLite,
//	    DataDir: ".objcat-db",
//	})
//	defer store.Close()
func Open(config types.Config) (types.Store, error) {
	config = config.WithDefaults()
	if err := config.Validate(); err != nil {
		return nil, err
	}
	dataDir := config.DataDir
	if dataDir == "" {
		dataDir = "."
	}

	switch config.Backend {
	case types.BackendFile:
		s, err := filestore.New(dataDir)
		if err != nil {
			return nil, fmt.Errorf("opening file store: %w", err)
		}
		return s, nil
	case types.BackendSQLite:
		b := sqlite.NewBackend()
		if err := b.Attach(config); err != nil {
			return nil, fmt.Errorf("opening sqlite store: %w", err)
		}
		return b, nil
	case types.BackendBadger:
		s, err := badgerstore.Open(filepath.Join(dataDir, badgerstore.DirName))
		if err != nil {
			return nil, fmt.Errorf("opening badger store: %w", err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrBackendUnknown, config.Backend)
	}
}
