package storage

import (
	"elevate/internal/providers"
	"elevate/internal/structures"
	"fmt"
)

const (
	defaultBoltPath   = "data/elevate.db"
	defaultSQLitePath = "data/elevate.sqlite"
)

// NewBackend builds the backend named by storage.backend. The file backend is
// a memory backend; the snapshot scheduler restores and flushes it.
func NewBackend(conf *structures.Config, logger providers.Logger) (Backend, error) {
	dsn := conf.Storage.DSN
	switch conf.Storage.Backend {
	case "memory", "file":
		logger.Infof(providers.TypeStore, "Using %s storage backend", conf.Storage.Backend)
		return NewMemoryBackend(), nil
	case "bolt":
		if dsn == "" {
			dsn = defaultBoltPath
		}
		logger.Infof(providers.TypeStore, "Using bolt storage backend at %s", dsn)
		return NewBoltBackend(dsn)
	case "sqlite":
		if dsn == "" {
			dsn = defaultSQLitePath
		}
		logger.Infof(providers.TypeStore, "Using sqlite storage backend at %s", dsn)
		return NewSQLiteBackend(dsn)
	case "postgres":
		logger.Infof(providers.TypeStore, "Using postgres storage backend")
		return NewPostgresBackend(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, conf.Storage.Backend)
	}
}
