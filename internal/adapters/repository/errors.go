package repository

import "errors"

// Sentinel kinds for storage errors.
var (
	ErrUnsupportedBackend = errors.New("unsupported store backend")
	ErrMissingDSN         = errors.New("store dsn is required")
	ErrDirtyMigration     = errors.New("database is in a dirty migration state")
	ErrClosed             = errors.New("store is closed")
)
