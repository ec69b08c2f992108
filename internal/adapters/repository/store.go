// Package repository stores the match and delivery datasets. Reads return
// whole datasets; the only write is a full replacement.
package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/okian/iplstats/internal/domain/model"
)

// Backend names a storage implementation.
type Backend string

// Supported backends.
const (
	MemoryBackend   Backend = "memory"
	SQLiteBackend   Backend = "sqlite"
	PostgresBackend Backend = "postgres"
	MySQLBackend    Backend = "mysql"
)

// ParseBackend resolves a configured backend name.
func ParseBackend(s string) (Backend, error) {
	switch b := Backend(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return MemoryBackend, nil
	case MemoryBackend, SQLiteBackend, PostgresBackend, MySQLBackend:
		return b, nil
	case "postgresql", "pgx":
		return PostgresBackend, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedBackend, s)
	}
}

// Counts is the size of the stored datasets.
type Counts struct {
	Matches    int `json:"matches"`
	Deliveries int `json:"deliveries"`
}

// Store provides access to the stored datasets.
type Store interface {
	// Matches returns every match.
	Matches(ctx context.Context) ([]model.Match, error)

	// Deliveries returns every delivery.
	Deliveries(ctx context.Context) ([]model.Delivery, error)

	// ReplaceAll swaps both datasets atomically.
	ReplaceAll(ctx context.Context, matches []model.Match, deliveries []model.Delivery) error

	// Count returns the number of stored matches and deliveries.
	Count(ctx context.Context) (Counts, error)

	Close() error
}

// MetaReader is implemented by stores that record import bookkeeping.
type MetaReader interface {
	ImportMeta(ctx context.Context) (map[string]string, error)
}

// Open returns a Store for backend. dsn is ignored by the memory backend.
func Open(ctx context.Context, backend Backend, dsn string, opts ...Option) (Store, error) {
	if backend == MemoryBackend {
		return NewMemoryStore(opts...), nil
	}
	s, err := openSQL(ctx, backend, dsn, opts...)
	if err != nil {
		return nil, err
	}
	return s, nil
}
