package repository

import (
	"context"
	"sync"
	"time"

	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/pkg/metrics"
)

// MemoryStore keeps both datasets in process memory. It is the default
// backend; parquet snapshots are the usual way to fill it.
type MemoryStore struct {
	mu         sync.RWMutex
	matches    []model.Match
	deliveries []model.Delivery
	closed     bool
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore(_ ...Option) *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Matches(_ context.Context) ([]model.Match, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery(string(MemoryBackend), "matches", msSince(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make([]model.Match, len(s.matches))
	copy(out, s.matches)
	return out, nil
}

func (s *MemoryStore) Deliveries(_ context.Context) ([]model.Delivery, error) {
	start := time.Now()
	defer func() { metrics.RecordStoreQuery(string(MemoryBackend), "deliveries", msSince(start)) }()

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	out := make([]model.Delivery, len(s.deliveries))
	copy(out, s.deliveries)
	return out, nil
}

func (s *MemoryStore) ReplaceAll(_ context.Context, matches []model.Match, deliveries []model.Delivery) error {
	m := make([]model.Match, len(matches))
	copy(m, matches)
	d := make([]model.Delivery, len(deliveries))
	copy(d, deliveries)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.matches, s.deliveries = m, d
	return nil
}

func (s *MemoryStore) Count(_ context.Context) (Counts, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Counts{Matches: len(s.matches), Deliveries: len(s.deliveries)}, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.matches, s.deliveries = nil, nil
	return nil
}

func msSince(t time.Time) float64 {
	return float64(time.Since(t).Microseconds()) / 1000
}
