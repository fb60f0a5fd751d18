package repository

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/okian/ploffs/internal/domain/types"
	"github.com/okian/ploffs/pkg/metrics"
)

// standings is an immutable published view.
type standings struct {
	entries []types.Entry // seed order
	byName  map[string]int
}

// StandingsStore is an in-memory Store. Readers never block: Replace
// publishes a new immutable view through an atomic pointer.
type StandingsStore struct {
	current atomic.Pointer[standings]
}

// NewStandingsStore constructs an empty store.
func NewStandingsStore() *StandingsStore {
	s := &StandingsStore{}
	s.current.Store(&standings{byName: map[string]int{}})
	return s
}

// Replace implements Store.Replace.
func (s *StandingsStore) Replace(ctx context.Context, entries []types.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	next := &standings{
		entries: append([]types.Entry{}, entries...),
		byName:  make(map[string]int, len(entries)),
	}
	for i, e := range next.entries {
		next.byName[e.Name] = i
	}
	s.current.Store(next)

	metrics.RecordRepositorySnapshotRebuildDuration(float64(time.Since(start).Milliseconds()))
	metrics.UpdateRepositoryRecordsTotal(len(next.entries))
	return nil
}

// Rank implements Store.Rank.
func (s *StandingsStore) Rank(ctx context.Context, name string) (types.Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	cur := s.current.Load()
	i, ok := cur.byName[name]
	if !ok {
		metrics.RecordErrorByComponent("repository", "not_found")
		return types.Entry{}, ErrNotFound
	}
	return cur.entries[i], nil
}

// TopN implements Store.TopN.
func (s *StandingsStore) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	start := time.Now()
	defer func() {
		metrics.RecordRepositoryQueryLatency(float64(time.Since(start).Milliseconds()))
	}()

	if n < 1 {
		metrics.RecordErrorByComponent("repository", "invalid_limit")
		return nil, ErrInvalidLimit
	}
	cur := s.current.Load()
	if n > len(cur.entries) {
		n = len(cur.entries)
	}
	return append([]types.Entry{}, cur.entries[:n]...), nil
}

// Count implements Store.Count.
func (s *StandingsStore) Count(ctx context.Context) int {
	return len(s.current.Load().entries)
}
