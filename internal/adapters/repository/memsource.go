package repository

import (
	"context"
	"sync"

	"github.com/okian/ploffs/internal/domain/model"
)

// MemorySource serves a table held in memory. Set swaps the table, which
// the next Load observes.
type MemorySource struct {
	mu    sync.RWMutex
	table model.ScoreTable
}

// NewMemorySource constructs a source over a copy of t.
func NewMemorySource(t model.ScoreTable) *MemorySource {
	s := &MemorySource{}
	s.Set(t)
	return s
}

// Set replaces the served table.
func (s *MemorySource) Set(t model.ScoreTable) {
	cp := cloneTable(t)
	s.mu.Lock()
	s.table = cp
	s.mu.Unlock()
}

// Load implements Source.Load.
func (s *MemorySource) Load(ctx context.Context) (model.ScoreTable, error) {
	if err := ctx.Err(); err != nil {
		return model.ScoreTable{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneTable(s.table), nil
}

func cloneTable(t model.ScoreTable) model.ScoreTable {
	out := model.ScoreTable{
		Periods:  append([]string{}, t.Periods...),
		Entrants: make([]model.Entrant, len(t.Entrants)),
	}
	for i, e := range t.Entrants {
		out.Entrants[i] = e.Clone()
	}
	return out
}
