// Package repository loads score tables and serves seeded standings.
package repository

import (
	"context"

	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/types"
)

// Source provides the season's score table.
type Source interface {
	// Load reads the full table. Each call re-reads the underlying data.
	Load(ctx context.Context) (model.ScoreTable, error)
}

// Store provides read access to the seeded standings.
type Store interface {
	// Replace swaps in a new set of standings, ordered by seed.
	Replace(ctx context.Context, entries []types.Entry) error

	// Rank returns the entry for an entrant.
	// Returns ErrNotFound if the entrant is unknown.
	Rank(ctx context.Context, name string) (types.Entry, error)

	// TopN returns the first n entries in seed order.
	TopN(ctx context.Context, n int) ([]types.Entry, error)

	// Count returns the number of entrants in the standings.
	Count(ctx context.Context) int
}
