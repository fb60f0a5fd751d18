// Package seeding ranks entrants by season total and assigns bracket seeds.
package seeding

import (
	"fmt"
	"sort"

	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/stats"
)

// FieldSize is the only bracket size the model supports.
const FieldSize = int(model.MaxSeed)

// Placement is one entrant's position in the standings.
type Placement struct {
	Seed    model.Seed
	Rank    int // 1-based position by total score
	Entrant model.Entrant
	Total   float64
}

func (p Placement) clone() Placement {
	p.Entrant = p.Entrant.Clone()
	return p
}

// Seeding is an immutable seed<->entrant bijection.
type Seeding struct {
	bySeed [FieldSize + 1]Placement // index 0 unused
	byName map[string]model.Seed
}

// Compute sorts entrants by total score (descending, ties by name) and
// assigns seeds, applying the rank overrides.
func Compute(entrants []model.Entrant, opts ...Option) (*Seeding, error) {
	if len(entrants) != FieldSize {
		return nil, fmt.Errorf("%w: got %d", ErrEntrantCount, len(entrants))
	}
	cfg := settings{overrides: DefaultOverrides()}
	for _, opt := range opts {
		opt(&cfg)
	}
	rankToSeed, err := permutation(cfg.overrides)
	if err != nil {
		return nil, err
	}

	ranked := make([]Placement, 0, len(entrants))
	seen := make(map[string]struct{}, len(entrants))
	for _, e := range entrants {
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, e.Name)
		}
		seen[e.Name] = struct{}{}
		ranked = append(ranked, Placement{Entrant: e.Clone(), Total: stats.Total(e.Scores)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Total != ranked[j].Total {
			return ranked[i].Total > ranked[j].Total
		}
		return ranked[i].Entrant.Name < ranked[j].Entrant.Name
	})

	s := &Seeding{byName: make(map[string]model.Seed, FieldSize)}
	for i := range ranked {
		p := ranked[i]
		p.Rank = i + 1
		p.Seed = model.Seed(rankToSeed[p.Rank])
		s.bySeed[p.Seed] = p
		s.byName[p.Entrant.Name] = p.Seed
	}
	return s, nil
}

// permutation expands overrides into a full rank->seed table and checks it
// is a bijection over 1..FieldSize.
func permutation(overrides map[int]int) ([FieldSize + 1]int, error) {
	var table [FieldSize + 1]int
	for rank := 1; rank <= FieldSize; rank++ {
		table[rank] = rank
	}
	for rank, seed := range overrides {
		if rank < 1 || rank > FieldSize || seed < 1 || seed > FieldSize {
			return table, fmt.Errorf("%w: %d->%d outside 1..%d", ErrInvalidOverride, rank, seed, FieldSize)
		}
		table[rank] = seed
	}
	var used [FieldSize + 1]bool
	for rank := 1; rank <= FieldSize; rank++ {
		if used[table[rank]] {
			return table, fmt.Errorf("%w: seed %d assigned twice", ErrInvalidOverride, table[rank])
		}
		used[table[rank]] = true
	}
	return table, nil
}

// BySeed returns the placement holding seed.
func (s *Seeding) BySeed(seed model.Seed) (Placement, error) {
	if !seed.Valid() {
		return Placement{}, fmt.Errorf("%w: %d", ErrSeedOutOfRange, int(seed))
	}
	return s.bySeed[seed].clone(), nil
}

// SeedOf returns the seed held by the named entrant.
func (s *Seeding) SeedOf(name string) (model.Seed, error) {
	seed, ok := s.byName[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownEntrant, name)
	}
	return seed, nil
}

// Placements returns the standings in seed order.
func (s *Seeding) Placements() []Placement {
	out := make([]Placement, 0, FieldSize)
	for seed := model.MinSeed; seed <= model.MaxSeed; seed++ {
		out = append(out, s.bySeed[seed].clone())
	}
	return out
}
