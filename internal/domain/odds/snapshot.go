// Package odds is the query boundary of the playoff model. A Snapshot is
// built once from a score table and then answers probability questions
// about entrants by name or seed.
package odds

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/okian/ploffs/internal/domain/bracket"
	"github.com/okian/ploffs/internal/domain/matchup"
	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/seeding"
	"github.com/okian/ploffs/internal/domain/stats"
)

// MinPeriods is the fewest scoring periods a sample variance needs.
const MinPeriods = stats.MinSamples

// Standing is a placement together with the entrant's score statistics.
type Standing struct {
	seeding.Placement
	Stats model.Stats
}

// Snapshot is an immutable view of one season's odds.
type Snapshot struct {
	id      string
	builtAt time.Time
	periods []string
	seeds   *seeding.Seeding
	stats   map[model.Seed]model.Stats
	model   *bracket.Model
}

// Build validates table and derives statistics, seeding and the bracket
// model from it. Every failure wraps ErrConfiguration.
func Build(table model.ScoreTable, opts ...Option) (*Snapshot, error) {
	cfg := defaults()
	for _, opt := range opts {
		opt(&cfg)
	}

	if len(table.Periods) < MinPeriods {
		return nil, fmt.Errorf("%w: need at least %d periods, got %d", ErrConfiguration, MinPeriods, len(table.Periods))
	}
	for _, e := range table.Entrants {
		if len(e.Scores) != len(table.Periods) {
			return nil, fmt.Errorf("%w: %q has %d scores for %d periods", ErrConfiguration, e.Name, len(e.Scores), len(table.Periods))
		}
	}

	seeds, err := seeding.Compute(table.Entrants, seeding.WithOverrides(cfg.overrides))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	byName, err := stats.ForEntrants(table.Entrants)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}

	bySeed := make(map[model.Seed]model.Stats, len(byName))
	for _, p := range seeds.Placements() {
		bySeed[p.Seed] = byName[p.Entrant.Name]
	}

	return &Snapshot{
		id:      uuid.NewString(),
		builtAt: cfg.now(),
		periods: append([]string{}, table.Periods...),
		seeds:   seeds,
		stats:   bySeed,
		model:   bracket.New(matchup.NewTable(bySeed).Win),
	}, nil
}

// ID uniquely identifies this build.
func (s *Snapshot) ID() string { return s.id }

// BuiltAt is when the snapshot was built.
func (s *Snapshot) BuiltAt() time.Time { return s.builtAt }

// Periods returns the period labels of the source table.
func (s *Snapshot) Periods() []string { return append([]string{}, s.periods...) }

// Model exposes the seed-level bracket model.
func (s *Snapshot) Model() *bracket.Model { return s.model }

// Resolve maps a reference to a placement. A reference is an entrant name
// or, failing that, a seed number.
func (s *Snapshot) Resolve(ref string) (Standing, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Standing{}, ErrEmptyRef
	}
	seed, err := s.seeds.SeedOf(ref)
	if err != nil {
		n, convErr := strconv.Atoi(ref)
		if convErr != nil {
			return Standing{}, err
		}
		seed = model.Seed(n)
	}
	p, err := s.seeds.BySeed(seed)
	if err != nil {
		return Standing{}, err
	}
	return Standing{Placement: p, Stats: s.stats[p.Seed]}, nil
}

// Standings returns every entrant in seed order.
func (s *Snapshot) Standings() []Standing {
	placements := s.seeds.Placements()
	out := make([]Standing, 0, len(placements))
	for _, p := range placements {
		out = append(out, Standing{Placement: p, Stats: s.stats[p.Seed]})
	}
	return out
}

func (s *Snapshot) seed(ref string) (model.Seed, error) {
	st, err := s.Resolve(ref)
	if err != nil {
		return 0, err
	}
	return st.Seed, nil
}

func (s *Snapshot) pair(a, b string) (model.Seed, model.Seed, error) {
	sa, err := s.seed(a)
	if err != nil {
		return 0, 0, err
	}
	sb, err := s.seed(b)
	if err != nil {
		return 0, 0, err
	}
	return sa, sb, nil
}

// IsLookupError reports whether err came from resolving a reference.
func IsLookupError(err error) bool {
	return errors.Is(err, seeding.ErrUnknownEntrant) ||
		errors.Is(err, seeding.ErrSeedOutOfRange) ||
		errors.Is(err, ErrEmptyRef)
}
