package odds

import (
	"time"

	"github.com/okian/ploffs/internal/domain/seeding"
)

// Option applies a configuration option to Build.
type Option func(*settings)

type settings struct {
	overrides map[int]int
	now       func() time.Time
}

// WithSeedOverrides replaces the default rank->seed overrides.
func WithSeedOverrides(overrides map[int]int) Option {
	return func(s *settings) {
		if len(overrides) > 0 {
			s.overrides = overrides
		}
	}
}

// WithClock sets the clock used to stamp the snapshot.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		if now != nil {
			s.now = now
		}
	}
}

func defaults() settings {
	return settings{
		overrides: seeding.DefaultOverrides(),
		now:       time.Now,
	}
}
