package seeding

// Option applies a configuration option to Compute.
type Option func(*settings)

type settings struct {
	overrides map[int]int
}

// WithOverrides replaces the rank->seed overrides. Ranks not mentioned keep
// their rank as seed. The result must still be a permutation.
func WithOverrides(overrides map[int]int) Option {
	return func(s *settings) {
		if overrides == nil {
			return
		}
		s.overrides = make(map[int]int, len(overrides))
		for rank, seed := range overrides {
			s.overrides[rank] = seed
		}
	}
}

// DefaultOverrides swaps the fourth- and fifth-ranked entrants.
func DefaultOverrides() map[int]int {
	return map[int]int{4: 5, 5: 4}
}
