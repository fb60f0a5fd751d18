// Package stats derives per-entrant score statistics from season samples.
package stats

import (
	"fmt"
	"math"

	"github.com/okian/ploffs/internal/domain/model"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// MinSamples is the smallest sample for which a sample variance exists.
const MinSamples = 2

// Compute returns the mean and sample standard deviation of scores.
func Compute(scores []float64) (model.Stats, error) {
	if len(scores) < MinSamples {
		return model.Stats{}, fmt.Errorf("%w: got %d", ErrInsufficientSamples, len(scores))
	}
	for i, s := range scores {
		if math.IsNaN(s) || math.IsInf(s, 0) {
			return model.Stats{}, fmt.Errorf("%w: index %d", ErrNonFinite, i)
		}
	}
	mean, std := stat.MeanStdDev(scores, nil)
	return model.Stats{Mean: mean, StdDev: std, Samples: len(scores)}, nil
}

// Total returns the cumulative season score used for seeding.
func Total(scores []float64) float64 {
	return floats.Sum(scores)
}

// ForEntrants computes stats for every entrant, keyed by name.
func ForEntrants(entrants []model.Entrant) (map[string]model.Stats, error) {
	out := make(map[string]model.Stats, len(entrants))
	for _, e := range entrants {
		s, err := Compute(e.Scores)
		if err != nil {
			return nil, fmt.Errorf("stats for %q: %w", e.Name, err)
		}
		out[e.Name] = s
	}
	return out, nil
}
