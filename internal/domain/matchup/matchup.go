// Package matchup estimates head-to-head win probabilities from score
// distributions.
//
// Each entrant's weekly score is treated as an independent normal variable,
// so A-B is normal with mean mean(A)-mean(B) and variance var(A)+var(B).
// The probability that A outscores B is P(A-B > 0).
package matchup

import (
	"math"

	"github.com/okian/ploffs/internal/domain/model"
	"gonum.org/v1/gonum/stat/distuv"
)

// CoinFlip is returned when neither side has any spread in its scores.
const CoinFlip = 0.5

// Difference returns the distribution of A's score minus B's score.
// ok is false when both variances are zero and the distribution collapses.
func Difference(a, b model.Stats) (d distuv.Normal, ok bool) {
	sigma := math.Sqrt(a.Variance() + b.Variance())
	if sigma == 0 || math.IsNaN(sigma) {
		return distuv.Normal{}, false
	}
	return distuv.Normal{Mu: a.Mean - b.Mean, Sigma: sigma}, true
}

// WinProbability returns P(A's score exceeds B's score).
func WinProbability(a, b model.Stats) float64 {
	d, ok := Difference(a, b)
	if !ok {
		return CoinFlip
	}
	return d.Survival(0)
}

// Table looks up stats by seed and answers seed-vs-seed questions.
type Table struct {
	stats map[model.Seed]model.Stats
}

// NewTable wraps a seed-indexed stats map. The map is copied.
func NewTable(bySeed map[model.Seed]model.Stats) *Table {
	m := make(map[model.Seed]model.Stats, len(bySeed))
	for k, v := range bySeed {
		m[k] = v
	}
	return &Table{stats: m}
}

// Win returns P(seed a beats seed b). Unknown seeds play as a coin flip.
func (t *Table) Win(a, b model.Seed) float64 {
	sa, okA := t.stats[a]
	sb, okB := t.stats[b]
	if !okA || !okB {
		return CoinFlip
	}
	return WinProbability(sa, sb)
}
