// Package model contains domain models passed between layers.
package model

import "fmt"

// Seed bounds for the fixed ten-team bracket.
const (
	MinSeed Seed = 1
	MaxSeed Seed = 10
)

// Entrant is a league member together with its season score history.
type Entrant struct {
	Name   string    // unique display name, e.g. "Nico"
	Scores []float64 // one score per scoring period, oldest first
}

// Clone returns a copy that shares no memory with e.
func (e Entrant) Clone() Entrant {
	scores := make([]float64, len(e.Scores))
	copy(scores, e.Scores)
	return Entrant{Name: e.Name, Scores: scores}
}

// Stats summarises an entrant's score distribution.
type Stats struct {
	Mean    float64
	StdDev  float64 // sample standard deviation (N-1 denominator)
	Samples int
}

// Variance returns the sample variance.
func (s Stats) Variance() float64 {
	return s.StdDev * s.StdDev
}

// Seed is a bracket position, 1 being the best.
type Seed int

// Valid reports whether s is inside the bracket.
func (s Seed) Valid() bool {
	return s >= MinSeed && s <= MaxSeed
}

func (s Seed) String() string {
	return fmt.Sprintf("#%d", int(s))
}

// ScoreTable is the loaded season: one row per period, one column per entrant.
type ScoreTable struct {
	Periods  []string  // period labels, e.g. "1", "2", ...
	Entrants []Entrant // in column order
}

// Round identifies a bracket round after the play-in.
type Round string

// Modeled rounds.
const (
	RoundPlayIn    Round = "play_in"
	RoundSemifinal Round = "semifinal"
	RoundFinal     Round = "final"
)
