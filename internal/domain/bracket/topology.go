// Package bracket models the ten-team reseeded playoff bracket.
//
// Seeds 1 and 2 have a first-round bye. Seeds 3-6 play in (3v6, 4v5) for the
// two remaining semifinal slots; the bottom quarter (7v10, 8v9) is not part
// of the championship path. After the play-in the four survivors are
// reseeded, highest remaining seed against lowest remaining seed, and the
// semifinal winners meet in the final.
package bracket

import (
	"sort"

	"github.com/okian/ploffs/internal/domain/model"
)

// Pairing is a play-in game. High is the better seed.
type Pairing struct {
	High model.Seed
	Low  model.Seed
}

// Topology is the static bracket shape.
type Topology struct {
	Byes      []model.Seed
	PlayIn    []Pairing // feeds the semifinal field
	Unmodeled []Pairing // consolation side; never reaches the semifinals
}

// Standard returns the ten-team bracket.
func Standard() Topology {
	return Topology{
		Byes:      []model.Seed{1, 2},
		PlayIn:    []Pairing{{High: 3, Low: 6}, {High: 4, Low: 5}},
		Unmodeled: []Pairing{{High: 7, Low: 10}, {High: 8, Low: 9}},
	}
}

// Field returns every seed that can reach the semifinals, ascending.
func (t Topology) Field() []model.Seed {
	field := append([]model.Seed{}, t.Byes...)
	for _, p := range t.PlayIn {
		field = append(field, p.High, p.Low)
	}
	sort.Slice(field, func(i, j int) bool { return field[i] < field[j] })
	return field
}

// IsBye reports whether seed skips the play-in.
func (t Topology) IsBye(seed model.Seed) bool {
	for _, b := range t.Byes {
		if b == seed {
			return true
		}
	}
	return false
}

// PlayInOpponent returns seed's play-in opponent on the championship side.
func (t Topology) PlayInOpponent(seed model.Seed) (model.Seed, bool) {
	for _, p := range t.PlayIn {
		switch seed {
		case p.High:
			return p.Low, true
		case p.Low:
			return p.High, true
		}
	}
	return 0, false
}

// reseed pairs the highest remaining seed with the lowest remaining seed.
func reseed(field []model.Seed) [][2]model.Seed {
	sorted := append([]model.Seed{}, field...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	games := make([][2]model.Seed, 0, len(sorted)/2)
	for i, j := 0, len(sorted)-1; i < j; i, j = i+1, j-1 {
		games = append(games, [2]model.Seed{sorted[i], sorted[j]})
	}
	return games
}
