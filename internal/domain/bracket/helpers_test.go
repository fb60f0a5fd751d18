package bracket_test

import (
	"github.com/okian/ploffs/internal/domain/bracket"
	"github.com/okian/ploffs/internal/domain/matchup"
	"github.com/okian/ploffs/internal/domain/model"
)

// fixedOdds answers the listed games and treats every other game as a coin flip.
func fixedOdds(games map[[2]model.Seed]float64) bracket.WinFunc {
	return func(a, b model.Seed) float64 {
		if p, ok := games[[2]model.Seed{a, b}]; ok {
			return p
		}
		if p, ok := games[[2]model.Seed{b, a}]; ok {
			return 1 - p
		}
		return 0.5
	}
}

// playInOdds: seed 3 beats 6 with 0.7, seed 4 beats 5 with 0.6.
func playInOdds() bracket.WinFunc {
	return fixedOdds(map[[2]model.Seed]float64{
		{3, 6}: 0.7,
		{4, 5}: 0.6,
	})
}

// normalOdds builds head-to-head odds from score distributions whose means
// fall with the seed, as they do for a seeding by season totals.
func normalOdds() bracket.WinFunc {
	bySeed := make(map[model.Seed]model.Stats)
	for s := model.MinSeed; s <= model.MaxSeed; s++ {
		bySeed[s] = model.Stats{
			Mean:    160 - 4.5*float64(s),
			StdDev:  18 + 1.7*float64(s),
			Samples: 13,
		}
	}
	return matchup.NewTable(bySeed).Win
}
