package bracket

import "github.com/okian/ploffs/internal/domain/model"

// MakesSemifinals returns P(seed reaches the semifinals). Byes advance
// outright, play-in seeds must win their game, and everyone else is out.
func (m *Model) MakesSemifinals(seed model.Seed) float64 {
	if m.topology.IsBye(seed) {
		return 1
	}
	if opp, ok := m.topology.PlayInOpponent(seed); ok {
		return m.win(seed, opp)
	}
	return 0
}
