package bracket

import "github.com/okian/ploffs/internal/domain/model"

// WinFunc returns P(seed a beats seed b) in a single game.
type WinFunc func(a, b model.Seed) float64

// Model answers bracket probability questions for one immutable set of
// head-to-head odds. It holds no mutable state.
type Model struct {
	topology Topology
	field    []model.Seed
	gates    map[pairKey][]Gate
	win      WinFunc
}

// New builds a Model over the standard bracket.
func New(win WinFunc) *Model {
	t := Standard()
	return &Model{
		topology: t,
		field:    t.Field(),
		gates:    deriveGates(t),
		win:      win,
	}
}

// Field returns the seeds that can reach the semifinals.
func (m *Model) Field() []model.Seed {
	return append([]model.Seed{}, m.field...)
}

// Win exposes the head-to-head odds the model was built with.
func (m *Model) Win(a, b model.Seed) float64 {
	return m.win(a, b)
}
