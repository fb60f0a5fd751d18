package bracket

import "github.com/okian/ploffs/internal/domain/model"

// MakesFinals returns P(seed wins its semifinal).
func (m *Model) MakesFinals(seed model.Seed) float64 {
	total := 0.0
	for _, s := range m.field {
		if s == seed {
			continue
		}
		total += m.MeetInSemifinals(seed, s) * m.win(seed, s)
	}
	return total
}

// LosesSemifinals returns P(target reaches the semifinals and loses there).
func (m *Model) LosesSemifinals(target model.Seed) float64 {
	total := 0.0
	for _, s := range m.field {
		if s == target {
			continue
		}
		total += m.MeetInSemifinals(target, s) * m.win(s, target)
	}
	return total
}

// LosesFinals returns P(target reaches the final and loses it). Each
// potential opponent's chance of reaching the final is taken independently
// of target's own path.
func (m *Model) LosesFinals(target model.Seed) float64 {
	beaten := 0.0
	for _, s := range m.field {
		if s == target {
			continue
		}
		beaten += m.MakesFinals(s) * m.win(s, target)
	}
	return m.MakesFinals(target) * beaten
}

// LosesTournament returns P(target does not win the playoffs once it is in
// the semifinal field).
func (m *Model) LosesTournament(target model.Seed) float64 {
	return m.LosesSemifinals(target) + m.LosesFinals(target)
}
