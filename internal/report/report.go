// Package report assembles a step-by-step explanation of how likely an
// entrant is to be knocked out of the playoffs.
package report

import (
	"fmt"
	"time"

	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/odds"
)

// Entrant identifies one bracket position in a report.
type Entrant struct {
	Seed   int     `json:"seed"`
	Name   string  `json:"name"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Matchup is the target's outlook against one opponent.
type Matchup struct {
	Opponent       Entrant `json:"opponent"`
	Win            float64 `json:"win"`             // P(target beats opponent)
	MeetSemifinal  float64 `json:"meet_semifinal"`  // P(they meet in the semifinals)
	LoseSemifinal  float64 `json:"lose_semifinal"`  // meet * P(opponent wins)
	OpponentFinals float64 `json:"opponent_finals"` // P(opponent reaches the final)
	LoseFinal      float64 `json:"lose_final"`      // opponent finals * P(opponent wins)
}

// Advancement is one field entrant's chance to reach each round.
type Advancement struct {
	Entrant    Entrant `json:"entrant"`
	Semifinals float64 `json:"semifinals"`
	Finals     float64 `json:"finals"`
}

// Report is the full explanation for one target.
type Report struct {
	SnapshotID  string        `json:"snapshot_id"`
	BuiltAt     time.Time     `json:"built_at"`
	Precision   int32         `json:"precision"`
	Target      Entrant       `json:"target"`
	Standings   []Entrant     `json:"standings"`
	Advancement []Advancement `json:"advancement"`
	Matchups    []Matchup     `json:"matchups"`
	MakesFinals float64       `json:"makes_finals"`
	Semifinal   float64       `json:"lose_semifinal"`
	Final       float64       `json:"lose_final"`
	Tournament  float64       `json:"lose_tournament"`
	Headline    string        `json:"headline"`
}

// Option applies a configuration option to Build.
type Option func(*Report)

// WithPrecision sets the decimals used in percentages.
func WithPrecision(places int32) Option {
	return func(r *Report) {
		if places >= 0 {
			r.Precision = places
		}
	}
}

func entrantOf(st odds.Standing) Entrant {
	return Entrant{
		Seed:   int(st.Seed),
		Name:   st.Entrant.Name,
		Total:  st.Total,
		Mean:   st.Stats.Mean,
		StdDev: st.Stats.StdDev,
	}
}

// Build explains the elimination odds of target.
func Build(snap *odds.Snapshot, target string, opts ...Option) (*Report, error) {
	t, err := snap.Resolve(target)
	if err != nil {
		return nil, err
	}
	r := &Report{
		SnapshotID: snap.ID(),
		BuiltAt:    snap.BuiltAt(),
		Precision:  DefaultPrecision,
		Target:     entrantOf(t),
	}
	for _, opt := range opts {
		opt(r)
	}

	m := snap.Model()
	field := make(map[model.Seed]bool)
	for _, s := range m.Field() {
		field[s] = true
	}

	for _, st := range snap.Standings() {
		e := entrantOf(st)
		r.Standings = append(r.Standings, e)
		if !field[st.Seed] {
			continue
		}
		r.Advancement = append(r.Advancement, Advancement{
			Entrant:    e,
			Semifinals: m.MakesSemifinals(st.Seed),
			Finals:     m.MakesFinals(st.Seed),
		})
		if st.Seed == t.Seed {
			continue
		}
		mu := Matchup{
			Opponent:       e,
			Win:            m.Win(t.Seed, st.Seed),
			MeetSemifinal:  m.MeetInSemifinals(t.Seed, st.Seed),
			OpponentFinals: m.MakesFinals(st.Seed),
		}
		mu.LoseSemifinal = mu.MeetSemifinal * m.Win(st.Seed, t.Seed)
		mu.LoseFinal = mu.OpponentFinals * m.Win(st.Seed, t.Seed)
		r.Matchups = append(r.Matchups, mu)
	}

	r.MakesFinals = m.MakesFinals(t.Seed)
	r.Semifinal = m.LosesSemifinals(t.Seed)
	r.Final = m.LosesFinals(t.Seed)
	r.Tournament = m.LosesTournament(t.Seed)
	r.Headline = fmt.Sprintf("%s has a %s chance of not winning the playoffs",
		r.Target.Name, Percent(r.Tournament, r.Precision))
	return r, nil
}

// Percent formats p with the report's precision.
func (r *Report) Percent(p float64) string {
	return Percent(p, r.Precision)
}
