package bracket

import (
	"sort"

	"github.com/okian/ploffs/internal/domain/model"
)

// Gate lists the play-in seeds that must all advance for a semifinal pairing
// to happen. Byes never appear in a gate.
type Gate []model.Seed

type pairKey struct {
	lo, hi model.Seed
}

func keyOf(a, b model.Seed) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// deriveGates enumerates every play-in outcome, reseeds the survivors, and
// records which outcomes produce each semifinal pairing. Outcomes that
// differ only in one play-in game are merged, since one side of that game
// always wins, leaving a disjoint set of gates per pairing.
func deriveGates(t Topology) map[pairKey][]Gate {
	n := len(t.PlayIn)
	outcomes := make(map[pairKey][][]model.Seed)
	for mask := 0; mask < 1<<n; mask++ {
		winners := make([]model.Seed, n)
		for i, p := range t.PlayIn {
			if mask&(1<<i) == 0 {
				winners[i] = p.High
			} else {
				winners[i] = p.Low
			}
		}
		field := append(append([]model.Seed{}, t.Byes...), winners...)
		for _, game := range reseed(field) {
			k := keyOf(game[0], game[1])
			outcomes[k] = append(outcomes[k], winners)
		}
	}

	gates := make(map[pairKey][]Gate, len(outcomes))
	for k, terms := range outcomes {
		for _, term := range merge(terms) {
			var g Gate
			for _, s := range term {
				if s != 0 {
					g = append(g, s)
				}
			}
			sort.Slice(g, func(i, j int) bool { return g[i] < g[j] })
			gates[k] = append(gates[k], g)
		}
		sort.Slice(gates[k], func(i, j int) bool { return lessGate(gates[k][i], gates[k][j]) })
	}
	return gates
}

// merge repeatedly combines two outcome vectors that disagree in exactly
// one position, marking that position as "either" (0).
func merge(terms [][]model.Seed) [][]model.Seed {
	out := make([][]model.Seed, len(terms))
	for i, t := range terms {
		out[i] = append([]model.Seed{}, t...)
	}
	for {
		i, j, pos := mergeable(out)
		if i < 0 {
			return out
		}
		combined := append([]model.Seed{}, out[i]...)
		combined[pos] = 0
		next := make([][]model.Seed, 0, len(out)-1)
		for k := range out {
			if k != i && k != j {
				next = append(next, out[k])
			}
		}
		out = append(next, combined)
	}
}

func mergeable(terms [][]model.Seed) (int, int, int) {
	for i := 0; i < len(terms); i++ {
		for j := i + 1; j < len(terms); j++ {
			pos, diffs := -1, 0
			for k := range terms[i] {
				if terms[i][k] != terms[j][k] {
					pos = k
					diffs++
				}
			}
			if diffs == 1 && terms[i][pos] != 0 && terms[j][pos] != 0 {
				return i, j, pos
			}
		}
	}
	return -1, -1, -1
}

func lessGate(a, b Gate) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return len(a) < len(b)
}

// Gates returns the gates under which a and b meet in the semifinals.
// A nil result means the pairing cannot happen.
func (m *Model) Gates(a, b model.Seed) []Gate {
	src := m.gates[keyOf(a, b)]
	if a == b || len(src) == 0 {
		return nil
	}
	out := make([]Gate, len(src))
	for i, g := range src {
		out[i] = append(Gate{}, g...)
	}
	return out
}

// MeetInSemifinals returns P(a and b play each other in the semifinals).
func (m *Model) MeetInSemifinals(a, b model.Seed) float64 {
	if a == b {
		return 0
	}
	total := 0.0
	for _, g := range m.gates[keyOf(a, b)] {
		p := 1.0
		for _, s := range g {
			p *= m.MakesSemifinals(s)
		}
		total += p
	}
	return total
}

// MeetInFinals returns P(a and b play each other in the final), treating the
// two finalists as independent.
func (m *Model) MeetInFinals(a, b model.Seed) float64 {
	if a == b {
		return 0
	}
	return m.MakesFinals(a) * m.MakesFinals(b)
}
