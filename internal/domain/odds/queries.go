package odds

import "github.com/okian/ploffs/internal/domain/model"

// Loss splits a target's elimination probability by round.
type Loss struct {
	Seed       model.Seed
	Semifinal  float64
	Final      float64
	Tournament float64
}

// WinProbability returns P(a beats b) in a single game.
func (s *Snapshot) WinProbability(a, b string) (float64, error) {
	sa, sb, err := s.pair(a, b)
	if err != nil {
		return 0, err
	}
	return s.model.Win(sa, sb), nil
}

// MakesSemifinals returns P(ref reaches the semifinals).
func (s *Snapshot) MakesSemifinals(ref string) (float64, error) {
	seed, err := s.seed(ref)
	if err != nil {
		return 0, err
	}
	return s.model.MakesSemifinals(seed), nil
}

// MeetInSemifinals returns P(a and b meet in the semifinals).
func (s *Snapshot) MeetInSemifinals(a, b string) (float64, error) {
	sa, sb, err := s.pair(a, b)
	if err != nil {
		return 0, err
	}
	return s.model.MeetInSemifinals(sa, sb), nil
}

// MeetInFinals returns P(a and b meet in the final).
func (s *Snapshot) MeetInFinals(a, b string) (float64, error) {
	sa, sb, err := s.pair(a, b)
	if err != nil {
		return 0, err
	}
	return s.model.MeetInFinals(sa, sb), nil
}

// MakesFinals returns P(ref wins its semifinal).
func (s *Snapshot) MakesFinals(ref string) (float64, error) {
	seed, err := s.seed(ref)
	if err != nil {
		return 0, err
	}
	return s.model.MakesFinals(seed), nil
}

// LosesSemifinals returns P(ref is eliminated in the semifinals).
func (s *Snapshot) LosesSemifinals(ref string) (float64, error) {
	seed, err := s.seed(ref)
	if err != nil {
		return 0, err
	}
	return s.model.LosesSemifinals(seed), nil
}

// LosesFinals returns P(ref reaches and loses the final).
func (s *Snapshot) LosesFinals(ref string) (float64, error) {
	seed, err := s.seed(ref)
	if err != nil {
		return 0, err
	}
	return s.model.LosesFinals(seed), nil
}

// LosesTournament returns P(ref loses in the semifinals or the final).
func (s *Snapshot) LosesTournament(ref string) (float64, error) {
	seed, err := s.seed(ref)
	if err != nil {
		return 0, err
	}
	return s.model.LosesTournament(seed), nil
}

// LossBreakdown answers all three loss questions for ref at once.
func (s *Snapshot) LossBreakdown(ref string) (Loss, error) {
	seed, err := s.seed(ref)
	if err != nil {
		return Loss{}, err
	}
	return Loss{
		Seed:       seed,
		Semifinal:  s.model.LosesSemifinals(seed),
		Final:      s.model.LosesFinals(seed),
		Tournament: s.model.LosesTournament(seed),
	}, nil
}
