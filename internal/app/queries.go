package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/odds"
	"github.com/okian/ploffs/internal/domain/types"
	"github.com/okian/ploffs/internal/report"
	"github.com/okian/ploffs/pkg/metrics"
	cache "github.com/patrickmn/go-cache"
)

// Query names used for metrics and in responses.
const (
	QueryWin             = "win"
	QueryMakesSemifinals = "makes_semifinals"
	QueryMeetSemifinal   = "meet_semifinal"
	QueryMeetFinal       = "meet_final"
	QueryMakesFinals     = "makes_finals"
	QueryLoseSemifinal   = "lose_semifinal"
	QueryLoseFinal       = "lose_final"
	QueryLoseTournament  = "lose_tournament"
)

// memoized returns the cached value for (query, a, b) on snap, computing
// and storing it on a miss. Keys carry the snapshot id so values computed
// against a replaced snapshot are never served.
func (s *Service) memoized(snap *odds.Snapshot, query string, a, b model.Seed, compute func() float64) float64 {
	if s.memo == nil {
		return compute()
	}
	key := snap.ID() + ":" + query + ":" + strconv.Itoa(int(a)) + ":" + strconv.Itoa(int(b))
	if v, ok := s.memo.Get(key); ok {
		metrics.RecordCacheHit()
		return v.(float64)
	}
	metrics.RecordCacheMiss()
	v := compute()
	s.memo.Set(key, v, cache.NoExpiration)
	return v
}

func observe(query string, start time.Time) {
	metrics.RecordQuery(query, float64(time.Since(start).Microseconds())/1000)
}

func (s *Service) pair(a, b string) (*odds.Snapshot, odds.Standing, odds.Standing, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, odds.Standing{}, odds.Standing{}, err
	}
	sa, err := snap.Resolve(a)
	if err != nil {
		return nil, odds.Standing{}, odds.Standing{}, err
	}
	sb, err := snap.Resolve(b)
	if err != nil {
		return nil, odds.Standing{}, odds.Standing{}, err
	}
	return snap, sa, sb, nil
}

func (s *Service) one(ref string) (*odds.Snapshot, odds.Standing, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, odds.Standing{}, err
	}
	st, err := snap.Resolve(ref)
	if err != nil {
		return nil, odds.Standing{}, err
	}
	return snap, st, nil
}

func (s *Service) probability(query, subject, against string, p float64) types.Probability {
	return types.Probability{
		Query:   query,
		Subject: subject,
		Against: against,
		Value:   p,
		Percent: report.Percent(p, s.precision),
	}
}

// WinProbability returns P(a beats b) in a single game.
func (s *Service) WinProbability(ctx context.Context, a, b string) (types.Probability, error) {
	defer observe(QueryWin, time.Now())
	snap, sa, sb, err := s.pair(a, b)
	if err != nil {
		return types.Probability{}, err
	}
	m := snap.Model()
	p := s.memoized(snap, QueryWin, sa.Seed, sb.Seed, func() float64 { return m.Win(sa.Seed, sb.Seed) })
	return s.probability(QueryWin, sa.Entrant.Name, sb.Entrant.Name, p), nil
}

// MakesSemifinals returns P(ref reaches the semifinals).
func (s *Service) MakesSemifinals(ctx context.Context, ref string) (types.Probability, error) {
	defer observe(QueryMakesSemifinals, time.Now())
	snap, st, err := s.one(ref)
	if err != nil {
		return types.Probability{}, err
	}
	m := snap.Model()
	p := s.memoized(snap, QueryMakesSemifinals, st.Seed, 0, func() float64 { return m.MakesSemifinals(st.Seed) })
	return s.probability(QueryMakesSemifinals, st.Entrant.Name, "", p), nil
}

// MakesFinals returns P(ref wins its semifinal).
func (s *Service) MakesFinals(ctx context.Context, ref string) (types.Probability, error) {
	defer observe(QueryMakesFinals, time.Now())
	snap, st, err := s.one(ref)
	if err != nil {
		return types.Probability{}, err
	}
	m := snap.Model()
	p := s.memoized(snap, QueryMakesFinals, st.Seed, 0, func() float64 { return m.MakesFinals(st.Seed) })
	return s.probability(QueryMakesFinals, st.Entrant.Name, "", p), nil
}

// Meet returns P(a and b meet) in the given round.
func (s *Service) Meet(ctx context.Context, a, b string, round model.Round) (types.Probability, error) {
	var query string
	switch round {
	case model.RoundSemifinal, "":
		query = QueryMeetSemifinal
	case model.RoundFinal:
		query = QueryMeetFinal
	default:
		return types.Probability{}, fmt.Errorf("%w: %q", ErrUnknownRound, round)
	}
	defer observe(query, time.Now())

	snap, sa, sb, err := s.pair(a, b)
	if err != nil {
		return types.Probability{}, err
	}
	m := snap.Model()
	p := s.memoized(snap, query, sa.Seed, sb.Seed, func() float64 {
		if query == QueryMeetFinal {
			return m.MeetInFinals(sa.Seed, sb.Seed)
		}
		return m.MeetInSemifinals(sa.Seed, sb.Seed)
	})
	return s.probability(query, sa.Entrant.Name, sb.Entrant.Name, p), nil
}

// Loss returns how likely ref is to be eliminated, by round.
func (s *Service) Loss(ctx context.Context, ref string) (types.Loss, error) {
	defer observe(QueryLoseTournament, time.Now())
	snap, st, err := s.one(ref)
	if err != nil {
		return types.Loss{}, err
	}
	m := snap.Model()
	semi := s.memoized(snap, QueryLoseSemifinal, st.Seed, 0, func() float64 { return m.LosesSemifinals(st.Seed) })
	final := s.memoized(snap, QueryLoseFinal, st.Seed, 0, func() float64 { return m.LosesFinals(st.Seed) })
	total := s.memoized(snap, QueryLoseTournament, st.Seed, 0, func() float64 { return m.LosesTournament(st.Seed) })
	return types.Loss{
		Subject:    st.Entrant.Name,
		Seed:       int(st.Seed),
		Semifinal:  semi,
		Final:      final,
		Tournament: total,
		Percent:    report.Percent(total, s.precision),
	}, nil
}

// Report builds the step-by-step explanation for ref. An empty ref means
// the configured target.
func (s *Service) Report(ctx context.Context, ref string) (*report.Report, error) {
	defer observe("report", time.Now())
	if ref == "" {
		ref = s.target
	}
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return report.Build(snap, ref, report.WithPrecision(s.precision))
}

// TopN returns the first n entries of the seeded standings.
func (s *Service) TopN(ctx context.Context, n int) ([]types.Entry, error) {
	return s.standings.TopN(ctx, n)
}

// Rank returns the standings entry for ref.
func (s *Service) Rank(ctx context.Context, ref string) (types.Entry, error) {
	_, st, err := s.one(ref)
	if err != nil {
		return types.Entry{}, err
	}
	return s.standings.Rank(ctx, st.Entrant.Name)
}
