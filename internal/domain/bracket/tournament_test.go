package bracket_test

import (
	"math"
	"testing"

	"github.com/okian/ploffs/internal/domain/bracket"
	"github.com/okian/ploffs/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestTournamentLoss(t *testing.T) {
	Convey("Given fixed play-in odds and coin-flip games elsewhere", t, func() {
		m := bracket.New(playInOdds())

		Convey("Then finals odds should follow the semifinal meetings", func() {
			want := map[model.Seed]float64{1: 0.5, 2: 0.5, 3: 0.35, 4: 0.3, 5: 0.2, 6: 0.15}
			for seed, p := range want {
				So(m.MakesFinals(seed), ShouldAlmostEqual, p, 1e-12)
			}
			So(m.MakesFinals(7), ShouldEqual, 0.0)
		})

		Convey("And the top seed's loss odds should add up by round", func() {
			So(m.LosesSemifinals(1), ShouldAlmostEqual, 0.5, 1e-12)
			// 0.5 to reach the final times 0.5 * (0.5+0.35+0.3+0.2+0.15)
			So(m.LosesFinals(1), ShouldAlmostEqual, 0.375, 1e-12)
			So(m.LosesTournament(1), ShouldAlmostEqual, 0.875, 1e-12)
		})
	})

	Convey("Given odds from score distributions", t, func() {
		m := bracket.New(normalOdds())

		Convey("Then exactly two finalists should be expected", func() {
			total := 0.0
			for _, s := range m.Field() {
				total += m.MakesFinals(s)
			}
			So(total, ShouldAlmostEqual, 2.0, 1e-9)
		})

		Convey("And every loss probability should be a probability", func() {
			for s := model.MinSeed; s <= model.MaxSeed; s++ {
				So(m.LosesSemifinals(s), ShouldBeBetweenOrEqual, 0.0, 1.0)
				So(m.LosesFinals(s), ShouldBeBetweenOrEqual, 0.0, 1.0)
				So(m.LosesTournament(s), ShouldBeBetweenOrEqual, 0.0, 1.0)
			}
		})

		Convey("And the top seed should be likelier to reach the final than seed three", func() {
			So(m.MakesFinals(1), ShouldBeGreaterThan, m.MakesFinals(3))
		})

		Convey("And repeated queries should be bit-identical", func() {
			for s := model.MinSeed; s <= model.MaxSeed; s++ {
				a, b := m.LosesTournament(s), m.LosesTournament(s)
				So(math.Float64bits(a), ShouldEqual, math.Float64bits(b))
			}
		})

		Convey("And semifinal losses plus wins should equal the meeting mass", func() {
			for _, s := range m.Field() {
				meet := 0.0
				for _, o := range m.Field() {
					meet += m.MeetInSemifinals(s, o)
				}
				So(m.LosesSemifinals(s)+m.MakesFinals(s), ShouldAlmostEqual, meet, 1e-12)
			}
		})
	})

	Convey("Given a model built twice from the same odds", t, func() {
		a := bracket.New(normalOdds())
		b := bracket.New(normalOdds())

		Convey("Then the answers should not depend on the instance", func() {
			So(a.LosesTournament(2), ShouldEqual, b.LosesTournament(2))
		})
	})
}
