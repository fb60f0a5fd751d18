package bracket_test

import (
	"testing"

	"github.com/okian/ploffs/internal/domain/bracket"
	"github.com/okian/ploffs/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGates(t *testing.T) {
	Convey("Given the standard bracket", t, func() {
		m := bracket.New(playInOdds())

		expected := map[[2]model.Seed][]bracket.Gate{
			{1, 4}: {{3, 4}},
			{1, 5}: {{3, 5}},
			{1, 6}: {{6}},
			{2, 3}: {{3}},
			{2, 4}: {{4, 6}},
			{2, 5}: {{5, 6}},
		}

		Convey("Then every ordered pair among seeds one to six should be covered", func() {
			covered := 0
			for a := model.Seed(1); a <= 6; a++ {
				for b := model.Seed(1); b <= 6; b++ {
					if a == b {
						continue
					}
					covered++
					lo, hi := a, b
					if lo > hi {
						lo, hi = hi, lo
					}
					want, ok := expected[[2]model.Seed{lo, hi}]
					if ok {
						So(m.Gates(a, b), ShouldResemble, want)
					} else {
						So(m.Gates(a, b), ShouldBeNil)
					}
				}
			}
			So(covered, ShouldEqual, 30)
		})

		Convey("And byes should never appear in a gate", func() {
			for pair := range expected {
				for _, g := range m.Gates(pair[0], pair[1]) {
					So(g, ShouldNotContain, model.Seed(1))
					So(g, ShouldNotContain, model.Seed(2))
				}
			}
		})

		Convey("And returned gates should be copies", func() {
			g := m.Gates(1, 4)
			g[0][0] = 9
			So(m.Gates(1, 4), ShouldResemble, []bracket.Gate{{3, 4}})
		})
	})
}

func TestMeetInSemifinals(t *testing.T) {
	Convey("Given fixed play-in odds", t, func() {
		m := bracket.New(playInOdds())

		Convey("Then meeting odds should be the product of gate advancement", func() {
			cases := map[[2]model.Seed]float64{
				{1, 4}: 0.7 * 0.6,
				{1, 5}: 0.7 * 0.4,
				{1, 6}: 0.3,
				{2, 3}: 0.7,
				{2, 4}: 0.6 * 0.3,
				{2, 5}: 0.4 * 0.3,
			}
			for pair, want := range cases {
				So(m.MeetInSemifinals(pair[0], pair[1]), ShouldAlmostEqual, want, 1e-12)
				So(m.MeetInSemifinals(pair[1], pair[0]), ShouldEqual, m.MeetInSemifinals(pair[0], pair[1]))
			}
		})

		Convey("And structurally impossible pairings should be zero", func() {
			impossible := [][2]model.Seed{{1, 2}, {1, 3}, {3, 6}, {4, 5}, {3, 4}, {3, 5}, {4, 6}, {5, 6}, {1, 1}, {1, 7}, {8, 9}}
			for _, pair := range impossible {
				So(m.MeetInSemifinals(pair[0], pair[1]), ShouldEqual, 0.0)
			}
		})
	})

	Convey("Given odds from score distributions", t, func() {
		m := bracket.New(normalOdds())

		Convey("Then no seed should meet more opponents than it has chances to advance", func() {
			for target := model.MinSeed; target <= model.MaxSeed; target++ {
				total := 0.0
				for s := model.MinSeed; s <= model.MaxSeed; s++ {
					total += m.MeetInSemifinals(target, s)
				}
				So(total, ShouldBeLessThanOrEqualTo, m.MakesSemifinals(target)+1e-12)
			}
		})

		Convey("And the two semifinals should account for all meeting mass", func() {
			games := 0.0
			for a := model.Seed(1); a <= 6; a++ {
				for b := a + 1; b <= 6; b++ {
					games += m.MeetInSemifinals(a, b)
				}
			}
			So(games, ShouldAlmostEqual, 2.0, 1e-9)
		})
	})
}

func TestMeetInFinals(t *testing.T) {
	Convey("Given fixed play-in odds", t, func() {
		m := bracket.New(playInOdds())

		Convey("Then finals meeting odds should multiply the finalists' odds", func() {
			So(m.MeetInFinals(1, 2), ShouldAlmostEqual, m.MakesFinals(1)*m.MakesFinals(2), 1e-15)
			So(m.MeetInFinals(3, 3), ShouldEqual, 0.0)
			So(m.MeetInFinals(1, 8), ShouldEqual, 0.0)
		})
	})
}
