package bracket_test

import (
	"math"
	"testing"

	"github.com/okian/ploffs/internal/domain/bracket"
	"github.com/okian/ploffs/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMakesSemifinals(t *testing.T) {
	Convey("Given fixed play-in odds", t, func() {
		m := bracket.New(playInOdds())

		Convey("Then bye seeds should always advance", func() {
			So(m.MakesSemifinals(1), ShouldEqual, 1.0)
			So(m.MakesSemifinals(2), ShouldEqual, 1.0)
		})

		Convey("And play-in seeds should advance by winning their game", func() {
			So(m.MakesSemifinals(3), ShouldEqual, 0.7)
			So(m.MakesSemifinals(6), ShouldAlmostEqual, 0.3, 1e-12)
			So(m.MakesSemifinals(4), ShouldEqual, 0.6)
			So(m.MakesSemifinals(5), ShouldAlmostEqual, 0.4, 1e-12)
		})

		Convey("And seeds off the championship side should never advance", func() {
			for _, s := range []model.Seed{7, 8, 9, 10, 0, 11} {
				So(m.MakesSemifinals(s), ShouldEqual, 0.0)
			}
		})
	})

	Convey("Given odds from score distributions", t, func() {
		m := bracket.New(normalOdds())

		Convey("Then each play-in game should have exactly one winner", func() {
			So(math.Abs(m.MakesSemifinals(3)-(1-m.MakesSemifinals(6))), ShouldBeLessThan, 1e-9)
			So(math.Abs(m.MakesSemifinals(4)+m.MakesSemifinals(5)-1), ShouldBeLessThan, 1e-9)
		})
	})
}
