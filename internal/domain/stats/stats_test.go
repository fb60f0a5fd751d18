package stats_test

import (
	"errors"
	"math"
	"testing"

	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/stats"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCompute(t *testing.T) {
	Convey("Given a season of scores", t, func() {
		scores := []float64{2, 4, 4, 4, 5, 5, 7, 9}

		Convey("When computing statistics", func() {
			s, err := stats.Compute(scores)

			Convey("Then the mean and sample deviation should match", func() {
				So(err, ShouldBeNil)
				So(s.Mean, ShouldEqual, 5.0)
				// population variance is 4; sample variance is 32/7
				So(s.Variance(), ShouldAlmostEqual, 32.0/7.0, 1e-12)
				So(s.Samples, ShouldEqual, 8)
			})

			Convey("And repeating the computation should be bit-identical", func() {
				again, _ := stats.Compute(scores)
				So(again, ShouldResemble, s)
			})
		})

		Convey("When there are exactly two samples", func() {
			s, err := stats.Compute([]float64{250 - math.Sqrt(20), 250 + math.Sqrt(20)})

			Convey("Then the variance is half the squared gap", func() {
				So(err, ShouldBeNil)
				So(s.Mean, ShouldAlmostEqual, 250.0, 1e-9)
				So(s.Variance(), ShouldAlmostEqual, 40.0, 1e-9)
			})
		})

		Convey("When every score is the same", func() {
			s, err := stats.Compute([]float64{100, 100, 100})

			Convey("Then the deviation is zero", func() {
				So(err, ShouldBeNil)
				So(s.StdDev, ShouldEqual, 0.0)
			})
		})
	})

	Convey("Given too few samples", t, func() {
		for _, scores := range [][]float64{nil, {}, {120}} {
			_, err := stats.Compute(scores)
			So(errors.Is(err, stats.ErrInsufficientSamples), ShouldBeTrue)
		}
	})

	Convey("Given a NaN sample", t, func() {
		_, err := stats.Compute([]float64{1, math.NaN(), 3})
		So(errors.Is(err, stats.ErrNonFinite), ShouldBeTrue)
	})
}

func TestTotal(t *testing.T) {
	Convey("Given scores", t, func() {
		So(stats.Total([]float64{100.5, 99.5, 50}), ShouldEqual, 250.0)
		So(stats.Total(nil), ShouldEqual, 0.0)
	})
}

func TestForEntrants(t *testing.T) {
	Convey("Given several entrants", t, func() {
		entrants := []model.Entrant{
			{Name: "Nico", Scores: []float64{1, 3}},
			{Name: "Sam", Scores: []float64{10, 20, 30}},
		}

		Convey("When all have enough samples", func() {
			out, err := stats.ForEntrants(entrants)
			So(err, ShouldBeNil)
			So(out["Nico"].Mean, ShouldEqual, 2.0)
			So(out["Sam"].Mean, ShouldEqual, 20.0)
		})

		Convey("When one entrant is short of samples", func() {
			entrants = append(entrants, model.Entrant{Name: "Bryce", Scores: []float64{5}})
			_, err := stats.ForEntrants(entrants)

			Convey("Then the error should name the entrant", func() {
				So(errors.Is(err, stats.ErrInsufficientSamples), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "Bryce")
			})
		})
	})
}
