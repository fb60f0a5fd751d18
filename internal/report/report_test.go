package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/odds"
	"github.com/okian/ploffs/internal/domain/seeding"
	"github.com/okian/ploffs/internal/report"
	. "github.com/smartystreets/goconvey/convey"
)

func snapshot() *odds.Snapshot {
	table := model.ScoreTable{Periods: []string{"1", "2", "3"}}
	names := []string{"Nico", "Sam", "Bryce", "Alex", "Jordan", "Casey", "Riley", "Drew", "Quinn", "Morgan"}
	for i, name := range names {
		base := 250 - 6*float64(i)
		spread := 8 + float64(i)
		table.Entrants = append(table.Entrants, model.Entrant{
			Name:   name,
			Scores: []float64{base - spread, base, base + spread},
		})
	}
	snap, err := odds.Build(table)
	if err != nil {
		panic(err)
	}
	return snap
}

func TestPercent(t *testing.T) {
	Convey("Given probabilities to display", t, func() {
		Convey("Then they should round half away from zero", func() {
			So(report.Percent(0.38172, 2), ShouldEqual, "38.17%")
			So(report.Percent(0.00125, 2), ShouldEqual, "0.13%")
			So(report.Percent(0.5, 0), ShouldEqual, "50%")
			So(report.Percent(1, 1), ShouldEqual, "100.0%")
			So(report.Percent(0.12345, 3), ShouldEqual, "12.345%")
			So(report.Percent(0.25, -1), ShouldEqual, "25%")
		})
	})
}

func TestBuild(t *testing.T) {
	Convey("Given a season snapshot", t, func() {
		snap := snapshot()

		Convey("When building a report for the top seed", func() {
			r, err := report.Build(snap, "Nico", report.WithPrecision(3))
			So(err, ShouldBeNil)

			Convey("Then it should describe the target and the field", func() {
				So(r.SnapshotID, ShouldEqual, snap.ID())
				So(r.Target.Seed, ShouldEqual, 1)
				So(r.Precision, ShouldEqual, 3)
				So(len(r.Standings), ShouldEqual, 10)
				So(len(r.Advancement), ShouldEqual, 6)
				So(len(r.Matchups), ShouldEqual, 5)
			})

			Convey("And the step totals should match the model", func() {
				semi, fin := 0.0, 0.0
				for _, m := range r.Matchups {
					semi += m.LoseSemifinal
					fin += m.LoseFinal
				}
				So(semi, ShouldAlmostEqual, r.Semifinal, 1e-12)
				So(r.MakesFinals*fin, ShouldAlmostEqual, r.Final, 1e-12)
				So(r.Tournament, ShouldAlmostEqual, r.Semifinal+r.Final, 1e-15)

				want, _ := snap.LosesTournament("Nico")
				So(r.Tournament, ShouldEqual, want)
			})

			Convey("And the headline should use the configured precision", func() {
				So(r.Headline, ShouldEqual, "Nico has a "+report.Percent(r.Tournament, 3)+" chance of not winning the playoffs")
			})

			Convey("And it should serialise to JSON", func() {
				raw, err := json.Marshal(r)
				So(err, ShouldBeNil)
				var back map[string]any
				So(json.Unmarshal(raw, &back), ShouldBeNil)
				So(back["lose_tournament"], ShouldAlmostEqual, r.Tournament, 1e-12)
			})

			Convey("And it should render every step", func() {
				var buf bytes.Buffer
				So(r.Render(&buf, report.DefaultTheme), ShouldBeNil)
				out := buf.String()
				So(out, ShouldContainSubstring, r.Headline)
				So(out, ShouldContainSubstring, "Step 1")
				So(out, ShouldContainSubstring, "Step 4")
				So(out, ShouldContainSubstring, "Morgan")
			})
		})

		Convey("When the target only reaches the bottom quarter", func() {
			r, err := report.Build(snap, "9")
			So(err, ShouldBeNil)

			Convey("Then it cannot lose on the championship side", func() {
				So(r.Tournament, ShouldEqual, 0.0)
				So(math.Signbit(r.Tournament), ShouldBeFalse)
				So(len(r.Matchups), ShouldEqual, 6)
			})
		})

		Convey("When the target is unknown", func() {
			_, err := report.Build(snap, "Ghost")

			Convey("Then the lookup error should surface", func() {
				So(errors.Is(err, seeding.ErrUnknownEntrant), ShouldBeTrue)
			})
		})
	})
}
