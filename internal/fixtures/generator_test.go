package fixtures

import (
	"context"
	"errors"
	"testing"

	"github.com/okian/iplstats/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestGenerate(t *testing.T) {
	Convey("Given a generator for two seasons", t, func() {
		ctx := context.Background()
		g := New(WithSeed(7), WithSeasons(2016, 2), WithWorkers(3))

		matches, deliveries, err := g.Generate(ctx)
		So(err, ShouldBeNil)

		Convey("Then every season has a double round-robin and a final", func() {
			teams := len(DefaultTeams)
			So(len(matches), ShouldEqual, 2*(teams*(teams-1)+1))

			finals := map[int]model.Match{}
			for _, m := range matches {
				if m.Result == resultFinal {
					finals[m.Season] = m
				}
			}
			So(finals, ShouldContainKey, 2016)
			So(finals, ShouldContainKey, 2017)
			So(finals[2016].Date.After(matches[0].Date), ShouldBeTrue)
		})

		Convey("Then match ids are unique and ascending", func() {
			for i := 1; i < len(matches); i++ {
				So(matches[i].MatchID, ShouldBeGreaterThan, matches[i-1].MatchID)
			}
		})

		Convey("Then every row passes validation", func() {
			for _, m := range matches {
				So(m.Validate(), ShouldBeNil)
			}
			for _, d := range deliveries {
				So(d.Validate(), ShouldBeNil)
			}
		})

		Convey("Then chases stop once the target is reached", func() {
			totals := map[[2]int]int{}
			for _, d := range deliveries {
				totals[[2]int{d.MatchID, d.Inning}] += d.TotalRuns
			}
			for _, m := range matches {
				first, second := totals[[2]int{m.MatchID, 1}], totals[[2]int{m.MatchID, 2}]
				So(second, ShouldBeLessThanOrEqualTo, first+7)
			}
		})

		Convey("Then a bowler never bowls more than four overs in an innings", func() {
			type spell struct {
				match, inning int
				bowler        string
			}
			overs := map[spell]map[int]bool{}
			for _, d := range deliveries {
				k := spell{d.MatchID, d.Inning, d.Bowler}
				if overs[k] == nil {
					overs[k] = map[int]bool{}
				}
				overs[k][d.Over] = true
			}
			for _, o := range overs {
				So(len(o), ShouldBeLessThanOrEqualTo, 4)
			}
		})

		Convey("When generating again with the same seed", func() {
			again, againDeliveries, err := New(WithSeed(7), WithSeasons(2016, 2), WithWorkers(1)).Generate(ctx)

			Convey("Then the output is identical", func() {
				So(err, ShouldBeNil)
				So(again, ShouldResemble, matches)
				So(againDeliveries, ShouldResemble, deliveries)
			})
		})

		Convey("When generating with another seed", func() {
			other, _, err := New(WithSeed(8), WithSeasons(2016, 2)).Generate(ctx)

			Convey("Then the results differ", func() {
				So(err, ShouldBeNil)
				So(other, ShouldNotResemble, matches)
			})
		})
	})
}

func TestGenerateErrors(t *testing.T) {
	Convey("Given invalid generator options", t, func() {
		ctx := context.Background()

		Convey("When only one team is configured", func() {
			_, _, err := New(WithTeams(DefaultTeams[:1])).Generate(ctx)
			So(errors.Is(err, ErrTooFewTeams), ShouldBeTrue)
		})

		Convey("When no seasons are requested", func() {
			_, _, err := New(WithSeasons(2010, 0)).Generate(ctx)
			So(errors.Is(err, ErrNoSeasons), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, _, err := New().Generate(cancelled)
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
		})
	})
}
