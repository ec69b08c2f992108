package analytics

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestRivalBattle(t *testing.T) {
	Convey("Given the league fixture", t, func() {
		ds := leagueFixture()

		Convey("When the pair never met", func() {
			_, err := RivalBattle(ds, "MS Dhoni", "JJ Bumrah", 0)

			Convey("Then it is not found", func() {
				So(errors.Is(err, ErrNotFound), ShouldBeTrue)
			})
		})

		Convey("When either side is missing", func() {
			_, err := RivalBattle(ds, "", "JJ Bumrah", 0)
			So(errors.Is(err, ErrInvalidFilter), ShouldBeTrue)
		})

		Convey("When the pair met", func() {
			r, err := RivalBattle(ds, "rg sharma", "SP Narine", 0)

			Convey("Then every ball is summarised", func() {
				So(err, ShouldBeNil)
				So(r.Batsman, ShouldEqual, "RG Sharma")
				So(r.Balls, ShouldEqual, 2)
				So(r.Runs, ShouldEqual, 4)
				So(r.SR, ShouldEqual, 200)
				So(r.Dismissals, ShouldEqual, 1)
				So(r.DismissalsBreakdown, ShouldResemble, map[string]int{"bowled": 1})
				So(r.SampleTimeline, ShouldHaveLength, 2)
			})
		})
	})
}

func TestPlayerStats(t *testing.T) {
	Convey("Given the league fixture", t, func() {
		ds := leagueFixture()

		Convey("When a batsman's career is built", func() {
			s, err := PlayerStats(ds, "CA Lynn", 0)

			Convey("Then runs and dismissals are counted", func() {
				So(err, ShouldBeNil)
				So(s.TotalRuns, ShouldEqual, 12)
				So(s.TotalBalls, ShouldEqual, 3)
				So(s.Sixes, ShouldEqual, 2)
				So(s.Average, ShouldEqual, 12)
				So(s.SeasonPerformance, ShouldHaveLength, 2)
			})
		})

		Convey("When a bowler's career is built", func() {
			s, err := BowlerStats(ds, "SP Narine", 0)

			Convey("Then only bowler dismissals count", func() {
				So(err, ShouldBeNil)
				So(s.TotalWickets, ShouldEqual, 1)
				So(s.TotalBalls, ShouldEqual, 6)
				So(s.TotalRuns, ShouldEqual, 17)
				So(s.DotBalls, ShouldEqual, 1)
			})

			Convey("Then a run out does not credit the bowler", func() {
				k, err := BowlerStats(ds, "Kuldeep Yadav", 0)
				So(err, ShouldBeNil)
				So(k.TotalWickets, ShouldEqual, 0)
			})
		})

		Convey("When the player is unknown", func() {
			_, err := PlayerStats(ds, "Nobody", 0)
			So(errors.Is(err, ErrNotFound), ShouldBeTrue)
		})
	})
}

func TestFilterKey(t *testing.T) {
	Convey("Given filters spelled differently", t, func() {
		a := Filter{Team: "Rising Pune Supergiant", Venue: "Eden Gardens, Kolkata", Season: 2017}
		b := Filter{Team: "rising pune supergiants", Venue: "Eden Gardens", Season: 2017}

		Convey("Then their keys agree", func() {
			So(a.Key(), ShouldEqual, b.Key())
			So(a.SeasonLabel(), ShouldEqual, "2017")
			So(Filter{}.SeasonLabel(), ShouldEqual, "all")
			So(Filter{}.LimitOr(DefaultLimit), ShouldEqual, DefaultLimit)
		})
	})
}
