package analytics

import (
	"testing"

	"github.com/okian/iplstats/internal/domain/cricket"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPhaseBatting(t *testing.T) {
	Convey("Given a single powerplay four", t, func() {
		f := &fixture{}
		f.match(1, 2017, "Eden Gardens", "Kolkata Knight Riders", "Mumbai Indians", "", "normal").
			ball(1, 1, 3, 1, "Kolkata Knight Riders", "Mumbai Indians", "G Gambhir", "JJ Bumrah", 4)
		ds := f.build()

		Convey("When the team's phases are aggregated", func() {
			rows := PhaseBatting(ds, "Kolkata Knight Riders", "", 0)

			Convey("Then the powerplay row holds the ball", func() {
				So(rows, ShouldHaveLength, 3)
				So(rows[0].Phase, ShouldEqual, cricket.Powerplay)
				So(rows[0].RunsScored, ShouldEqual, 4)
				So(rows[0].BallsFaced, ShouldEqual, 1)
				So(rows[0].Fours, ShouldEqual, 1)
				So(rows[0].StrikeRate, ShouldEqual, 400)
			})

			Convey("Then empty phases are zero-filled with a zero strike rate", func() {
				So(rows[1].BallsFaced, ShouldEqual, 0)
				So(rows[1].StrikeRate, ShouldEqual, 0)
				So(rows[2].StrikeRate, ShouldEqual, 0)
			})
		})
	})

	Convey("Given the league fixture", t, func() {
		ds := leagueFixture()

		Convey("When a player has faced no balls in a phase", func() {
			rows := PhaseBatting(ds, "", "MS Dhoni", 0)

			Convey("Then the strike rate is 0", func() {
				So(rows[1].BallsFaced, ShouldEqual, 0)
				So(rows[1].StrikeRate, ShouldEqual, 0)
				So(HasBattingBalls(rows), ShouldBeTrue)
			})
		})

		Convey("When phase runs are summed", func() {
			rows := PhaseBatting(ds, "Kolkata Knight Riders", "", 0)
			sum := 0
			for _, r := range rows {
				sum += r.RunsScored
			}

			Convey("Then they equal the team's batsman runs", func() {
				So(sum, ShouldEqual, 20)
				So(rows[0].RunsScored, ShouldEqual, 18)
				So(rows[2].BallsFaced, ShouldEqual, 2)
			})
		})

		Convey("When the same query runs twice", func() {
			Convey("Then the result is identical", func() {
				So(PhaseBatting(ds, "Kolkata Knight Riders", "", 2017), ShouldResemble, PhaseBatting(ds, "Kolkata Knight Riders", "", 2017))
				So(PhaseLeague(ds, 0), ShouldResemble, PhaseLeague(ds, 0))
			})
		})

		Convey("When the bowling side is aggregated", func() {
			rows := PhaseBowling(ds, "Mumbai Indians", "", 0)

			Convey("Then only bowler dismissals count", func() {
				So(rows[0].RunsConceded, ShouldEqual, 11)
				So(rows[0].BallsBowled, ShouldEqual, 4)
				So(rows[0].WicketsTaken, ShouldEqual, 1)
				So(rows[0].Economy, ShouldEqual, 16.5)
				So(PhaseBowling(ds, "", "Kuldeep Yadav", 0)[0].WicketsTaken, ShouldEqual, 0)
			})
		})

		Convey("When the league split is built", func() {
			rows := PhaseLeague(ds, 0)

			Convey("Then the middle overs are omitted", func() {
				So(rows, ShouldHaveLength, 2)
				So(rows[0].Phase, ShouldEqual, cricket.Powerplay)
				So(rows[1].Phase, ShouldEqual, cricket.Death)
			})
		})
	})
}
