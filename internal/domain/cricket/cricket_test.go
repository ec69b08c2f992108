package cricket_test

import (
	"testing"

	"github.com/okian/iplstats/internal/domain/cricket"
	. "github.com/smartystreets/goconvey/convey"
)

func TestPhaseOf(t *testing.T) {
	Convey("Given every over from 0 to 21", t, func() {
		counts := map[cricket.Phase]int{}
		for over := 1; over <= 20; over++ {
			counts[cricket.PhaseOf(over)]++
		}

		Convey("Then overs 1-20 partition into 6/9/5 with no gaps", func() {
			So(counts[cricket.Powerplay], ShouldEqual, 6)
			So(counts[cricket.Middle], ShouldEqual, 9)
			So(counts[cricket.Death], ShouldEqual, 5)
			So(counts[cricket.Other], ShouldEqual, 0)
		})

		Convey("Then boundaries land in the right phase", func() {
			So(cricket.PhaseOf(6), ShouldEqual, cricket.Powerplay)
			So(cricket.PhaseOf(7), ShouldEqual, cricket.Middle)
			So(cricket.PhaseOf(15), ShouldEqual, cricket.Middle)
			So(cricket.PhaseOf(16), ShouldEqual, cricket.Death)
		})

		Convey("Then over 0 and over 21 are outside every phase", func() {
			So(cricket.PhaseOf(0), ShouldEqual, cricket.Other)
			So(cricket.PhaseOf(21), ShouldEqual, cricket.Other)
			So(cricket.InRegulation(21), ShouldBeFalse)
		})

		Convey("Then labels match the bowler economy table", func() {
			So(cricket.Powerplay.Label(), ShouldEqual, "1-6")
			So(cricket.Middle.Label(), ShouldEqual, "7-15")
			So(cricket.Death.Label(), ShouldEqual, "16-20")
			So(cricket.Phases(), ShouldResemble, []cricket.Phase{cricket.Powerplay, cricket.Middle, cricket.Death})
		})
	})
}

func TestVenueKey(t *testing.T) {
	Convey("Given raw venue names", t, func() {
		Convey("When one carries a city suffix", func() {
			Convey("Then both normalize to the same key", func() {
				So(cricket.VenueKey("Eden Gardens"), ShouldEqual, "edengardens")
				So(cricket.VenueKey("Eden Gardens, Kolkata"), ShouldEqual, "edengardens")
				So(cricket.SameVenue("Eden Gardens", "Eden Gardens, Kolkata"), ShouldBeTrue)
			})
		})

		Convey("When names differ only by periods and generic words", func() {
			Convey("Then the stop words and periods are dropped", func() {
				So(cricket.VenueKey("M. Chinnaswamy Stadium"), ShouldEqual, "mchinnaswamy")
				So(cricket.VenueKey("M.Chinnaswamy Stadium, Bengaluru"), ShouldEqual, "mchinnaswamy")
				So(cricket.VenueKey("Punjab Cricket Association IS Bindra Stadium, Mohali"), ShouldEqual, "punjabassociationisbindra")
				So(cricket.VenueKey("Sharjah Cricket Ground"), ShouldEqual, "sharjah")
			})
		})

		Convey("When venues are different grounds", func() {
			So(cricket.SameVenue("Wankhede Stadium", "Brabourne Stadium"), ShouldBeFalse)
		})
	})
}

func TestTeamNames(t *testing.T) {
	Convey("Given team name variants", t, func() {
		Convey("Then the known alias collapses to one spelling", func() {
			So(cricket.CanonicalTeam("Rising Pune Supergiant"), ShouldEqual, "Rising Pune Supergiants")
			So(cricket.CanonicalTeam("  Mumbai   Indians "), ShouldEqual, "Mumbai Indians")
			So(cricket.TeamMatches("rising pune supergiant", "Rising Pune Supergiants"), ShouldBeTrue)
		})

		Convey("Then substring lookup is case-insensitive", func() {
			So(cricket.TeamContains("Chennai Super Kings", "super"), ShouldBeTrue)
			So(cricket.TeamContains("Chennai Super Kings", ""), ShouldBeTrue)
			So(cricket.TeamContains("Chennai Super Kings", "royal"), ShouldBeFalse)
		})

		Convey("Then empty names never match", func() {
			So(cricket.TeamMatches("", ""), ShouldBeFalse)
			So(cricket.PlayerMatches("", ""), ShouldBeFalse)
			So(cricket.PlayerMatches("V Kohli", "v kohli"), ShouldBeTrue)
		})

		Convey("Then playoff results are recognised", func() {
			So(cricket.IsPlayoff("Final"), ShouldBeTrue)
			So(cricket.IsPlayoff("Qualifier 2"), ShouldBeTrue)
			So(cricket.IsPlayoff("normal"), ShouldBeFalse)
		})
	})
}
