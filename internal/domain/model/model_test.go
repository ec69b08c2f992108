package model_test

import (
	"errors"
	"testing"

	"github.com/okian/iplstats/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

func TestDeliveryValidate(t *testing.T) {
	convey.Convey("Given a delivery", t, func() {
		d := model.Delivery{MatchID: 1, Inning: 1, Over: 3, Ball: 2, BatsmanRuns: 4, TotalRuns: 4}

		convey.Convey("When runs add up", func() {
			convey.Convey("Then it validates", func() {
				convey.So(d.Validate(), convey.ShouldBeNil)
				convey.So(d.IsBoundary(), convey.ShouldBeTrue)
				convey.So(d.IsWicket(), convey.ShouldBeFalse)
			})
		})

		convey.Convey("When the extras breakdown disagrees with extraRuns", func() {
			d.WideRuns = 1
			d.TotalRuns = 5

			convey.Convey("Then it reports a runs mismatch", func() {
				convey.So(errors.Is(d.Validate(), model.ErrRunsMismatch), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When total is not batsman plus extras", func() {
			d.WideRuns, d.ExtraRuns, d.TotalRuns = 1, 1, 4

			convey.Convey("Then it reports a runs mismatch", func() {
				convey.So(errors.Is(d.Validate(), model.ErrRunsMismatch), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the ball position is zero", func() {
			d.Over = 0

			convey.Convey("Then it is invalid", func() {
				convey.So(errors.Is(d.Validate(), model.ErrInvalidDelivery), convey.ShouldBeTrue)
			})
		})
	})
}

func TestDeliveryLess(t *testing.T) {
	convey.Convey("Given two deliveries of the same innings", t, func() {
		a := model.Delivery{MatchID: 5, Inning: 1, Over: 2, Ball: 6}
		b := model.Delivery{MatchID: 5, Inning: 1, Over: 3, Ball: 1}

		convey.Convey("Then over/ball order decides", func() {
			convey.So(a.Less(b), convey.ShouldBeTrue)
			convey.So(b.Less(a), convey.ShouldBeFalse)
		})

		convey.Convey("Then an earlier match always comes first", func() {
			c := model.Delivery{MatchID: 4, Inning: 2, Over: 20, Ball: 6}
			convey.So(c.Less(a), convey.ShouldBeTrue)
		})
	})
}

func TestMatchClassification(t *testing.T) {
	convey.Convey("Given matches with various results", t, func() {
		convey.Convey("When winner is blank and result says no result", func() {
			m := model.Match{MatchID: 1, Team1: "A", Team2: "B", Result: "No result"}

			convey.Convey("Then it is not decisive", func() {
				convey.So(m.Decisive(), convey.ShouldBeFalse)
				convey.So(m.IsNoResult(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the result is a tie", func() {
			m := model.Match{MatchID: 2, Team1: "A", Team2: "B", Result: "tie", Winner: "A"}

			convey.Convey("Then it is not decisive", func() {
				convey.So(m.Decisive(), convey.ShouldBeFalse)
				convey.So(m.IsTie(), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When there is a normal winner", func() {
			m := model.Match{MatchID: 3, Team1: "A", Team2: "B", Result: "normal", Winner: "b", Umpire1: "X", Umpire3: " "}

			convey.Convey("Then it is decisive and valid", func() {
				convey.So(m.Decisive(), convey.ShouldBeTrue)
				convey.So(m.Validate(), convey.ShouldBeNil)
				convey.So(m.Opponent("a"), convey.ShouldEqual, "B")
				convey.So(m.Umpires(), convey.ShouldResemble, []string{"X"})
			})
		})

		convey.Convey("When the winner did not play", func() {
			m := model.Match{MatchID: 4, Team1: "A", Team2: "B", Winner: "C"}

			convey.Convey("Then validation fails", func() {
				convey.So(errors.Is(m.Validate(), model.ErrInvalidMatch), convey.ShouldBeTrue)
			})
		})
	})
}

func TestDismissalCredit(t *testing.T) {
	convey.Convey("Given dismissals of different kinds", t, func() {
		caught := model.Delivery{PlayerDismissed: "A", DismissalKind: "caught and bowled", DismissalFielders: "B"}
		runOut := model.Delivery{PlayerDismissed: "A", DismissalKind: "run out", DismissalFielders: "C, D"}
		dot := model.Delivery{}

		convey.Convey("Then only bowler dismissals credit the bowler", func() {
			convey.So(caught.IsBowlerWicket(), convey.ShouldBeTrue)
			convey.So(runOut.IsBowlerWicket(), convey.ShouldBeFalse)
			convey.So(dot.IsBowlerWicket(), convey.ShouldBeFalse)
		})

		convey.Convey("Then fielding kinds are recognised", func() {
			convey.So(caught.IsCatch(), convey.ShouldBeTrue)
			convey.So(runOut.IsRunOut(), convey.ShouldBeTrue)
			convey.So(runOut.Fielders(), convey.ShouldResemble, []string{"C", "D"})
			convey.So(dot.Fielders(), convey.ShouldBeNil)
		})
	})
}
