package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/okian/iplstats/internal/adapters/repository"
	"github.com/okian/iplstats/internal/analytics"
	service "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/internal/domain/cricket"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/types"
	"github.com/okian/iplstats/internal/fixtures"
	"github.com/okian/iplstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const (
	kkr = "Kolkata Knight Riders"
	mi  = "Mumbai Indians"
	csk = "Chennai Super Kings"
)

func match(id int, team1, team2, winner string) model.Match {
	return model.Match{
		MatchID: id,
		Season:  2017,
		Date:    time.Date(2017, time.April, id, 0, 0, 0, 0, time.UTC),
		Venue:   "Eden Gardens",
		Team1:   team1,
		Team2:   team2,
		Winner:  winner,
		Result:  "normal",
		Umpire1: "Aleem Dar",
	}
}

// seededStore holds one match: a powerplay four for Kolkata and a death
// over wicket for Narine.
func seededStore(t *testing.T) *repository.MemoryStore {
	store := repository.NewMemoryStore()
	err := store.ReplaceAll(context.Background(),
		[]model.Match{match(1, kkr, mi, kkr)},
		[]model.Delivery{
			{MatchID: 1, Inning: 1, Over: 3, Ball: 1, BattingTeam: kkr, BowlingTeam: mi, Batsman: "G Gambhir", NonStriker: "CA Lynn", Bowler: "JJ Bumrah", BatsmanRuns: 4, TotalRuns: 4},
			{MatchID: 1, Inning: 2, Over: 17, Ball: 1, BattingTeam: mi, BowlingTeam: kkr, Batsman: "RG Sharma", NonStriker: "KA Pollard", Bowler: "SP Narine", PlayerDismissed: "RG Sharma", DismissalKind: "bowled"},
		})
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestService_Lifecycle(t *testing.T) {
	Convey("Given a new service", t, func() {
		svc := service.New(service.WithCacheTTL(time.Minute), service.WithCacheSize(16))

		Convey("When getting stats before starting", func() {
			stats := svc.GetStats()

			Convey("Then it should return basic stats", func() {
				So(stats, ShouldNotBeNil)
				So(stats["started"], ShouldEqual, false)
				So(svc.Dataset(), ShouldBeNil)
			})
		})

		Convey("When a report is requested before Start", func() {
			_, err := svc.Teams(context.Background(), analytics.Filter{})

			Convey("Then it fails as an internal error", func() {
				So(errors.Is(err, service.ErrInternal), ShouldBeTrue)
				So(errors.Is(err, service.ErrNotStarted), ShouldBeTrue)
			})
		})

		Convey("When reloading before Start", func() {
			So(errors.Is(svc.Reload(context.Background()), service.ErrNotStarted), ShouldBeTrue)
		})

		Convey("When starting and stopping with the default store", func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			So(svc.Start(ctx), ShouldBeNil)
			So(svc.Start(ctx), ShouldBeNil)

			started := svc.GetStats()
			svc.Stop()
			svc.Stop()

			Convey("Then the stats follow the lifecycle", func() {
				So(started["started"], ShouldEqual, true)
				So(started["matches"], ShouldEqual, 0)
				So(started["loads"], ShouldEqual, int64(1))
				So(svc.GetStats()["started"], ShouldEqual, false)
				So(svc.IsStarted(), ShouldBeFalse)
			})
		})
	})
}

func TestService_Bootstrap(t *testing.T) {
	Convey("Given an empty store and a generator bootstrap", t, func() {
		gen := fixtures.New(fixtures.WithSeed(3), fixtures.WithSeasons(2018, 1))
		svc := service.New(service.WithBootstrap(gen.Generate))
		defer svc.Stop()

		Convey("When the service starts", func() {
			So(svc.Start(context.Background()), ShouldBeNil)

			Convey("Then the generated season is loaded", func() {
				teams := len(fixtures.DefaultTeams)
				So(svc.GetStats()["matches"], ShouldEqual, teams*(teams-1)+1)

				summary, err := svc.SeasonSummary(context.Background(), analytics.Filter{Season: 2018})
				So(err, ShouldBeNil)
				So(summary.Champion, ShouldNotEqual, "TBD")
			})
		})
	})
}

func TestService_Phase(t *testing.T) {
	Convey("Given a started service over one match", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(seededStore(t)))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When asking for a team", func() {
			r, err := svc.Phase(ctx, analytics.Filter{Team: kkr})

			Convey("Then both sides are zero-filled and the four lands in the powerplay", func() {
				So(err, ShouldBeNil)
				So(r.Mode, ShouldEqual, types.PhaseModeTeam)
				So(r.Batting, ShouldHaveLength, 3)
				So(r.Bowling, ShouldHaveLength, 3)
				So(r.Batting[0].Phase, ShouldEqual, cricket.Powerplay)
				So(r.Batting[0].RunsScored, ShouldEqual, 4)
				So(r.Batting[0].Fours, ShouldEqual, 1)
				So(r.Batting[0].StrikeRate, ShouldEqual, 400)
				So(r.Bowling[2].WicketsTaken, ShouldEqual, 1)
			})
		})

		Convey("When asking for a player who only bowled", func() {
			r, err := svc.Phase(ctx, analytics.Filter{Player: "SP Narine"})

			Convey("Then the batting side is omitted", func() {
				So(err, ShouldBeNil)
				So(r.Mode, ShouldEqual, types.PhaseModePlayer)
				So(r.Batting, ShouldBeNil)
				So(r.Bowling, ShouldHaveLength, 3)
			})
		})

		Convey("When the season has no matches", func() {
			r, err := svc.Phase(ctx, analytics.Filter{Team: kkr, Season: 2010})

			Convey("Then the zero shape is returned", func() {
				So(err, ShouldBeNil)
				So(r.Season, ShouldEqual, "2010")
				So(r.Batting, ShouldHaveLength, 3)
				So(r.Batting[0].BallsFaced, ShouldEqual, 0)
			})
		})

		Convey("When no team or player is given", func() {
			r, err := svc.Phase(ctx, analytics.Filter{})

			Convey("Then the league split omits the empty middle overs", func() {
				So(err, ShouldBeNil)
				So(r.Mode, ShouldEqual, types.PhaseModeLeague)
				So(r.LeagueStats, ShouldHaveLength, 2)
			})
		})

		Convey("When the season is outside the covered range", func() {
			_, err := svc.Phase(ctx, analytics.Filter{Season: 2030})

			Convey("Then it is a bad request", func() {
				So(errors.Is(err, service.ErrBadRequest), ShouldBeTrue)
				So(service.Code(err), ShouldEqual, service.CodeBadRequest)
			})
		})
	})
}

func TestService_Errors(t *testing.T) {
	Convey("Given a started service over one match", t, func() {
		ctx := context.Background()
		svc := service.New(service.WithStore(seededStore(t)), service.WithMaxLimit(10))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		Convey("When the rivals never met", func() {
			_, err := svc.Rival(ctx, analytics.Filter{Player: "G Gambhir", Bowler: "SP Narine"})

			Convey("Then it is not found, and the cause is kept", func() {
				So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
				So(errors.Is(err, analytics.ErrNotFound), ShouldBeTrue)
				So(service.Code(err), ShouldEqual, service.CodeNotFound)
			})
		})

		Convey("When the rivals met", func() {
			r, err := svc.Rival(ctx, analytics.Filter{Player: "G Gambhir", Bowler: "JJ Bumrah"})
			So(err, ShouldBeNil)
			So(r.Balls, ShouldEqual, 1)
			So(r.Runs, ShouldEqual, 4)
		})

		Convey("When a required parameter is missing", func() {
			_, err := svc.PlayerStats(ctx, analytics.Filter{})
			So(errors.Is(err, service.ErrBadRequest), ShouldBeTrue)

			_, err = svc.HeadToHead(ctx, analytics.Filter{Team: kkr})
			So(errors.Is(err, service.ErrBadRequest), ShouldBeTrue)

			_, err = svc.SeasonSummary(ctx, analytics.Filter{})
			So(errors.Is(err, service.ErrBadRequest), ShouldBeTrue)
		})

		Convey("When the limit exceeds the maximum", func() {
			_, err := svc.TopBatsmen(ctx, analytics.Filter{Limit: 11})
			So(errors.Is(err, service.ErrBadRequest), ShouldBeTrue)
		})

		Convey("When the match does not exist", func() {
			_, err := svc.MatchDetails(ctx, analytics.Filter{MatchID: 99})
			So(errors.Is(err, service.ErrNotFound), ShouldBeTrue)
		})

		Convey("When the context is cancelled", func() {
			cancelled, cancel := context.WithCancel(ctx)
			cancel()
			_, err := svc.Milestones(cancelled, analytics.Filter{})
			So(errors.Is(err, context.Canceled), ShouldBeTrue)
			So(errors.Is(err, service.ErrInternal), ShouldBeTrue)
		})
	})
}

func TestService_CacheAndReload(t *testing.T) {
	Convey("Given a started service with caching", t, func() {
		ctx := context.Background()
		store := seededStore(t)
		svc := service.New(service.WithStore(store), service.WithCacheTTL(time.Minute))
		So(svc.Start(ctx), ShouldBeNil)
		defer svc.Stop()

		first, err := svc.Teams(ctx, analytics.Filter{})
		So(err, ShouldBeNil)
		_, err = svc.Teams(ctx, analytics.Filter{})
		So(err, ShouldBeNil)

		Convey("Then the repeated call is served from one cache entry", func() {
			So(first, ShouldHaveLength, 2)
			So(svc.GetStats()["cacheEntries"], ShouldEqual, int64(1))
		})

		Convey("When the store changes and the service reloads", func() {
			err := store.ReplaceAll(ctx,
				[]model.Match{match(1, kkr, mi, kkr), match(2, csk, mi, csk)},
				nil)
			So(err, ShouldBeNil)
			So(svc.Reload(ctx), ShouldBeNil)

			teams, err := svc.Teams(ctx, analytics.Filter{})

			Convey("Then fresh results are computed", func() {
				So(err, ShouldBeNil)
				So(teams, ShouldHaveLength, 3)
				stats := svc.GetStats()
				So(stats["loads"], ShouldEqual, int64(2))
				So(stats["matches"], ShouldEqual, 2)
			})
		})
	})
}
