package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/okian/iplstats/internal/adapters/http/api"
	"github.com/okian/iplstats/internal/adapters/repository"
	"github.com/okian/iplstats/internal/analytics"
	service "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/internal/domain/model"
	"github.com/okian/iplstats/internal/domain/types"
	"github.com/okian/iplstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

const (
	kkr = "Kolkata Knight Riders"
	mi  = "Mumbai Indians"
)

func startedService(t *testing.T) *service.Service {
	store := repository.NewMemoryStore()
	err := store.ReplaceAll(context.Background(),
		[]model.Match{{
			MatchID: 1, Season: 2017, Date: time.Date(2017, time.April, 1, 0, 0, 0, 0, time.UTC),
			Venue: "Eden Gardens", Team1: kkr, Team2: mi, Winner: kkr, Result: "normal", Umpire1: "Aleem Dar",
		}},
		[]model.Delivery{
			{MatchID: 1, Inning: 1, Over: 3, Ball: 1, BattingTeam: kkr, BowlingTeam: mi, Batsman: "G Gambhir", NonStriker: "CA Lynn", Bowler: "JJ Bumrah", BatsmanRuns: 4, TotalRuns: 4},
			{MatchID: 1, Inning: 2, Over: 17, Ball: 1, BattingTeam: mi, BowlingTeam: kkr, Batsman: "RG Sharma", NonStriker: "KA Pollard", Bowler: "SP Narine", PlayerDismissed: "RG Sharma", DismissalKind: "bowled"},
		})
	if err != nil {
		t.Fatal(err)
	}
	svc := service.New(service.WithStore(store))
	if err := svc.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	return svc
}

// brokenTeams fails every Teams call with an internal error.
type brokenTeams struct {
	*service.Service
}

func (brokenTeams) Teams(context.Context, analytics.Filter) ([]types.Team, error) {
	return nil, service.Wrap("teams", errors.New("disk on fire"))
}

func newMux(deps api.Dependencies, stats api.StatsProvider) *http.ServeMux {
	mux := http.NewServeMux()
	api.NewServer(deps, stats).Register(context.Background(), mux)
	return mux
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(w *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	So(json.Unmarshal(w.Body.Bytes(), &body), ShouldBeNil)
	return body
}

func TestServer_Routes(t *testing.T) {
	Convey("Given an API server over a started service", t, func() {
		svc := startedService(t)
		defer svc.Stop()
		mux := newMux(svc, svc)

		Convey("Every listed report answers 200", func() {
			for _, target := range []string{
				"/api/teams",
				"/api/teams/Kolkata%20Knight%20Riders/seasons",
				"/api/teams/Kolkata%20Knight%20Riders/seasons/2017/matches",
				"/api/headtohead?team1=Kolkata%20Knight%20Riders&team2=Mumbai%20Indians",
				"/api/players",
				"/api/players/top-batsmen?limit=5",
				"/api/analytics/players/G%20Gambhir",
				"/api/analytics/bowlers/SP%20Narine",
				"/api/matches?season=2017",
				"/api/matches/stats/summary",
				"/api/matches/1",
				"/api/matches/1/deliveries?inning=1&page=1&limit=10",
				"/api/matches/1/timeline",
				"/api/analytics/matches/1/overs",
				"/api/analytics/venues",
				"/api/analytics/venues/Eden%20Gardens",
				"/api/analytics/venues/Eden%20Gardens/metrics",
				"/api/analytics/umpires",
				"/api/analytics/umpires/Aleem%20Dar",
				"/api/analytics/partnerships",
				"/api/analytics/seasons/2017",
				"/api/analytics/milestones",
				"/api/analytics/phase?team=Kolkata%20Knight%20Riders",
				"/api/analytics/impact",
				"/api/analytics/rival?batsman=G%20Gambhir&bowler=JJ%20Bumrah",
			} {
				w := get(mux, target)
				So(w.Code, ShouldEqual, http.StatusOK)
				So(w.Header().Get("Content-Type"), ShouldEqual, "application/json; charset=utf-8")
			}
		})

		Convey("The phase report decodes into its typed shape", func() {
			w := get(mux, "/api/analytics/phase?team=Kolkata%20Knight%20Riders&season=2017")
			So(w.Code, ShouldEqual, http.StatusOK)

			var r types.PhaseReport
			So(json.Unmarshal(w.Body.Bytes(), &r), ShouldBeNil)
			So(r.Mode, ShouldEqual, types.PhaseModeTeam)
			So(r.Season, ShouldEqual, "2017")
			So(r.Batting, ShouldHaveLength, 3)
			So(r.Batting[0].RunsScored, ShouldEqual, 4)
		})

		Convey("The deliveries page carries pagination", func() {
			w := get(mux, "/api/matches/1/deliveries?limit=1&page=2")
			So(w.Code, ShouldEqual, http.StatusOK)

			var page types.DeliveryPage
			So(json.Unmarshal(w.Body.Bytes(), &page), ShouldBeNil)
			So(page.Data, ShouldHaveLength, 1)
			So(page.Pagination.CurrentPage, ShouldEqual, 2)
			So(page.Pagination.HasPrev, ShouldBeTrue)
			So(page.Pagination.HasNext, ShouldBeFalse)
		})

		Convey("A non-numeric match id is a bad request", func() {
			w := get(mux, "/api/matches/abc")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
			body := decodeError(w)
			So(body["code"], ShouldEqual, service.CodeBadRequest)
			So(body["message"], ShouldContainSubstring, "id must be an integer")
		})

		Convey("A season outside the covered range is a bad request", func() {
			w := get(mux, "/api/analytics/phase?season=2031")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("Head to head without both teams is a bad request", func() {
			w := get(mux, "/api/headtohead?team1=Mumbai%20Indians")
			So(w.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("An unknown match is not found", func() {
			w := get(mux, "/api/matches/999")
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(decodeError(w)["code"], ShouldEqual, service.CodeNotFound)
		})

		Convey("Rivals who never met are not found", func() {
			w := get(mux, "/api/analytics/rival?batsman=G%20Gambhir&bowler=SP%20Narine")
			So(w.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("A non-numeric rival season is ignored", func() {
			w := get(mux, "/api/analytics/rival?batsman=G%20Gambhir&bowler=JJ%20Bumrah&season=all")
			So(w.Code, ShouldEqual, http.StatusOK)
		})

		Convey("Only GET is routed", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/teams", http.NoBody)
			w := httptest.NewRecorder()
			mux.ServeHTTP(w, req)
			So(w.Code, ShouldEqual, http.StatusMethodNotAllowed)
		})

		Convey("/stats reports the loaded dataset", func() {
			w := get(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)

			var stats map[string]any
			So(json.Unmarshal(w.Body.Bytes(), &stats), ShouldBeNil)
			So(stats["started"], ShouldEqual, true)
			So(stats["matches"], ShouldEqual, float64(1))
		})

		Convey("/healthz serves metrics once started", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring, "# HELP")
		})
	})
}

func TestServer_InternalErrors(t *testing.T) {
	Convey("Given a dependency that fails internally", t, func() {
		svc := startedService(t)
		defer svc.Stop()
		mux := newMux(brokenTeams{svc}, nil)

		w := get(mux, "/api/teams")

		Convey("Then the status is 500 and the cause is withheld", func() {
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
			body := decodeError(w)
			So(body["code"], ShouldEqual, service.CodeInternal)
			So(body["message"], ShouldEqual, http.StatusText(http.StatusInternalServerError))
			So(w.Body.String(), ShouldNotContainSubstring, "disk on fire")
		})

		Convey("And a nil stats provider yields an empty object", func() {
			w := get(mux, "/stats")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, "{}")
		})
	})
}

func TestServer_NotReady(t *testing.T) {
	Convey("Given a service that was never started", t, func() {
		svc := service.New()
		mux := newMux(svc, svc)

		Convey("Then /healthz is unavailable", func() {
			w := get(mux, "/healthz")
			So(w.Code, ShouldEqual, http.StatusServiceUnavailable)
			So(decodeError(w)["code"], ShouldEqual, "not_ready")
		})

		Convey("And reports fail as internal errors", func() {
			w := get(mux, "/api/teams")
			So(w.Code, ShouldEqual, http.StatusInternalServerError)
		})
	})
}

func TestRequestID(t *testing.T) {
	Convey("Given a handler behind the request id middleware", t, func() {
		var seen string
		h := api.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = logger.RequestID(r.Context())
			w.WriteHeader(http.StatusNoContent)
		}))

		Convey("When the caller supplies an id", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/teams", http.NoBody)
			req.Header.Set(api.RequestIDHeader, "abc-123")
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is echoed and placed in the context", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldEqual, "abc-123")
				So(seen, ShouldEqual, "abc-123")
			})
		})

		Convey("When no id is supplied", func() {
			w := get(h, "/api/teams")

			Convey("Then one is generated", func() {
				id := w.Header().Get(api.RequestIDHeader)
				So(id, ShouldHaveLength, 36)
				So(seen, ShouldEqual, id)
			})
		})

		Convey("When the supplied id is oversized", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/teams", http.NoBody)
			req.Header.Set(api.RequestIDHeader, strings.Repeat("x", 200))
			w := httptest.NewRecorder()
			h.ServeHTTP(w, req)

			Convey("Then it is replaced", func() {
				So(w.Header().Get(api.RequestIDHeader), ShouldHaveLength, 36)
			})
		})
	})
}

func TestMetricsMiddleware(t *testing.T) {
	Convey("Given a wrapped handler that writes a status", t, func() {
		h := api.MetricsMiddleware(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
			_, _ = w.Write([]byte("short and stout"))
		}, "teapot")

		w := httptest.NewRecorder()
		h(w, httptest.NewRequest(http.MethodGet, "/teapot", http.NoBody))

		Convey("Then the response passes through unchanged", func() {
			So(w.Code, ShouldEqual, http.StatusTeapot)
			So(w.Body.String(), ShouldEqual, "short and stout")
		})
	})
}
