package loadtest

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/okian/iplstats/internal/adapters/http/api"
	service "github.com/okian/iplstats/internal/app"
	"github.com/okian/iplstats/internal/fixtures"
	"github.com/okian/iplstats/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	if err := logger.Init(); err != nil {
		panic(err)
	}
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	ctx := context.Background()
	gen := fixtures.New(fixtures.WithSeed(5), fixtures.WithSeasons(2015, 1))
	svc := service.New(service.WithBootstrap(gen.Generate), service.WithCacheTTL(time.Minute))
	if err := svc.Start(ctx); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(svc.Stop)

	mux := http.NewServeMux()
	api.NewServer(svc, svc).Register(ctx, mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRun(t *testing.T) {
	Convey("Given a server over one generated season", t, func() {
		srv := newServer(t)
		cfg := Config{BaseURL: srv.URL, Requests: 60, Workers: 4, Timeout: 5 * time.Second}

		Convey("When the load test runs", func() {
			stats, err := Run(context.Background(), cfg)

			Convey("Then every request is answered without server errors", func() {
				So(err, ShouldBeNil)
				So(stats.Targets, ShouldBeGreaterThan, 10)
				So(stats.Sent, ShouldEqual, 60)
				So(stats.Successful+stats.ClientErrors, ShouldEqual, 60)
				So(stats.Successful, ShouldBeGreaterThan, 0)
				So(stats.ServerErrors, ShouldEqual, 0)
				So(stats.P50, ShouldBeLessThanOrEqualTo, stats.P99)
				So(stats.Max, ShouldBeGreaterThan, 0)
				So(stats.RequestsPerSecond(), ShouldBeGreaterThan, 0)
			})
		})

		Convey("When discovering targets for an explicit season", func() {
			paths, err := discover(context.Background(), newClient(srv.URL, time.Second), 2015)

			Convey("Then season-scoped reports are included", func() {
				So(err, ShouldBeNil)
				So(paths, ShouldContain, "/api/analytics/seasons/2015")
				So(paths, ShouldContain, "/api/analytics/phase?season=2015")
			})
		})
	})
}

func TestRun_Unhealthy(t *testing.T) {
	Convey("Given a server that is not ready", t, func() {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := Run(context.Background(), Config{BaseURL: srv.URL, Requests: 1, Workers: 1, Timeout: time.Second})

		Convey("Then the run stops at the health check", func() {
			So(errors.Is(err, ErrUnhealthy), ShouldBeTrue)
		})
	})
}

func TestSummarise(t *testing.T) {
	Convey("Given a hundred latencies", t, func() {
		lat := make([]time.Duration, 0, 100)
		for i := 100; i > 0; i-- {
			lat = append(lat, time.Duration(i)*time.Millisecond)
		}
		var stats Stats
		summarise(lat, &stats)

		So(stats.P50, ShouldEqual, 50*time.Millisecond)
		So(stats.P95, ShouldEqual, 95*time.Millisecond)
		So(stats.Max, ShouldEqual, 100*time.Millisecond)
	})

	Convey("Given none", t, func() {
		var stats Stats
		summarise(nil, &stats)
		So(stats.Max, ShouldEqual, time.Duration(0))
	})
}
