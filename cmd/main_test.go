package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/okian/iplstats/internal/cli"
	"github.com/okian/iplstats/internal/config"
	"github.com/okian/iplstats/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/smartystreets/goconvey/convey"
)

func clearEnv(t *testing.T) {
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix) {
			t.Setenv(name, "")
			_ = os.Unsetenv(name)
		}
	}
}

func TestMainApplication(t *testing.T) {
	convey.Convey("Given the main application", t, func() {
		clearEnv(t)
		var stdout, stderr bytes.Buffer

		convey.Convey("When asking for the version", func() {
			code := cli.Execute(context.Background(), []string{"--version"}, &stdout, &stderr)

			convey.Convey("Then it prints the build version", func() {
				convey.So(code, convey.ShouldEqual, 0)
				convey.So(stdout.String(), convey.ShouldContainSubstring, cli.Version)
			})
		})

		convey.Convey("When running a report over generated data", func() {
			t.Setenv("IPLSTATS_FIXTURE_SEASONS", "1")
			t.Setenv("IPLSTATS_LOG_FORMAT", "json")
			code := cli.Execute(context.Background(), []string{"report", "umpires", "--no-color"}, &stdout, &stderr)

			convey.Convey("Then the table goes to stdout and logs to stderr", func() {
				convey.So(code, convey.ShouldEqual, 0)
				convey.So(stdout.String(), convey.ShouldContainSubstring, "Umpires")
				convey.So(stdout.String(), convey.ShouldNotContainSubstring, `"level"`)
			})
		})

		convey.Convey("When the configuration is invalid", func() {
			t.Setenv("IPLSTATS_CACHE_SIZE", "0")
			code := cli.Execute(context.Background(), []string{"report", "teams"}, &stdout, &stderr)

			convey.Convey("Then it exits non-zero with the reason", func() {
				convey.So(code, convey.ShouldEqual, 1)
				convey.So(stderr.String(), convey.ShouldContainSubstring, "cache_size")
			})
		})

		convey.Convey("When the command is unknown", func() {
			code := cli.Execute(context.Background(), []string{"scoreboard"}, &stdout, &stderr)
			convey.So(code, convey.ShouldEqual, 1)
		})
	})
}

func TestMetricsManager(t *testing.T) {
	convey.Convey("Given a custom registry", t, func() {
		registry := prometheus.NewRegistry()
		manager := metrics.NewManager(metrics.WithPrometheusRegistry(registry))

		convey.Convey("Then the manager is created", func() {
			convey.So(manager, convey.ShouldNotBeNil)
		})
	})
}
