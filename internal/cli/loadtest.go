package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/okian/iplstats/internal/loadtest"
)

func newLoadTestCommand(_ *runtimeEnv) *cobra.Command {
	cfg := loadtest.Config{}
	cmd := &cobra.Command{
		Use:   "loadtest",
		Short: "Drive a running server with concurrent report requests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			stats, err := loadtest.Run(cmd.Context(), cfg)
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "targets=%d sent=%d ok=%d 4xx=%d 5xx=%d failed=%d\n",
				stats.Targets, stats.Sent, stats.Successful, stats.ClientErrors, stats.ServerErrors, stats.Failed)
			_, _ = fmt.Fprintf(out, "p50=%s p95=%s p99=%s max=%s rps=%.1f\n",
				stats.P50, stats.P95, stats.P99, stats.Max, stats.RequestsPerSecond())
			return err
		},
	}
	cmd.Flags().StringVar(&cfg.BaseURL, "url", "http://localhost:8080", "Base URL of the server")
	cmd.Flags().IntVar(&cfg.Requests, "requests", 1000, "Number of report requests")
	cmd.Flags().IntVar(&cfg.Workers, "workers", 16, "Concurrent workers")
	cmd.Flags().DurationVar(&cfg.Timeout, "timeout", 10*time.Second, "Per-request timeout")
	cmd.Flags().IntVar(&cfg.Season, "season", 0, "Season for season-scoped reports (default: earliest served)")
	cmd.Flags().BoolVar(&cfg.Verbose, "verbose", false, "Log every failed request")
	return cmd
}
