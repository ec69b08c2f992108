package loadtest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/iplstats/pkg/logger"
)

// consistencyPath is requested twice after the load to compare bodies.
const consistencyPath = "/api/analytics/milestones"

// Run executes the complete load test.
func Run(ctx context.Context, cfg Config) (Stats, error) {
	stats := Stats{StartTime: time.Now()}
	log := logger.Named("loadtest")
	c := newClient(cfg.BaseURL, cfg.Timeout)

	log.Info(ctx, "starting load test",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()))

	// Step 1: Check service health
	if err := checkHealth(ctx, c); err != nil {
		return stats, err
	}

	// Step 2: Discover report targets
	paths, err := discover(ctx, c, cfg.Season)
	if err != nil {
		return stats, err
	}
	if len(paths) == 0 {
		return stats, ErrNoTargets
	}
	stats.Targets = len(paths)

	// Step 3: Send requests concurrently
	latencies := fire(ctx, c, cfg, paths, &stats)
	summarise(latencies, &stats)

	// Step 4: Verify
	if err := verifyConsistent(ctx, c); err != nil {
		return stats, err
	}
	stats.Duration = time.Since(stats.StartTime)

	log.Info(ctx, "final statistics",
		logger.Int("targets", stats.Targets),
		logger.Int("sent", stats.Sent),
		logger.Int("successful", stats.Successful),
		logger.Int("clientErrors", stats.ClientErrors),
		logger.Int("serverErrors", stats.ServerErrors),
		logger.Int("failed", stats.Failed),
		logger.String("p95", stats.P95.String()),
		logger.Float64("requestsPerSecond", stats.RequestsPerSecond()))

	if stats.ServerErrors > 0 || stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d server errors, %d transport failures", ErrServerErrors, stats.ServerErrors, stats.Failed)
	}
	return stats, ctx.Err()
}

// checkHealth verifies the service is running and has loaded its dataset.
func checkHealth(ctx context.Context, c *client) error {
	status, _, err := c.get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// fire sends cfg.Requests requests round-robin over paths with a fixed
// pool of workers and returns the latency of every answered request.
func fire(ctx context.Context, c *client, cfg Config, paths []string, stats *Stats) []time.Duration {
	workers := max(cfg.Workers, 1)
	var (
		sent, ok, client4xx, server5xx, failed int64

		mu        sync.Mutex
		latencies = make([]time.Duration, 0, cfg.Requests)
	)

	jobs := make(chan string, workers*2)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				start := time.Now()
				status, _, err := c.get(ctx, path)
				elapsed := time.Since(start)
				atomic.AddInt64(&sent, 1)
				switch {
				case err != nil:
					atomic.AddInt64(&failed, 1)
					if cfg.Verbose {
						logger.Named("loadtest").Warn(ctx, "request failed", logger.String("path", path), logger.Error(err))
					}
					continue
				case status >= http.StatusInternalServerError:
					atomic.AddInt64(&server5xx, 1)
					if cfg.Verbose {
						logger.Named("loadtest").Warn(ctx, "server error", logger.String("path", path), logger.Int("status", status))
					}
				case status >= http.StatusBadRequest:
					atomic.AddInt64(&client4xx, 1)
				default:
					atomic.AddInt64(&ok, 1)
				}
				mu.Lock()
				latencies = append(latencies, elapsed)
				mu.Unlock()
			}
		}()
	}

	// Send paths to workers
	go func() {
		defer close(jobs)
		for i := range cfg.Requests {
			select {
			case <-ctx.Done():
				return
			case jobs <- paths[i%len(paths)]:
			}
		}
	}()
	wg.Wait()

	stats.Sent = int(sent)
	stats.Successful = int(ok)
	stats.ClientErrors = int(client4xx)
	stats.ServerErrors = int(server5xx)
	stats.Failed = int(failed)
	return latencies
}

func summarise(latencies []time.Duration, stats *Stats) {
	if len(latencies) == 0 {
		return
	}
	sort.Slice(latencies, func(i, j int) bool { return latencies[i] < latencies[j] })
	at := func(q float64) time.Duration {
		return latencies[int(q*float64(len(latencies)-1))]
	}
	stats.P50 = at(0.50)
	stats.P95 = at(0.95)
	stats.P99 = at(0.99)
	stats.Max = latencies[len(latencies)-1]
}

// verifyConsistent checks two sequential reads of one report agree.
func verifyConsistent(ctx context.Context, c *client) error {
	_, first, err := c.get(ctx, consistencyPath)
	if err != nil {
		return err
	}
	_, second, err := c.get(ctx, consistencyPath)
	if err != nil {
		return err
	}
	if !bytes.Equal(first, second) {
		return fmt.Errorf("%w: %s", ErrInconsistent, consistencyPath)
	}
	return nil
}
