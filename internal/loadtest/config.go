// Package loadtest drives a running iplstats server with concurrent report
// requests and verifies that it answers consistently.
package loadtest

import "time"

// Config holds configuration for a load test.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Number of report requests to send
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Season   int           // Season used for season-scoped targets; 0 picks the first one served
	Verbose  bool          // Log every failed request
}

// Stats holds test statistics.
type Stats struct {
	Targets      int
	Sent         int
	Successful   int
	ClientErrors int
	ServerErrors int
	Failed       int // transport failures

	P50 time.Duration
	P95 time.Duration
	P99 time.Duration
	Max time.Duration

	StartTime time.Time
	Duration  time.Duration
}

// RequestsPerSecond is the achieved throughput.
func (s Stats) RequestsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Sent) / s.Duration.Seconds()
}
