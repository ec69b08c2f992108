// Package config defines process configuration and how it is loaded.
package config

import (
	"time"

	"github.com/okian/iplstats/pkg/metrics"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// StoreBackend is one of memory, sqlite, postgres, mysql.
	StoreBackend string `koanf:"store_backend"`

	// StoreDSN is passed to the SQL driver. Ignored by memory.
	StoreDSN string `koanf:"store_dsn"`

	// CacheTTLMS is how long a computed report stays cached. 0 disables caching.
	CacheTTLMS int `koanf:"cache_ttl_ms"`

	// CacheSize bounds the number of cached reports.
	CacheSize int `koanf:"cache_size"`

	// MaxLimit caps every ?limit parameter.
	MaxLimit int `koanf:"max_limit"`

	// DataMatches and DataDeliveries are CSV files imported into an empty
	// store at startup.
	DataMatches    string `koanf:"data_matches"`
	DataDeliveries string `koanf:"data_deliveries"`

	// DataParquetDir holds a Parquet snapshot imported into an empty store
	// at startup when no CSV files are configured.
	DataParquetDir string `koanf:"data_parquet_dir"`

	// FixtureSeasons generates that many synthetic seasons into an empty
	// store when no data files are configured. 0 leaves the store empty.
	FixtureSeasons int `koanf:"fixture_seasons"`

	// FixtureSeed seeds the synthetic generator.
	FixtureSeed uint64 `koanf:"fixture_seed"`

	// ShutdownTimeoutMS bounds graceful HTTP shutdown.
	ShutdownTimeoutMS int `koanf:"shutdown_timeout_ms"`

	// Metrics settings for the collectors exposed on /healthz.
	MetricsEnabled   bool   `koanf:"metrics_enabled"`
	MetricsNamespace string `koanf:"metrics_namespace"`
	// MetricsInstance, when set, is added as an "instance" label.
	MetricsInstance  string `koanf:"metrics_instance"`
	MetricsRefreshMS int    `koanf:"metrics_refresh_ms"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":8080",
		StoreBackend:      "memory",
		CacheTTLMS:        30_000,
		CacheSize:         1024,
		MaxLimit:          5000,
		FixtureSeed:       2008,
		ShutdownTimeoutMS: 5000,
		MetricsEnabled:    true,
		MetricsNamespace:  "iplstats",
		MetricsRefreshMS:  10_000,
	}
}

// CacheTTL is CacheTTLMS as a duration.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMS) * time.Millisecond
}

// ShutdownTimeout is ShutdownTimeoutMS as a duration.
func (c *Config) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutMS) * time.Millisecond
}

// MetricsOptions turns the metrics settings into collector options.
func (c *Config) MetricsOptions() []metrics.Option {
	opts := []metrics.Option{
		metrics.WithMetricsEnabled(c.MetricsEnabled),
		metrics.WithNamespace(c.MetricsNamespace),
		metrics.WithRefreshInterval(time.Duration(c.MetricsRefreshMS) * time.Millisecond),
	}
	if c.MetricsInstance != "" {
		opts = append(opts, metrics.WithConstLabels(map[string]string{"instance": c.MetricsInstance}))
	}
	return opts
}

// HasCSV reports whether both CSV sources are configured.
func (c *Config) HasCSV() bool {
	return c.DataMatches != "" && c.DataDeliveries != ""
}
