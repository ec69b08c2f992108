package config

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/okian/iplstats/internal/adapters/repository"
)

// EnvPrefix prefixes every environment key.
const EnvPrefix = "IPLSTATS_"

// FileEnv names the variable pointing at an optional YAML file.
const FileEnv = EnvPrefix + "CONFIG"

const maxFixtureSeasons = 12

var metricName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if IPLSTATS_CONFIG is set
//  3. env (prefix IPLSTATS_)
func Load(_ context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv(FileEnv); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrLoadConfig, path, err)
		}
	}

	// IPLSTATS_CACHE_TTL_MS -> cache_ttl_ms. Underscores are kept to match
	// the flat koanf tags.
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: env: %w", ErrLoadConfig, err)
	}
	// The file variable is not a config key.
	k.Delete("config")

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks ranges and combinations of values.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !logLevels[c.LogLevel] {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	backend, err := repository.ParseBackend(c.StoreBackend)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	c.StoreBackend = string(backend)
	if backend != repository.MemoryBackend && c.StoreDSN == "" {
		return fmt.Errorf("%w: store_dsn is required for %s", ErrInvalidConfig, backend)
	}
	if c.CacheTTLMS < 0 {
		return fmt.Errorf("%w: cache_ttl_ms must not be negative", ErrInvalidConfig)
	}
	if c.CacheSize <= 0 {
		return fmt.Errorf("%w: cache_size must be positive", ErrInvalidConfig)
	}
	if c.MaxLimit <= 0 {
		return fmt.Errorf("%w: max_limit must be positive", ErrInvalidConfig)
	}
	if (c.DataMatches == "") != (c.DataDeliveries == "") {
		return fmt.Errorf("%w: data_matches and data_deliveries go together", ErrInvalidConfig)
	}
	if c.FixtureSeasons < 0 || c.FixtureSeasons > maxFixtureSeasons {
		return fmt.Errorf("%w: fixture_seasons must be 0-%d", ErrInvalidConfig, maxFixtureSeasons)
	}
	if c.ShutdownTimeoutMS < 0 {
		return fmt.Errorf("%w: shutdown_timeout_ms must not be negative", ErrInvalidConfig)
	}
	if !metricName.MatchString(c.MetricsNamespace) {
		return fmt.Errorf("%w: metrics_namespace %q", ErrInvalidConfig, c.MetricsNamespace)
	}
	if c.MetricsRefreshMS <= 0 {
		return fmt.Errorf("%w: metrics_refresh_ms must be positive", ErrInvalidConfig)
	}
	return nil
}

// Backend is the validated store backend.
func (c *Config) Backend() repository.Backend {
	b, err := repository.ParseBackend(c.StoreBackend)
	if err != nil {
		return repository.MemoryBackend
	}
	return b
}
