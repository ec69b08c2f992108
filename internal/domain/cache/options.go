package cache

import "time"

// Option applies a configuration option to the cache.
type Option func(*ttlCache)

// WithMaxSize bounds the number of entries. maxSize <= 0 is unbounded.
func WithMaxSize(maxSize int) Option {
	return func(c *ttlCache) {
		c.maxSize = maxSize
	}
}

// WithTTL sets how long an entry stays fresh. ttl <= 0 turns Set into a
// no-op, so every Get misses.
func WithTTL(ttl time.Duration) Option {
	return func(c *ttlCache) {
		c.ttl = ttl
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *ttlCache) {
		if now != nil {
			c.now = now
		}
	}
}
