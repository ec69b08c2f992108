// Package cache implements the short-lived read-through cache that sits in
// front of the report pipelines.
package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/iplstats/pkg/metrics"
)

// Cache stores successful report results for a short time.
type Cache interface {
	// Get returns the cached value for key if it is present and fresh.
	// report labels the hit or miss in metrics.
	Get(ctx context.Context, report, key string) (any, bool)

	// Set stores v under key, evicting the oldest entry when full.
	Set(ctx context.Context, key string, v any)

	// Purge drops every entry. Called after the dataset is reloaded.
	Purge(ctx context.Context)

	Size() int64
}

// node is one entry of the insertion-ordered list.
type node struct {
	key        string
	value      any
	expires    time.Time
	prev, next *node
}

func (n *node) reset() {
	*n = node{}
}

// ttlCache evicts by age: the tail is always the oldest insertion.
// maxSize <= 0 disables the bound; ttl <= 0 disables caching altogether.
type ttlCache struct {
	mu       sync.Mutex
	entries  map[string]*node
	head     *node
	tail     *node
	maxSize  int
	ttl      time.Duration
	now      func() time.Time
	size     atomic.Int64
	nodePool sync.Pool
}

// New creates a report cache.
func New(opts ...Option) Cache {
	c := &ttlCache{
		maxSize: 1024,
		ttl:     30 * time.Second,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.entries = make(map[string]*node)
	c.nodePool = sync.Pool{
		New: func() interface{} {
			return &node{}
		},
	}
	return c
}

func (c *ttlCache) Get(_ context.Context, report, key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, ok := c.entries[key]
	if ok && c.now().Before(n.expires) {
		metrics.RecordCacheHit(report)
		return n.value, true
	}
	if ok {
		c.remove(n)
	}
	metrics.RecordCacheMiss(report)
	return nil, false
}

func (c *ttlCache) Set(_ context.Context, key string, v any) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.remove(old)
	}
	if c.maxSize > 0 {
		for len(c.entries) >= c.maxSize {
			c.remove(c.tail)
			metrics.RecordCacheEviction()
		}
	}

	n := c.nodePool.Get().(*node)
	n.key, n.value, n.expires = key, v, c.now().Add(c.ttl)
	n.next = c.head
	if c.head != nil {
		c.head.prev = n
	}
	c.head = n
	if c.tail == nil {
		c.tail = n
	}
	c.entries[key] = n
	c.size.Add(1)
	metrics.UpdateCacheEntries(len(c.entries))
}

func (c *ttlCache) Purge(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.tail != nil {
		c.remove(c.tail)
	}
	metrics.UpdateCacheEntries(0)
}

// remove unlinks n. Must be called with c.mu held.
func (c *ttlCache) remove(n *node) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		c.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		c.tail = n.prev
	}
	delete(c.entries, n.key)
	n.reset()
	c.nodePool.Put(n)
	c.size.Add(-1)
}

func (c *ttlCache) Size() int64 {
	return c.size.Load()
}
