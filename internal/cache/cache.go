// Package cache implements the process-local TTL cache for upstream search
// results. Entries are keyed by a string composed from marketplace, query
// text, and extra parameters; expired entries are purged lazily on the next
// lookup, never proactively.
package cache

import (
	"sync"
	"time"

	"github.com/grailfeed/grailfeed/internal/metrics"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a mutex-guarded in-memory TTL cache. Growth is unbounded under
// sustained unique-key traffic; callers keep the key space small.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	nowFunc func() time.Time
}

// Option configures the Cache.
type Option func(*Cache)

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) Option {
	return func(c *Cache) {
		c.nowFunc = f
	}
}

// New creates an empty cache.
func New(opts ...Option) *Cache {
	c := &Cache{
		entries: make(map[string]entry),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the stored value for key if it has not expired. An expired
// entry is removed and reported as absent.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		metrics.CacheMissesTotal.Inc()
		return nil, false
	}

	if !c.nowFunc().Before(e.expiresAt) {
		c.mu.Lock()
		// Re-check under the write lock; a concurrent Set may have
		// replaced the entry with a fresh one.
		if cur, ok := c.entries[key]; ok && !c.nowFunc().Before(cur.expiresAt) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		metrics.CacheMissesTotal.Inc()
		return nil, false
	}

	metrics.CacheHitsTotal.Inc()
	return e.value, true
}

// Set stores value under key for ttl. A later Set for the same key wins.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{
		value:     value,
		expiresAt: c.nowFunc().Add(ttl),
	}
}

// Len returns the number of entries currently held, expired or not.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
