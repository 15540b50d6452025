// Package cache provides short-TTL memoization for computed explanation
// text. Entries are not authoritative state; dropping them only costs a
// recompute.
package cache

import (
	"fmt"
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/yourusername/gridiron-edge/internal/metrics"
)

// DefaultTTL bounds how long a cached explanation stays valid.
const DefaultTTL = 15 * time.Minute

// Key identifies one explanation.
type Key struct {
	Subject      string
	Week         int
	Season       int
	Strategy     string
	ModelVersion string
}

// String renders the cache key.
func (k Key) String() string {
	return fmt.Sprintf("%s:%d:%d:%s:%s", k.Subject, k.Week, k.Season, k.Strategy, k.ModelVersion)
}

// ExplanationCache memoizes reasoning text with a bounded lifetime. The
// clock is injected so expiry is testable without sleeping.
type ExplanationCache struct {
	cache     *gocache.Cache
	ttl       time.Duration
	now       func() time.Time
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

type entry struct {
	text      string
	expiresAt time.Time
}

// New creates an explanation cache. A non-positive ttl uses DefaultTTL; a
// nil clock uses time.Now.
func New(ttl time.Duration, now func() time.Time) *ExplanationCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	return &ExplanationCache{
		// go-cache's own janitor handles eviction of long-dead entries; the
		// injected clock governs logical expiry.
		cache: gocache.New(ttl, ttl*2),
		ttl:   ttl,
		now:   now,
	}
}

// Get returns a cached explanation if present and unexpired.
func (c *ExplanationCache) Get(key Key) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if raw, found := c.cache.Get(key.String()); found {
		if e, ok := raw.(entry); ok && c.now().Before(e.expiresAt) {
			c.hitCount++
			c.updateMetrics()
			return e.text, true
		}
	}

	c.missCount++
	c.updateMetrics()
	return "", false
}

// Set stores an explanation.
func (c *ExplanationCache) Set(key Key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Set(key.String(), entry{text: text, expiresAt: c.now().Add(c.ttl)}, gocache.NoExpiration)
}

// Clear flushes the cache and resets counters.
func (c *ExplanationCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cache.Flush()
	c.hitCount = 0
	c.missCount = 0
}

// Stats returns hit/miss counts and the hit ratio.
func (c *ExplanationCache) Stats() (hits, misses uint64, ratio float64) {
	hits = c.hitCount
	misses = c.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

func (c *ExplanationCache) updateMetrics() {
	_, _, ratio := c.Stats()
	metrics.ExplanationCacheHitRatio.Set(ratio)
}

// ItemCount returns the number of cached entries.
func (c *ExplanationCache) ItemCount() int {
	return c.cache.ItemCount()
}
