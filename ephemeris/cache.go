package ephemeris

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"go.opentelemetry.io/otel/attribute"

	"github.com/vedic-go/panchangam/observability"
)

// Cache memoizes computed angles keyed by (JD, operation) so repeated
// lookups of the same instant (e.g. a day's sunrise then its tithi) don't
// re-run the lunar perturbation series.
type Cache interface {
	Get(ctx context.Context, key string) (float64, bool)
	Set(ctx context.Context, key string, value float64, ttl time.Duration)
	Delete(ctx context.Context, key string) bool
	Clear(ctx context.Context) error
	GetStats(ctx context.Context) *CacheStats
	Close() error
}

// CacheStats reports cumulative hit/miss counters for a Cache. Evictions are
// not counted by LRUCache, so that field stays zero.
type CacheStats struct {
	Hits      int64     `json:"hits"`
	Misses    int64     `json:"misses"`
	Evictions int64     `json:"evictions"`
	Entries   int64     `json:"entries"`
	HitRate   float64   `json:"hit_rate"`
	LastAccess time.Time `json:"last_access"`
}

type cacheEntry struct {
	value     float64
	expiresAt time.Time
}

// LRUCache is a process-lifetime cache of computed angles bounded by an LRU
// eviction policy and a per-entry TTL, built on hashicorp/golang-lru.
type LRUCache struct {
	lru      *lru.Cache
	mu       sync.Mutex
	hits     int64
	misses   int64
	observer observability.ObserverInterface
}

// NewLRUCache builds a cache holding at most maxSize entries.
func NewLRUCache(maxSize int) *LRUCache {
	c, err := lru.New(maxSize)
	if err != nil {
		// maxSize <= 0 is a programmer error; fall back to a sane default
		// rather than returning a nil cache that panics on first use.
		c, _ = lru.New(256)
	}
	return &LRUCache{lru: c, observer: observability.Observer()}
}

func (c *LRUCache) Get(ctx context.Context, key string) (float64, bool) {
	_, span := c.observer.CreateSpan(ctx, "ephemeris.Cache.Get")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()

	raw, ok := c.lru.Get(key)
	if !ok {
		atomic.AddInt64(&c.misses, 1)
		span.SetAttributes(attribute.Bool("cache_hit", false))
		return 0, false
	}
	entry := raw.(cacheEntry)
	if time.Now().After(entry.expiresAt) {
		c.lru.Remove(key)
		atomic.AddInt64(&c.misses, 1)
		span.SetAttributes(attribute.Bool("cache_hit", false), attribute.Bool("expired", true))
		return 0, false
	}
	atomic.AddInt64(&c.hits, 1)
	span.SetAttributes(attribute.Bool("cache_hit", true))
	return entry.value, true
}

func (c *LRUCache) Set(ctx context.Context, key string, value float64, ttl time.Duration) {
	_, span := c.observer.CreateSpan(ctx, "ephemeris.Cache.Set")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, cacheEntry{value: value, expiresAt: time.Now().Add(ttl)})
}

func (c *LRUCache) Delete(ctx context.Context, key string) bool {
	_, span := c.observer.CreateSpan(ctx, "ephemeris.Cache.Delete")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Remove(key)
}

func (c *LRUCache) Clear(ctx context.Context) error {
	_, span := c.observer.CreateSpan(ctx, "ephemeris.Cache.Clear")
	defer span.End()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Purge()
	return nil
}

func (c *LRUCache) GetStats(ctx context.Context) *CacheStats {
	hits := atomic.LoadInt64(&c.hits)
	misses := atomic.LoadInt64(&c.misses)
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total)
	}
	return &CacheStats{
		Hits:       hits,
		Misses:     misses,
		Entries:    int64(c.lru.Len()),
		HitRate:    hitRate,
		LastAccess: time.Now(),
	}
}

func (c *LRUCache) Close() error {
	return nil
}

// NoOpCache disables caching entirely, useful for benchmarking the raw
// engine or for tests that must observe every recomputation.
type NoOpCache struct{}

func NewNoOpCache() *NoOpCache { return &NoOpCache{} }

func (c *NoOpCache) Get(ctx context.Context, key string) (float64, bool) { return 0, false }
func (c *NoOpCache) Set(ctx context.Context, key string, value float64, ttl time.Duration) {}
func (c *NoOpCache) Delete(ctx context.Context, key string) bool           { return false }
func (c *NoOpCache) Clear(ctx context.Context) error                       { return nil }
func (c *NoOpCache) GetStats(ctx context.Context) *CacheStats              { return &CacheStats{} }
func (c *NoOpCache) Close() error                                          { return nil }
