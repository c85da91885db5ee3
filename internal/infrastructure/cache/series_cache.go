package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/atlasiq/atlasiq-gateway/internal/domain/entity"
)

// DefaultExpiration applies when NewSeriesCache gets a non-positive ttl
const DefaultExpiration = 5 * time.Minute

// CacheEntry is a cached series with the time it was stored
type CacheEntry struct {
	Series    *entity.Series
	Timestamp time.Time
}

// SeriesCache provides a thread-safe in-memory cache for indicator series
type SeriesCache struct {
	cache      map[string]CacheEntry
	expiration time.Duration
	now        func() time.Time
	mutex      sync.RWMutex
}

// NewSeriesCache creates a series cache with the given ttl
func NewSeriesCache(ttl time.Duration) *SeriesCache {
	if ttl <= 0 {
		ttl = DefaultExpiration
	}
	return &SeriesCache{
		cache:      make(map[string]CacheEntry),
		expiration: ttl,
		now:        time.Now,
	}
}

// Key identifies a series by indicator, countries and year range
func Key(indicator entity.MacroIndicator, q entity.MacroQuery) string {
	return fmt.Sprintf("%s:%s:%d-%d", indicator, strings.Join(q.Countries, ","), q.StartYear, q.EndYear)
}

// Get returns the cached series, or nil when missing or expired
func (c *SeriesCache) Get(indicator entity.MacroIndicator, q entity.MacroQuery) *entity.Series {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	entry, exists := c.cache[Key(indicator, q)]
	if !exists || c.now().Sub(entry.Timestamp) > c.expiration {
		return nil
	}
	return entry.Series
}

// Put stores a series under its own indicator and query
func (c *SeriesCache) Put(s *entity.Series) {
	if s == nil {
		return
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache[Key(s.Indicator, s.Query)] = CacheEntry{
		Series:    s,
		Timestamp: c.now(),
	}
}

// Clear drops every entry. Wired to session resets so cached data never
// outlives the credentials it was fetched with.
func (c *SeriesCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.cache = make(map[string]CacheEntry)
}

// Size returns the number of items in the cache
func (c *SeriesCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.cache)
}

// Run drops expired entries every interval until ctx is done. A
// non-positive interval uses the cache ttl.
func (c *SeriesCache) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = c.expiration
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.CleanExpired()
		}
	}
}

// CleanExpired removes expired entries and returns how many were dropped
func (c *SeriesCache) CleanExpired() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	count := 0
	now := c.now()
	for key, entry := range c.cache {
		if now.Sub(entry.Timestamp) > c.expiration {
			delete(c.cache, key)
			count++
		}
	}
	return count
}
