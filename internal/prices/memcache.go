package prices

import (
	"fmt"
	"os"
	"sync"
	"time"

	"tariff-compare/internal/model"
)

// seriesEntry is a memoized acquisition result.
type seriesEntry struct {
	Points []model.PricePoint
	Source string
}

type cacheSlot struct {
	entry     seriesEntry
	expiresAt time.Time
}

// seriesCache memoizes acquired monthly series in memory so a long-running
// API process does not walk the source chain on every request. It is opt-in
// via ENABLE_PRICE_MEMO=true; the file cache alone already covers the CLI
// case of one acquisition per run.
type seriesCache struct {
	mu    sync.RWMutex
	store map[string]cacheSlot
	ttl   time.Duration
}

var (
	globalSeriesCache *seriesCache
	seriesCacheOnce   sync.Once
)

func getSeriesCache() *seriesCache {
	if os.Getenv("ENABLE_PRICE_MEMO") != "true" {
		return nil
	}
	seriesCacheOnce.Do(func() {
		ttl := time.Hour
		if ttlStr := os.Getenv("PRICE_MEMO_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}
		globalSeriesCache = &seriesCache{
			store: make(map[string]cacheSlot),
			ttl:   ttl,
		}
		go globalSeriesCache.cleanup()
	})
	return globalSeriesCache
}

func seriesKey(year int, month time.Month) string {
	return fmt.Sprintf("%d-%02d", year, month)
}

func (c *seriesCache) Get(year int, month time.Month) (seriesEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	slot, ok := c.store[seriesKey(year, month)]
	if !ok || time.Now().After(slot.expiresAt) {
		return seriesEntry{}, false
	}
	return slot.entry, true
}

func (c *seriesCache) Set(year int, month time.Month, entry seriesEntry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[seriesKey(year, month)] = cacheSlot{
		entry:     entry,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *seriesCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, slot := range c.store {
			if now.After(slot.expiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}
