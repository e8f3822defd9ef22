// Package cache holds per-city weather readings for a bounded time.
package cache

import (
	"sync"
	"time"

	"github.com/comfortdash/weather-comfort/internal/weather"
)

type entry struct {
	value      weather.Reading
	insertedAt time.Time
}

// Cache is a concurrency-safe in-memory TTL cache keyed by city id.
// Cardinality is bounded by the fixed city list, so there is no eviction
// beyond freshness. The clock is injected so tests can control expiry.
type Cache struct {
	mu      sync.RWMutex
	entries map[int]entry
	ttl     time.Duration
	now     func() time.Time
}

// New creates a Cache with the given TTL. A nil clock means time.Now.
func New(ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{
		entries: make(map[int]entry),
		ttl:     ttl,
		now:     now,
	}
}

// Get returns the cached reading for a city if it is still fresh.
// Expired entries are ignored; the next Set overwrites them.
func (c *Cache) Get(cityID int) (weather.Reading, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[cityID]
	if !ok || c.now().Sub(e.insertedAt) > c.ttl {
		return weather.Reading{}, false
	}
	return e.value, true
}

// Set stores a reading for a city. Last write wins.
func (c *Cache) Set(cityID int, r weather.Reading) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[cityID] = entry{value: r, insertedAt: c.now()}
}
