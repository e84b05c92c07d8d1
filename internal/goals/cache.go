// Package goals caches the per-category sales goals. The cache is an
// explicit struct owned by the server, constructed with an injected clock
// and TTL; there is no process-wide singleton.
package goals

import (
	"context"
	"sync"
	"time"

	"rfid-inventory-api/internal/models"
)

// LoadFunc fetches the goals from storage.
type LoadFunc func(ctx context.Context) ([]models.ResaleGoal, error)

// Cache holds goals for up to ttl before re-loading. Safe for concurrent
// use.
type Cache struct {
	load LoadFunc
	ttl  time.Duration
	now  func() time.Time

	mu      sync.Mutex
	goals   []models.ResaleGoal
	fetched time.Time
}

// NewCache builds a Cache. A nil clock means time.Now.
func NewCache(load LoadFunc, ttl time.Duration, now func() time.Time) *Cache {
	if now == nil {
		now = time.Now
	}
	return &Cache{load: load, ttl: ttl, now: now}
}

// Get returns the cached goals, re-loading when the entry is older than the
// TTL or when refresh forces it. A failed re-load of a previously cached
// entry returns the stale entry rather than the error.
func (c *Cache) Get(ctx context.Context, refresh bool) ([]models.ResaleGoal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	fresh := c.goals != nil && c.now().Sub(c.fetched) < c.ttl
	if fresh && !refresh {
		return c.goals, nil
	}

	goals, err := c.load(ctx)
	if err != nil {
		if c.goals != nil {
			return c.goals, nil
		}
		return nil, err
	}

	c.goals = goals
	c.fetched = c.now()
	return c.goals, nil
}
