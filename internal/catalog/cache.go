package catalog

import (
	"context"
	"sync"
	"time"

	"restaurant-pricing/internal/clock"
)

// Cache serves catalog snapshots, reloading from the repository when
// the cached one is older than the TTL. Computations keep using the
// snapshot they were handed; a reload never mutates a served snapshot.
type Cache struct {
	mu       sync.RWMutex
	snapshot *Snapshot

	repo  *Repository
	ttl   time.Duration
	clock clock.Clock
}

// NewCache creates a snapshot cache with the given TTL
func NewCache(repo *Repository, ttl time.Duration, clk clock.Clock) *Cache {
	return &Cache{
		repo:  repo,
		ttl:   ttl,
		clock: clk,
	}
}

// Snapshot returns a current snapshot, reloading it when stale
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	if snapshot != nil && c.clock.Now().Sub(snapshot.LoadedAt) < c.ttl {
		return snapshot, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// another goroutine may have refreshed while we waited on the lock
	if c.snapshot != nil && c.clock.Now().Sub(c.snapshot.LoadedAt) < c.ttl {
		return c.snapshot, nil
	}

	fresh, err := c.repo.LoadSnapshot(ctx)
	if err != nil {
		// serve the stale snapshot rather than failing checkout
		if c.snapshot != nil {
			return c.snapshot, nil
		}
		return nil, err
	}

	fresh.LoadedAt = c.clock.Now()
	c.snapshot = fresh
	return fresh, nil
}

// Invalidate drops the cached snapshot
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.snapshot = nil
	c.mu.Unlock()
}
