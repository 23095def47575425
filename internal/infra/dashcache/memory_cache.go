package dashcache

import (
	"context"
	"sync"
	"time"

	"github.com/yanqian/wellness-hub/internal/domain/metrics"
	"github.com/yanqian/wellness-hub/internal/domain/wellness"
)

type cachedDashboard struct {
	payload   metrics.Dashboard
	expiresAt time.Time
}

// MemoryCache keeps dashboards in process memory for tests/dev.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[int64]cachedDashboard
	now     func() time.Time
}

// NewMemoryCache constructs an empty cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[int64]cachedDashboard),
		now:     time.Now,
	}
}

// Get implements wellness.DashboardCache.
func (c *MemoryCache) Get(_ context.Context, userID int64) (metrics.Dashboard, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[userID]
	c.mu.RUnlock()
	if !ok {
		return metrics.Dashboard{}, false, nil
	}
	if !entry.expiresAt.IsZero() && !entry.expiresAt.After(c.now()) {
		c.mu.Lock()
		delete(c.entries, userID)
		c.mu.Unlock()
		return metrics.Dashboard{}, false, nil
	}
	return entry.payload, true, nil
}

// Set stores the dashboard; a non-positive ttl never expires.
func (c *MemoryCache) Set(_ context.Context, userID int64, dashboard metrics.Dashboard, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	exp := time.Time{}
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	c.entries[userID] = cachedDashboard{payload: dashboard, expiresAt: exp}
	return nil
}

// Invalidate drops the user's cached dashboard.
func (c *MemoryCache) Invalidate(_ context.Context, userID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, userID)
	return nil
}

var _ wellness.DashboardCache = (*MemoryCache)(nil)
