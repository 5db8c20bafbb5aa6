package server

import (
	"sync"
	"time"

	"github.com/costpilot/cost-copilot/pkg/models"
)

// usageCache holds the last cluster-wide collection for a TTL, so a
// dashboard polling several endpoints does not re-list every namespace
// per request.
type usageCache struct {
	mu        sync.RWMutex
	ttl       time.Duration
	fetchedAt time.Time
	usages    map[string]models.ResourceUsage
}

func newUsageCache(ttl time.Duration) *usageCache {
	return &usageCache{ttl: ttl}
}

func (c *usageCache) get() (map[string]models.ResourceUsage, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.usages == nil || time.Since(c.fetchedAt) > c.ttl {
		return nil, false
	}

	// Callers must not mutate a shared map.
	copied := make(map[string]models.ResourceUsage, len(c.usages))
	for name, usage := range c.usages {
		copied[name] = usage
	}
	return copied, true
}

func (c *usageCache) set(usages map[string]models.ResourceUsage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.usages = usages
	c.fetchedAt = time.Now()
}
