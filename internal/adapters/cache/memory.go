package cache

import (
	"strings"
	"sync"

	"route-planner-service/internal/domain"
)

// In-memory cache mapping address strings to geographic coordinates.
// Address keys are expected to be consistent (e.g., normalized) by the
// caller. The cache lives as long as the process; nothing is persisted
// across runs. Safe for concurrent use.
type MemoryCache struct {
	mu sync.RWMutex
	m  map[string]domain.Coordinates
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{m: make(map[string]domain.Coordinates)}
}

// Fetch cached coordinates for the given addresses. Unknown addresses are
// simply absent from the result.
func (c *MemoryCache) GetMany(addresses []string) map[string]domain.Coordinates {
	out := make(map[string]domain.Coordinates, len(addresses))

	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}
		if coord, ok := c.m[a]; ok {
			out[a] = coord
		}
	}

	return out
}

// Store address -> coordinate mappings, overwriting existing entries.
func (c *MemoryCache) PutMany(results map[string]domain.Coordinates) {
	if len(results) == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for addr, coord := range results {
		if strings.TrimSpace(addr) == "" {
			continue
		}
		c.m[addr] = coord
	}
}

// Len reports the number of cached addresses.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}
