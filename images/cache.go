package images

import "sync"

// Cache stores resolved assets per resolution key. Entries live until an
// explicit clear; there is no TTL and no eviction, and a cached URL is never
// re-validated for liveness. Implementations must be safe for concurrent use.
type Cache interface {
	Get(key string) (*Asset, bool)
	Set(key string, asset *Asset)
	Clear()
}

// MemoryCache is the default unbounded in-memory cache. Concurrent inserts
// for the same key are last-writer-wins, which is harmless because values are
// idempotent per key.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]*Asset
}

// NewMemoryCache returns an empty memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: map[string]*Asset{}}
}

func (c *MemoryCache) Get(key string) (*Asset, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	asset, ok := c.entries[key]
	return asset, ok
}

func (c *MemoryCache) Set(key string, asset *Asset) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = asset
}

func (c *MemoryCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[string]*Asset{}
}
