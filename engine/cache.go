package engine

import (
	"sync"
	"time"
)

// CacheService is an in-memory TTL cache for fetched documents and API
// responses. Entries are evicted lazily on read.
type CacheService struct {
	TTL time.Duration

	mu    sync.RWMutex
	items map[string]cacheItem
}

type cacheItem struct {
	value   interface{}
	expires time.Time
}

// NewCacheService creates a cache whose entries live for ttl. A zero or
// negative ttl disables caching entirely.
func NewCacheService(ttl time.Duration) *CacheService {
	return &CacheService{
		TTL:   ttl,
		items: make(map[string]cacheItem),
	}
}

// Get returns the cached value for key if present and not expired
func (c *CacheService) Get(key string) (interface{}, bool) {
	if c == nil || c.TTL <= 0 {
		return nil, false
	}

	c.mu.RLock()
	item, ok := c.items[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(item.expires) {
		c.mu.Lock()
		delete(c.items, key)
		c.mu.Unlock()
		return nil, false
	}
	return item.value, true
}

// Set stores value under key for the configured TTL
func (c *CacheService) Set(key string, value interface{}) {
	if c == nil || c.TTL <= 0 {
		return
	}

	c.mu.Lock()
	c.items[key] = cacheItem{value: value, expires: time.Now().Add(c.TTL)}
	c.mu.Unlock()
}

// CleanExpired drops all entries past their expiration
func (c *CacheService) CleanExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	removed := 0
	for key, item := range c.items {
		if now.After(item.expires) {
			delete(c.items, key)
			removed++
		}
	}
	return removed
}

// Clear empties the cache
func (c *CacheService) Clear() {
	c.mu.Lock()
	c.items = make(map[string]cacheItem)
	c.mu.Unlock()
}

// Len reports the number of entries currently held, expired or not
func (c *CacheService) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}
