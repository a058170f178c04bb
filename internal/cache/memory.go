package cache

import (
	"sync"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// clock is injectable for expiry tests.
var clock = time.Now

type entry struct {
	value    []byte
	storedAt time.Time
}

// MemoryCache is an in-memory memo with per-read freshness checks and a
// bounded entry count. go-cache handles background expiry of abandoned
// entries; the LRU bookkeeping handles the count bound.
type MemoryCache struct {
	store      *gocache.Cache
	maxEntries int

	mu       sync.Mutex
	lastUsed map[string]time.Time
}

// NewMemoryCache creates a memo holding at most maxEntries values, each kept
// for at most defaultTTL.
func NewMemoryCache(defaultTTL time.Duration, maxEntries int) *MemoryCache {
	if maxEntries <= 0 {
		maxEntries = 1000
	}
	return &MemoryCache{
		store:      gocache.New(defaultTTL, defaultTTL),
		maxEntries: maxEntries,
		lastUsed:   make(map[string]time.Time),
	}
}

// Get returns the stored value if it is younger than maxAge.
func (c *MemoryCache) Get(key string, maxAge time.Duration) ([]byte, bool) {
	val, found := c.store.Get(key)
	if !found {
		c.forget(key)
		return nil, false
	}

	e := val.(entry)
	if clock().Sub(e.storedAt) > maxAge {
		c.store.Delete(key)
		c.forget(key)
		return nil, false
	}

	c.touch(key)
	return e.value, true
}

// Put stores a value, evicting the least-recently-used entry when the cache
// is full.
func (c *MemoryCache) Put(key string, value []byte) {
	c.mu.Lock()
	if _, exists := c.lastUsed[key]; !exists && len(c.lastUsed) >= c.maxEntries {
		c.evictOldestLocked()
	}
	c.lastUsed[key] = clock()
	c.mu.Unlock()

	c.store.SetDefault(key, entry{value: value, storedAt: clock()})
}

// Delete removes a single entry.
func (c *MemoryCache) Delete(key string) {
	c.store.Delete(key)
	c.forget(key)
}

// Len returns the number of tracked entries.
func (c *MemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lastUsed)
}

func (c *MemoryCache) touch(key string) {
	c.mu.Lock()
	c.lastUsed[key] = clock()
	c.mu.Unlock()
}

func (c *MemoryCache) forget(key string) {
	c.mu.Lock()
	delete(c.lastUsed, key)
	c.mu.Unlock()
}

func (c *MemoryCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, used := range c.lastUsed {
		if oldestKey == "" || used.Before(oldest) {
			oldestKey = key
			oldest = used
		}
	}
	if oldestKey != "" {
		delete(c.lastUsed, oldestKey)
		c.store.Delete(oldestKey)
	}
}
