// Package cache is the session read-through cache with per-entry freshness windows.
package cache

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"lukechampine.com/blake3"
)

type entry struct {
	value    any
	storedAt time.Time
	ttl      time.Duration
}

// Cache maps resource keys to payloads. It supports lookup, overwrite and
// full clear; there is no partial invalidation.
type Cache struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// New creates an empty cache on the wall clock.
func New() *Cache {
	return NewWithClock(time.Now)
}

// NewWithClock creates an empty cache that reads time from now.
func NewWithClock(now func() time.Time) *Cache {
	return &Cache{entries: make(map[string]entry), now: now}
}

// Key builds a resource key from an accessor name and its arguments. The
// arguments are folded into a short blake3 digest so keys stay bounded.
func Key(name string, args ...any) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%v", a)
	}
	sum := blake3.Sum256([]byte(strings.Join(parts, "\x1f")))
	return name + ":" + hex.EncodeToString(sum[:8])
}

// Get returns a payload only while it is inside its freshness window.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.now().Sub(e.storedAt) >= e.ttl {
		delete(c.entries, key)
		return nil, false
	}
	return e.value, true
}

// Set stores or overwrites a payload.
func (c *Cache) Set(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, storedAt: c.now(), ttl: ttl}
}

// InvalidateAll drops every entry.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, fresh or not.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// GetOrCompute returns the fresh cached value for key, or calls compute and
// stores its result. Errors are never cached. Concurrent misses for the same
// key may both call compute.
func GetOrCompute[T any](c *Cache, key string, ttl time.Duration, compute func() (T, error)) (T, error) {
	if v, ok := c.Get(key); ok {
		if typed, ok := v.(T); ok {
			return typed, nil
		}
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	if ttl > 0 {
		c.Set(key, v, ttl)
	}
	return v, nil
}
