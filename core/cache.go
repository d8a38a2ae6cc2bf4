package core

import (
	"sync"
	"time"
)

// TTLCache caches a single value for a fixed duration. A stale entry is
// still returned by Peek so callers can keep serving the previous value
// when a refresh fails. NowFunc is swappable so tests control time.
type TTLCache[T any] struct {
	mu        sync.RWMutex
	value     T
	fetchedAt time.Time
	ttl       time.Duration

	NowFunc func() time.Time
}

func NewTTLCache[T any](ttl time.Duration) *TTLCache[T] {
	return &TTLCache[T]{ttl: ttl, NowFunc: time.Now}
}

// Get returns the cached value if one was stored within the TTL window.
func (c *TTLCache[T]) Get() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	if c.fetchedAt.IsZero() || c.isStale(c.NowFunc()) {
		return zero, false
	}
	return c.value, true
}

// Peek returns the last stored value even if stale, plus whether any value
// was ever stored.
func (c *TTLCache[T]) Peek() (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero T
	if c.fetchedAt.IsZero() {
		return zero, false
	}
	return c.value, true
}

func (c *TTLCache[T]) Set(value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.value = value
	c.fetchedAt = c.NowFunc()
}

func (c *TTLCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero T
	c.value = zero
	c.fetchedAt = time.Time{}
}

func (c *TTLCache[T]) isStale(now time.Time) bool {
	return now.Sub(c.fetchedAt) >= c.ttl
}
