package core

import (
	"testing"
	"time"
)

func TestTTLCache(t *testing.T) {
	now := time.Now()
	cache := NewTTLCache[string](5 * time.Minute)
	cache.NowFunc = func() time.Time { return now }

	if _, ok := cache.Get(); ok {
		t.Error("Get() on empty cache should miss")
	}
	if _, ok := cache.Peek(); ok {
		t.Error("Peek() on empty cache should miss")
	}

	cache.Set("templates-v1")

	if v, ok := cache.Get(); !ok || v != "templates-v1" {
		t.Errorf("Get() = %q, %v; want fresh hit", v, ok)
	}

	// just inside the window
	now = now.Add(5*time.Minute - time.Second)
	if _, ok := cache.Get(); !ok {
		t.Error("Get() within TTL should hit")
	}

	// at the boundary the value is stale
	now = now.Add(time.Second)
	if _, ok := cache.Get(); ok {
		t.Error("Get() at TTL boundary should miss")
	}
	if v, ok := cache.Peek(); !ok || v != "templates-v1" {
		t.Errorf("Peek() = %q, %v; stale value should remain", v, ok)
	}

	cache.Clear()
	if _, ok := cache.Peek(); ok {
		t.Error("Peek() after Clear() should miss")
	}
}
