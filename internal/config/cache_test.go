package config

import (
	"testing"
	"time"
)

func TestCacheSetGetRoundTrip(t *testing.T) {
	c := NewCache()

	if _, ok := c.Get("missing"); ok {
		t.Error("Get() should miss on an empty cache")
	}

	c.Set("key", "value")
	val, ok := c.Get("key")
	if !ok {
		t.Fatal("Get() should hit right after Set()")
	}
	if val != "value" {
		t.Errorf("expected 'value', got %v", val)
	}
}

func TestCacheEntryExpiresAfterTTL(t *testing.T) {
	c := NewCache()
	c.Enable(1 * time.Millisecond)

	c.Set("key", "value")
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("key"); ok {
		t.Error("Get() should miss once the entry's TTL has elapsed")
	}
}

func TestCacheDisableSuppressesSetAndGet(t *testing.T) {
	c := NewCache()
	c.Disable()

	c.Set("key", "value")
	if _, ok := c.Get("key"); ok {
		t.Error("Get() must miss while the cache is disabled, even for a key set before disabling")
	}
	if c.IsEnabled() {
		t.Error("IsEnabled() should be false after Disable()")
	}
}

func TestCacheDeleteRemovesOneKey(t *testing.T) {
	c := NewCache()
	c.Set("keep", 1)
	c.Set("drop", 2)

	c.Delete("drop")

	if _, ok := c.Get("drop"); ok {
		t.Error("deleted key must not be retrievable")
	}
	if val, ok := c.Get("keep"); !ok || val != 1 {
		t.Error("Delete() must not affect other keys")
	}
}

func TestCacheClearRemovesEverything(t *testing.T) {
	c := NewCache()
	c.Set("a", 1)
	c.Set("b", 2)

	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("Clear() must remove all entries")
	}
	if _, ok := c.Get("b"); ok {
		t.Error("Clear() must remove all entries")
	}
}

func TestCacheLastLoadRoundTrip(t *testing.T) {
	c := NewCache()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	c.SetLastLoad(now)
	if !c.GetLastLoad().Equal(now) {
		t.Errorf("expected %v, got %v", now, c.GetLastLoad())
	}
}
