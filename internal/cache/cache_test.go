package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestCache_PutGet(t *testing.T) {
	c := New[string](time.Minute, 10)

	c.Put("ava", "profile-ava")
	got, ok := c.Get("ava")
	if !ok || got != "profile-ava" {
		t.Errorf("get = %q/%v, want profile-ava/true", got, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestCache_EntriesExpire(t *testing.T) {
	c := New[string](time.Minute, 10).(*memoryCache[string])

	base := time.Now()
	c.now = func() time.Time { return base }
	c.Put("ava", "profile-ava")

	c.now = func() time.Time { return base.Add(30 * time.Second) }
	if _, ok := c.Get("ava"); !ok {
		t.Fatal("entry expired before its TTL")
	}

	c.now = func() time.Time { return base.Add(2 * time.Minute) }
	if _, ok := c.Get("ava"); ok {
		t.Error("entry survived past its TTL")
	}
}

func TestCache_InvalidateDropsEntry(t *testing.T) {
	c := New[string](time.Minute, 10)

	c.Put("ava", "stale")
	c.Invalidate("ava")
	if _, ok := c.Get("ava"); ok {
		t.Error("invalidated entry must not be served")
	}
}

func TestCache_CapEvictsOldest(t *testing.T) {
	c := New[int](time.Minute, 3).(*memoryCache[int])

	base := time.Now()
	for i := 0; i < 3; i++ {
		c.now = func() time.Time { return base.Add(time.Duration(i) * time.Second) }
		c.Put(fmt.Sprintf("k%d", i), i)
	}

	c.now = func() time.Time { return base.Add(10 * time.Second) }
	c.Put("k3", 3)

	if _, ok := c.Get("k0"); ok {
		t.Error("oldest entry should have been evicted at capacity")
	}
	if _, ok := c.Get("k3"); !ok {
		t.Error("newest entry must be present")
	}
}

func TestCache_OverwriteDoesNotEvict(t *testing.T) {
	c := New[int](time.Minute, 2)

	c.Put("a", 1)
	c.Put("b", 2)
	c.Put("a", 3)

	if got, ok := c.Get("a"); !ok || got != 3 {
		t.Errorf("a = %d/%v, want 3/true", got, ok)
	}
	if _, ok := c.Get("b"); !ok {
		t.Error("overwriting an existing key must not evict another entry")
	}
}

func TestCache_Clear(t *testing.T) {
	c := New[int](time.Minute, 10)
	c.Put("a", 1)
	c.Put("b", 2)
	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("cleared cache must serve nothing")
	}
}
