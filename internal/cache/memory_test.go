package cache

import (
	"fmt"
	"testing"
	"time"
)

func TestMemoryCache_PutGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, 10)

	c.Put("k", []byte("value"))
	got, found := c.Get("k", time.Minute)
	if !found {
		t.Fatal("Expected a hit for a fresh entry")
	}
	if string(got) != "value" {
		t.Errorf("Got %q, want %q", got, "value")
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := NewMemoryCache(time.Minute, 10)

	if _, found := c.Get("absent", time.Minute); found {
		t.Error("Expected a miss for an absent key")
	}
}

func TestMemoryCache_MaxAgeExpiry(t *testing.T) {
	c := NewMemoryCache(time.Hour, 10)

	now := time.Now()
	origClock := clock
	clock = func() time.Time { return now }
	defer func() { clock = origClock }()

	c.Put("k", []byte("value"))

	// Advance past maxAge.
	clock = func() time.Time { return now.Add(10 * time.Minute) }

	if _, found := c.Get("k", 5*time.Minute); found {
		t.Error("Expected a miss for an entry older than maxAge")
	}
	// The expired entry is gone entirely.
	if c.Len() != 0 {
		t.Errorf("Len = %d after expiry, want 0", c.Len())
	}
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	c := NewMemoryCache(time.Hour, 3)

	now := time.Now()
	origClock := clock
	defer func() { clock = origClock }()

	for i := 0; i < 3; i++ {
		tick := now.Add(time.Duration(i) * time.Second)
		clock = func() time.Time { return tick }
		c.Put(fmt.Sprintf("k%d", i), []byte("v"))
	}

	// Touch k0 so k1 becomes the least recently used.
	clock = func() time.Time { return now.Add(10 * time.Second) }
	if _, found := c.Get("k0", time.Hour); !found {
		t.Fatal("Expected k0 to be present")
	}

	clock = func() time.Time { return now.Add(11 * time.Second) }
	c.Put("k3", []byte("v"))

	if c.Len() != 3 {
		t.Errorf("Len = %d, want 3 (bound enforced)", c.Len())
	}
	if _, found := c.Get("k1", time.Hour); found {
		t.Error("Expected k1 to be evicted as least recently used")
	}
	for _, key := range []string{"k0", "k2", "k3"} {
		if _, found := c.Get(key, time.Hour); !found {
			t.Errorf("Expected %s to survive eviction", key)
		}
	}
}

func TestMemoryCache_OverwriteDoesNotEvict(t *testing.T) {
	c := NewMemoryCache(time.Hour, 2)

	c.Put("a", []byte("1"))
	c.Put("b", []byte("2"))
	c.Put("a", []byte("3")) // overwrite, cache stays at 2 entries

	if c.Len() != 2 {
		t.Errorf("Len = %d, want 2", c.Len())
	}
	got, found := c.Get("a", time.Hour)
	if !found || string(got) != "3" {
		t.Errorf("Get(a) = %q/%v, want overwritten value", got, found)
	}
}

func TestKey_Deterministic(t *testing.T) {
	if Key("query") != Key("query") {
		t.Error("Expected identical keys for identical queries")
	}
	if Key("query a") == Key("query b") {
		t.Error("Expected distinct keys for distinct queries")
	}
}
