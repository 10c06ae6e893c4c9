// Tressly - Hair-Care Product Recommendation
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/tressly

package cache

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fakeClock is a manually advanced clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache[V any](ttl time.Duration) (*Cache[V], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[V](ttl)
	c.now = clock.Now
	return c, clock
}

func TestCacheBasicOperations(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[string](time.Minute)

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Error("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[int](time.Minute)
	c.Set("key1", 1)

	clock.Advance(59 * time.Second)
	if _, exists := c.Get("key1"); !exists {
		t.Fatal("Expected key1 to exist before TTL")
	}

	clock.Advance(2 * time.Second)
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be expired")
	}
	if c.Len() != 0 {
		t.Errorf("expired entry should be removed on Get, Len() = %d", c.Len())
	}

	stats := c.GetStats()
	if stats.Evictions != 1 {
		t.Errorf("Expected 1 eviction, got %d", stats.Evictions)
	}
}

func TestCacheTouch(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[int](time.Minute)
	c.Set("key1", 1)

	clock.Advance(50 * time.Second)
	if !c.Touch("key1") {
		t.Fatal("Touch() on live entry = false")
	}

	clock.Advance(50 * time.Second)
	if _, exists := c.Get("key1"); !exists {
		t.Error("Touch should extend expiration")
	}

	clock.Advance(2 * time.Minute)
	if c.Touch("key1") {
		t.Error("Touch() on expired entry = true")
	}
	if c.Touch("missing") {
		t.Error("Touch() on missing entry = true")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[string](time.Minute)

	c.Set("key1", "value1")
	c.Delete("key1")
	c.Delete("never-set")
	if _, exists := c.Get("key1"); exists {
		t.Error("Expected key1 to be deleted")
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1 (unknown keys do not count)", got)
	}

	for i := 0; i < 3; i++ {
		c.Set(fmt.Sprintf("key%d", i), "v")
	}
	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d", c.Len())
	}
	if got := c.GetStats().TotalKeys; got != 0 {
		t.Errorf("TotalKeys after Clear = %d", got)
	}
}

func TestCacheStats(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[string](time.Minute)

	c.Set("key1", "value1")
	c.Get("key1") // hit
	c.Get("key2") // miss
	c.Get("key1") // hit

	stats := c.GetStats()
	if stats.Hits != 2 {
		t.Errorf("Expected 2 hits, got %d", stats.Hits)
	}
	if stats.Misses != 1 {
		t.Errorf("Expected 1 miss, got %d", stats.Misses)
	}

	hitRate := c.HitRate()
	expectedHitRate := 66.66666666666667 // 2/3 * 100
	if hitRate < expectedHitRate-0.01 || hitRate > expectedHitRate+0.01 {
		t.Errorf("Expected hit rate around %.2f%%, got %.2f%%", expectedHitRate, hitRate)
	}
}

func TestCacheHitRateZeroOperations(t *testing.T) {
	t.Parallel()

	c, _ := newTestCache[string](time.Minute)
	if hitRate := c.HitRate(); hitRate != 0.0 {
		t.Errorf("Expected 0%% hit rate with no operations, got %.2f%%", hitRate)
	}
}

func TestCacheCleanup(t *testing.T) {
	t.Parallel()

	c, clock := newTestCache[string](time.Minute)

	c.SetWithTTL("short-lived", "value1", 10*time.Second)
	c.SetWithTTL("long-lived", "value2", 10*time.Minute)
	c.Set("default", "value3")

	clock.Advance(2 * time.Minute)

	if evicted := c.Cleanup(); evicted != 2 {
		t.Errorf("Cleanup() = %d, want 2", evicted)
	}
	if _, exists := c.Get("long-lived"); !exists {
		t.Error("Expected long-lived key to still exist")
	}

	stats := c.GetStats()
	if stats.TotalKeys != 1 {
		t.Errorf("Expected 1 total key, got %d", stats.TotalKeys)
	}
	if !stats.LastCleanup.Equal(clock.Now()) {
		t.Errorf("LastCleanup = %v, want %v", stats.LastCleanup, clock.Now())
	}
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()

	c := New[int](time.Minute)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := "key"
				c.Set(key, id)
				c.Get(key)
				c.Touch(key)
				if j%10 == 0 {
					c.Delete(key)
					c.Cleanup()
				}
			}
		}(i)
	}
	wg.Wait()

	stats := c.GetStats()
	if stats.Hits == 0 && stats.Misses == 0 {
		t.Error("Expected some cache activity from concurrent operations")
	}
}

func BenchmarkCacheGet(b *testing.B) {
	c := New[string](time.Minute)
	c.Set("key", "value")

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Get("key")
	}
}
