package cache

import (
	"sync"
	"testing"
)

// constant returns a create func yielding v and counting its calls.
func constant(v int, calls *int) func() int {
	return func() int {
		*calls++
		return v
	}
}

func TestCacheGetOrCreate(t *testing.T) {
	c := New[string, int](0)
	calls := 0
	for range 3 {
		if v := c.GetOrCreate("k", constant(7, &calls)); v != 7 {
			t.Fatalf("GetOrCreate = %d, want 7", v)
		}
	}
	if calls != 1 {
		t.Errorf("create called %d times, want 1", calls)
	}
	s := c.Stats()
	if s.Hits != 2 || s.Misses != 1 || s.Len != 1 {
		t.Errorf("Stats() = %+v, want 2 hits, 1 miss and 1 entry", s)
	}
	if s.HitRate < 0.66 || s.HitRate > 0.67 {
		t.Errorf("HitRate = %v, want 2/3", s.HitRate)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	c := New[int, int](3)
	calls := 0
	for _, k := range []int{1, 2, 3, 1, 4} { // 2 is the oldest when 4 arrives
		c.GetOrCreate(k, constant(k, &calls))
	}
	if calls != 4 {
		t.Fatalf("create called %d times, want 4", calls)
	}

	calls = 0
	for _, k := range []int{1, 3, 4} {
		c.GetOrCreate(k, constant(k, &calls))
	}
	if calls != 0 {
		t.Errorf("%d recently used entries were evicted", calls)
	}
	c.GetOrCreate(2, constant(2, &calls))
	if calls != 1 {
		t.Error("least recently used entry survived eviction")
	}
	if s := c.Stats(); s.Evictions != 2 || s.Len != 3 || s.Capacity != 3 {
		t.Errorf("Stats() = %+v, want 2 evictions, 3 entries, capacity 3", s)
	}
}

func TestCacheClear(t *testing.T) {
	c := New[int, string](4)
	c.GetOrCreate(1, func() string { return "a" })
	c.GetOrCreate(2, func() string { return "b" })
	c.Clear()

	s := c.Stats()
	if s.Len != 0 {
		t.Errorf("Len after Clear = %d", s.Len)
	}
	if s.Misses != 2 {
		t.Errorf("Clear reset statistics: %+v", s)
	}
	if v := c.GetOrCreate(1, func() string { return "c" }); v != "c" {
		t.Errorf("GetOrCreate(1) after Clear = %q, want a fresh value", v)
	}
}

func TestCacheConcurrent(t *testing.T) {
	c := New[int, int](50)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 500 {
				c.GetOrCreate((g*31+i)%80, func() int { return i })
			}
		}()
	}
	wg.Wait()
	if n := c.Stats().Len; n > 50 {
		t.Errorf("Len = %d exceeds capacity", n)
	}
}
