package market

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newTestCache(cfg CacheConfig) (*WeightCache, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewWeightCache(cfg)
	c.SetClock(clk.Now)
	return c, clk
}

func TestWeightCache_SetThenGet(t *testing.T) {
	c, _ := newTestCache(CacheConfig{})
	c.Set("Go", SkillWeight{Skill: "go", Weight: 0.7}, 100)

	got, ok := c.Get("go", 100)
	if !ok {
		t.Fatalf("expected hit")
	}
	if got.Weight != 0.7 {
		t.Fatalf("expected weight 0.7, got %v", got.Weight)
	}
}

func TestWeightCache_ExpiresAfterTTL(t *testing.T) {
	c, clk := newTestCache(CacheConfig{})
	c.Set("go", SkillWeight{Skill: "go", Weight: 0.5}, 100)

	clk.Advance(59 * time.Minute)
	if _, ok := c.Get("go", 100); !ok {
		t.Fatalf("expected hit before ttl")
	}

	clk.Advance(2 * time.Minute)
	if _, ok := c.Get("go", 100); ok {
		t.Fatalf("expected miss after ttl")
	}
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be evicted, len=%d", c.Len())
	}
}

func TestWeightCache_DriftInvalidates(t *testing.T) {
	c, _ := newTestCache(CacheConfig{})
	c.Set("go", SkillWeight{Skill: "go"}, 100)

	if _, ok := c.Get("go", 120); !ok {
		t.Fatalf("expected hit at exactly 20%% drift")
	}
	if _, ok := c.Get("go", 121); ok {
		t.Fatalf("expected miss past 20%% drift")
	}

	c.Set("rust", SkillWeight{Skill: "rust"}, 100)
	if _, ok := c.Get("rust", 79); ok {
		t.Fatalf("expected miss on shrinking corpus")
	}
}

func TestWeightCache_EvictsOldestInsertion(t *testing.T) {
	c, clk := newTestCache(CacheConfig{Capacity: 2})

	c.Set("a", SkillWeight{Skill: "a"}, 10)
	clk.Advance(time.Second)
	c.Set("b", SkillWeight{Skill: "b"}, 10)
	clk.Advance(time.Second)

	// Reads do not refresh recency.
	if _, ok := c.Get("a", 10); !ok {
		t.Fatalf("expected hit for a")
	}
	c.Set("c", SkillWeight{Skill: "c"}, 10)

	if _, ok := c.Get("a", 10); ok {
		t.Fatalf("expected a evicted as oldest insertion")
	}
	for _, k := range []string{"b", "c"} {
		if _, ok := c.Get(k, 10); !ok {
			t.Fatalf("expected hit for %s", k)
		}
	}
}

func TestWeightCache_OverwriteDoesNotEvict(t *testing.T) {
	c, _ := newTestCache(CacheConfig{Capacity: 2})
	c.Set("a", SkillWeight{Skill: "a"}, 10)
	c.Set("b", SkillWeight{Skill: "b"}, 10)
	c.Set("a", SkillWeight{Skill: "a", Weight: 1}, 10)

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestWeightCache_ConcurrentAccess(t *testing.T) {
	c := NewWeightCache(CacheConfig{Capacity: 64})

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("skill-%d", (i*j)%100)
				c.Set(key, SkillWeight{Skill: key}, 50)
				c.Get(key, 50)
			}
		}(i)
	}
	wg.Wait()

	if c.Len() > 64 {
		t.Fatalf("capacity exceeded: %d", c.Len())
	}
}

func TestWeightCache_NilIsMiss(t *testing.T) {
	var c *WeightCache
	c.Set("go", SkillWeight{}, 1)
	if _, ok := c.Get("go", 1); ok {
		t.Fatalf("expected miss on nil cache")
	}
}
