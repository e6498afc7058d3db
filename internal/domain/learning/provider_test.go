package learning

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type memoryCache struct {
	items map[string][]byte
	ttls  map[string]time.Duration
}

func newMemoryCache() *memoryCache {
	return &memoryCache{items: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memoryCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	b, ok := c.items[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(b, out)
}

func (c *memoryCache) SetJSON(_ context.Context, key string, value any, ttl time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = b
	c.ttls[key] = ttl
	return nil
}

func TestCachedGenerator_CachesSuccess(t *testing.T) {
	next := &stubGenerator{data: GraphData{Nodes: nodes("a")}}
	cache := newMemoryCache()
	g := NewCachedGenerator(next, cache, time.Hour, quietLogger())

	for i := 0; i < 2; i++ {
		data, err := g.Generate(context.Background(), "go", nil)
		if err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
		if len(data.Nodes) != 1 || data.Nodes[0].ID != "a" {
			t.Fatalf("unexpected graph: %+v", data)
		}
	}
	if next.calls != 1 {
		t.Fatalf("expected 1 upstream call, got %d", next.calls)
	}
	if cache.ttls["learning:graph:go"] != time.Hour {
		t.Fatalf("expected ttl to be passed through")
	}
}

func TestCachedGenerator_DoesNotCacheFailures(t *testing.T) {
	next := &stubGenerator{err: errors.New("boom")}
	cache := newMemoryCache()
	g := NewCachedGenerator(next, cache, time.Hour, quietLogger())

	if _, err := g.Generate(context.Background(), "go", nil); err == nil {
		t.Fatalf("expected error")
	}
	if len(cache.items) != 0 {
		t.Fatalf("expected nothing cached")
	}
}

func TestMapProvider_IgnoresEmptyGraphs(t *testing.T) {
	m := MapProvider{"go": {}, "rust": {Nodes: nodes("r")}}
	if _, ok := m.Lookup("go"); ok {
		t.Fatalf("expected empty graph to be a miss")
	}
	if _, ok := m.Lookup("rust"); !ok {
		t.Fatalf("expected hit")
	}
}

func TestGraphCachePattern(t *testing.T) {
	cases := map[string]string{
		"":       "learning:graph:*",
		"go":     "learning:graph:go",
		"c++":    "learning:graph:c++",
		"a*[b]?": `learning:graph:a\*\[b\]\?`,
	}
	for in, want := range cases {
		if got := GraphCachePattern(in); got != want {
			t.Fatalf("GraphCachePattern(%q) = %q, want %q", in, got, want)
		}
	}
}
