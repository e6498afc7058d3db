package market

import (
	"math"
	"strings"
	"sync"
	"time"
)

const (
	DefaultCacheTTL       = time.Hour
	DefaultCacheCapacity  = 1000
	DefaultDriftTolerance = 0.20
)

type CacheConfig struct {
	TTL            time.Duration
	Capacity       int
	DriftTolerance float64
}

func DefaultCacheConfig() CacheConfig {
	return CacheConfig{TTL: DefaultCacheTTL, Capacity: DefaultCacheCapacity, DriftTolerance: DefaultDriftTolerance}
}

type cacheEntry struct {
	weight   SkillWeight
	jobCount int
	storedAt time.Time
}

// WeightCache holds computed skill weights. Entries expire after the TTL or
// when the corpus size drifts past the tolerance. On overflow the entry with
// the oldest insertion time is evicted; reads do not refresh recency.
type WeightCache struct {
	mu      sync.Mutex
	entries map[string]cacheEntry
	cfg     CacheConfig
	now     func() time.Time
}

func NewWeightCache(cfg CacheConfig) *WeightCache {
	def := DefaultCacheConfig()
	if cfg.TTL <= 0 {
		cfg.TTL = def.TTL
	}
	if cfg.Capacity <= 0 {
		cfg.Capacity = def.Capacity
	}
	if cfg.DriftTolerance <= 0 {
		cfg.DriftTolerance = def.DriftTolerance
	}
	return &WeightCache{
		entries: make(map[string]cacheEntry, cfg.Capacity),
		cfg:     cfg,
		now:     time.Now,
	}
}

// SetClock replaces the time source. Intended for tests.
func (c *WeightCache) SetClock(now func() time.Time) {
	if c == nil || now == nil {
		return
	}
	c.mu.Lock()
	c.now = now
	c.mu.Unlock()
}

func (c *WeightCache) Get(skill string, currentJobCount int) (SkillWeight, bool) {
	if c == nil {
		return SkillWeight{}, false
	}
	key := cacheKey(skill)
	if key == "" {
		return SkillWeight{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return SkillWeight{}, false
	}
	if c.now().Sub(e.storedAt) > c.cfg.TTL || drifted(e.jobCount, currentJobCount, c.cfg.DriftTolerance) {
		delete(c.entries, key)
		return SkillWeight{}, false
	}
	return e.weight, true
}

func (c *WeightCache) Set(skill string, w SkillWeight, jobCount int) {
	if c == nil {
		return
	}
	key := cacheKey(skill)
	if key == "" {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; !exists && len(c.entries) >= c.cfg.Capacity {
		c.evictOldestLocked()
	}
	c.entries[key] = cacheEntry{weight: w, jobCount: jobCount, storedAt: c.now()}
}

func (c *WeightCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *WeightCache) evictOldestLocked() {
	oldestKey := ""
	var oldest time.Time
	for k, e := range c.entries {
		if oldestKey == "" || e.storedAt.Before(oldest) {
			oldestKey = k
			oldest = e.storedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func drifted(cached, current int, tolerance float64) bool {
	if cached <= 0 {
		return current != cached
	}
	return math.Abs(float64(current-cached))/float64(cached) > tolerance
}

func cacheKey(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}
