package learning

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"
)

// ReferenceProvider supplies hand-authored graphs keyed by canonical skill.
type ReferenceProvider interface {
	Lookup(skill string) (GraphData, bool)
}

// Generator produces a graph for skills without a reference. Implementations
// should honor ctx; the builder bounds the call with its own timeout anyway.
type Generator interface {
	Generate(ctx context.Context, targetSkill string, currentSkills []string) (GraphData, error)
}

type MapProvider map[string]GraphData

func (m MapProvider) Lookup(skill string) (GraphData, bool) {
	g, ok := m[skill]
	if !ok || len(g.Nodes) == 0 {
		return GraphData{}, false
	}
	return g, true
}

// GraphCache is the JSON cache surface CachedGenerator needs.
type GraphCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

// CachedGenerator stores successful generations under learning:graph:<skill>.
type CachedGenerator struct {
	next  Generator
	cache GraphCache
	ttl   time.Duration
	log   *log.Logger
}

func NewCachedGenerator(next Generator, cache GraphCache, ttl time.Duration, logger *log.Logger) *CachedGenerator {
	if logger == nil {
		logger = log.Default()
	}
	return &CachedGenerator{next: next, cache: cache, ttl: ttl, log: logger}
}

func GraphCacheKey(skill string) string {
	return "learning:graph:" + skill
}

var globEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`, `[`, `\[`, `]`, `\]`)

// GraphCachePattern matches the cached graph for skill, or every cached
// graph when skill is empty.
func GraphCachePattern(skill string) string {
	if skill == "" {
		return GraphCacheKey("*")
	}
	return GraphCacheKey(globEscaper.Replace(skill))
}

func (g *CachedGenerator) Generate(ctx context.Context, targetSkill string, currentSkills []string) (GraphData, error) {
	if g.next == nil {
		return GraphData{}, fmt.Errorf("%w: no generator configured", ErrInvalidPayload)
	}
	key := GraphCacheKey(targetSkill)
	if g.cache != nil {
		var cached GraphData
		ok, err := g.cache.GetJSON(ctx, key, &cached)
		if err != nil {
			g.log.Printf("component=graph_cache op=get key=%s status=error err=%v", key, err)
		}
		if ok && len(cached.Nodes) > 0 {
			return cached, nil
		}
	}

	data, err := g.next.Generate(ctx, targetSkill, currentSkills)
	if err != nil {
		return GraphData{}, err
	}
	if g.cache != nil && len(data.Nodes) > 0 {
		if err := g.cache.SetJSON(ctx, key, data, g.ttl); err != nil {
			g.log.Printf("component=graph_cache op=set key=%s status=error err=%v", key, err)
		}
	}
	return data, nil
}
