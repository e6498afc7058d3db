package learning

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"
	"time"
	"unicode/utf8"

	"skill-graph/internal/domain/skill"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubGenerator struct {
	data  GraphData
	err   error
	block bool
	calls int
	mu    sync.Mutex
}

func (g *stubGenerator) Generate(ctx context.Context, target string, current []string) (GraphData, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.block {
		<-ctx.Done()
		return GraphData{}, ctx.Err()
	}
	return g.data, g.err
}

func quietLogger() *log.Logger { return log.New(io.Discard, "", 0) }

func newTestBuilder(ref ReferenceProvider, gen Generator) *Builder {
	return NewBuilder(BuilderParams{
		Normalizer:       skill.NewNormalizer(skill.DefaultVocabulary()),
		Reference:        ref,
		Generator:        gen,
		GeneratorTimeout: 50 * time.Millisecond,
		Logger:           quietLogger(),
	})
}

func prereq(from, to string) Edge {
	return Edge{From: from, To: to, Type: EdgePrerequisite, Strength: 1}
}

func nodes(ids ...string) []Node {
	out := make([]Node, 0, len(ids))
	for _, id := range ids {
		out = append(out, Node{ID: id, Title: id, Difficulty: DifficultyIntermediate, EstimatedHours: 5})
	}
	return out
}

func assertTopological(t *testing.T, p LearningPath) {
	t.Helper()
	pos := make(map[string]int, len(p.SkillPath))
	for i, id := range p.SkillPath {
		pos[id] = i
	}
	require.Len(t, pos, len(p.Nodes))
	for _, e := range p.Edges {
		if e.Type != EdgePrerequisite {
			continue
		}
		assert.Less(t, pos[e.From], pos[e.To], "%s must precede %s", e.From, e.To)
	}
}

func TestBuild_ReferenceGraphOrderedAndCategorized(t *testing.T) {
	ns := nodes("root", "mid", "leaf1", "leaf2", "leaf3", "adv")
	ns[5].Difficulty = DifficultyAdvanced
	ref := MapProvider{"go": {
		Nodes: ns,
		Edges: []Edge{
			prereq("root", "mid"), prereq("mid", "leaf1"), prereq("mid", "leaf2"),
			prereq("mid", "leaf3"), prereq("leaf1", "adv"),
			{From: "adv", To: "root", Type: EdgeRelated, Strength: 0.3},
		},
	}}
	b := newTestBuilder(ref, nil)

	p, err := b.Build(context.Background(), "Golang", nil)
	require.NoError(t, err)

	assert.Equal(t, "go", p.TargetSkill)
	assert.Equal(t, SourceReference, p.Source)
	assert.False(t, p.Fallback)
	assert.Equal(t, []string{"root", "mid", "leaf1", "leaf2", "leaf3", "adv"}, p.SkillPath)
	assertTopological(t, p)

	cats := map[string]Category{}
	for _, n := range p.Nodes {
		cats[n.ID] = n.Category
	}
	assert.Equal(t, CategoryFoundation, cats["root"])
	assert.Equal(t, CategoryCore, cats["mid"])
	assert.Equal(t, CategorySpecialization, cats["leaf1"])
	assert.Equal(t, CategoryAdvanced, cats["adv"])

	assert.Equal(t, 30.0, p.TotalHours)
	assert.Equal(t, DifficultyIntermediate, p.Difficulty)
	assert.True(t, p.Integrity.OK())
	assert.Equal(t, 6, p.Integrity.NodeCount)
	assert.Equal(t, 6, p.Integrity.EdgeCount)
	assert.Equal(t, 1, p.Integrity.Components)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", p.ID.String())
}

func TestBuild_IsolatedNodeGetsExactlyOneEdge(t *testing.T) {
	ref := MapProvider{"go": {
		Nodes: nodes("a", "b", "c", "d", "e"),
		Edges: []Edge{prereq("a", "b"), prereq("b", "c"), prereq("c", "d")},
	}}
	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"e"}, p.Integrity.IsolatedNodes)
	assert.Equal(t, 1, p.Integrity.AddedEdges)
	assert.Equal(t, 1, p.Integrity.Components)

	touching := 0
	for _, e := range p.Edges {
		if e.From == "e" || e.To == "e" {
			touching++
			assert.Equal(t, "d", e.From)
		}
	}
	assert.Equal(t, 1, touching)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, p.SkillPath)
}

func TestBuild_IsolatedLeadingNodeAttachesForward(t *testing.T) {
	ref := MapProvider{"go": {
		Nodes: nodes("intro", "a", "b"),
		Edges: []Edge{prereq("a", "b")},
	}}
	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)
	require.NoError(t, err)

	assert.Contains(t, p.Edges, Edge{From: "intro", To: "a", Type: EdgePrerequisite, Strength: repairEdgeStrength})
	assert.Equal(t, []string{"intro", "a", "b"}, p.SkillPath)
}

func TestBuild_AllIsolatedChainsInDeclaredOrder(t *testing.T) {
	ref := MapProvider{"go": {Nodes: nodes("x", "y", "z")}}
	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"x", "y", "z"}, p.SkillPath)
	assert.Equal(t, 2, p.Integrity.AddedEdges)
	assert.Equal(t, 1, p.Integrity.Components)
}

func TestBuild_PrerequisiteCycleIsFatal(t *testing.T) {
	ref := MapProvider{"go": {
		Nodes: nodes("a", "b", "c", "d"),
		Edges: []Edge{prereq("a", "b"), prereq("b", "c"), prereq("c", "a"), prereq("a", "d")},
	}}
	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrPrerequisiteCycle))
	var ce *CycleError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "go", ce.Skill)
	assert.Subset(t, ce.Nodes, []string{"a", "b", "c"})
	assert.Empty(t, p.SkillPath)
	assert.Empty(t, p.Nodes)
}

func TestBuild_PrerequisiteSelfLoopIsFatal(t *testing.T) {
	ref := MapProvider{"go": {
		Nodes: nodes("a", "b"),
		Edges: []Edge{prereq("a", "b"), prereq("b", "b")},
	}}
	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)

	var ce *CycleError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"b"}, ce.Nodes)
	assert.Empty(t, p.SkillPath)
}

func TestBuild_RelatedSelfLoopDroppedWithWarning(t *testing.T) {
	ref := MapProvider{"go": {
		Nodes: nodes("a", "b"),
		Edges: []Edge{prereq("a", "b"), {From: "b", To: "b", Type: EdgeRelated, Strength: 0.5}},
	}}
	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, p.SkillPath)
	assert.Contains(t, p.Warnings, "dropped related self-loop on b")
	for _, e := range p.Edges {
		assert.NotEqual(t, e.From, e.To)
	}
}

func TestBuild_RelatedEdgesDoNotConstrainOrder(t *testing.T) {
	ref := MapProvider{"go": {
		Nodes: nodes("a", "b", "c"),
		Edges: []Edge{
			prereq("a", "b"), prereq("b", "c"),
			{From: "c", To: "a", Type: EdgeRelated, Strength: 0.5},
		},
	}}
	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, p.SkillPath)
}

func TestBuild_DanglingReferencesReportedAndPruned(t *testing.T) {
	ns := nodes("a", "b")
	ns[0].Connections = []string{"b", "phantom"}
	ref := MapProvider{"go": {
		Nodes:     ns,
		Edges:     []Edge{prereq("a", "b"), prereq("a", "ghost")},
		SkillPath: []string{"a", "b", "missing"},
	}}
	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)
	require.NoError(t, err)

	assert.ElementsMatch(t, []DanglingRef{
		{Where: "edge", From: "a", ID: "ghost"},
		{Where: "connection", From: "a", ID: "phantom"},
		{Where: "skill_path", ID: "missing"},
	}, p.Integrity.Dangling)
	assert.False(t, p.Integrity.OK())
	assert.Equal(t, 1, p.Integrity.EdgeCount)
	assert.Equal(t, []string{"b"}, p.Nodes[0].Connections)
	assert.Len(t, p.Warnings, 3)
	assert.Equal(t, []string{"a", "b"}, p.SkillPath)
}

func TestBuild_SynthesizesEdgesFromConnections(t *testing.T) {
	ns := nodes("a", "b", "c")
	ns[0].Connections = []string{"b"}
	ns[1].Connections = []string{"a", "c"}
	ns[2].Connections = []string{"a"}
	ref := MapProvider{"go": {Nodes: ns}}

	p, err := newTestBuilder(ref, nil).Build(context.Background(), "go", nil)
	require.NoError(t, err)

	assert.Equal(t, 3, p.Integrity.AddedEdges)
	assert.Contains(t, p.Edges, prereq("a", "b"))
	assert.Contains(t, p.Edges, prereq("b", "c"))
	assert.Contains(t, p.Edges, Edge{From: "c", To: "a", Type: EdgeRelated, Strength: 1})
	assert.Equal(t, []string{"a", "b", "c"}, p.SkillPath)
}

func TestBuild_GeneratorTimeoutFallsBack(t *testing.T) {
	gen := &stubGenerator{block: true}
	p, err := newTestBuilder(MapProvider{}, gen).Build(context.Background(), "Golang", []string{"python"})
	require.NoError(t, err)

	assert.True(t, p.Fallback)
	assert.Equal(t, SourceFallback, p.Source)
	assert.Equal(t, []string{"go-foundations", "go-intermediate", "go-advanced"}, p.SkillPath)
	assert.Equal(t, "fallback graph used: generator timeout", p.Warnings[0])
	assert.Equal(t, 90.0, p.TotalHours)
	assert.Equal(t, DifficultyIntermediate, p.Difficulty)
}

func TestBuild_GeneratorErrorOrEmptyFallsBack(t *testing.T) {
	for _, gen := range []*stubGenerator{
		{err: errors.New("upstream 500")},
		{data: GraphData{}},
	} {
		p, err := newTestBuilder(nil, gen).Build(context.Background(), "rust", nil)
		require.NoError(t, err)
		assert.True(t, p.Fallback)
		assert.Len(t, p.Nodes, 3)
		assert.Equal(t, CategoryFoundation, p.Nodes[0].Category)
		assert.Equal(t, CategoryAdvanced, p.Nodes[2].Category)
	}
}

func TestBuild_GeneratedGraphUsed(t *testing.T) {
	gen := &stubGenerator{data: GraphData{Nodes: nodes("p", "q"), Edges: []Edge{prereq("p", "q")}}}
	p, err := newTestBuilder(nil, gen).Build(context.Background(), "kotlin", nil)
	require.NoError(t, err)

	assert.Equal(t, SourceGenerated, p.Source)
	assert.False(t, p.Fallback)
	assert.Equal(t, []string{"p", "q"}, p.SkillPath)
}

func TestBuild_EmptyTarget(t *testing.T) {
	p, err := newTestBuilder(nil, nil).Build(context.Background(), "   ", nil)
	require.NoError(t, err)
	assert.Empty(t, p.Nodes)
	assert.Empty(t, p.SkillPath)
}

func TestBuildBatch_IsolatesFailures(t *testing.T) {
	ref := MapProvider{
		"go": {Nodes: nodes("a", "b"), Edges: []Edge{prereq("a", "b")}},
		"rust": {
			Nodes: nodes("x", "y"),
			Edges: []Edge{prereq("x", "y"), prereq("y", "x")},
		},
	}
	b := newTestBuilder(ref, nil)

	var mu sync.Mutex
	var finished []string
	results := b.BuildBatch(context.Background(), []string{"go", "rust", "python"}, nil, BatchOptions{
		Parallelism: 2,
		OnDone: func(r BatchResult) {
			mu.Lock()
			finished = append(finished, r.Skill)
			mu.Unlock()
		},
	})

	require.Len(t, results, 3)
	assert.Equal(t, "go", results[0].Skill)
	assert.NoError(t, results[0].Err)
	assert.Equal(t, []string{"a", "b"}, results[0].Path.SkillPath)

	assert.True(t, errors.Is(results[1].Err, ErrPrerequisiteCycle))

	assert.NoError(t, results[2].Err)
	assert.True(t, results[2].Path.Fallback)

	assert.ElementsMatch(t, []string{"go", "rust", "python"}, finished)
}

func TestBuildBatch_Empty(t *testing.T) {
	assert.Empty(t, newTestBuilder(nil, nil).BuildBatch(context.Background(), nil, nil, BatchOptions{}))
}

func TestFallbackGraph_NonASCIITitle(t *testing.T) {
	data := FallbackGraph("язык программирования")
	require.NotEmpty(t, data.Nodes)

	assert.Equal(t, "Язык Программирования Foundations", data.Nodes[0].Title)
	for _, n := range data.Nodes {
		assert.True(t, utf8.ValidString(n.Title), n.Title)
	}
}

func TestBuildBatch_CancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int
	results := newTestBuilder(nil, nil).BuildBatch(ctx, []string{"go", "rust"}, nil, BatchOptions{
		OnDone: func(BatchResult) { calls++ },
	})

	require.Len(t, results, 2)
	for i, skill := range []string{"go", "rust"} {
		assert.Equal(t, skill, results[i].Skill)
		assert.True(t, errors.Is(results[i].Err, context.Canceled))
	}
	assert.Zero(t, calls)
}
