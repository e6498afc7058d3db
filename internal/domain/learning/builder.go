package learning

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"skill-graph/internal/domain/skill"

	"github.com/google/uuid"
)

const DefaultGeneratorTimeout = 30 * time.Second

type BuilderParams struct {
	Normalizer       *skill.Normalizer
	Reference        ReferenceProvider
	Generator        Generator
	GeneratorTimeout time.Duration
	Logger           *log.Logger
}

// Builder turns a target skill into a validated, ordered learning path.
type Builder struct {
	normalizer *skill.Normalizer
	reference  ReferenceProvider
	generator  Generator
	timeout    time.Duration
	log        *log.Logger
	newID      func() uuid.UUID
}

func NewBuilder(p BuilderParams) *Builder {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}
	timeout := p.GeneratorTimeout
	if timeout <= 0 {
		timeout = DefaultGeneratorTimeout
	}
	return &Builder{
		normalizer: p.Normalizer,
		reference:  p.Reference,
		generator:  p.Generator,
		timeout:    timeout,
		log:        logger,
		newID:      uuid.New,
	}
}

// Build runs lookup, validation, repair, ordering and categorization for one
// target. The only error it returns is a *CycleError; generator failures
// degrade to FallbackGraph.
func (b *Builder) Build(ctx context.Context, target string, currentSkills []string) (LearningPath, error) {
	id := target
	if b.normalizer != nil {
		id = b.normalizer.Normalize(target)
	}
	if id == "" {
		return LearningPath{TargetSkill: target, Nodes: []Node{}, Edges: []Edge{}, SkillPath: []string{},
			Warnings: []string{"empty target skill"}}, nil
	}

	data, source, reason := b.lookup(ctx, id, currentSkills)
	path, err := assemble(id, data)
	if err != nil {
		b.log.Printf("component=learning_builder skill=%s source=%s status=cycle err=%v", id, source, err)
		return LearningPath{}, err
	}

	path.ID = b.newID()
	path.Source = source
	if source == SourceFallback {
		path.Fallback = true
		path.Warnings = append([]string{"fallback graph used: " + reason}, path.Warnings...)
	}
	b.log.Printf("component=learning_builder skill=%s source=%s nodes=%d edges=%d warnings=%d status=ok",
		id, source, len(path.Nodes), len(path.Edges), len(path.Warnings))
	return path, nil
}

func (b *Builder) lookup(ctx context.Context, skillID string, current []string) (GraphData, Source, string) {
	if b.reference != nil {
		if data, ok := b.reference.Lookup(skillID); ok {
			return data, SourceReference, ""
		}
	}
	if b.generator == nil {
		return FallbackGraph(skillID), SourceFallback, "no reference graph and no generator"
	}

	data, err := b.generate(ctx, skillID, current)
	if err == nil && len(data.Nodes) == 0 {
		err = fmt.Errorf("%w: no nodes", ErrInvalidPayload)
	}
	if err != nil {
		reason := "generator error"
		if errors.Is(err, context.DeadlineExceeded) {
			reason = "generator timeout"
		}
		b.log.Printf("component=learning_builder skill=%s step=generate status=fallback err=%v", skillID, err)
		return FallbackGraph(skillID), SourceFallback, reason
	}
	return data, SourceGenerated, ""
}

func (b *Builder) generate(ctx context.Context, skillID string, current []string) (GraphData, error) {
	ctx, cancel := context.WithTimeout(ctx, b.timeout)
	defer cancel()

	type result struct {
		data GraphData
		err  error
	}
	ch := make(chan result, 1)
	go func() {
		data, err := b.generator.Generate(ctx, skillID, current)
		ch <- result{data: data, err: err}
	}()

	select {
	case <-ctx.Done():
		return GraphData{}, ctx.Err()
	case r := <-ch:
		return r.data, r.err
	}
}

func assemble(skillID string, data GraphData) (LearningPath, error) {
	g := newWorkGraph(data)
	g.validate(data)
	g.synthesizeConnections()
	g.attachIsolated()

	order, err := g.order(skillID)
	if err != nil {
		return LearningPath{}, err
	}
	g.categorize()

	g.report.NodeCount = len(g.nodes)
	g.report.EdgeCount = len(g.edges)
	g.report.Components = g.components()
	if g.report.Components > 1 {
		g.warnings = append(g.warnings, fmt.Sprintf("graph has %d disconnected components", g.report.Components))
	}
	if g.report.Dangling == nil {
		g.report.Dangling = []DanglingRef{}
	}
	if g.report.IsolatedNodes == nil {
		g.report.IsolatedNodes = []string{}
	}

	hours, difficulty := g.totals()
	warnings := g.warnings
	if warnings == nil {
		warnings = []string{}
	}
	nodes := g.nodes
	if nodes == nil {
		nodes = []Node{}
	}
	edges := g.edges
	if edges == nil {
		edges = []Edge{}
	}
	return LearningPath{
		TargetSkill: skillID,
		TotalHours:  hours,
		Difficulty:  difficulty,
		Nodes:       nodes,
		Edges:       edges,
		SkillPath:   order,
		Integrity:   g.report,
		Warnings:    warnings,
	}, nil
}
