package usecase

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"skill-graph/internal/domain/job"
	"skill-graph/internal/domain/market"
	"skill-graph/internal/domain/matching"
	"skill-graph/internal/domain/relationship"
	"skill-graph/internal/domain/skill"
	"skill-graph/internal/repository"

	"golang.org/x/sync/errgroup"
)

const (
	defaultScoreLimit    = 20
	maxScoreLimit        = 200
	defaultWeightWorkers = 8
)

type ScoreParams struct {
	UserSkills      []string
	YearsExperience *float64
	// Jobs, when set, is the corpus. Otherwise the corpus is fetched by Query.
	Jobs  []job.Posting
	Query string
	Limit int
}

type ScoreResult struct {
	Jobs       []matching.ScoredJob
	UserSkills []string
	CorpusSize int
	Weights    map[string]market.SkillWeight
}

type ScoringUsecase interface {
	Score(ctx context.Context, p ScoreParams) (ScoreResult, error)
}

type ScoringParams struct {
	Normalizer    *skill.Normalizer
	Matcher       *skill.Matcher
	Engine        *market.Engine
	Scorer        *matching.Scorer
	Taxonomy      relationship.Taxonomy
	Corpus        repository.JobCorpusRepository
	Experience    matching.ExperienceFilter
	WeightWorkers int
	Logger        *log.Logger
}

type Scoring struct {
	normalizer *skill.Normalizer
	matcher    *skill.Matcher
	engine     *market.Engine
	scorer     *matching.Scorer
	taxonomy   relationship.Taxonomy
	corpus     repository.JobCorpusRepository
	experience matching.ExperienceFilter
	workers    int
	logger     *log.Logger
}

func NewScoringUsecase(p ScoringParams) *Scoring {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}
	workers := p.WeightWorkers
	if workers <= 0 {
		workers = defaultWeightWorkers
	}
	tax := p.Taxonomy
	if tax == nil {
		tax = relationship.DefaultTaxonomy()
	}
	return &Scoring{
		normalizer: p.Normalizer,
		matcher:    p.Matcher,
		engine:     p.Engine,
		scorer:     p.Scorer,
		taxonomy:   tax,
		corpus:     p.Corpus,
		experience: p.Experience,
		workers:    workers,
		logger:     logger,
	}
}

// Score ranks the corpus for a candidate: market weights, then the
// co-occurrence graph, then per-job relevance, then the experience stage.
func (u *Scoring) Score(ctx context.Context, p ScoreParams) (ScoreResult, error) {
	start := time.Now()

	limit := p.Limit
	if limit < 0 {
		return ScoreResult{}, ErrInvalidInput
	}
	if limit == 0 {
		limit = defaultScoreLimit
	}
	if limit > maxScoreLimit {
		limit = maxScoreLimit
	}

	corpus, err := u.loadCorpus(ctx, p)
	if err != nil {
		return ScoreResult{}, err
	}

	userSkills := u.matcher.ResolveAll(p.UserSkills)
	stats := u.engine.Stats(corpus)

	weights, err := u.weigh(ctx, stats, userSkills)
	if err != nil {
		return ScoreResult{}, err
	}

	graph := relationship.BuildFromSkillSets(stats.PostingSkills(), u.taxonomy)
	scored := u.scorer.ScoreAll(userSkills, corpus, weights, graph)

	filter := u.experience
	filter.UserYears = p.YearsExperience
	scored = filter.Apply(scored)

	if len(scored) > limit {
		scored = scored[:limit]
	}

	u.logger.Printf("component=scoring op=score status=ok corpus=%d user_skills=%d results=%d graph_skills=%d duration_ms=%d",
		len(corpus), len(userSkills), len(scored), graph.Len(), time.Since(start).Milliseconds())

	return ScoreResult{
		Jobs:       scored,
		UserSkills: userSkills,
		CorpusSize: stats.TotalJobs,
		Weights:    weights,
	}, nil
}

func (u *Scoring) loadCorpus(ctx context.Context, p ScoreParams) ([]job.Posting, error) {
	if len(p.Jobs) > 0 {
		return p.Jobs, nil
	}
	if p.Query == "" {
		return []job.Posting{}, nil
	}
	if u.corpus == nil {
		return nil, ErrCorpusUnavailable
	}
	jobs, err := u.corpus.FetchCorpus(ctx, p.Query, 0)
	if err != nil {
		u.logger.Printf("component=scoring op=fetch_corpus status=error query=%q err=%v", p.Query, err)
		return nil, fmt.Errorf("%w: %v", ErrCorpusUnavailable, err)
	}
	return jobs, nil
}

// weigh computes weights for every corpus skill plus the user's own skills.
// The engine cache is shared, so concurrent calls are safe.
func (u *Scoring) weigh(ctx context.Context, stats *market.CorpusStats, userSkills []string) (map[string]market.SkillWeight, error) {
	skills := unionSorted(stats.Skills(), userSkills)
	out := make(map[string]market.SkillWeight, len(skills))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(u.workers)
	for _, s := range skills {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			w := u.engine.Weigh(s, stats)
			if w.Skill == "" {
				return nil
			}
			mu.Lock()
			out[w.Skill] = w
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func unionSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	out := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, s := range list {
			if _, ok := seen[s]; ok {
				continue
			}
			seen[s] = struct{}{}
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
