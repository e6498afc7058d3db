package app

import (
	"log"
	"time"

	"skill-graph/internal/config"
	"skill-graph/internal/domain/learning"
	"skill-graph/internal/domain/market"
	"skill-graph/internal/domain/matching"
	"skill-graph/internal/domain/relationship"
	"skill-graph/internal/domain/skill"
	"skill-graph/internal/repository"
	"skill-graph/internal/usecase"
)

// Core is the I/O-free engine shared by the server and the CLI.
type Core struct {
	Normalizer *skill.Normalizer
	Matcher    *skill.Matcher
	Engine     *market.Engine
	Scorer     *matching.Scorer
	Taxonomy   relationship.Taxonomy
	Experience matching.ExperienceFilter

	engineCfg config.EngineConfig
	logger    *log.Logger
}

func NewCore(cfg config.EngineConfig, logger *log.Logger) *Core {
	if logger == nil {
		logger = log.Default()
	}
	n := skill.NewNormalizer(skill.DefaultVocabulary())
	cache := market.NewWeightCache(market.CacheConfig{
		TTL:            cfg.WeightCacheTTL,
		Capacity:       cfg.WeightCacheCapacity,
		DriftTolerance: cfg.WeightCacheDrift,
	})
	tiers := market.NewTierClassifier(market.DefaultTierTable())

	return &Core{
		Normalizer: n,
		Matcher:    skill.NewMatcher(n, skill.DefaultMatchThreshold),
		Engine:     market.NewEngine(n, cache, tiers, market.DefaultCoefficients()),
		Scorer:     matching.NewScorer(n),
		Taxonomy:   relationship.DefaultTaxonomy(),
		Experience: matching.ExperienceFilter{
			Mode:             matching.ParseExperienceMode(cfg.ExperienceMode),
			MinCompatibility: cfg.ExperienceMinCompatibility,
		},
		engineCfg: cfg,
		logger:    logger,
	}
}

func (c *Core) NewBuilder(ref learning.ReferenceProvider, gen learning.Generator, timeout time.Duration) *learning.Builder {
	return learning.NewBuilder(learning.BuilderParams{
		Normalizer:       c.Normalizer,
		Reference:        ref,
		Generator:        gen,
		GeneratorTimeout: timeout,
		Logger:           c.logger,
	})
}

// NewScoring builds the scoring usecase. corpus may be nil, in which case
// only request-supplied jobs can be scored.
func (c *Core) NewScoring(corpus repository.JobCorpusRepository) *usecase.Scoring {
	return usecase.NewScoringUsecase(usecase.ScoringParams{
		Normalizer: c.Normalizer,
		Matcher:    c.Matcher,
		Engine:     c.Engine,
		Scorer:     c.Scorer,
		Taxonomy:   c.Taxonomy,
		Corpus:     corpus,
		Experience: c.Experience,
		Logger:     c.logger,
	})
}

func (c *Core) NewLearningPaths(b *learning.Builder, notifier usecase.ProgressNotifier) *usecase.LearningPath {
	return usecase.NewLearningPathUsecase(b, notifier, c.engineCfg.BatchParallelism, c.logger)
}
