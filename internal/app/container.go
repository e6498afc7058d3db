package app

import (
	"context"
	"errors"
	"log"
	"time"

	"skill-graph/internal/config"
	"skill-graph/internal/database"
	dbpostgres "skill-graph/internal/database/postgres"
	"skill-graph/internal/domain/learning"
	"skill-graph/internal/infrastructure/cache"
	"skill-graph/internal/llm"
	"skill-graph/internal/reference"
	"skill-graph/internal/repository"
	"skill-graph/internal/usecase"
	"skill-graph/internal/ws"
)

// Container owns every long-lived dependency of the server. Postgres, Redis
// and the LLM are optional; each one missing only disables its feature.
type Container struct {
	Config config.Config
	Logger *log.Logger
	Core   *Core

	DB    database.DB
	Cache *cache.Redis
	LLM   llm.Client
	Hub   *ws.Hub

	Skills        *usecase.Skill
	Scoring       *usecase.Scoring
	LearningPaths *usecase.LearningPath
}

func NewContainer(ctx context.Context, cfg config.Config, logger *log.Logger) (*Container, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := &Container{Config: cfg, Logger: logger, Core: NewCore(cfg.Engine, logger)}

	var corpus repository.JobCorpusRepository
	if cfg.Database.Enabled() {
		connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		db, err := dbpostgres.Connect(connectCtx, cfg.Database)
		cancel()
		if err != nil {
			logger.Printf("component=container dep=postgres status=disabled err=%v", err)
		} else {
			c.DB = db
			corpus = repository.NewPostgresJobCorpusRepository(db)
		}
	}

	c.Cache = cache.NewRedis(cfg.Redis, logger)

	refs, err := reference.LoadFile(cfg.Engine.ReferenceGraphsPath, c.Core.Normalizer)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	logger.Printf("component=container dep=reference_graphs count=%d", len(refs))

	var gen learning.Generator
	if cfg.Generator.GeminiAPIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.Generator.GeminiAPIKey, cfg.Generator.GeminiModel)
		if err != nil {
			logger.Printf("component=container dep=gemini status=disabled err=%v", err)
		} else {
			c.LLM = client
			gen = learning.NewCachedGenerator(llm.NewGraphGenerator(client), c.Cache, cfg.Redis.TTL, logger)
		}
	}

	c.Hub = ws.NewHub(logger)
	builder := c.Core.NewBuilder(refs, gen, cfg.Generator.Timeout)

	c.Skills = usecase.NewSkillUsecase(c.Core.Normalizer, c.Core.Matcher)
	c.Scoring = c.Core.NewScoring(corpus)
	c.LearningPaths = c.Core.NewLearningPaths(builder, ws.NewNotifier(c.Hub))
	return c, nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.LLM != nil {
		errs = append(errs, c.LLM.Close())
	}
	if c.Cache != nil {
		errs = append(errs, c.Cache.Close())
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}
	return errors.Join(errs...)
}
