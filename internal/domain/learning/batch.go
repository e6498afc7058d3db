package learning

import (
	"context"

	"skill-graph/internal/pipeline"
)

const DefaultBatchParallelism = 4

type BatchOptions struct {
	Parallelism int
	// OnDone runs once per finished skill, possibly from several goroutines.
	OnDone func(BatchResult)
}

type BatchResult struct {
	Skill string       `json:"skill"`
	Path  LearningPath `json:"path"`
	Err   error        `json:"-"`
}

// BuildBatch builds paths for several targets with bounded parallelism.
// Results keep input order and a failure for one skill never stops the rest.
func (b *Builder) BuildBatch(ctx context.Context, targets []string, currentSkills []string, opts BatchOptions) []BatchResult {
	results := make([]BatchResult, len(targets))
	if len(targets) == 0 {
		return results
	}
	workers := opts.Parallelism
	if workers <= 0 {
		workers = DefaultBatchParallelism
	}

	errs := pipeline.FanOut(ctx, len(targets), workers, func(ctx context.Context, i int) error {
		path, err := b.Build(ctx, targets[i], currentSkills)
		results[i] = BatchResult{Skill: targets[i], Path: path, Err: err}
		if opts.OnDone != nil {
			opts.OnDone(results[i])
		}
		return err
	})

	failed := 0
	for i, err := range errs {
		results[i].Skill = targets[i]
		results[i].Err = err
		if err != nil {
			failed++
		}
	}
	b.log.Printf("component=learning_builder op=batch total=%d failed=%d", len(targets), failed)
	return results
}
