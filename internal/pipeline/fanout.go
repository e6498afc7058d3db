package pipeline

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Step is one indexed unit of a fan-out.
type Step func(ctx context.Context, i int) error

// FanOut runs step for every index in [0, n) with at most limit steps in
// flight. The returned slice holds each step's error at its index; a failing
// step never stops the others. Steps not started before ctx is done get
// ctx.Err().
func FanOut(ctx context.Context, n, limit int, step Step) []error {
	errs := make([]error, n)
	if n <= 0 || step == nil {
		return errs
	}
	if limit <= 0 || limit > n {
		limit = n
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			for j := i; j < n; j++ {
				errs[j] = err
			}
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			errs[i] = step(ctx, i)
			return nil
		})
	}
	_ = g.Wait()
	return errs
}
