package sim

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RunAll runs independent configs concurrently with at most workers in
// flight (GOMAXPROCS when workers <= 0). Results keep input order. The first
// error stops configs that have not started yet.
func RunAll(ctx context.Context, cfgs []Config, workers int) ([]*Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	results := make([]*Result, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := Run(cfg)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
