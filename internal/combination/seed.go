package combination

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ClassicPairs are the combinations of the four classic elements.
var ClassicPairs = []Pair{
	{First: "Water", Second: "Fire"},
	{First: "Water", Second: "Earth"},
	{First: "Fire", Second: "Earth"},
	{First: "Water", Second: "Air"},
	{First: "Earth", Second: "Air"},
	{First: "Fire", Second: "Air"},
}

// PairResult is the outcome of one pair in CombineAll.
type PairResult struct {
	Pair   Pair
	Result Result
	Err    error
}

// CombineAll combines every pair with at most concurrency combinations in flight.
// Results keep the order of pairs. A failing pair does not stop the others unless ctx is canceled.
func (c *Combiner) CombineAll(ctx context.Context, pairs []Pair, concurrency int) ([]PairResult, error) {
	results := make([]PairResult, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result, err := c.Combine(ctx, pair.First, pair.Second)
			results[i] = PairResult{Pair: pair, Result: result, Err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, fmt.Errorf("combine %d pairs > %w", len(pairs), err)
	}
	return results, nil
}
