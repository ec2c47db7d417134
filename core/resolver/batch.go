package resolver

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/leofalp/sitefinder/core/company"
)

// DefaultConcurrency is the batch parallelism when none is given.
const DefaultConcurrency = 4

// BatchResult is the outcome of one batch row.
type BatchResult struct {
	Query   company.Query
	Outcome Outcome
	Err     error
}

// ResolveBatch resolves queries with at most concurrency resolutions in
// flight. One failure never stops the others; each row carries its own
// error. Results keep the input order.
func (r *Resolver) ResolveBatch(ctx context.Context, queries []company.Query, concurrency int, opts ...Option) []BatchResult {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	results := make([]BatchResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)
	for i, q := range queries {
		g.Go(func() error {
			out, err := r.Resolve(gctx, q, opts...)
			results[i] = BatchResult{Query: q, Outcome: out, Err: err}
			return nil
		})
	}
	_ = g.Wait()
	return results
}
