// Package workerpool splits batch work — computing a frame's worth of
// entity transforms before handing them to a single Context.
// UpdateTransforms call — across goroutines. The Context itself is not
// safe for concurrent mutation (spec.md §5), so callers use this package
// to parallelize the pure transform math upstream and then apply results
// serially.
package workerpool

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Pool bounds the number of goroutines ParallelFor and Batch fan out to.
type Pool struct {
	numWorkers int
}

// New creates a pool with numWorkers goroutines; numWorkers <= 0 selects
// runtime.NumCPU().
func New(numWorkers int) *Pool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Pool{numWorkers: numWorkers}
}

// NumWorkers returns the pool's goroutine budget.
func (p *Pool) NumWorkers() int {
	return p.numWorkers
}

// ParallelFor splits [start, end) into roughly p.numWorkers contiguous
// chunks and runs fn over each index concurrently, stopping at the first
// error and propagating ctx cancellation to the other chunks.
func (p *Pool) ParallelFor(ctx context.Context, start, end int, fn func(i int) error) error {
	if start >= end {
		return nil
	}

	totalWork := end - start
	chunkSize := max(1, totalWork/p.numWorkers)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.numWorkers)
	for i := start; i < end; i += chunkSize {
		chunkStart := i
		chunkEnd := min(i+chunkSize, end)
		g.Go(func() error {
			for j := chunkStart; j < chunkEnd; j++ {
				select {
				case <-gctx.Done():
					return gctx.Err()
				default:
				}
				if err := fn(j); err != nil {
					return err
				}
			}
			return nil
		})
	}
	return g.Wait()
}

// Batch processes items in fixed-size batches across the pool's
// goroutines, collecting each batch's output into a flat result slice in
// batch order.
func Batch[T, R any](ctx context.Context, p *Pool, items []T, batchSize int, fn func([]T) ([]R, error)) ([]R, error) {
	if len(items) == 0 {
		return nil, nil
	}
	if batchSize <= 0 {
		batchSize = len(items)
	}

	numBatches := (len(items) + batchSize - 1) / batchSize
	results := make([][]R, numBatches)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.numWorkers)

	for b := 0; b < numBatches; b++ {
		batchIdx := b
		start := batchIdx * batchSize
		end := min(start+batchSize, len(items))
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			out, err := fn(items[start:end])
			if err != nil {
				return err
			}
			results[batchIdx] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	flat := make([]R, 0, total)
	for _, r := range results {
		flat = append(flat, r...)
	}
	return flat, nil
}
