package stream

import (
	"context"
	"fmt"

	"github.com/vnykmshr/seqflow/pkg/common/validation"
	"github.com/vnykmshr/seqflow/pkg/metrics"
	"github.com/vnykmshr/seqflow/pkg/scheduling/workerpool"
)

// ParallelConfig tunes parallel reductions.
type ParallelConfig struct {
	// Workers is the number of partitions reduced concurrently. Must be positive.
	Workers int

	// Registry counts reduced partitions when set.
	Registry *metrics.Registry
}

// ParallelReduce reduces items by splitting them into contiguous partitions,
// folding each partition with accumulate starting from identity() on a worker
// pool, and combining the partial results in partition order. combine must be
// associative and identity() must be neutral for it.
func ParallelReduce[T, A any](
	ctx context.Context,
	items []T,
	cfg ParallelConfig,
	identity func() A,
	accumulate func(A, T) A,
	combine func(A, A) A,
) (A, error) {
	return parallelReduce(ctx, "reduce", items, cfg, identity, accumulate, combine)
}

// ParallelCount counts the items matching predicate using ParallelReduce.
func ParallelCount[T any](ctx context.Context, items []T, cfg ParallelConfig, predicate func(T) bool) (int64, error) {
	return parallelReduce(ctx, "count", items, cfg,
		func() int64 { return 0 },
		func(n int64, v T) int64 {
			if predicate(v) {
				return n + 1
			}
			return n
		},
		func(a, b int64) int64 { return a + b },
	)
}

func parallelReduce[T, A any](
	ctx context.Context,
	operation string,
	items []T,
	cfg ParallelConfig,
	identity func() A,
	accumulate func(A, T) A,
	combine func(A, A) A,
) (A, error) {
	var zero A
	if err := validation.ValidatePositive("stream", "workers", cfg.Workers); err != nil {
		return zero, err
	}
	if len(items) == 0 {
		return identity(), ctx.Err()
	}

	parts := min(cfg.Workers, len(items))
	pool, err := workerpool.New(workerpool.Config{
		WorkerCount:     parts,
		QueueSize:       parts,
		BufferedResults: true,
	})
	if err != nil {
		return zero, err
	}

	partials := make([]A, parts)
	submitted := 0
	var firstErr error
	for p := 0; p < parts; p++ {
		p := p
		chunk := items[p*len(items)/parts : (p+1)*len(items)/parts]
		err := pool.Submit(ctx, workerpool.TaskFunc(func(ctx context.Context) error {
			acc := identity()
			for _, v := range chunk {
				if err := ctx.Err(); err != nil {
					return err
				}
				acc = accumulate(acc, v)
			}
			partials[p] = acc
			return nil
		}))
		if err != nil {
			firstErr = err
			break
		}
		submitted++
	}

	for i := 0; i < submitted; i++ {
		result := <-pool.Results()
		if result.Error != nil && firstErr == nil {
			firstErr = fmt.Errorf("parallel %s partition failed: %w", operation, result.Error)
		}
	}
	<-pool.Shutdown()

	if firstErr != nil {
		return zero, firstErr
	}

	if cfg.Registry != nil {
		cfg.Registry.ParallelPartitions.WithLabelValues(operation).Add(float64(parts))
	}

	result := partials[0]
	for _, partial := range partials[1:] {
		result = combine(result, partial)
	}
	return result, nil
}
