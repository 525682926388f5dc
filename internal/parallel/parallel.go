// Package parallel provides bounded parallel execution helpers.
package parallel

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// NumWorkers returns the default number of workers for parallel operations.
func NumWorkers() int {
	return runtime.GOMAXPROCS(0)
}

// Workers resolves a requested worker count: values below 1 mean
// NumWorkers, and the count never exceeds the number of tasks.
func Workers(requested, tasks int) int {
	n := requested
	if n < 1 {
		n = NumWorkers()
	}
	if n > tasks {
		n = tasks
	}
	return max(n, 1)
}

// For executes fn for indices [start, end) using at most n workers.
// Indices are handed out in contiguous chunks. The first error cancels the
// context passed to the remaining calls and is returned.
func For(ctx context.Context, start, end, n int, fn func(ctx context.Context, i int) error) error {
	total := end - start
	if total <= 0 {
		return ctx.Err()
	}

	n = Workers(n, total)
	if n == 1 {
		for i := start; i < end; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := fn(ctx, i); err != nil {
				return err
			}
		}
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	chunkSize := (total + n - 1) / n

	for w := 0; w < n; w++ {
		chunkStart := start + w*chunkSize
		chunkEnd := min(chunkStart+chunkSize, end)
		if chunkStart >= chunkEnd {
			break
		}

		g.Go(func() error {
			for i := chunkStart; i < chunkEnd; i++ {
				if err := ctx.Err(); err != nil {
					return err
				}
				if err := fn(ctx, i); err != nil {
					return err
				}
			}
			return nil
		})
	}

	return g.Wait()
}
