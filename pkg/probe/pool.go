package probe

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// batchSize is the number of rays a worker takes from the queue at a time.
// Cancellation is checked between batches.
const batchSize = 256

// batch is a contiguous range of ray indices handled by one worker
type batch struct {
	ID         int // For deterministic ordering of results
	Start, End int
}

func splitBatches(n int) []batch {
	batches := make([]batch, 0, (n+batchSize-1)/batchSize)
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		batches = append(batches, batch{ID: len(batches), Start: start, End: end})
	}
	return batches
}

// workerCount returns the number of workers to start for n batches
func workerCount(requested, batches int) int {
	if requested <= 0 {
		requested = runtime.NumCPU()
	}
	if requested > batches {
		requested = batches
	}
	if requested < 1 {
		requested = 1
	}
	return requested
}

// runBatches feeds every batch to a fixed number of workers. Results are
// stored by batch ID so callers can merge them in ray order.
func runBatches[R any](ctx context.Context, n, workers int, work func(b batch) R) ([]R, error) {
	batches := splitBatches(n)
	results := make([]R, len(batches))

	queue := make(chan batch, len(batches))
	for _, b := range batches {
		queue <- b
	}
	close(queue)

	g, ctx := errgroup.WithContext(ctx)
	for i := 0; i < workerCount(workers, len(batches)); i++ {
		g.Go(func() error {
			for b := range queue {
				if err := ctx.Err(); err != nil {
					return err
				}
				// Each batch owns its slot, so no locking is needed
				results[b.ID] = work(b)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
