package probe

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/constraints"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
)

// BenchResult is the throughput of one benchmark run
type BenchResult struct {
	Rays          int
	Hits          int
	Workers       int
	Duration      time.Duration
	RaysPerSecond float64
}

// Bench times closest-hit queries of every ray against world
func Bench(ctx context.Context, world geometry.Hittable, rays []core.Ray, workers int) (BenchResult, error) {
	start := time.Now()
	hits, err := runBatches(ctx, len(rays), workers, func(b batch) int {
		count := 0
		for i := b.Start; i < b.End; i++ {
			if _, isHit := world.Hit(rays[i], QueryInterval); isHit {
				count++
			}
		}
		return count
	})
	if err != nil {
		return BenchResult{}, fmt.Errorf("benchmark interrupted: %w", err)
	}
	elapsed := time.Since(start)

	return BenchResult{
		Rays:          len(rays),
		Hits:          sum(hits),
		Workers:       workerCount(workers, len(hits)),
		Duration:      elapsed,
		RaysPerSecond: perSecond(len(rays), elapsed),
	}, nil
}

func sum[N constraints.Integer | constraints.Float](values []N) N {
	var total N
	for _, v := range values {
		total += v
	}
	return total
}

func perSecond[N constraints.Integer](n N, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(n) / elapsed.Seconds()
}
