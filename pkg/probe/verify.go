package probe

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/core"
	"github.com/df07/go-raytracer-bvh/pkg/geometry"
)

// Tolerance is the largest difference in t between two answers that still
// counts as agreement.
const Tolerance = 1e-9

// QueryInterval is the parameter range every probe query uses
var QueryInterval = core.NewInterval(1e-3, math.Inf(1))

// Mismatch describes a ray on which the world and the oracle disagree.
// A nil hit means the query missed.
type Mismatch struct {
	Index    int
	Ray      core.Ray
	Expected *core.HitRecord
	Actual   *core.HitRecord
}

func (m Mismatch) String() string {
	describe := func(hit *core.HitRecord) string {
		if hit == nil {
			return "miss"
		}
		return fmt.Sprintf("t=%.12g", hit.T)
	}
	return fmt.Sprintf("ray %d (origin %v, direction %v): expected %s, got %s",
		m.Index, m.Ray.Origin, m.Ray.Direction, describe(m.Expected), describe(m.Actual))
}

// Report summarizes a verification run
type Report struct {
	Rays       int
	Hits       int // Rays the oracle reports as hits
	Mismatches int
	First      *Mismatch // Lowest-index mismatch, nil when all rays agree
}

// OK reports whether every ray agreed
func (r Report) OK() bool {
	return r.Mismatches == 0
}

// Agree reports whether two closest-hit answers are the same
func Agree(expected, actual *core.HitRecord) bool {
	if expected == nil || actual == nil {
		return expected == actual
	}
	return math.Abs(expected.T-actual.T) <= Tolerance
}

type verifyResult struct {
	hits       int
	mismatches int
	first      *Mismatch
}

// Verify queries world and oracle with every ray from a fixed number of
// workers and compares the answers. A non-positive worker count uses one
// worker per CPU. A nil logger discards output.
func Verify(ctx context.Context, world, oracle geometry.Hittable, rays []core.Ray, workers int, logger *zap.Logger) (Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	results, err := runBatches(ctx, len(rays), workers, func(b batch) verifyResult {
		var result verifyResult
		for i := b.Start; i < b.End; i++ {
			expected, _ := oracle.Hit(rays[i], QueryInterval)
			actual, _ := world.Hit(rays[i], QueryInterval)
			if expected != nil {
				result.hits++
			}
			if !Agree(expected, actual) {
				result.mismatches++
				if result.first == nil {
					result.first = &Mismatch{Index: i, Ray: rays[i], Expected: expected, Actual: actual}
				}
			}
		}
		return result
	})
	if err != nil {
		return Report{}, fmt.Errorf("verification interrupted: %w", err)
	}

	report := Report{Rays: len(rays)}
	for _, result := range results {
		report.Hits += result.hits
		report.Mismatches += result.mismatches
		if report.First == nil {
			report.First = result.first
		}
	}

	logger.Info("verification finished",
		zap.Int("rays", report.Rays),
		zap.Int("hits", report.Hits),
		zap.Int("mismatches", report.Mismatches),
		zap.Int("workers", workerCount(workers, len(results))),
		zap.Duration("duration", time.Since(start)))
	if report.First != nil {
		logger.Warn("first mismatch", zap.Stringer("mismatch", report.First))
	}

	return report, nil
}
