package cmd

import (
	"fmt"
	"math/rand"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/geometry"
	"github.com/df07/go-raytracer-bvh/pkg/probe"
)

// BenchScene measures closest-hit throughput of the BVH and of a
// brute-force scan over the same rays.
func BenchScene(ctx *cli.Context) error {
	logger, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	s, err := loadScene(ctx, logger)
	if err != nil {
		return err
	}

	runCtx, cancel := interruptible()
	defer cancel()

	rays := probe.RandomRays(s.Bounds(), ctx.Int("rays"), rand.New(rand.NewSource(ctx.Int64("seed"))))
	workers := ctx.Int("workers")

	worlds := []struct {
		name  string
		world geometry.Hittable
	}{
		{"bvh", s.World},
		{"linear", s.Linear()},
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Structure", "Rays", "Hits", "Workers", "Time", "Rays/s"})

	var rates []float64
	for _, w := range worlds {
		result, err := probe.Bench(runCtx, w.world, rays, workers)
		if err != nil {
			return err
		}
		logger.Info("benchmark finished",
			zap.String("structure", w.name),
			zap.Int("rays", result.Rays),
			zap.Duration("duration", result.Duration))

		rates = append(rates, result.RaysPerSecond)
		table.Append([]string{
			w.name,
			fmt.Sprintf("%d", result.Rays),
			fmt.Sprintf("%d", result.Hits),
			fmt.Sprintf("%d", result.Workers),
			result.Duration.String(),
			fmt.Sprintf("%.0f", result.RaysPerSecond),
		})
	}

	speedup := "n/a"
	if rates[1] > 0 {
		speedup = fmt.Sprintf("%.1fx", rates[0]/rates[1])
	}
	table.SetFooter([]string{"", "", "", "", "SPEEDUP", speedup})
	table.Render()

	return nil
}
