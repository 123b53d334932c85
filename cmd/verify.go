package cmd

import (
	"fmt"
	"math/rand"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-raytracer-bvh/pkg/probe"
)

// VerifyScene checks the scene's BVH against a brute-force scan of its
// objects. Any disagreement exits with status 1.
func VerifyScene(ctx *cli.Context) error {
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
	report, err := probe.Verify(runCtx, s.World, s.Linear(), rays, ctx.Int("workers"), logger)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Scene", "Objects", "Rays", "Hits", "Mismatches"})
	table.Append([]string{
		s.Name,
		fmt.Sprintf("%d", len(s.Objects)),
		fmt.Sprintf("%d", report.Rays),
		fmt.Sprintf("%d", report.Hits),
		fmt.Sprintf("%d", report.Mismatches),
	})
	table.Render()

	if !report.OK() {
		return cli.NewExitError(fmt.Sprintf("%d of %d rays disagree, first: %s",
			report.Mismatches, report.Rays, report.First), 1)
	}
	return nil
}
