package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// InspectScene builds a scene and prints its contents and BVH shape.
func InspectScene(ctx *cli.Context) error {
	logger, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	s, err := loadScene(ctx, logger)
	if err != nil {
		return err
	}

	stats := s.GetStats()
	bounds := s.Bounds()

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Property", "Value"})
	table.AppendBulk([][]string{
		{"Scene", s.Name},
		{"Objects", fmt.Sprintf("%d", stats.Objects)},
		{"Spheres", fmt.Sprintf("%d", stats.Spheres)},
		{"Rects", fmt.Sprintf("%d", stats.Rects)},
		{"Cuboids", fmt.Sprintf("%d", stats.Cuboids)},
		{"Materials", fmt.Sprintf("%d", stats.Materials)},
		{"BVH nodes", fmt.Sprintf("%d", stats.BVH.Nodes)},
		{"BVH leaves", fmt.Sprintf("%d", stats.BVH.Leaves)},
		{"BVH max depth", fmt.Sprintf("%d", stats.BVH.MaxDepth)},
		{"BVH avg depth", fmt.Sprintf("%.2f", stats.BVH.AvgDepth)},
		{"Bounds min", formatVec(bounds.Min.X, bounds.Min.Y, bounds.Min.Z)},
		{"Bounds max", formatVec(bounds.Max.X, bounds.Max.Y, bounds.Max.Z)},
		{"Image", fmt.Sprintf("%dx%d, %d spp, %s", s.Render.Width, s.Render.Height, s.Render.Samples, s.Render.Mode)},
	})
	table.Render()

	return nil
}

func formatVec(x, y, z float64) string {
	return fmt.Sprintf("(%g, %g, %g)", x, y, z)
}
