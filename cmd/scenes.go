package cmd

import (
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-raytracer-bvh/pkg/scene"
)

// ListScenes prints the built-in scenes and the TOML scenes found in the
// scenes directory.
func ListScenes(ctx *cli.Context) error {
	logger, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	groups, err := scene.ListAllScenes(ctx.GlobalString("scenes-dir"), logger)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Group", "ID", "Name", "Type", "Description"})
	for _, group := range groups {
		for _, info := range group.Scenes {
			table.Append([]string{group.Name, info.ID, info.Name, info.Type, info.Description})
		}
	}
	table.Render()

	return nil
}
