package cmd

import (
	"encoding/json"

	"github.com/urfave/cli"
)

// PickPixel reports, as JSON, the object seen through one pixel of the
// scene's image. Rows are counted from the top.
func PickPixel(ctx *cli.Context) error {
	logger, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	s, err := loadScene(ctx, logger)
	if err != nil {
		return err
	}

	x, y := ctx.Int("x"), ctx.Int("y")
	result, err := s.InspectPixel(x, y)
	if err != nil {
		return err
	}

	encoder := json.NewEncoder(ctx.App.Writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result.Response(x, y))
}
