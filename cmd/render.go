package cmd

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/renderer"
)

// RenderScene renders a debug image of a scene to a PPM or PNG file.
func RenderScene(ctx *cli.Context) error {
	logger, err := setupLogging(ctx)
	if err != nil {
		return err
	}
	defer syncLogger(logger)

	out := ctx.String("out")
	ext := strings.ToLower(filepath.Ext(out))
	if ext != ".ppm" && ext != ".png" {
		return fmt.Errorf("unsupported output format %q: use .ppm or .png", ext)
	}

	s, err := loadScene(ctx, logger)
	if err != nil {
		return err
	}

	config := s.Render
	cameraConfig := s.Camera
	if ctx.IsSet("width") || ctx.IsSet("height") {
		if ctx.IsSet("width") {
			config.Width = ctx.Int("width")
		}
		if ctx.IsSet("height") {
			config.Height = ctx.Int("height")
		}
		// Keep pixels square for the new image size
		if config.Width > 0 && config.Height > 0 {
			cameraConfig.AspectRatio = config.AspectRatio()
		}
	}
	if ctx.IsSet("samples") {
		config.Samples = ctx.Int("samples")
	}
	if ctx.IsSet("mode") {
		config.Mode = renderer.Mode(ctx.String("mode"))
	}
	if ctx.IsSet("seed") {
		config.Seed = ctx.Int64("seed")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	runCtx, cancel := interruptible()
	defer cancel()

	rt := renderer.NewRaytracer(s.World, renderer.NewCamera(cameraConfig), config, logger)
	img, stats, err := rt.Render(runCtx)
	if err != nil {
		return err
	}

	if err := writeImage(out, ext, img, config.Samples); err != nil {
		return err
	}
	logger.Info("image written", zap.String("path", out))

	fmt.Fprintf(ctx.App.Writer, "Rendered %s (%dx%d, %d spp) in %v: %d rays, %.1f%% hits\n",
		s.Name, config.Width, config.Height, config.Samples, stats.Duration, stats.Rays, stats.HitRate()*100)
	fmt.Fprintf(ctx.App.Writer, "Render saved as %s\n", out)
	return nil
}

func writeImage(path, ext string, img *renderer.ImageData, samples int) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file: %w", err)
	}
	defer file.Close()

	if ext == ".png" {
		if err := png.Encode(file, img.ToRGBA(samples)); err != nil {
			return fmt.Errorf("error saving PNG: %w", err)
		}
		return nil
	}
	if err := img.WritePPM(file, samples); err != nil {
		return fmt.Errorf("error saving PPM: %w", err)
	}
	return nil
}
