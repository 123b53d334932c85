package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/df07/go-raytracer-bvh/pkg/logging"
	"github.com/df07/go-raytracer-bvh/pkg/scene"
)

func setupLogging(ctx *cli.Context) (*zap.Logger, error) {
	verbosity := logging.Quiet
	if ctx.GlobalBool("v") {
		verbosity = logging.Verbose
	}
	if ctx.GlobalBool("vv") {
		verbosity = logging.Debug
	}
	return logging.New(verbosity)
}

func syncLogger(logger *zap.Logger) {
	// Syncing a terminal fails on some platforms; nothing is lost
	_ = logger.Sync()
}

// interruptible returns a context cancelled on Ctrl-C
func interruptible() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// loadScene resolves the --scene flag against the built-ins and the scenes directory
func loadScene(ctx *cli.Context, logger *zap.Logger) (*scene.Scene, error) {
	return scene.Resolve(ctx.String("scene"), ctx.GlobalString("scenes-dir"), logger)
}
