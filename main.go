package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-raytracer-bvh/cmd"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	sceneFlag := cli.StringFlag{
		Name:  "scene, s",
		Value: "default",
		Usage: "built-in scene ID, scene name in the scenes directory or path to a .toml file",
	}
	rayFlags := []cli.Flag{
		sceneFlag,
		cli.IntFlag{
			Name:  "rays",
			Value: 100000,
			Usage: "number of random rays to trace",
		},
		cli.IntFlag{
			Name:  "workers",
			Value: 0,
			Usage: "number of query workers (0 uses one per CPU)",
		},
		cli.Int64Flag{
			Name:  "seed",
			Value: 42,
			Usage: "seed for the random rays",
		},
	}

	app := cli.NewApp()
	app.Name = "raygeom"
	app.Usage = "build bounding volume hierarchies over scenes and trace rays through them"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "scenes-dir",
			Value: "scenes",
			Usage: "directory searched for .toml scene files",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a debug image of a scene",
			Description: `
Trace jittered camera rays through the scene's BVH and colour each hit by its
surface normal or material albedo. No light transport is simulated.

The image is written as a plain PPM or, for a .png output name, a PNG.`,
			Flags: []cli.Flag{
				sceneFlag,
				cli.StringFlag{
					Name:  "out, o",
					Value: "render.ppm",
					Usage: "image filename (.ppm or .png)",
				},
				cli.IntFlag{
					Name:  "width",
					Usage: "image width, overriding the scene",
				},
				cli.IntFlag{
					Name:  "height",
					Usage: "image height, overriding the scene",
				},
				cli.IntFlag{
					Name:  "samples",
					Usage: "camera rays per pixel, overriding the scene",
				},
				cli.StringFlag{
					Name:  "mode",
					Usage: "hit colouring: normal or albedo",
				},
				cli.Int64Flag{
					Name:  "seed",
					Usage: "seed for pixel jitter and lens sampling",
				},
			},
			Action: cmd.RenderScene,
		},
		{
			Name:   "inspect",
			Usage:  "print scene and BVH statistics",
			Flags:  []cli.Flag{sceneFlag},
			Action: cmd.InspectScene,
		},
		{
			Name:  "pick",
			Usage: "describe the object seen through a pixel",
			Flags: []cli.Flag{
				sceneFlag,
				cli.IntFlag{
					Name:  "x",
					Usage: "pixel column",
				},
				cli.IntFlag{
					Name:  "y",
					Usage: "pixel row, counted from the top",
				},
			},
			Action: cmd.PickPixel,
		},
		{
			Name:  "verify",
			Usage: "compare BVH queries against a brute-force scan",
			Description: `
Shoot random rays at the scene and check that the BVH reports the same closest
hit as testing every object. Exits with status 1 on any disagreement.`,
			Flags:  rayFlags,
			Action: cmd.VerifyScene,
		},
		{
			Name:   "bench",
			Usage:  "measure query throughput of the BVH and a brute-force scan",
			Flags:  rayFlags,
			Action: cmd.BenchScene,
		},
		{
			Name:   "scenes",
			Usage:  "list built-in and discovered scenes",
			Action: cmd.ListScenes,
		},
	}

	return app
}
