package main

import (
	"os"

	"github.com/achilleasa/go-raytrace/cmd"
	"github.com/achilleasa/go-raytrace/log"
	"github.com/urfave/cli"
)

// Flags shared by the commands that render frames.
var renderFlags = []cli.Flag{
	cli.IntFlag{
		Name:  "width",
		Value: 800,
		Usage: "frame width (1-16384)",
	},
	cli.IntFlag{
		Name:  "height",
		Value: 600,
		Usage: "frame height (1-16384)",
	},
	cli.IntFlag{
		Name:  "workers, w",
		Value: 0,
		Usage: "number of parallel tracers (0 = one per cpu)",
	},
	cli.IntFlag{
		Name:  "bounces",
		Value: 15,
		Usage: "max number of bounces per pixel (must be positive)",
	},
	cli.Float64Flag{
		Name:  "epsilon",
		Value: 0.001,
		Usage: "min distance for accepting ray/sphere intersections (must be positive)",
	},
}

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "go-raytrace"
	app.Usage = "render a sphere scene using recursive ray tracing"
	app.Version = "0.0.1"
	app.ArgsUsage = "output_file"
	app.Flags = append([]cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}, renderFlags...)
	app.Action = cmd.RenderFrame
	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a single frame to a PPM file",
			Description: `
Render the built-in scene and write it as a binary PPM image. The .ppm
extension is appended to the output file name if missing.`,
			ArgsUsage: "output_file",
			Flags:     renderFlags,
			Action:    cmd.RenderFrame,
		},
		{
			Name:  "benchmark",
			Usage: "render multiple frames and report tracer statistics",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "passes",
					Value: 5,
					Usage: "number of frames to render",
				},
			}, renderFlags...),
			Action: cmd.Benchmark,
		},
		{
			Name:   "scene",
			Usage:  "display the contents of the built-in scene",
			Action: cmd.ShowSceneInfo,
		},
		{
			Name:      "info",
			Usage:     "display the header of a PPM image",
			ArgsUsage: "file_or_url",
			Action:    cmd.ShowImageInfo,
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.New("go-raytrace").Error(err)
		os.Exit(1)
	}
}
