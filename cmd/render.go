package cmd

import (
	"bytes"
	"fmt"

	"github.com/achilleasa/go-raytrace/asset/ppm"
	"github.com/achilleasa/go-raytrace/renderer"
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/achilleasa/go-raytrace/tracer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Exit codes reported back to the shell.
const (
	exitRuntimeError = 1
	exitUsageError   = 2
)

// Render a still frame of the default scene and write it to a PPM file.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return cli.NewExitError(fmt.Sprintf("usage: %s [options] output_file", ctx.App.Name), exitUsageError)
	}

	opts, err := renderOptions(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), exitUsageError)
	}

	r, err := renderer.NewDefault(scene.Default(), tracer.NaiveScheduler(), opts)
	if err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeError)
	}
	defer r.Close()

	logger.Infof("rendering %dx%d frame", opts.FrameW, opts.FrameH)
	if err = r.Render(); err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeError)
	}

	imgFile, err := ppm.WriteFile(ctx.Args().First(), r.Frame(), opts.FrameW, opts.FrameH)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("could not write frame: %v", err), exitRuntimeError)
	}
	logger.Noticef("wrote frame to %s", imgFile)

	displayFrameStats(r.Stats())
	return nil
}

// Render the default scene multiple times without writing any output so the
// perfect scheduler can rebalance the row blocks between passes.
func Benchmark(ctx *cli.Context) error {
	setupLogging(ctx)

	passes := ctx.Int("passes")
	if passes <= 0 {
		return cli.NewExitError("the number of passes must be positive", exitUsageError)
	}

	opts, err := renderOptions(ctx)
	if err != nil {
		return cli.NewExitError(err.Error(), exitUsageError)
	}

	r, err := renderer.NewDefault(scene.Default(), tracer.PerfectScheduler(), opts)
	if err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeError)
	}
	defer r.Close()

	for pass := 1; pass <= passes; pass++ {
		if err = r.Render(); err != nil {
			return cli.NewExitError(err.Error(), exitRuntimeError)
		}
		logger.Noticef("pass %d/%d", pass, passes)
		displayFrameStats(r.Stats())
	}

	return nil
}

// Frames larger than this along either axis are rejected.
const maxFrameDim = 16384

// Build the renderer options from the command line flags. Zero values are
// rejected since the renderer treats them as "use the default".
func renderOptions(ctx *cli.Context) (renderer.Options, error) {
	width, height := ctx.Int("width"), ctx.Int("height")
	if width <= 0 || height <= 0 || width > maxFrameDim || height > maxFrameDim {
		return renderer.Options{}, fmt.Errorf("invalid frame dimensions %dx%d; width and height must be in [1, %d]", width, height, maxFrameDim)
	}

	workers := ctx.Int("workers")
	if workers < 0 {
		return renderer.Options{}, fmt.Errorf("invalid number of workers %d; must be >= 0", workers)
	}

	bounces := ctx.Int("bounces")
	if bounces <= 0 {
		return renderer.Options{}, fmt.Errorf("invalid number of bounces %d; must be positive", bounces)
	}

	epsilon := ctx.Float64("epsilon")
	if !(epsilon > 0) {
		return renderer.Options{}, fmt.Errorf("invalid epsilon %g; must be positive", epsilon)
	}

	return renderer.Options{
		FrameW:     uint32(width),
		FrameH:     uint32(height),
		NumWorkers: uint32(workers),
		MaxBounces: uint32(bounces),
		Epsilon:    float32(epsilon),
	}, nil
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Tracer", "Block height", "% of frame", "Primary hits", "Bounces", "Render time"})

	var totalHits, totalBounces uint64
	for _, stat := range stats.Tracers {
		table.Append([]string{
			stat.Id,
			fmt.Sprintf("%d", stat.BlockH),
			fmt.Sprintf("%02.1f %%", stat.FramePercent),
			fmt.Sprintf("%d", stat.PrimaryHits),
			fmt.Sprintf("%d", stat.Bounces),
			stat.RenderTime.String(),
		})
		totalHits += stat.PrimaryHits
		totalBounces += stat.Bounces
	}
	table.SetFooter([]string{"", "", "TOTAL", fmt.Sprintf("%d", totalHits), fmt.Sprintf("%d", totalBounces), stats.RenderTime.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
