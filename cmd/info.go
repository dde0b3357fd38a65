package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/achilleasa/go-raytrace/asset"
	"github.com/achilleasa/go-raytrace/asset/ppm"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// The argument that makes the info command read the image from stdin.
const stdinArg = "-"

// The stream read when the stdinArg is passed to the info command.
var stdin io.Reader = os.Stdin

// Display the header of a PPM image stored in a local file, fetched over http
// or piped through stdin.
func ShowImageInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return cli.NewExitError("missing image file, url or - (stdin) argument", exitUsageError)
	}

	var res *asset.Resource
	if path := ctx.Args().First(); path == stdinArg {
		res = asset.NewResourceFromStream("stdin", stdin)
	} else {
		var err error
		if res, err = asset.NewResource(path); err != nil {
			return cli.NewExitError(err.Error(), exitRuntimeError)
		}
	}
	defer res.Close()

	frame, err := ppm.ReadResource(res)
	if err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeError)
	}

	logger.Noticef("image information:\n%s", imageTable(res, frame))
	return nil
}

func imageTable(res *asset.Resource, frame *ppm.Frame) string {
	source := "local"
	if res.IsRemote() {
		source = "remote"
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeader([]string{"Image", "Source", "Width", "Height", "Max value", "Pixel data"})
	table.Append([]string{
		res.Path(),
		source,
		fmt.Sprintf("%d", frame.Width),
		fmt.Sprintf("%d", frame.Height),
		fmt.Sprintf("%d", frame.MaxVal),
		fmt.Sprintf("%d bytes", len(frame.Pix)),
	})
	table.Render()
	return buf.String()
}
