package cmd

import (
	"github.com/achilleasa/go-raytrace/scene"
	"github.com/urfave/cli"
)

// Display the contents of the built-in scene.
func ShowSceneInfo(ctx *cli.Context) error {
	setupLogging(ctx)

	sc := scene.Default()
	if err := sc.Validate(); err != nil {
		return cli.NewExitError(err.Error(), exitRuntimeError)
	}

	logger.Noticef("scene information:\n%s", sc.Stats())
	return nil
}
