package cmd

import (
	"github.com/achilleasa/go-raytrace/log"
	"github.com/urfave/cli"
)

var logger = log.New("go-raytrace")

func setupLogging(ctx *cli.Context) {
	log.SetLevel(log.LevelFromFlags(ctx.GlobalBool("v"), ctx.GlobalBool("vv")))
}
