package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Estimate EstimateCmd      `cmd:"" default:"withargs" help:"Estimate the probability for one scenario"`
	Run      RunCmd           `cmd:"" help:"Run scenarios from an HCL file"`
	Sweep    SweepCmd         `cmd:"" help:"Probability for every top-x from a single run"`
	Converge ConvergeCmd      `cmd:"" help:"Repeat an estimate and compare its spread to binomial noise"`
	Shuffle  ShuffleCmd       `cmd:"" help:"Show the steps of a single shuffle"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("shuffle-odds"),
		kong.Description("Monte Carlo odds for split, weave and cut shuffles"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
