package main

import (
	"github.com/lox/shuffleodds/internal/estimator"
	"github.com/lox/shuffleodds/internal/report"
)

// ScenarioFlags describe a single estimate
type ScenarioFlags struct {
	Target     int `short:"t" default:"94" help:"Card to track"`
	Top        int `short:"x" default:"10" help:"Number of top positions to check"`
	Shuffles   int `short:"s" default:"2" help:"Shuffles per trial"`
	Splits     int `short:"k" default:"3" help:"Chunks per shuffle"`
	Iterations int `short:"i" default:"100000" help:"Number of Monte Carlo trials"`
	DeckSize   int `name:"deck-size" default:"99" help:"Cards in the deck (1..n)"`
}

func (f ScenarioFlags) params(seed int64) estimator.Params {
	return estimator.Params{
		TargetCard:   f.Target,
		TopX:         f.Top,
		ShuffleCount: f.Shuffles,
		SplitCount:   f.Splits,
		Iterations:   f.Iterations,
		DeckSize:     f.DeckSize,
		Seed:         seed,
	}
}

// EstimateCmd estimates one scenario given on the command line
type EstimateCmd struct {
	ScenarioFlags `embed:""`
	EngineFlags   `embed:""`
	OutputFlags   `embed:""`
}

func (cmd *EstimateCmd) Run(g *Globals) error {
	s := newSession(g, cmd.Workers)
	defer s.cancel()

	p := cmd.params(cmd.Seed)
	if err := p.Validate(); err != nil {
		return err
	}

	s.logger.Debug("Starting estimate", "target", p.TargetCard, "top_x", p.TopX, "iterations", p.Iterations)
	result, err := s.est.Estimate(s.ctx, p)
	if err != nil {
		return err
	}

	rows := []report.Row{{Name: "cli", Result: result}}
	return emit(g, cmd.OutputFlags, rows, func(r *report.Renderer) error {
		return r.Results(rows)
	})
}
