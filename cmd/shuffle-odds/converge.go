package main

import (
	"fmt"
	"os"

	"github.com/lox/shuffleodds/internal/report"
)

// ConvergeCmd repeats an estimate to check that its spread matches sampling noise
type ConvergeCmd struct {
	ScenarioFlags `embed:""`
	EngineFlags   `embed:""`

	Reps int `short:"r" default:"20" help:"Number of independent repetitions"`
}

func (cmd *ConvergeCmd) Run(g *Globals) error {
	s := newSession(g, cmd.Workers)
	defer s.cancel()

	p := cmd.params(cmd.Seed)
	stats, err := s.est.Repeat(s.ctx, p, cmd.Reps)
	if err != nil {
		return err
	}

	if err := report.NewRenderer(os.Stdout, g.NoColor).Convergence(p, stats); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(report.ProbabilityLine(stats.Mean()))
	return nil
}
