package main

import (
	"fmt"

	"github.com/lox/shuffleodds/internal/config"
	"github.com/lox/shuffleodds/internal/report"
)

// RunCmd runs named scenarios from an HCL file
type RunCmd struct {
	Config    string   `short:"c" default:"scenarios.hcl" type:"path" help:"Scenario file (defaults to the reference scenario if missing)"`
	Scenarios []string `arg:"" optional:"" help:"Scenario names to run (default: all)"`

	OutputFlags `embed:""`
}

func (cmd *RunCmd) Run(g *Globals) error {
	cfg, err := config.Load(cmd.Config)
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(nil); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config %s: %w", cmd.Config, err)
	}

	scenarios, err := cfg.Select(cmd.Scenarios)
	if err != nil {
		return err
	}

	s := newSession(g, cfg.Defaults.Workers)
	defer s.cancel()

	rows := make([]report.Row, 0, len(scenarios))
	for _, sc := range scenarios {
		s.logger.Info("Running scenario", "name", sc.Name)
		result, err := s.est.Estimate(s.ctx, cfg.Params(sc))
		if err != nil {
			return fmt.Errorf("scenario %s: %w", sc.Name, err)
		}
		rows = append(rows, report.Row{Name: sc.Name, Result: result})
	}

	return emit(g, cmd.OutputFlags, rows, func(r *report.Renderer) error {
		return r.Results(rows)
	})
}
