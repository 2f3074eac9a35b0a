package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/lox/shuffleodds/internal/report"
)

// SweepCmd prints the probability for every top-x from one set of trials
type SweepCmd struct {
	ScenarioFlags `embed:""`
	EngineFlags   `embed:""`
	OutputFlags   `embed:""`
}

type sweepJSON struct {
	TargetCard   int       `json:"target_card"`
	ShuffleCount int       `json:"shuffle_count"`
	SplitCount   int       `json:"split_count"`
	Iterations   int       `json:"iterations"`
	Seed         int64     `json:"seed"`
	Curve        []float64 `json:"curve"`
}

func (cmd *SweepCmd) Run(g *Globals) error {
	s := newSession(g, cmd.Workers)
	defer s.cancel()

	hist, p, err := s.est.Positions(s.ctx, cmd.params(cmd.Seed))
	if err != nil {
		return err
	}
	curve := hist.Curve()

	write := func(w io.Writer, noColor bool) error {
		if report.Format(cmd.Format) == report.FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(sweepJSON{
				TargetCard:   p.TargetCard,
				ShuffleCount: p.ShuffleCount,
				SplitCount:   p.SplitCount,
				Iterations:   hist.Trials,
				Seed:         p.Seed,
				Curve:        curve,
			})
		}
		return report.NewRenderer(w, noColor).Curve(p, curve)
	}

	if cmd.Output == "" {
		return write(os.Stdout, g.NoColor)
	}
	return report.WriteFile(cmd.Output, 0o644, func(w io.Writer) error {
		return write(w, true)
	})
}
