package main

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"

	"github.com/lox/shuffleodds/cmd/shuffle-odds/shared"
	"github.com/lox/shuffleodds/internal/estimator"
	"github.com/lox/shuffleodds/internal/report"
)

// Globals are flags shared by every command
type Globals struct {
	Debug   bool `help:"Enable debug logging"`
	NoColor bool `name:"no-color" help:"Disable coloured output"`
	Logfmt  bool `help:"Log in logfmt with timestamps"`
}

func (g *Globals) logger() *log.Logger {
	if g.Logfmt {
		return shared.SetupStructuredLogger(os.Stderr, g.Debug)
	}
	return shared.SetupLogger(os.Stderr, g.Debug)
}

// OutputFlags select where and how results are written
type OutputFlags struct {
	Format string `enum:"text,json" default:"text" help:"Output format (text, json)"`
	Output string `short:"o" type:"path" help:"Write the report to a file instead of stdout"`
}

// EngineFlags tune the estimator independent of the scenario
type EngineFlags struct {
	Workers int   `short:"w" help:"Worker goroutines (0 = 8 with --seed, else CPU count up to 8)"`
	Seed    int64 `help:"Random seed for reproducible results (0 = from clock)"`
}

// session bundles what a command needs to run estimates
type session struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *log.Logger
	est    *estimator.Estimator
}

func newSession(g *Globals, workers int) *session {
	logger := g.logger()
	ctx, cancel := shared.SetupSignalHandler(logger)
	return &session{
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
		est:    estimator.New(estimator.Config{Workers: workers, Logger: logger}),
	}
}

// emit writes text or JSON output to stdout or the requested file
func emit(g *Globals, out OutputFlags, rows []report.Row, text func(*report.Renderer) error) error {
	render := func(w io.Writer, noColor bool) error {
		if report.Format(out.Format) == report.FormatJSON {
			return report.JSON(w, rows)
		}
		return text(report.NewRenderer(w, noColor))
	}

	if out.Output == "" {
		return render(os.Stdout, g.NoColor)
	}
	return report.WriteFile(out.Output, 0o644, func(w io.Writer) error {
		return render(w, true)
	})
}
