package main

import (
	"os"

	"github.com/lox/shuffleodds/internal/deck"
	"github.com/lox/shuffleodds/internal/randutil"
	"github.com/lox/shuffleodds/internal/report"
	"github.com/lox/shuffleodds/internal/shuffle"
)

// ShuffleCmd traces one split, weave and cut
type ShuffleCmd struct {
	Cards  int   `short:"n" default:"10" help:"Cards in the deck (1..n)"`
	Splits int   `short:"k" default:"2" help:"Chunks per shuffle"`
	Seed   int64 `default:"1" help:"Random seed for the cut"`
}

func (cmd *ShuffleCmd) Run(g *Globals) error {
	tr, err := shuffle.ShuffleTrace(deck.New(cmd.Cards), cmd.Splits, randutil.New(cmd.Seed))
	if err != nil {
		return err
	}
	return report.NewRenderer(os.Stdout, g.NoColor).Trace(tr)
}
