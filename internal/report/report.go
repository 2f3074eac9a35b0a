// Package report renders estimate results as styled text or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/lox/shuffleodds/internal/estimator"
	"github.com/lox/shuffleodds/internal/shuffle"
	"github.com/lox/shuffleodds/internal/statistics"
)

// Format selects the output encoding
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Row is a named estimate result
type Row struct {
	Name   string
	Result estimator.Result
}

// ProbabilityLine formats an estimate to four decimals, e.g. "Probability: 0.1234"
func ProbabilityLine(p float64) string {
	return fmt.Sprintf("Probability: %.4f", p)
}

// Renderer writes reports to one destination
type Renderer struct {
	out     io.Writer
	printer *message.Printer

	header lipgloss.Style
	name   lipgloss.Style
	prob   lipgloss.Style
	dim    lipgloss.Style
}

// NewRenderer creates a renderer for w. noColor forces plain ASCII output.
func NewRenderer(w io.Writer, noColor bool) *Renderer {
	lr := lipgloss.NewRenderer(w)
	if noColor {
		lr.SetColorProfile(termenv.Ascii)
	}

	return &Renderer{
		out:     w,
		printer: message.NewPrinter(language.English),
		header:  lr.NewStyle().Bold(true).Foreground(lipgloss.Color("15")),
		name:    lr.NewStyle().Bold(true).Foreground(lipgloss.Color("14")),
		prob:    lr.NewStyle().Foreground(lipgloss.Color("10")),
		dim:     lr.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// Results renders a table of estimates followed by a footer
func (r *Renderer) Results(rows []Row) error {
	if len(rows) == 1 {
		if _, err := fmt.Fprintln(r.out, r.prob.Render(ProbabilityLine(rows[0].Result.Probability))); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.out); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		r.header.Render("scenario"),
		r.header.Render("card"),
		r.header.Render("top"),
		r.header.Render("shuffles"),
		r.header.Render("splits"),
		r.header.Render("trials"),
		r.header.Render("probability"),
		r.header.Render("95% ci"))

	var total time.Duration
	var trials int
	for _, row := range rows {
		res := row.Result
		p := res.Params
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\t%s\n",
			r.name.Render(row.Name),
			p.TargetCard, p.TopX, p.ShuffleCount, p.SplitCount,
			r.printer.Sprintf("%d", res.Iterations),
			r.prob.Render(fmt.Sprintf("%.4f", res.Probability)),
			r.dim.Render(fmt.Sprintf("%.4f-%.4f", res.Lower, res.Upper)))
		total += res.Elapsed
		trials += res.Iterations
	}
	if err := w.Flush(); err != nil {
		return err
	}

	_, err := r.printer.Fprintf(r.out, "\n%d trials in %v\n", trials, total.Truncate(time.Millisecond))
	return err
}

// Curve renders the probability for every top-x of a sweep
func (r *Renderer) Curve(p estimator.Params, curve []float64) error {
	_, err := fmt.Fprintf(r.out, "%s\n\n", r.header.Render(fmt.Sprintf(
		"card %d, %d shuffles x %d splits, %s trials",
		p.TargetCard, p.ShuffleCount, p.SplitCount, r.printer.Sprintf("%d", p.Iterations))))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintf(w, "%s\t%s\t\n", r.header.Render("top"), r.header.Render("probability"))
	for i, prob := range curve {
		fmt.Fprintf(w, "%d\t%s\t\n", i+1, r.prob.Render(fmt.Sprintf("%.4f", prob)))
	}
	return w.Flush()
}

// Convergence renders the spread of repeated estimates against the spread
// expected from binomial sampling alone.
func (r *Renderer) Convergence(p estimator.Params, stats *statistics.Statistics) error {
	expected := statistics.BinomialStdError(stats.Mean(), p.Iterations)
	lo, hi := stats.ConfidenceInterval95()

	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%d\n", r.header.Render("repetitions"), stats.Count)
	fmt.Fprintf(w, "%s\t%s\n", r.header.Render("trials each"), r.printer.Sprintf("%d", p.Iterations))
	fmt.Fprintf(w, "%s\t%s\n", r.header.Render("mean"), r.prob.Render(fmt.Sprintf("%.4f", stats.Mean())))
	fmt.Fprintf(w, "%s\t%.4f\n", r.header.Render("median"), stats.Median())
	fmt.Fprintf(w, "%s\t%.4f-%.4f\n", r.header.Render("min-max"), stats.Min, stats.Max)
	fmt.Fprintf(w, "%s\t%.4f-%.4f\n", r.header.Render("p5-p95"), stats.Percentile(0.05), stats.Percentile(0.95))
	fmt.Fprintf(w, "%s\t%.5f\n", r.header.Render("stddev"), stats.StdDev())
	fmt.Fprintf(w, "%s\t%.5f\n", r.header.Render("expected"), expected)
	fmt.Fprintf(w, "%s\t%.4f-%.4f\n", r.header.Render("mean 95% ci"), lo, hi)
	return w.Flush()
}

// Trace renders the steps of a single shuffle followed by a check that the
// result holds the same cards as the input. A single-chunk shuffle is a pure
// cut, so its rotation offset is shown as well.
func (r *Renderer) Trace(tr shuffle.Trace) error {
	for i, c := range tr.Chunks {
		if _, err := fmt.Fprintf(r.out, "%s %s\n", r.header.Render(fmt.Sprintf("chunk %d:", i+1)), c); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(r.out, "%s %s\n", r.header.Render("woven:"), tr.Woven); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.out, "%s %d\n", r.header.Render("cut at:"), tr.CutPoint); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.out, "%s %s\n", r.header.Render("result:"), r.prob.Render(tr.Result.String())); err != nil {
		return err
	}

	check := "yes"
	if !tr.Result.IsPermutationOf(tr.Input) {
		check = "no"
	}
	if _, err := fmt.Fprintf(r.out, "%s %s\n", r.header.Render("permutation:"), check); err != nil {
		return err
	}

	if len(tr.Chunks) == 1 {
		if _, err := fmt.Fprintf(r.out, "%s %d\n", r.header.Render("rotation:"), tr.Result.RotationOffset(tr.Input)); err != nil {
			return err
		}
	}
	return nil
}

type jsonResult struct {
	Scenario     string  `json:"scenario,omitempty"`
	TargetCard   int     `json:"target_card"`
	TopX         int     `json:"top_x"`
	ShuffleCount int     `json:"shuffle_count"`
	SplitCount   int     `json:"split_count"`
	DeckSize     int     `json:"deck_size"`
	Iterations   int     `json:"iterations"`
	Successes    int     `json:"successes"`
	Probability  float64 `json:"probability"`
	StdError     float64 `json:"std_error"`
	Lower        float64 `json:"ci_lower"`
	Upper        float64 `json:"ci_upper"`
	Seed         int64   `json:"seed"`
	Workers      int     `json:"workers"`
	ElapsedMS    int64   `json:"elapsed_ms"`
}

// JSON writes rows as an indented JSON array
func JSON(w io.Writer, rows []Row) error {
	out := make([]jsonResult, 0, len(rows))
	for _, row := range rows {
		res := row.Result
		out = append(out, jsonResult{
			Scenario:     row.Name,
			TargetCard:   res.Params.TargetCard,
			TopX:         res.Params.TopX,
			ShuffleCount: res.Params.ShuffleCount,
			SplitCount:   res.Params.SplitCount,
			DeckSize:     res.Params.DeckSize,
			Iterations:   res.Iterations,
			Successes:    res.Successes,
			Probability:  res.Probability,
			StdError:     res.StdError,
			Lower:        res.Lower,
			Upper:        res.Upper,
			Seed:         res.Params.Seed,
			Workers:      res.Workers,
			ElapsedMS:    res.Elapsed.Milliseconds(),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
