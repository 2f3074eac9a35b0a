// Package estimator runs Monte Carlo trials of the multi-split shuffle and
// estimates how often a target card finishes in the top positions.
package estimator

import (
	"context"
	"fmt"
	"io"
	rand "math/rand/v2"
	"runtime"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/shuffleodds/internal/deck"
	"github.com/lox/shuffleodds/internal/randutil"
	"github.com/lox/shuffleodds/internal/shuffle"
	"github.com/lox/shuffleodds/internal/statistics"
)

const (
	// DefaultIterations is the trial count used when none is given
	DefaultIterations = 100000

	// Below this many trials the worker fan-out costs more than it saves
	parallelThreshold = 500
	maxWorkers        = 8

	// Trials between context checks
	checkInterval = 1024
)

// ErrInvalidArgument is returned when Params are outside the supported domain
var ErrInvalidArgument = shuffle.ErrInvalidArgument

// Params describes a single estimate
type Params struct {
	TargetCard   int
	TopX         int
	ShuffleCount int
	SplitCount   int
	Iterations   int
	DeckSize     int   // 0 means deck.DefaultSize
	Seed         int64 // 0 derives a seed from the clock
}

// Validate reports the first parameter outside the supported domain
func (p Params) Validate() error {
	switch {
	case p.SplitCount < 1:
		return fmt.Errorf("%w: split count %d must be at least 1", ErrInvalidArgument, p.SplitCount)
	case p.Iterations < 1:
		return fmt.Errorf("%w: iterations %d must be at least 1", ErrInvalidArgument, p.Iterations)
	case p.ShuffleCount < 0:
		return fmt.Errorf("%w: shuffle count %d must not be negative", ErrInvalidArgument, p.ShuffleCount)
	case p.TopX < 0:
		return fmt.Errorf("%w: top-x %d must not be negative", ErrInvalidArgument, p.TopX)
	case p.DeckSize < 0:
		return fmt.Errorf("%w: deck size %d must be positive", ErrInvalidArgument, p.DeckSize)
	}
	return nil
}

func (p Params) deckSize() int {
	if p.DeckSize == 0 {
		return deck.DefaultSize
	}
	return p.DeckSize
}

// Result is the outcome of one estimate
type Result struct {
	Params      Params // Seed and DeckSize hold the effective values
	Successes   int
	Iterations  int
	Probability float64
	StdError    float64
	Lower       float64 // Wilson 95% interval
	Upper       float64
	Workers     int
	Elapsed     time.Duration
}

// Config holds estimator dependencies
type Config struct {
	// Workers fixes the fan-out. 0 uses 8 for seeded runs, so a seed replays
	// on any machine, and the CPU count capped at 8 otherwise.
	Workers int
	Logger  *log.Logger
	Clock   quartz.Clock
}

// Estimator runs trials. It holds no per-run state and is safe for
// concurrent use.
type Estimator struct {
	workers int // 0 picks per run
	logger  *log.Logger
	clock   quartz.Clock
}

// New creates an estimator with the given configuration
func New(cfg Config) *Estimator {
	workers := max(cfg.Workers, 0)
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	clock := cfg.Clock
	if clock == nil {
		clock = quartz.NewReal()
	}
	return &Estimator{
		workers: workers,
		logger:  logger.WithPrefix("estimator"),
		clock:   clock,
	}
}

// Estimate runs p.Iterations trials and returns the fraction in which the
// target card finished within the first p.TopX positions.
func (e *Estimator) Estimate(ctx context.Context, p Params) (Result, error) {
	start := e.clock.Now()

	hist, p, workers, err := e.positions(ctx, p)
	if err != nil {
		return Result{}, err
	}

	successes := hist.Cumulative(p.TopX)
	prob := hist.Probability(p.TopX)
	lo, hi := statistics.WilsonInterval95(successes, hist.Trials)

	result := Result{
		Params:      p,
		Successes:   successes,
		Iterations:  hist.Trials,
		Probability: prob,
		StdError:    statistics.BinomialStdError(prob, hist.Trials),
		Lower:       lo,
		Upper:       hi,
		Workers:     workers,
		Elapsed:     e.clock.Since(start),
	}

	e.logger.Debug("Estimate complete",
		"target", p.TargetCard,
		"top_x", p.TopX,
		"shuffles", p.ShuffleCount,
		"splits", p.SplitCount,
		"iterations", result.Iterations,
		"probability", result.Probability,
		"seed", p.Seed,
		"elapsed", result.Elapsed)

	return result, nil
}

// Positions runs the trials of p and returns where the target finished in
// each. TopX is ignored; the histogram answers every top-x at once.
func (e *Estimator) Positions(ctx context.Context, p Params) (Histogram, Params, error) {
	hist, p, _, err := e.positions(ctx, p)
	return hist, p, err
}

// Repeat runs reps independent estimates of p, each with its own seed drawn
// from p.Seed, and collects the spread of the resulting probabilities.
func (e *Estimator) Repeat(ctx context.Context, p Params, reps int) (*statistics.Statistics, error) {
	if reps < 1 {
		return nil, fmt.Errorf("%w: repetitions %d must be at least 1", ErrInvalidArgument, reps)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	p.Seed = e.seed(p.Seed)

	parent := randutil.New(p.Seed)
	stats := &statistics.Statistics{}
	for i := range reps {
		run := p
		run.Seed = nonZero(parent.Int64())

		r, err := e.Estimate(ctx, run)
		if err != nil {
			return nil, fmt.Errorf("repetition %d: %w", i+1, err)
		}
		stats.Add(r.Probability)
	}

	if err := stats.Validate(); err != nil {
		return nil, fmt.Errorf("statistics validation failed: %w", err)
	}
	return stats, nil
}

func (e *Estimator) positions(ctx context.Context, p Params) (Histogram, Params, int, error) {
	if err := p.Validate(); err != nil {
		return Histogram{}, p, 0, err
	}
	workers := e.workersFor(p.Seed != 0)
	p.DeckSize = p.deckSize()
	p.Seed = e.seed(p.Seed)

	base := deck.New(p.DeckSize)

	if p.Iterations < parallelThreshold || workers == 1 {
		hist, err := runTrials(ctx, base, p, p.Iterations, randutil.New(p.Seed))
		return hist, p, 1, err
	}

	hist, err := runParallel(ctx, base, p, workers)
	return hist, p, workers, err
}

// workersFor returns the fan-out for one run. The result of a seeded run
// depends on it, so seeded runs never take it from the host.
func (e *Estimator) workersFor(seeded bool) int {
	switch {
	case e.workers > 0:
		return e.workers
	case seeded:
		return maxWorkers
	default:
		return min(runtime.NumCPU(), maxWorkers)
	}
}

func runParallel(ctx context.Context, base deck.Deck, p Params, workers int) (Histogram, error) {
	perWorker := p.Iterations / workers
	remainder := p.Iterations % workers

	// Independent source per worker so trials never share random state
	parent := randutil.New(p.Seed)
	rngs := make([]*rand.Rand, workers)
	for w := range rngs {
		rngs[w] = randutil.Derive(parent)
	}
	results := make([]Histogram, workers)

	g, gctx := errgroup.WithContext(ctx)
	for w := range workers {
		n := perWorker
		if w < remainder {
			n++
		}
		g.Go(func() error {
			hist, err := runTrials(gctx, base, p, n, rngs[w])
			if err != nil {
				return err
			}
			results[w] = hist
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Histogram{}, err
	}

	total := newHistogram(len(base))
	for _, h := range results {
		total.merge(h)
	}
	return total, nil
}

// runTrials shuffles fresh copies of base and records the target's final
// position for each of n trials.
func runTrials(ctx context.Context, base deck.Deck, p Params, n int, rng *rand.Rand) (Histogram, error) {
	hist := newHistogram(len(base))
	for i := range n {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return hist, err
			}
		}

		d, err := shuffle.Repeat(base, p.ShuffleCount, p.SplitCount, rng)
		if err != nil {
			return hist, err
		}
		hist.record(d.Position(p.TargetCard))
	}
	return hist, nil
}

func (e *Estimator) seed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return nonZero(e.clock.Now().UnixNano())
}

func nonZero(seed int64) int64 {
	if seed == 0 {
		return 1
	}
	return seed
}

// Estimate is the five-scalar form: the probability that targetCard is in
// the top topX of the canonical 99-card deck after shuffleCount shuffles of
// splitCount chunks, over iterations trials.
func Estimate(targetCard, topX, shuffleCount, splitCount, iterations int) (float64, error) {
	r, err := New(Config{}).Estimate(context.Background(), Params{
		TargetCard:   targetCard,
		TopX:         topX,
		ShuffleCount: shuffleCount,
		SplitCount:   splitCount,
		Iterations:   iterations,
	})
	if err != nil {
		return 0, err
	}
	return r.Probability, nil
}
