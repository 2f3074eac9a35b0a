// Package shuffle implements the multi-split "split, weave, cut" shuffle.
//
// A shuffle partitions the deck into near-equal chunks, interleaves the
// chunks round-robin and finally cuts the woven deck at a random point in
// its middle half. None of the functions mutate their input decks.
package shuffle

import (
	"errors"
	"fmt"
	"math"

	"github.com/lox/shuffleodds/internal/deck"
)

// ErrInvalidArgument is returned for parameters outside the supported domain
var ErrInvalidArgument = errors.New("invalid argument")

// Source produces uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// Trace records the intermediate steps of a single shuffle
type Trace struct {
	Input    deck.Deck
	Chunks   []deck.Deck
	Woven    deck.Deck
	CutPoint int
	Result   deck.Deck
}

// Split partitions d into splitCount ordered chunks. Chunk i (for all but the
// last) takes floor(remaining/(splitCount-i)) cards from the front, so any
// remainder accumulates in the later chunks. The last chunk takes the rest.
func Split(d deck.Deck, splitCount int) ([]deck.Deck, error) {
	if splitCount < 1 {
		return nil, fmt.Errorf("%w: split count %d must be at least 1", ErrInvalidArgument, splitCount)
	}

	chunks := make([]deck.Deck, 0, splitCount)
	rest := d
	for i := 0; i < splitCount-1; i++ {
		size := len(rest) / (splitCount - i)
		chunks = append(chunks, append(deck.Deck{}, rest[:size]...))
		rest = rest[size:]
	}
	chunks = append(chunks, append(deck.Deck{}, rest...))
	return chunks, nil
}

// Weave interleaves chunks round-robin: each round takes the next card of
// every chunk that still has one, chunk 0 first.
func Weave(chunks []deck.Deck) deck.Deck {
	total := 0
	for _, c := range chunks {
		total += len(c)
	}

	out := make(deck.Deck, 0, total)
	for round := 0; len(out) < total; round++ {
		for _, c := range chunks {
			if round < len(c) {
				out = append(out, c[round])
			}
		}
	}
	return out
}

// CutPoint picks the rotation offset for a deck of n cards:
// floor(u * n/2) + n/4, with n/4 kept fractional and the sum truncated.
// For n >= 1 the result lies in [floor(n/4), n).
func CutPoint(n int, src Source) int {
	half := float64(n) / 2
	quarter := float64(n) / 4
	return int(math.Floor(src.Float64()*half) + quarter)
}

// Cut rotates d left by cutPoint: d[cutPoint:] followed by d[:cutPoint].
func Cut(d deck.Deck, cutPoint int) deck.Deck {
	out := make(deck.Deck, 0, len(d))
	if len(d) == 0 {
		return out
	}
	cutPoint %= len(d)
	if cutPoint < 0 {
		cutPoint += len(d)
	}
	out = append(out, d[cutPoint:]...)
	return append(out, d[:cutPoint]...)
}

// Shuffle applies one split, weave and cut to d and returns the new order.
func Shuffle(d deck.Deck, splitCount int, src Source) (deck.Deck, error) {
	tr, err := ShuffleTrace(d, splitCount, src)
	if err != nil {
		return nil, err
	}
	return tr.Result, nil
}

// ShuffleTrace is Shuffle but keeps every intermediate step.
func ShuffleTrace(d deck.Deck, splitCount int, src Source) (Trace, error) {
	chunks, err := Split(d, splitCount)
	if err != nil {
		return Trace{}, err
	}

	woven := Weave(chunks)
	cut := CutPoint(len(d), src)
	return Trace{
		Input:    d.Clone(),
		Chunks:   chunks,
		Woven:    woven,
		CutPoint: cut,
		Result:   Cut(woven, cut),
	}, nil
}

// Repeat shuffles d shuffleCount times, feeding each result into the next.
// A shuffleCount of zero returns a copy of d.
func Repeat(d deck.Deck, shuffleCount, splitCount int, src Source) (deck.Deck, error) {
	if shuffleCount < 0 {
		return nil, fmt.Errorf("%w: shuffle count %d must not be negative", ErrInvalidArgument, shuffleCount)
	}
	if splitCount < 1 {
		return nil, fmt.Errorf("%w: split count %d must be at least 1", ErrInvalidArgument, splitCount)
	}

	out := d.Clone()
	for range shuffleCount {
		var err error
		if out, err = Shuffle(out, splitCount, src); err != nil {
			return nil, err
		}
	}
	return out, nil
}
