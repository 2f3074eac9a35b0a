package deck

import (
	"strconv"
	"strings"
)

// DefaultSize is the number of cards in the canonical deck
const DefaultSize = 99

// Deck is an ordered sequence of distinct card identifiers.
// Position 0 is the top of the deck.
type Deck []int

// New creates the canonical ordered deck 1..n
func New(n int) Deck {
	if n < 0 {
		n = 0
	}
	d := make(Deck, n)
	for i := range d {
		d[i] = i + 1
	}
	return d
}

// Clone returns an independent copy of the deck
func (d Deck) Clone() Deck {
	if d == nil {
		return nil
	}
	out := make(Deck, len(d))
	copy(out, d)
	return out
}

// Position returns the 0-based index of card, or -1 if it is not in the deck
func (d Deck) Position(card int) int {
	for i, c := range d {
		if c == card {
			return i
		}
	}
	return -1
}

// IsPermutationOf reports whether d holds exactly the same cards as other
func (d Deck) IsPermutationOf(other Deck) bool {
	if len(d) != len(other) {
		return false
	}
	counts := make(map[int]int, len(d))
	for _, c := range d {
		counts[c]++
	}
	for _, c := range other {
		counts[c]--
		if counts[c] < 0 {
			return false
		}
	}
	return true
}

// RotationOffset returns k such that d == other[k:] + other[:k], or -1.
func (d Deck) RotationOffset(other Deck) int {
	if len(d) != len(other) {
		return -1
	}
	if len(d) == 0 {
		return 0
	}
	n := len(d)
	for k := 0; k < n; k++ {
		match := true
		for i := 0; i < n; i++ {
			if d[i] != other[(i+k)%n] {
				match = false
				break
			}
		}
		if match {
			return k
		}
	}
	return -1
}

// String renders the deck as space separated identifiers
func (d Deck) String() string {
	var sb strings.Builder
	for i, c := range d {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(c))
	}
	return sb.String()
}
