package shuffle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/shuffleodds/internal/deck"
	"github.com/lox/shuffleodds/internal/randutil"
)

// fixedSource always returns the same draw
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

func chunkSizes(chunks []deck.Deck) []int {
	sizes := make([]int, len(chunks))
	for i, c := range chunks {
		sizes[i] = len(c)
	}
	return sizes
}

func TestSplitChunkSizes(t *testing.T) {
	tests := []struct {
		name       string
		size       int
		splitCount int
		want       []int
	}{
		{"even halves", 10, 2, []int{5, 5}},
		{"odd halves", 11, 2, []int{5, 6}},
		{"thirds of 99", 99, 3, []int{33, 33, 33}},
		{"remainder goes last", 10, 3, []int{3, 3, 4}},
		{"remainder spreads late", 7, 4, []int{1, 2, 2, 2}},
		{"more splits than cards", 2, 3, []int{0, 1, 1}},
		{"single split", 6, 1, []int{6}},
		{"empty deck", 0, 2, []int{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks, err := Split(deck.New(tt.size), tt.splitCount)
			require.NoError(t, err)
			assert.Equal(t, tt.want, chunkSizes(chunks))
		})
	}
}

func TestSplitPreservesOrder(t *testing.T) {
	chunks, err := Split(deck.New(10), 3)
	require.NoError(t, err)
	assert.Equal(t, []deck.Deck{{1, 2, 3}, {4, 5, 6}, {7, 8, 9, 10}}, chunks)
}

func TestSplitRejectsInvalidCount(t *testing.T) {
	for _, n := range []int{0, -1} {
		_, err := Split(deck.New(10), n)
		assert.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestWeaveTwoHalves(t *testing.T) {
	chunks, err := Split(deck.New(10), 2)
	require.NoError(t, err)

	assert.Equal(t, deck.Deck{1, 6, 2, 7, 3, 8, 4, 9, 5, 10}, Weave(chunks))
}

func TestWeaveSkipsExhaustedChunks(t *testing.T) {
	chunks := []deck.Deck{{1, 2, 3}, {4}, {5, 6}}
	assert.Equal(t, deck.Deck{1, 4, 5, 2, 6, 3}, Weave(chunks))

	// chunks are read, not consumed
	assert.Equal(t, deck.Deck{1, 2, 3}, chunks[0])
}

func TestWeaveEmpty(t *testing.T) {
	assert.Empty(t, Weave(nil))
	assert.Empty(t, Weave([]deck.Deck{{}, {}}))
}

func TestCutPoint(t *testing.T) {
	tests := []struct {
		name string
		n    int
		u    float64
		want int
	}{
		{"ten low", 10, 0, 2},
		{"ten high", 10, 0.999, 6},
		{"ninety nine low", 99, 0, 24},
		{"ninety nine mid", 99, 0.5, 48},
		{"ninety nine high", 99, 0.9999, 73},
		{"single card", 1, 0.9, 0},
		{"empty", 0, 0.5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CutPoint(tt.n, fixedSource(tt.u)))
		})
	}
}

func TestCutPointRange(t *testing.T) {
	rng := randutil.New(3)
	for n := 1; n <= 120; n++ {
		for range 50 {
			c := CutPoint(n, rng)
			require.GreaterOrEqual(t, c, n/4, "n=%d", n)
			require.Less(t, c, n, "n=%d", n)
		}
	}
}

func TestCut(t *testing.T) {
	d := deck.Deck{1, 2, 3, 4, 5}
	assert.Equal(t, deck.Deck{3, 4, 5, 1, 2}, Cut(d, 2))
	assert.Equal(t, d, Cut(d, 0))
	assert.Equal(t, d, Cut(d, 5))
	assert.Equal(t, deck.Deck{1, 2, 3, 4, 5}, d)
	assert.Empty(t, Cut(deck.Deck{}, 3))
}

func TestShuffleWithFixedCut(t *testing.T) {
	tr, err := ShuffleTrace(deck.New(10), 2, fixedSource(0))
	require.NoError(t, err)

	assert.Equal(t, deck.Deck{1, 6, 2, 7, 3, 8, 4, 9, 5, 10}, tr.Woven)
	assert.Equal(t, 2, tr.CutPoint)
	assert.Equal(t, deck.Deck{2, 7, 3, 8, 4, 9, 5, 10, 1, 6}, tr.Result)
}

func TestShuffleIsPermutation(t *testing.T) {
	rng := randutil.New(11)
	sizes := []int{1, 2, 3, 7, 10, 52, 99}

	for _, size := range sizes {
		original := deck.New(size)
		for splitCount := 1; splitCount <= 7; splitCount++ {
			for range 25 {
				out, err := Shuffle(original, splitCount, rng)
				require.NoError(t, err)
				require.True(t, out.IsPermutationOf(original),
					"size=%d splits=%d out=%v", size, splitCount, out)
			}
		}
	}
}

func TestShuffleSingleSplitIsRotation(t *testing.T) {
	rng := randutil.New(5)
	original := deck.New(99)

	for range 200 {
		out, err := Shuffle(original, 1, rng)
		require.NoError(t, err)
		require.GreaterOrEqual(t, out.RotationOffset(original), 0)
	}
}

func TestShuffleDoesNotMutateInput(t *testing.T) {
	original := deck.New(20)
	snapshot := original.Clone()

	_, err := Shuffle(original, 3, randutil.New(1))
	require.NoError(t, err)
	assert.Equal(t, snapshot, original)
}

func TestShuffleRejectsInvalidSplitCount(t *testing.T) {
	_, err := Shuffle(deck.New(10), 0, fixedSource(0))
	assert.ErrorIs(t, err, ErrInvalidArgument)
}

func TestRepeat(t *testing.T) {
	original := deck.New(10)

	t.Run("zero shuffles copies", func(t *testing.T) {
		out, err := Repeat(original, 0, 2, fixedSource(0))
		require.NoError(t, err)
		assert.Equal(t, original, out)

		out[0] = 99
		assert.Equal(t, 1, original[0])
	})

	t.Run("chains shuffles", func(t *testing.T) {
		once, err := Shuffle(original, 2, fixedSource(0))
		require.NoError(t, err)
		want, err := Shuffle(once, 2, fixedSource(0))
		require.NoError(t, err)

		got, err := Repeat(original, 2, 2, fixedSource(0))
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("invalid arguments", func(t *testing.T) {
		_, err := Repeat(original, -1, 2, fixedSource(0))
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, err = Repeat(original, 0, 0, fixedSource(0))
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})
}

func BenchmarkShuffle(b *testing.B) {
	d := deck.New(deck.DefaultSize)
	rng := randutil.New(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = Shuffle(d, 3, rng)
	}
}
