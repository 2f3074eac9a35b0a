package estimator

// Histogram counts where the target card finished across trials.
// Counts[i] is the number of trials that left the target at position i.
type Histogram struct {
	Counts  []int
	Missing int // trials where the target was not in the deck
	Trials  int
}

func newHistogram(deckSize int) Histogram {
	return Histogram{Counts: make([]int, deckSize)}
}

func (h *Histogram) record(pos int) {
	h.Trials++
	if pos < 0 || pos >= len(h.Counts) {
		h.Missing++
		return
	}
	h.Counts[pos]++
}

// merge folds other into h. Both must come from the same deck size.
func (h *Histogram) merge(other Histogram) {
	for i, c := range other.Counts {
		h.Counts[i] += c
	}
	h.Missing += other.Missing
	h.Trials += other.Trials
}

// Cumulative returns the number of trials that left the target within the
// first topX positions.
func (h Histogram) Cumulative(topX int) int {
	if topX <= 0 {
		return 0
	}
	if topX > len(h.Counts) {
		topX = len(h.Counts)
	}
	total := 0
	for _, c := range h.Counts[:topX] {
		total += c
	}
	return total
}

// Probability is Cumulative(topX) as a fraction of all trials
func (h Histogram) Probability(topX int) float64 {
	if h.Trials == 0 {
		return 0
	}
	return float64(h.Cumulative(topX)) / float64(h.Trials)
}

// Curve returns Probability(k) for k = 1..len(Counts).
func (h Histogram) Curve() []float64 {
	curve := make([]float64, len(h.Counts))
	if h.Trials == 0 {
		return curve
	}
	running := 0
	for i, c := range h.Counts {
		running += c
		curve[i] = float64(running) / float64(h.Trials)
	}
	return curve
}
