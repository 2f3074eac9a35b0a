package statistics

import (
	"fmt"
	"math"
	"sort"
)

// Statistics accumulates float samples, typically probability estimates
// from repeated independent runs of the same scenario.
type Statistics struct {
	Count  int
	Sum    float64
	SumSq  float64   // Sum of squares for variance calculation
	Values []float64 // All samples, for median/percentile
	Min    float64
	Max    float64
}

// Add incorporates a new sample
func (s *Statistics) Add(v float64) {
	if s.Count == 0 || v < s.Min {
		s.Min = v
	}
	if s.Count == 0 || v > s.Max {
		s.Max = v
	}
	s.Count++
	s.Sum += v
	s.SumSq += v * v
	s.Values = append(s.Values, v)
}

// Mean returns the arithmetic mean of all samples
func (s *Statistics) Mean() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.Sum / float64(s.Count)
}

// Variance returns the sample variance
func (s *Statistics) Variance() float64 {
	if s.Count < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.SumSq - float64(s.Count)*mean*mean) / float64(s.Count-1)
	if v < 0 {
		// rounding on near-constant samples
		return 0
	}
	return v
}

// StdDev returns the sample standard deviation
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Count == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Count))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the median sample
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// Validate checks that the accumulated data is internally consistent
func (s *Statistics) Validate() error {
	if s.Count <= 0 {
		return fmt.Errorf("invalid sample count: %d", s.Count)
	}

	if len(s.Values) != s.Count {
		return fmt.Errorf("values array length (%d) does not match sample count (%d)",
			len(s.Values), s.Count)
	}

	var sum float64
	for _, v := range s.Values {
		sum += v
	}
	if math.Abs(sum-s.Sum) > 1e-9*math.Max(1, math.Abs(sum)) {
		return fmt.Errorf("running sum %.9f does not match samples %.9f", s.Sum, sum)
	}

	return nil
}

// BinomialStdError is the standard error sqrt(p(1-p)/n) of a proportion
// estimated from n independent trials.
func BinomialStdError(p float64, n int) float64 {
	if n <= 0 || p <= 0 || p >= 1 {
		return 0
	}
	return math.Sqrt(p * (1 - p) / float64(n))
}

// WilsonInterval95 returns the Wilson score interval for successes out of n.
// It stays inside [0,1] and behaves at p=0 and p=1, unlike the normal
// approximation.
func WilsonInterval95(successes, n int) (float64, float64) {
	if n <= 0 {
		return 0, 0
	}
	const z = 1.96
	nf := float64(n)
	p := float64(successes) / nf

	denom := 1 + z*z/nf
	centre := (p + z*z/(2*nf)) / denom
	margin := z * math.Sqrt(p*(1-p)/nf+z*z/(4*nf*nf)) / denom

	return math.Max(0, centre-margin), math.Min(1, centre+margin)
}
