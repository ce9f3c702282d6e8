package detect

import (
	"math"
	"sort"
)

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stddev is the sample standard deviation.
func stddev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	var variance float64
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}

// quantile interpolates linearly between the closest ranks of sorted.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

type summary struct {
	n      int
	mean   float64
	stddev float64
	q1, q3 float64
}

func (s summary) iqr() float64 {
	return s.q3 - s.q1
}

func summarize(values []float64) summary {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	m := mean(values)
	return summary{
		n:      len(values),
		mean:   m,
		stddev: stddev(values, m),
		q1:     quantile(sorted, 0.25),
		q3:     quantile(sorted, 0.75),
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// round rounds v to the given number of decimal places.
func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
