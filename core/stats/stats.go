// Package stats has shared series statistics primitives used by all
// analytics views. Every function degrades gracefully on sparse or
// degenerate input: undefined results come back as (value, false),
// never as NaN and never as an error.
package stats

import "math"

// Mean returns the arithmetic mean. Undefined for an empty series.
func Mean(values []float64) (float64, bool) {
	if len(values) == 0 {
		return 0, false
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), true
}

// StdDev returns the sample standard deviation (n-1 divisor).
// Undefined for fewer than 2 observations.
func StdDev(values []float64) (float64, bool) {
	n := len(values)
	if n < 2 {
		return 0, false
	}
	mean, _ := Mean(values)
	var ss float64
	for _, v := range values {
		d := v - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(n-1)), true
}

// CV returns the coefficient of variation, stddev/|mean|.
// Undefined when the mean is zero or there are fewer than 2 observations.
func CV(values []float64) (float64, bool) {
	sd, ok := StdDev(values)
	if !ok {
		return 0, false
	}
	mean, _ := Mean(values)
	if mean == 0 {
		return 0, false
	}
	return sd / math.Abs(mean), true
}

// RollingMean returns the simple moving average over the trailing window.
// For positions before a full window accumulates, the mean covers all
// points so far, so the output is defined for every input position.
func RollingMean(values []float64, window int) []float64 {
	if len(values) == 0 {
		return nil
	}
	if window < 1 {
		window = 1
	}
	out := make([]float64, len(values))
	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		n := min(i+1, window)
		out[i] = sum / float64(n)
	}
	return out
}

// Pearson returns the Pearson correlation coefficient of two paired series.
// Undefined when there are fewer than 3 pairs or either side has zero
// variance; callers must treat undefined as "insufficient evidence",
// distinct from a true zero correlation.
func Pearson(xs, ys []float64) (float64, bool) {
	n := len(xs)
	if n != len(ys) || n < 3 {
		return 0, false
	}
	meanX, _ := Mean(xs)
	meanY, _ := Mean(ys)

	var sxy, sxx, syy float64
	for i := range n {
		dx := xs[i] - meanX
		dy := ys[i] - meanY
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	r := sxy / math.Sqrt(sxx*syy)
	// Guard against rounding drift past the mathematical bounds.
	return math.Min(math.Max(r, -1), 1), true
}

// OLSSlope returns the ordinary least-squares slope of values against
// their index positions 0..n-1. Undefined for fewer than 2 points.
func OLSSlope(values []float64) (float64, bool) {
	n := len(values)
	if n < 2 {
		return 0, false
	}
	meanX := float64(n-1) / 2
	meanY, _ := Mean(values)

	var sxy, sxx float64
	for i, v := range values {
		dx := float64(i) - meanX
		sxy += dx * (v - meanY)
		sxx += dx * dx
	}
	if sxx == 0 {
		return 0, false
	}
	return sxy / sxx, true
}

// PercentChange returns the relative change from the first to the last
// value of a series, in percent. A zero first value with a nonzero last
// value reports 100%; two zeros report 0%.
func PercentChange(values []float64) float64 {
	if len(values) < 2 {
		return 0
	}
	first := values[0]
	last := values[len(values)-1]
	if first == 0 {
		if last == 0 {
			return 0
		}
		return 100
	}
	return (last - first) / math.Abs(first) * 100
}
