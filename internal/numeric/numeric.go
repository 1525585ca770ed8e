// Package numeric provides small float64 helpers shared across the
// signal-processing packages: clamping, cumulative integration and series
// statistics on uniformly sampled data.
package numeric

import "math"

// Clamp limits value to the inclusive range [min, max].
func Clamp(value, min, max float64) float64 {
	if min > max {
		min, max = max, min
	}

	if value < min {
		return min
	}

	if value > max {
		return max
	}

	return value
}

// CumTrapz integrates y with the cumulative trapezoid rule on a uniform grid
// with spacing dx. The result has the same length as y and starts at 0.
func CumTrapz(y []float64, dx float64) []float64 {
	if len(y) == 0 {
		return nil
	}

	out := make([]float64, len(y))
	for i := 1; i < len(y); i++ {
		out[i] = out[i-1] + (y[i-1]+y[i])*dx/2
	}

	return out
}

// RMSE returns the root-mean-square error between a and b. Only the common
// prefix of the two slices is compared; an empty overlap yields 0.
func RMSE(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	if n == 0 {
		return 0
	}

	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}

	return math.Sqrt(sum / float64(n))
}

// MaxAbs returns the largest absolute value in x, 0 for an empty slice.
func MaxAbs(x []float64) float64 {
	var peak float64
	for _, v := range x {
		if a := math.Abs(v); a > peak {
			peak = a
		}
	}

	return peak
}

// Span returns the peak-to-peak range max(x)-min(x), 0 for an empty slice.
func Span(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}

	min, max := x[0], x[0]
	for _, v := range x[1:] {
		if v < min {
			min = v
		}

		if v > max {
			max = v
		}
	}

	return max - min
}

// SampleSpacing derives the uniform grid spacing from a time vector. It
// returns 1 when t has fewer than two samples.
func SampleSpacing(t []float64) float64 {
	if len(t) < 2 {
		return 1
	}

	return (t[len(t)-1] - t[0]) / float64(len(t)-1)
}
