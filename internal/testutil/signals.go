// Package testutil provides deterministic signal builders and tolerance
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"
)

// HalfSine returns a half-sine lobe of the given amplitude spanning width
// samples, with zero-valued endpoints.
func HalfSine(amplitude float64, width int) []float64 {
	out := make([]float64, width)
	if width == 1 {
		out[0] = amplitude
		return out
	}

	for i := range out {
		out[i] = amplitude * math.Sin(math.Pi*float64(i)/float64(width-1))
	}

	return out
}

// EmbedAt places pulse into a zero record of the given length starting at
// offset. Samples falling outside the record are discarded.
func EmbedAt(length, offset int, pulse []float64) []float64 {
	out := make([]float64, length)
	for i, v := range pulse {
		j := offset + i
		if j >= 0 && j < length {
			out[j] = v
		}
	}

	return out
}

// Shift returns a copy of x displaced by the given number of samples.
// Positive values move the content later in the record; vacated samples
// are zero.
func Shift(x []float64, by int) []float64 {
	out := make([]float64, len(x))
	for i := range x {
		j := i + by
		if j >= 0 && j < len(x) {
			out[j] = x[i]
		}
	}

	return out
}

// AddTo adds src into dst element-wise and returns dst.
func AddTo(dst, src []float64) []float64 {
	n := len(dst)
	if len(src) < n {
		n = len(src)
	}

	for i := 0; i < n; i++ {
		dst[i] += src[i]
	}

	return dst
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}

	return out
}

// TimeVector returns n uniformly spaced time stamps starting at 0.
func TimeVector(n int, dt float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = float64(i) * dt
	}

	return out
}

// EquilibriumPulses builds an incident, transmitted and reflected strain
// triple that satisfies the two-bar equilibrium relation
// incident + reflected = transmitted exactly. The incident pulse is a
// half-sine of the given amplitude and width placed at offset; the
// transmitted pulse carries the given transmission fraction of it and the
// reflected pulse the (negative) remainder.
func EquilibriumPulses(amplitude, transmission float64, width, length, offset int) (incident, transmitted, reflected []float64) {
	incident = EmbedAt(length, offset, HalfSine(amplitude, width))

	transmitted = make([]float64, length)
	reflected = make([]float64, length)
	for i, v := range incident {
		transmitted[i] = transmission * v
		reflected[i] = transmitted[i] - v
	}

	return incident, transmitted, reflected
}
