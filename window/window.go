// Package window provides the tapered-cosine (Tukey) window used to
// condition strain-gauge pulses before correlation and wave analysis.
//
// The window is flat over the central (1-alpha) fraction of its span and
// falls off with cosine lobes over alpha/2 at each edge. Alpha 0 degenerates
// to a rectangular window, alpha 1 to a Hann window.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Tukey describes a tapered-cosine window with taper fraction Alpha in [0,1].
type Tukey struct {
	Alpha float64
}

// Validate checks the window parameters.
func (w Tukey) Validate() error {
	return validateAlpha(w.Alpha)
}

// Generate returns symmetric window coefficients of the given length.
func (w Tukey) Generate(length int) ([]float64, error) {
	if err := validateLength(length); err != nil {
		return nil, err
	}

	if err := w.Validate(); err != nil {
		return nil, err
	}

	out := make([]float64, length)
	for i := range out {
		out[i] = tukeyAt(samplePosition(i, length), w.Alpha)
	}

	return out, nil
}

// Apply multiplies signal with the window and returns a new slice.
func (w Tukey) Apply(signal []float64) ([]float64, error) {
	coeffs, err := w.Generate(len(signal))
	if err != nil {
		return nil, err
	}

	out := make([]float64, len(signal))
	vecmath.MulBlock(out, signal, coeffs)

	return out, nil
}

// ApplyInPlace multiplies signal with the window in place.
func (w Tukey) ApplyInPlace(signal []float64) error {
	coeffs, err := w.Generate(len(signal))
	if err != nil {
		return err
	}

	vecmath.MulBlockInPlace(signal, coeffs)

	return nil
}

// CompareAlphas generates windows of the given length for several taper
// fractions at once, keyed by alpha. An empty alpha list yields an empty map.
func CompareAlphas(length int, alphas []float64) (map[float64][]float64, error) {
	if err := validateLength(length); err != nil {
		return nil, err
	}

	out := make(map[float64][]float64, len(alphas))
	for _, alpha := range alphas {
		coeffs, err := Tukey{Alpha: alpha}.Generate(length)
		if err != nil {
			return nil, err
		}

		out[alpha] = coeffs
	}

	return out, nil
}

func tukeyAt(x, alpha float64) float64 {
	if alpha <= 0 {
		return 1
	}

	a := alpha / 2
	switch {
	case x < a:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-1)))
	case x <= 1-a:
		return 1
	default:
		return 0.5 * (1 + math.Cos(math.Pi*(2*x/alpha-2/alpha+1)))
	}
}

func samplePosition(n, size int) float64 {
	if size <= 1 {
		return 0
	}

	return float64(n) / float64(size-1)
}
