package pulse

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-shpb/window"
)

// SegmentAndCenter extracts exactly points samples around the pulse inside w,
// phase-centering the pulse onset at points/2. The onset is the first sample
// reaching onsetRatio of the window peak in the configured polarity. Samples
// falling outside the record are zero. When TaperAlpha is positive the
// extracted pulse is tapered with a Tukey window.
//
// Centering on the onset keeps the relative timing of pulses cut from
// different gauge records, so nominally simultaneous pulses line up without
// further shifting.
func (d *Detector) SegmentAndCenter(signal []float64, w Window, points int, onsetRatio float64) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	if w.Start < 0 || w.End > len(signal) || w.Len() <= 0 {
		return nil, fmt.Errorf("%w: [%d,%d) in %d samples", ErrInvalidWindow, w.Start, w.End, len(signal))
	}

	if points <= 0 {
		return nil, fmt.Errorf("pulse: output points must be > 0: %d", points)
	}

	if onsetRatio <= 0 || onsetRatio >= 1 {
		return nil, fmt.Errorf("pulse: onset ratio must be in (0,1): %f", onsetRatio)
	}

	sign := d.cfg.Polarity.sign()
	seg := signal[w.Start:w.End]

	peak := 0.0
	for _, v := range seg {
		if s := sign * v; s > peak {
			peak = s
		}
	}

	if peak <= 0 {
		return nil, fmt.Errorf("%w: [%d,%d) has no signal in the configured polarity", ErrNoPulse, w.Start, w.End)
	}

	onset := 0
	for i, v := range seg {
		if sign*v >= onsetRatio*peak {
			onset = i
			break
		}
	}

	start := w.Start + onset - points/2

	out := make([]float64, points)
	for j := range out {
		k := start + j
		if k >= 0 && k < len(signal) {
			out[j] = signal[k]
		}
	}

	if d.cfg.TaperAlpha > 0 {
		if err := (window.Tukey{Alpha: d.cfg.TaperAlpha}).ApplyInPlace(out); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// RemoveBaseline subtracts the mean of the first n samples from the whole
// record and returns a new slice. n is clamped to the record length.
func RemoveBaseline(signal []float64, n int) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	if n <= 0 {
		return nil, fmt.Errorf("pulse: baseline sample count must be > 0: %d", n)
	}

	if n > len(signal) {
		n = len(signal)
	}

	mean := stat.Mean(signal[:n], nil)

	out := append([]float64(nil), signal...)
	floats.AddConst(-mean, out)

	return out, nil
}
