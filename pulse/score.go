package pulse

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// directThreshold is the pulse length below which the matched-filter
// numerator uses direct dot products instead of an FFT correlation.
const directThreshold = 64

// ltaWindowFactor sizes the trailing long-term window of the energy metric
// as a multiple of the pulse length.
const ltaWindowFactor = 5

func (d *Detector) scoreSeries(signal []float64, lower, upper int) ([]float64, error) {
	region := signal[lower:upper]

	if d.cfg.Metric == MetricEnergy {
		return d.energyScores(region), nil
	}

	return d.correlationScores(region)
}

// correlationScores computes, for every candidate start position, the
// normalized cross-correlation between the half-sine template and the
// region slice of the same length:
//
//	score[p] = Σ tmpl[j]·region[p+j] / (‖tmpl‖ · ‖region[p:p+L]‖)
//
// Positions with zero local energy score 0.
func (d *Detector) correlationScores(region []float64) ([]float64, error) {
	L := d.cfg.PulsePoints
	count := len(region) - L + 1

	num, err := d.templateDot(region, count)
	if err != nil {
		return nil, err
	}

	prefix := make([]float64, len(region)+1)
	for i, v := range region {
		prefix[i+1] = prefix[i] + v*v
	}

	scores := make([]float64, count)
	for p := range scores {
		localEnergy := prefix[p+L] - prefix[p]
		if localEnergy <= 0 {
			continue
		}

		scores[p] = num[p] / (d.norm * math.Sqrt(localEnergy))
	}

	return scores, nil
}

// templateDot computes the raw correlation numerators, choosing the direct
// path for short templates and the FFT path otherwise.
func (d *Detector) templateDot(region []float64, count int) ([]float64, error) {
	L := d.cfg.PulsePoints
	if L <= directThreshold {
		out := make([]float64, count)
		for p := 0; p < count; p++ {
			var sum float64
			for j, tv := range d.tmpl {
				sum += tv * region[p+j]
			}

			out[p] = sum
		}

		return out, nil
	}

	full, err := correlateFFT(region, d.tmpl)
	if err != nil {
		return nil, err
	}

	// Full linear correlation index k maps to lag k-(L-1); candidate start p
	// is lag p.
	return full[L-1 : L-1+count], nil
}

// correlateFFT computes the full linear cross-correlation of a and b via
// IFFT(FFT(a) * conj(FFT(b))). The result has length len(a)+len(b)-1 and
// index k corresponds to lag k-(len(b)-1).
func correlateFFT(a, b []float64) ([]float64, error) {
	n := len(a)
	m := len(b)
	fftSize := nextPowerOf2(n + m - 1)

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("pulse: failed to create FFT plan: %w", err)
	}

	aPadded := make([]complex128, fftSize)
	bPadded := make([]complex128, fftSize)
	for i := 0; i < n; i++ {
		aPadded[i] = complex(a[i], 0)
	}
	for i := 0; i < m; i++ {
		bPadded[i] = complex(b[i], 0)
	}

	aFreq := make([]complex128, fftSize)
	bFreq := make([]complex128, fftSize)

	if err := plan.Forward(aFreq, aPadded); err != nil {
		return nil, fmt.Errorf("pulse: forward FFT failed: %w", err)
	}

	if err := plan.Forward(bFreq, bPadded); err != nil {
		return nil, fmt.Errorf("pulse: forward FFT failed: %w", err)
	}

	resultFreq := make([]complex128, fftSize)
	for i := range resultFreq {
		bConj := complex(real(bFreq[i]), -imag(bFreq[i]))
		resultFreq[i] = aFreq[i] * bConj
	}

	resultTime := make([]complex128, fftSize)
	if err := plan.Inverse(resultTime, resultFreq); err != nil {
		return nil, fmt.Errorf("pulse: inverse FFT failed: %w", err)
	}

	// Rearrange the circular result into linear correlation order: positive
	// lags sit at the front of the IFFT output, negative lags at its tail.
	result := make([]float64, n+m-1)
	for i := 0; i < n; i++ {
		result[m-1+i] = real(resultTime[i])
	}
	for i := 0; i < m-1; i++ {
		result[i] = real(resultTime[fftSize-m+1+i])
	}

	return result, nil
}

// energyScores computes an STA/LTA series: short-term RMS over the candidate
// pulse span against long-term RMS over the trailing history, regularized by
// a fraction of the whole-region RMS. Positions without a full pulse length
// of history score 0.
func (d *Detector) energyScores(region []float64) []float64 {
	L := d.cfg.PulsePoints
	count := len(region) - L + 1
	ltaWindow := ltaWindowFactor * L

	prefix := make([]float64, len(region)+1)
	for i, v := range region {
		prefix[i+1] = prefix[i] + v*v
	}

	scores := make([]float64, count)

	totalEnergy := prefix[len(region)]
	if totalEnergy <= 0 {
		return scores
	}

	regionRMS := math.Sqrt(totalEnergy / float64(len(region)))
	floor := 0.05 * regionRMS

	for p := range scores {
		history := p
		if history > ltaWindow {
			history = ltaWindow
		}

		if history < L {
			continue
		}

		sta := math.Sqrt((prefix[p+L] - prefix[p]) / float64(L))
		lta := math.Sqrt((prefix[p] - prefix[p-history]) / float64(history))
		scores[p] = sta / (lta + floor)
	}

	return scores
}

// halfSineTemplate returns a half-sine matched-filter template of the given
// length with the given sign.
func halfSineTemplate(length int, sign float64) []float64 {
	out := make([]float64, length)
	if length == 1 {
		out[0] = sign
		return out
	}

	for i := range out {
		out[i] = sign * math.Sin(math.Pi*float64(i)/float64(length-1))
	}

	return out
}

func l2Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// nextPowerOf2 returns the next power of 2 >= n.
func nextPowerOf2(n int) int {
	if n <= 1 {
		return 1
	}

	p := 1
	for p < n {
		p *= 2
	}

	return p
}
