package kolsky

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-shpb/internal/numeric"
)

// Metrics bundles the four equilibrium-quality scores over one span of the
// pulse. FBC, SEQI and DSUF read 1 for perfect agreement between the two
// analysis paths; SOI reads 0 when no oscillatory disagreement remains.
type Metrics struct {
	FBC  float64 // force balance coefficient
	SEQI float64 // stress equilibrium quality index
	SOI  float64 // stress oscillation index
	DSUF float64 // dynamic stress uniformity factor (R^2)
}

// Equilibrium reports metrics over the whole active pulse and separately
// over its loading, plateau and unloading phases. A phase too short to
// score is left as the zero Metrics.
type Equilibrium struct {
	Overall   Metrics
	Loading   Metrics
	Plateau   Metrics
	Unloading Metrics
}

// Fractions of the peak 3-wave stress bounding the active span and its
// phases.
const (
	activityFraction = 0.05
	loadingFraction  = 0.5
	plateauFraction  = 0.8
)

// EquilibriumMetrics scores the agreement between the 1-wave and 3-wave
// derivations of res. The active span covers every sample whose 3-wave
// stress magnitude reaches 5% of the peak; loading runs from its start to
// the first crossing of half peak, the plateau is the contiguous run above
// 80% of peak containing the peak, and unloading covers the rest.
func EquilibriumMetrics(res Result) (Equilibrium, error) {
	n := len(res.StressThree)
	if len(res.StressOne) != n || len(res.ForceOne) != n || len(res.ForceThree) != n {
		return Equilibrium{}, fmt.Errorf("%w: result series disagree", ErrLengthMismatch)
	}

	peak := numeric.MaxAbs(res.StressThree)
	if peak == 0 {
		return Equilibrium{}, ErrNoActivity
	}

	lo, hi := activeSpan(res.StressThree, activityFraction*peak)
	if hi-lo < 2 {
		return Equilibrium{}, fmt.Errorf("%w: active span [%d,%d)", ErrNoActivity, lo, hi)
	}

	eq := Equilibrium{Overall: metricsOver(res, lo, hi)}

	peakIdx := lo
	for i := lo; i < hi; i++ {
		if math.Abs(res.StressThree[i]) > math.Abs(res.StressThree[peakIdx]) {
			peakIdx = i
		}
	}

	loadEnd := hi
	for i := lo; i < hi; i++ {
		if math.Abs(res.StressThree[i]) >= loadingFraction*peak {
			loadEnd = i
			break
		}
	}

	plateauLo, plateauHi := peakIdx, peakIdx+1
	for plateauLo > lo && math.Abs(res.StressThree[plateauLo-1]) >= plateauFraction*peak {
		plateauLo--
	}
	for plateauHi < hi && math.Abs(res.StressThree[plateauHi]) >= plateauFraction*peak {
		plateauHi++
	}

	if loadEnd-lo >= 2 {
		eq.Loading = metricsOver(res, lo, loadEnd)
	}

	if plateauHi-plateauLo >= 2 {
		eq.Plateau = metricsOver(res, plateauLo, plateauHi)
	}

	if hi-plateauHi >= 2 {
		eq.Unloading = metricsOver(res, plateauHi, hi)
	}

	return eq, nil
}

// activeSpan returns the first and one-past-last index where |stress|
// reaches floor.
func activeSpan(stress []float64, floor float64) (int, int) {
	lo, hi := 0, 0
	found := false

	for i, v := range stress {
		if math.Abs(v) >= floor {
			if !found {
				lo, found = i, true
			}
			hi = i + 1
		}
	}

	return lo, hi
}

func metricsOver(res Result, lo, hi int) Metrics {
	one := res.StressOne[lo:hi]
	three := res.StressThree[lo:hi]

	var m Metrics
	m.FBC = forceBalance(res.ForceOne[lo:hi], res.ForceThree[lo:hi])

	if span := numeric.Span(three); span > 0 {
		m.SEQI = 1 / (1 + numeric.RMSE(one, three)/span)
		m.DSUF = stat.RSquaredFrom(one, three, nil)
	}

	if peak := numeric.MaxAbs(three); peak > 0 {
		m.SOI = oscillationRMS(one, three) / peak
	}

	return m
}

// forceBalance is 1 - sum|Fin-Fout| / sum(|Fin|+|Fout|). ForceThree is the
// mean of the two face forces, so the input face is reconstructed as
// Fin = 2*ForceThree - Fout.
func forceBalance(forceOne, forceThree []float64) float64 {
	var num, den float64
	for i := range forceOne {
		out := forceOne[i]
		in := 2*forceThree[i] - out
		num += math.Abs(in - out)
		den += math.Abs(in) + math.Abs(out)
	}

	if den == 0 {
		return 0
	}

	return 1 - num/den
}

// oscillationRMS measures the high-frequency residual of the path
// difference: the difference is detrended with a centered moving average
// and the RMS of the remainder is returned.
func oscillationRMS(one, three []float64) float64 {
	n := len(one)
	diff := make([]float64, n)
	for i := range diff {
		diff[i] = one[i] - three[i]
	}

	width := n / 16
	if width < 3 {
		width = 3
	}

	trend := movingAverage(diff, width)

	var sum float64
	for i := range diff {
		r := diff[i] - trend[i]
		sum += r * r
	}

	return math.Sqrt(sum / float64(n))
}

// movingAverage smooths x with a centered window of the given width,
// shrinking the window at the edges.
func movingAverage(x []float64, width int) []float64 {
	prefix := make([]float64, len(x)+1)
	for i, v := range x {
		prefix[i+1] = prefix[i] + v
	}

	out := make([]float64, len(x))
	half := width / 2

	for i := range x {
		lo := i - half
		if lo < 0 {
			lo = 0
		}

		hi := i + half + 1
		if hi > len(x) {
			hi = len(x)
		}

		out[i] = (prefix[hi] - prefix[lo]) / float64(hi-lo)
	}

	return out
}
