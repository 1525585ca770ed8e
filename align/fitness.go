package align

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-shpb/internal/numeric"
)

// fitness scores one already-shifted pulse triple. All four terms are
// bounded similarities in [0,1]:
//
//	correlation:  Pearson r between εi and (εt − εr), clamped at 0
//	displacement: 1/(1 + RMSE/span) between the bar-end displacements
//	               u_in = C0·∫(εi − εr) dt and u_out = C0·∫εt dt
//	strain rate:  1/(1 + RMSE/span) between the one-wave rate
//	               −(2C0/Ls)·εr and the three-wave rate (C0/Ls)·(εi − εr − εt)
//	strain:       same comparison on the integrated strains
//
// The strain-rate and strain terms are evaluated over the central
// LinearFraction of the steepest one-wave run only, where specimen response
// is closest to linear. The total is the weighted sum of the four terms.
func (a *Aligner) fitness(incident, transmitted, reflected []float64) Fitness {
	cfg := a.cfg
	n := len(incident)
	scale := cfg.WaveSpeed / cfg.SpecimenLength

	diff := make([]float64, n)
	rateOne := make([]float64, n)
	rateThree := make([]float64, n)
	velIn := make([]float64, n)
	velOut := make([]float64, n)

	for i := 0; i < n; i++ {
		diff[i] = transmitted[i] - reflected[i]
		rateOne[i] = -2 * scale * reflected[i]
		rateThree[i] = scale * (incident[i] - reflected[i] - transmitted[i])
		velIn[i] = cfg.WaveSpeed * (incident[i] - reflected[i])
		velOut[i] = cfg.WaveSpeed * transmitted[i]
	}

	var f Fitness

	if r := stat.Correlation(incident, diff, nil); !math.IsNaN(r) {
		f.Correlation = numeric.Clamp(r, 0, 1)
	}

	uIn := numeric.CumTrapz(velIn, cfg.SampleInterval)
	uOut := numeric.CumTrapz(velOut, cfg.SampleInterval)
	f.Displacement = boundedSimilarity(uOut, uIn)

	lo, hi := linearZone(rateOne, cfg.LinearFraction)
	if hi-lo >= 2 {
		f.StrainRate = boundedSimilarity(rateThree[lo:hi], rateOne[lo:hi])

		strainOne := numeric.CumTrapz(rateOne, cfg.SampleInterval)
		strainThree := numeric.CumTrapz(rateThree, cfg.SampleInterval)
		f.Strain = boundedSimilarity(strainThree[lo:hi], strainOne[lo:hi])
	}

	w := cfg.Weights
	f.Total = w.Correlation*f.Correlation +
		w.Displacement*f.Displacement +
		w.StrainRate*f.StrainRate +
		w.Strain*f.Strain

	return f
}

// boundedSimilarity maps the RMSE between got and a reference series onto
// (0,1], normalizing by the reference peak-to-peak span. A flat reference
// scores 0.
func boundedSimilarity(got, ref []float64) float64 {
	span := numeric.Span(ref)
	if span == 0 {
		return 0
	}

	return 1 / (1 + numeric.RMSE(got, ref)/span)
}

// linearZone returns the half-open index range covering the central fraction
// of the steepest contiguous run of rate: the samples around the magnitude
// peak that stay above half of it. A flat series yields an empty range.
func linearZone(rate []float64, fraction float64) (int, int) {
	peak := 0.0
	peakIdx := 0
	for i, v := range rate {
		if a := math.Abs(v); a > peak {
			peak, peakIdx = a, i
		}
	}

	if peak == 0 {
		return 0, 0
	}

	half := peak / 2

	lo := peakIdx
	for lo > 0 && math.Abs(rate[lo-1]) >= half {
		lo--
	}

	hi := peakIdx + 1
	for hi < len(rate) && math.Abs(rate[hi]) >= half {
		hi++
	}

	run := hi - lo
	keep := int(math.Round(fraction * float64(run)))
	if keep < 2 {
		keep = 2
	}
	if keep > run {
		keep = run
	}

	lo += (run - keep) / 2

	return lo, lo + keep
}
