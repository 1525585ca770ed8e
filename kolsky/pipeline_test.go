package kolsky

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-shpb/align"
	"github.com/cwbudde/algo-shpb/internal/testutil"
	"github.com/cwbudde/algo-shpb/pulse"
)

// TestPipelineEndToEnd runs detection, segmentation, alignment and
// calculation over a synthetic record set: an incident half-sine at index
// 2000, the transmitted pulse scaled by the bar-to-specimen area ratio at
// index 5000, and the consistent reflected pulse on its own channel. The
// detected offset difference and the peak 1-wave stress must match the
// constructed values.
func TestPipelineEndToEnd(t *testing.T) {
	const (
		records   = 16384
		width     = 1000
		points    = 4096
		dt        = 2e-7
		amplitude = 1e-3
		areaRatio = 0.5
	)

	shape := testutil.HalfSine(amplitude, width)
	incident := testutil.EmbedAt(records, 2000, shape)
	transmitted := testutil.EmbedAt(records, 5000, testutil.HalfSine(areaRatio*amplitude, width))

	reflectedShape := make([]float64, width)
	for i := range reflectedShape {
		reflectedShape[i] = areaRatio*shape[i] - shape[i]
	}
	reflected := testutil.EmbedAt(records, 3500, reflectedShape)

	compressive, err := pulse.NewDetector(pulse.Config{PulsePoints: width})
	if err != nil {
		t.Fatal(err)
	}

	tensile, err := pulse.NewDetector(pulse.Config{PulsePoints: width, Polarity: pulse.Tensile})
	if err != nil {
		t.Fatal(err)
	}

	wInc, err := compressive.FindWindow(incident, 0, records)
	if err != nil {
		t.Fatal(err)
	}

	wTrans, err := compressive.FindWindow(transmitted, 0, records)
	if err != nil {
		t.Fatal(err)
	}

	wRef, err := tensile.FindWindow(reflected, 0, records)
	if err != nil {
		t.Fatal(err)
	}

	if wInc.Start != 2000 || wTrans.Start != 5000 || wRef.Start != 3500 {
		t.Fatalf("windows = %v %v %v, want starts 2000/5000/3500", wInc, wTrans, wRef)
	}

	// The transmitted pulse trails the incident one by 3000 samples.
	if got := wTrans.Start - wInc.Start; got != 3000 {
		t.Fatalf("transit offset = %d, want 3000", got)
	}

	segInc, err := compressive.SegmentAndCenter(incident, wInc, points, 0.05)
	if err != nil {
		t.Fatal(err)
	}

	segTrans, err := compressive.SegmentAndCenter(transmitted, wTrans, points, 0.05)
	if err != nil {
		t.Fatal(err)
	}

	segRef, err := tensile.SegmentAndCenter(reflected, wRef, points, 0.05)
	if err != nil {
		t.Fatal(err)
	}

	aligner, err := align.NewAligner(align.Config{
		WaveSpeed:         5000,
		SpecimenLength:    0.005,
		SampleInterval:    dt,
		TransmittedBounds: align.Bounds{Min: -30, Max: 30},
		ReflectedBounds:   align.Bounds{Min: -30, Max: 30},
	})
	if err != nil {
		t.Fatal(err)
	}

	ares, err := aligner.Align(segInc, segTrans, segRef)
	if err != nil {
		t.Fatal(err)
	}

	// Onset centering already phase-aligned the segments, so only a tiny
	// residual shift may remain.
	if ares.ShiftT < -1 || ares.ShiftT > 1 || ares.ShiftR < -1 || ares.ShiftR > 1 {
		t.Fatalf("residual shifts = (%d,%d), want (0,0) +/- 1", ares.ShiftT, ares.ShiftR)
	}

	calc, err := NewCalculator(Config{
		Bar:      Bar{Area: 1e-4, WaveSpeed: 5000, ElasticModulus: 200e9},
		Specimen: Specimen{Area: 2e-4, Length: 0.005},
	})
	if err != nil {
		t.Fatal(err)
	}

	res, err := calc.Calculate(ares.Incident, ares.Transmitted, ares.Reflected, testutil.TimeVector(points, dt))
	if err != nil {
		t.Fatal(err)
	}

	// Peak 1-wave stress: E * (Abar/As) * peak eps_t = 200e9 * 0.5 * 5e-4.
	const wantPeak = 5e7
	peak := 0.0
	for _, v := range res.StressOne {
		if v > peak {
			peak = v
		}
	}

	if math.Abs(peak-wantPeak) > 0.01*wantPeak {
		t.Fatalf("peak stress = %v, want %v within 1%%", peak, wantPeak)
	}

	eq, err := EquilibriumMetrics(res)
	if err != nil {
		t.Fatal(err)
	}

	if eq.Overall.FBC < 0.9 || eq.Overall.DSUF < 0.95 || eq.Overall.SEQI < 0.9 {
		t.Fatalf("pipeline equilibrium degraded: %+v", eq.Overall)
	}
}
