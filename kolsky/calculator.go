package kolsky

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-shpb/internal/numeric"
)

// Bar holds the elastic properties of a pressure bar.
type Bar struct {
	Area           float64 // cross-sectional area in m^2
	WaveSpeed      float64 // elastic wave speed in m/s
	ElasticModulus float64 // Young's modulus in Pa
}

// Specimen holds the specimen geometry.
type Specimen struct {
	Area   float64 // cross-sectional area in m^2
	Length float64 // initial length along the loading axis in m
}

// Config parameterizes a Calculator.
type Config struct {
	Bar      Bar
	Specimen Specimen

	// StrainScale multiplies every channel after the optional voltage
	// conversion, normalizing recorder units. Defaults to 1; a negative
	// value flips the recorded polarity.
	StrainScale float64

	// VoltageInput treats the input series as bridge voltages and converts
	// each channel to strain through its gauge. IncidentGauge serves both
	// the incident and reflected channels, which share a bar.
	VoltageInput     bool
	IncidentGauge    *Gauge
	TransmittedGauge *Gauge
}

// Calculator derives stress-strain histories from aligned pulses. It holds
// only read-only configuration and is safe for concurrent use.
type Calculator struct {
	cfg Config
}

// NewCalculator validates cfg, fills defaults and returns a ready
// Calculator.
func NewCalculator(cfg Config) (*Calculator, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &Calculator{cfg: cfg}, nil
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.Bar.Area <= 0 {
		return cfg, fmt.Errorf("kolsky: bar area must be > 0: %g", cfg.Bar.Area)
	}

	if cfg.Bar.WaveSpeed <= 0 {
		return cfg, fmt.Errorf("kolsky: bar wave speed must be > 0: %f", cfg.Bar.WaveSpeed)
	}

	if cfg.Bar.ElasticModulus <= 0 {
		return cfg, fmt.Errorf("kolsky: bar elastic modulus must be > 0: %g", cfg.Bar.ElasticModulus)
	}

	if cfg.Specimen.Area <= 0 {
		return cfg, fmt.Errorf("kolsky: specimen area must be > 0: %g", cfg.Specimen.Area)
	}

	if cfg.Specimen.Length <= 0 {
		return cfg, fmt.Errorf("kolsky: specimen length must be > 0: %f", cfg.Specimen.Length)
	}

	if cfg.StrainScale == 0 {
		cfg.StrainScale = 1
	}

	if cfg.VoltageInput {
		if cfg.IncidentGauge == nil || cfg.TransmittedGauge == nil {
			return cfg, ErrMissingGauge
		}

		if err := cfg.IncidentGauge.Validate(); err != nil {
			return cfg, err
		}

		if err := cfg.TransmittedGauge.Validate(); err != nil {
			return cfg, err
		}
	}

	return cfg, nil
}

// Result holds every series derived from one calculation; all slices share
// the input length. One-suffixed series come from the 1-wave path, which
// assumes specimen equilibrium, Three-suffixed series from the 3-wave path,
// which does not. DisplacementOne tracks the output bar face (transmitted
// pulse), DisplacementThree the input bar face (incident and reflected
// pulses). Incident, Transmitted and Reflected carry the unit-normalized
// strains actually fed into the wave formulas.
type Result struct {
	Time []float64

	Incident    []float64
	Transmitted []float64
	Reflected   []float64

	DisplacementOne   []float64
	DisplacementThree []float64
	ForceOne          []float64
	ForceThree        []float64
	StrainRateOne     []float64
	StrainRateThree   []float64
	StrainOne         []float64
	StrainThree       []float64
	StressOne         []float64
	StressThree       []float64
	TrueStrainOne     []float64
	TrueStrainThree   []float64
	TrueStressOne     []float64
	TrueStressThree   []float64
}

// Calculate derives both analysis paths from the three aligned pulses. The
// series must share the length of time, which must increase uniformly. The
// result is a pure function of the inputs; no state is retained.
func (c *Calculator) Calculate(incident, transmitted, reflected, time []float64) (Result, error) {
	n := len(time)
	if len(incident) != n || len(transmitted) != n || len(reflected) != n {
		return Result{}, fmt.Errorf("%w: %d, %d, %d series vs %d time samples",
			ErrLengthMismatch, len(incident), len(transmitted), len(reflected), n)
	}

	if n < 2 {
		return Result{}, fmt.Errorf("%w: %d samples", ErrTooShort, n)
	}

	dt := numeric.SampleSpacing(time)
	if dt <= 0 {
		return Result{}, fmt.Errorf("kolsky: time vector must increase: spacing %g", dt)
	}

	cfg := c.cfg
	epsI := c.channelStrain(incident, cfg.IncidentGauge)
	epsR := c.channelStrain(reflected, cfg.IncidentGauge)
	epsT := c.channelStrain(transmitted, cfg.TransmittedGauge)

	modulus := cfg.Bar.ElasticModulus
	areaRatio := cfg.Bar.Area / cfg.Specimen.Area
	rateScale := cfg.Bar.WaveSpeed / cfg.Specimen.Length

	stressOne := make([]float64, n)
	stressThree := make([]float64, n)
	rateOne := make([]float64, n)
	rateThree := make([]float64, n)
	forceOne := make([]float64, n)
	forceThree := make([]float64, n)
	velIn := make([]float64, n)
	velOut := make([]float64, n)

	for i := 0; i < n; i++ {
		stressOne[i] = modulus * areaRatio * epsT[i]
		stressThree[i] = 0.5 * modulus * areaRatio * (epsI[i] + epsR[i] + epsT[i])
		rateOne[i] = -2 * rateScale * epsR[i]
		rateThree[i] = rateScale * (epsI[i] - epsR[i] - epsT[i])
		forceOne[i] = modulus * cfg.Bar.Area * epsT[i]
		forceThree[i] = 0.5 * modulus * cfg.Bar.Area * (epsI[i] + epsR[i] + epsT[i])
		velOut[i] = cfg.Bar.WaveSpeed * epsT[i]
		velIn[i] = cfg.Bar.WaveSpeed * (epsI[i] - epsR[i])
	}

	res := Result{
		Time:        append([]float64(nil), time...),
		Incident:    epsI,
		Transmitted: epsT,
		Reflected:   epsR,

		StressOne:         stressOne,
		StressThree:       stressThree,
		StrainRateOne:     rateOne,
		StrainRateThree:   rateThree,
		ForceOne:          forceOne,
		ForceThree:        forceThree,
		StrainOne:         numeric.CumTrapz(rateOne, dt),
		StrainThree:       numeric.CumTrapz(rateThree, dt),
		DisplacementOne:   numeric.CumTrapz(velOut, dt),
		DisplacementThree: numeric.CumTrapz(velIn, dt),
	}

	res.TrueStrainOne, res.TrueStressOne = trueVariants(res.StrainOne, stressOne)
	res.TrueStrainThree, res.TrueStressThree = trueVariants(res.StrainThree, stressThree)

	return res, nil
}

// channelStrain copies one raw channel and normalizes it to strain.
func (c *Calculator) channelStrain(raw []float64, g *Gauge) []float64 {
	out := append([]float64(nil), raw...)
	if c.cfg.VoltageInput {
		floats.Scale(g.StrainPerVolt(), out)
	}

	if c.cfg.StrainScale != 1 {
		floats.Scale(c.cfg.StrainScale, out)
	}

	return out
}

// trueVariants converts engineering strain and stress into their true
// counterparts (logarithmic strain, current-area stress) under the
// compression-positive convention.
func trueVariants(strain, stress []float64) ([]float64, []float64) {
	trueStrain := make([]float64, len(strain))
	trueStress := make([]float64, len(stress))

	for i := range strain {
		trueStrain[i] = -math.Log1p(-strain[i])
		trueStress[i] = stress[i] * (1 - strain[i])
	}

	return trueStrain, trueStress
}
