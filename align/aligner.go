package align

import "fmt"

// Bounds limits one shift dimension to the inclusive range [Min, Max] in
// samples. The zero value pins that shift to 0.
type Bounds struct {
	Min int
	Max int
}

// Weights blends the four fitness terms into the total score. The zero value
// selects the defaults 0.3/0.3/0.3/0.1.
type Weights struct {
	Correlation  float64
	Displacement float64
	StrainRate   float64
	Strain       float64
}

func (w Weights) sum() float64 {
	return w.Correlation + w.Displacement + w.StrainRate + w.Strain
}

// Fitness holds the per-term similarity scores in [0,1] and their weighted
// total.
type Fitness struct {
	Correlation  float64
	Displacement float64
	StrainRate   float64
	Strain       float64
	Total        float64
}

// Config holds alignment parameters. WaveSpeed, SpecimenLength and
// SampleInterval are required; the remaining fields default when zero.
type Config struct {
	// WaveSpeed is the bar wave speed C0 in m/s.
	WaveSpeed float64

	// SpecimenLength is the specimen gauge length in m.
	SpecimenLength float64

	// SampleInterval is the sampling period in s.
	SampleInterval float64

	// TransmittedBounds and ReflectedBounds limit the shift search. Zero
	// values pin the respective shift to 0.
	TransmittedBounds Bounds
	ReflectedBounds   Bounds

	// Weights blends the fitness terms. Defaults to 0.3/0.3/0.3/0.1.
	Weights Weights

	// LinearFraction is the central fraction of the steepest strain-rate run
	// used for the strain-rate and strain terms. Defaults to 0.35.
	LinearFraction float64

	// Population and Generations size the differential evolution search.
	// Defaults: 40 and 60.
	Population  int
	Generations int

	// MutationFactor is the DE differential weight F in (0,2]. Defaults to 0.7.
	MutationFactor float64

	// CrossoverRate is the DE crossover probability CR in (0,1]. Defaults to 0.9.
	CrossoverRate float64

	// Seed feeds the search RNG. 0 selects the default seed 1.
	Seed int64

	// Workers bounds the number of goroutines evaluating fitness. Defaults
	// to 1. The search result does not depend on the worker count.
	Workers int
}

// Aligner searches shift pairs for the transmitted and reflected pulses.
type Aligner struct {
	cfg Config
}

// NewAligner validates cfg, fills defaults and returns a ready aligner.
func NewAligner(cfg Config) (*Aligner, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	return &Aligner{cfg: cfg}, nil
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.WaveSpeed <= 0 {
		return cfg, fmt.Errorf("align: wave speed must be > 0: %f", cfg.WaveSpeed)
	}

	if cfg.SpecimenLength <= 0 {
		return cfg, fmt.Errorf("align: specimen length must be > 0: %f", cfg.SpecimenLength)
	}

	if cfg.SampleInterval <= 0 {
		return cfg, fmt.Errorf("align: sample interval must be > 0: %g", cfg.SampleInterval)
	}

	if cfg.TransmittedBounds.Min > cfg.TransmittedBounds.Max {
		return cfg, fmt.Errorf("align: transmitted bounds inverted: [%d,%d]", cfg.TransmittedBounds.Min, cfg.TransmittedBounds.Max)
	}

	if cfg.ReflectedBounds.Min > cfg.ReflectedBounds.Max {
		return cfg, fmt.Errorf("align: reflected bounds inverted: [%d,%d]", cfg.ReflectedBounds.Min, cfg.ReflectedBounds.Max)
	}

	w := cfg.Weights
	if w.Correlation < 0 || w.Displacement < 0 || w.StrainRate < 0 || w.Strain < 0 {
		return cfg, fmt.Errorf("align: weights must be >= 0: %+v", w)
	}

	if w == (Weights{}) {
		cfg.Weights = Weights{Correlation: 0.3, Displacement: 0.3, StrainRate: 0.3, Strain: 0.1}
	}

	if cfg.LinearFraction == 0 {
		cfg.LinearFraction = 0.35
	}

	if cfg.LinearFraction < 0 || cfg.LinearFraction > 1 {
		return cfg, fmt.Errorf("align: linear fraction must be in (0,1]: %f", cfg.LinearFraction)
	}

	if cfg.Population == 0 {
		cfg.Population = 40
	}

	if cfg.Population < 8 {
		return cfg, fmt.Errorf("align: population must be >= 8: %d", cfg.Population)
	}

	if cfg.Generations == 0 {
		cfg.Generations = 60
	}

	if cfg.Generations < 0 {
		return cfg, fmt.Errorf("align: generations must be > 0: %d", cfg.Generations)
	}

	if cfg.MutationFactor == 0 {
		cfg.MutationFactor = 0.7
	}

	if cfg.MutationFactor < 0 || cfg.MutationFactor > 2 {
		return cfg, fmt.Errorf("align: mutation factor must be in (0,2]: %f", cfg.MutationFactor)
	}

	if cfg.CrossoverRate == 0 {
		cfg.CrossoverRate = 0.9
	}

	if cfg.CrossoverRate < 0 || cfg.CrossoverRate > 1 {
		return cfg, fmt.Errorf("align: crossover rate must be in (0,1]: %f", cfg.CrossoverRate)
	}

	if cfg.Seed == 0 {
		cfg.Seed = 1
	}

	if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("align: workers must be > 0: %d", cfg.Workers)
	}

	return cfg, nil
}

// Result holds the best shift pair, its fitness breakdown and the realigned
// series.
type Result struct {
	// ShiftT and ShiftR are the recovered shifts in samples. Positive values
	// mean the raw pulse sat later in the record than it should.
	ShiftT int
	ShiftR int

	// Fitness is the score breakdown of the winning pair.
	Fitness Fitness

	// Incident is a copy of the input; Transmitted and Reflected carry the
	// winning shifts applied.
	Incident    []float64
	Transmitted []float64
	Reflected   []float64

	// Evaluations counts the distinct shift pairs scored during the search.
	Evaluations int
}

// Align searches the configured shift bounds for the pair that best
// satisfies the wave-mechanics relations between the three pulses.
func (a *Aligner) Align(incident, transmitted, reflected []float64) (Result, error) {
	if err := validateSeries(incident, transmitted, reflected); err != nil {
		return Result{}, err
	}

	eval := func(st, sr int) Fitness {
		return a.fitness(incident, shifted(transmitted, st), shifted(reflected, sr))
	}

	bestT, bestR, best, evals := a.search(eval)
	if !(best.Total > 0) {
		return Result{}, fmt.Errorf("%w: t=[%d,%d] r=[%d,%d]", ErrNoImprovement,
			a.cfg.TransmittedBounds.Min, a.cfg.TransmittedBounds.Max,
			a.cfg.ReflectedBounds.Min, a.cfg.ReflectedBounds.Max)
	}

	return Result{
		ShiftT:      bestT,
		ShiftR:      bestR,
		Fitness:     best,
		Incident:    append([]float64(nil), incident...),
		Transmitted: shifted(transmitted, bestT),
		Reflected:   shifted(reflected, bestR),
		Evaluations: evals,
	}, nil
}

// Evaluate scores one explicit shift pair. The shifts need not lie within
// the configured search bounds.
func (a *Aligner) Evaluate(incident, transmitted, reflected []float64, shiftT, shiftR int) (Fitness, error) {
	if err := validateSeries(incident, transmitted, reflected); err != nil {
		return Fitness{}, err
	}

	return a.fitness(incident, shifted(transmitted, shiftT), shifted(reflected, shiftR)), nil
}

func validateSeries(incident, transmitted, reflected []float64) error {
	if len(incident) != len(transmitted) || len(incident) != len(reflected) {
		return fmt.Errorf("align: series length mismatch: %d, %d, %d", len(incident), len(transmitted), len(reflected))
	}

	if len(incident) < 8 {
		return fmt.Errorf("align: series too short: %d samples", len(incident))
	}

	return nil
}

// shifted returns a copy of x advanced by shift samples: out[i] = x[i+shift],
// with zeros where the source index falls outside the record. A positive
// shift moves content earlier, undoing a pulse that sat late in the record.
func shifted(x []float64, shift int) []float64 {
	out := make([]float64, len(x))
	for i := range out {
		j := i + shift
		if j >= 0 && j < len(x) {
			out[i] = x[j]
		}
	}

	return out
}
