package pulse

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Polarity selects the sign convention of the sought pulse. The module is
// compression-positive throughout, so compressive pulses are positive-going.
type Polarity int

const (
	// Compressive selects positive-going pulses.
	Compressive Polarity = iota

	// Tensile selects negative-going pulses.
	Tensile
)

func (p Polarity) sign() float64 {
	if p == Tensile {
		return -1
	}

	return 1
}

// Metric selects the score series used to rank candidate pulse positions.
type Metric int

const (
	// MetricCorrelation scores positions by normalized cross-correlation
	// against a half-sine template.
	MetricCorrelation Metric = iota

	// MetricEnergy scores positions by the ratio of short-term to long-term
	// RMS energy.
	MetricEnergy
)

// Window marks a half-open sample range [Start, End) in a gauge record.
type Window struct {
	Start int
	End   int
}

// Len returns the number of samples covered by the window.
func (w Window) Len() int {
	return w.End - w.Start
}

// Config holds pulse detection parameters.
type Config struct {
	// PulsePoints is the expected pulse length in samples. Required.
	PulsePoints int

	// Thresholds are sigma multipliers over the score series, tried most
	// selective first. Defaults to 8, 6, 4, 3.
	Thresholds []float64

	// MinSeparation suppresses candidates closer than this many samples to a
	// better-scoring one. 0 selects the default of PulsePoints/2.
	MinSeparation int

	// Polarity selects the sought pulse sign. Defaults to Compressive.
	Polarity Polarity

	// Metric selects the scoring series. Defaults to MetricCorrelation.
	Metric Metric

	// TaperAlpha, when positive, applies a Tukey window with that taper
	// fraction to segmented pulses. Defaults to 0 (no taper).
	TaperAlpha float64
}

// Detector locates strain pulses in bar gauge records.
type Detector struct {
	cfg  Config
	tmpl []float64
	norm float64
}

// NewDetector validates cfg, fills defaults and returns a ready detector.
func NewDetector(cfg Config) (*Detector, error) {
	cfg, err := normalizeConfig(cfg)
	if err != nil {
		return nil, err
	}

	tmpl := halfSineTemplate(cfg.PulsePoints, cfg.Polarity.sign())

	return &Detector{cfg: cfg, tmpl: tmpl, norm: l2Norm(tmpl)}, nil
}

func normalizeConfig(cfg Config) (Config, error) {
	if cfg.PulsePoints <= 0 {
		return cfg, fmt.Errorf("pulse: pulse points must be > 0: %d", cfg.PulsePoints)
	}

	if cfg.Thresholds == nil {
		cfg.Thresholds = []float64{8, 6, 4, 3}
	} else {
		cfg.Thresholds = append([]float64(nil), cfg.Thresholds...)
	}

	if len(cfg.Thresholds) == 0 {
		return cfg, fmt.Errorf("pulse: threshold cascade must not be empty")
	}

	for i, k := range cfg.Thresholds {
		if k <= 0 {
			return cfg, fmt.Errorf("pulse: thresholds must be > 0: %f", k)
		}

		if i > 0 && k >= cfg.Thresholds[i-1] {
			return cfg, fmt.Errorf("pulse: thresholds must descend: %v", cfg.Thresholds)
		}
	}

	if cfg.MinSeparation < 0 {
		return cfg, fmt.Errorf("pulse: min separation must be >= 0: %d", cfg.MinSeparation)
	}

	if cfg.MinSeparation == 0 {
		cfg.MinSeparation = cfg.PulsePoints / 2
		if cfg.MinSeparation < 1 {
			cfg.MinSeparation = 1
		}
	}

	switch cfg.Polarity {
	case Compressive, Tensile:
	default:
		return cfg, fmt.Errorf("pulse: unknown polarity: %d", cfg.Polarity)
	}

	switch cfg.Metric {
	case MetricCorrelation, MetricEnergy:
	default:
		return cfg, fmt.Errorf("pulse: unknown metric: %d", cfg.Metric)
	}

	if cfg.TaperAlpha < 0 || cfg.TaperAlpha > 1 {
		return cfg, fmt.Errorf("pulse: taper alpha must be in [0,1]: %f", cfg.TaperAlpha)
	}

	return cfg, nil
}

// FindWindow locates the best-scoring pulse of the configured length in
// signal[lower:upper] (clipped to the record). Each configured threshold is
// tried in turn; the top candidate of the first threshold that yields any
// wins.
func (d *Detector) FindWindow(signal []float64, lower, upper int) (Window, error) {
	cands, err := d.Candidates(signal, lower, upper)
	if err != nil {
		return Window{}, err
	}

	return cands[0], nil
}

// Candidates returns all accepted pulse windows in signal[lower:upper],
// best score first. Candidates closer than MinSeparation to a better-scoring
// one are suppressed. The error cases match FindWindow.
func (d *Detector) Candidates(signal []float64, lower, upper int) ([]Window, error) {
	lower, upper, err := d.clipBounds(len(signal), lower, upper)
	if err != nil {
		return nil, err
	}

	scores, err := d.scoreSeries(signal, lower, upper)
	if err != nil {
		return nil, err
	}

	mean := stat.Mean(scores, nil)

	sigma := 0.0
	if len(scores) > 1 {
		sigma = stat.StdDev(scores, nil)
	}

	for _, k := range d.cfg.Thresholds {
		peaks := localMaxima(scores, mean+k*sigma)
		if len(peaks) == 0 {
			continue
		}

		accepted := suppressClose(peaks, scores, d.cfg.MinSeparation)

		out := make([]Window, len(accepted))
		for i, p := range accepted {
			out[i] = Window{Start: lower + p, End: lower + p + d.cfg.PulsePoints}
		}

		return out, nil
	}

	return nil, fmt.Errorf("%w in [%d,%d)", ErrNoPulse, lower, upper)
}

// MatchScores returns the raw score series FindWindow ranks candidates by.
// Index i corresponds to a pulse starting at sample lower+i after clipping.
func (d *Detector) MatchScores(signal []float64, lower, upper int) ([]float64, error) {
	lower, upper, err := d.clipBounds(len(signal), lower, upper)
	if err != nil {
		return nil, err
	}

	return d.scoreSeries(signal, lower, upper)
}

func (d *Detector) clipBounds(n, lower, upper int) (int, int, error) {
	if n == 0 {
		return 0, 0, ErrEmptySignal
	}

	if lower < 0 {
		lower = 0
	}

	if upper > n {
		upper = n
	}

	if upper-lower < d.cfg.PulsePoints {
		return 0, 0, fmt.Errorf("%w: [%d,%d) with pulse length %d", ErrInvalidBounds, lower, upper, d.cfg.PulsePoints)
	}

	return lower, upper, nil
}

// localMaxima returns indices whose score strictly exceeds thresh and is not
// below either neighbor.
func localMaxima(scores []float64, thresh float64) []int {
	var out []int

	for i, v := range scores {
		if v <= thresh {
			continue
		}

		if i > 0 && scores[i-1] > v {
			continue
		}

		if i < len(scores)-1 && scores[i+1] > v {
			continue
		}

		out = append(out, i)
	}

	return out
}

// suppressClose greedily accepts peaks in descending score order, dropping
// any peak within minSep samples of an already accepted one. Ties resolve to
// the earlier position.
func suppressClose(peaks []int, scores []float64, minSep int) []int {
	order := append([]int(nil), peaks...)
	sort.SliceStable(order, func(i, j int) bool {
		si, sj := scores[order[i]], scores[order[j]]
		if si != sj {
			return si > sj
		}

		return order[i] < order[j]
	})

	var accepted []int

	for _, p := range order {
		ok := true

		for _, q := range accepted {
			if intAbs(p-q) < minSep {
				ok = false
				break
			}
		}

		if ok {
			accepted = append(accepted, p)
		}
	}

	return accepted
}

func intAbs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
