package pulse

import (
	"fmt"
	"math"
)

// RiseTime measures how long the pulse takes to climb from lowFrac to
// highFrac of its peak magnitude:
//
//	t_rise = t(first sample ≥ highFrac·peak) − t(first sample ≥ lowFrac·peak)
//
// The pulse sign is taken from its largest-magnitude sample, so both
// polarities work. Crossings are searched up to the peak only.
func RiseTime(pulse, time []float64, lowFrac, highFrac float64) (float64, error) {
	if len(pulse) == 0 || len(time) == 0 {
		return 0, ErrEmptySignal
	}

	if len(pulse) != len(time) {
		return 0, fmt.Errorf("pulse: pulse and time length mismatch: %d vs %d", len(pulse), len(time))
	}

	if lowFrac <= 0 || highFrac <= lowFrac || highFrac > 1 {
		return 0, fmt.Errorf("pulse: rise fractions must satisfy 0 < low < high <= 1: %f, %f", lowFrac, highFrac)
	}

	peak := 0.0
	peakIdx := 0
	for i, v := range pulse {
		if a := math.Abs(v); a > peak {
			peak, peakIdx = a, i
		}
	}

	if peak == 0 {
		return 0, fmt.Errorf("%w: signal is flat", ErrRiseTime)
	}

	sign := 1.0
	if pulse[peakIdx] < 0 {
		sign = -1
	}

	lowIdx, highIdx := -1, -1
	for i := 0; i <= peakIdx; i++ {
		v := sign * pulse[i]
		if lowIdx < 0 && v >= lowFrac*peak {
			lowIdx = i
		}

		if v >= highFrac*peak {
			highIdx = i
			break
		}
	}

	if lowIdx < 0 || highIdx < 0 {
		return 0, fmt.Errorf("%w: thresholds not crossed before the peak", ErrRiseTime)
	}

	return time[highIdx] - time[lowIdx], nil
}
