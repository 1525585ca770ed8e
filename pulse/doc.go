// Package pulse locates and conditions strain pulses in bar gauge records.
//
// Detection slides a half-sine matched filter over a search region and ranks
// candidate positions by normalized cross-correlation, falling back through a
// descending cascade of noise-relative thresholds until one yields a
// candidate. An energy-ratio metric is available as an alternative for
// signals whose shape departs from the half-sine model.
//
// # Usage
//
// For one-shot detection on a gauge record:
//
//	d, err := pulse.NewDetector(pulse.Config{PulsePoints: 1000})
//	w, err := d.FindWindow(record, 0, len(record))
//	seg, err := d.SegmentAndCenter(record, w, 4096, 0.05)
//
// The package also provides baseline removal and rise-time measurement for
// segmented pulses.
//
// # Algorithm Selection
//
// The matched filter numerator uses direct dot products for pulse lengths
// below 64 samples and an FFT correlation otherwise.
package pulse
