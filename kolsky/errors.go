package kolsky

import "errors"

// Errors returned by calculation and metric functions.
var (
	ErrLengthMismatch = errors.New("kolsky: input series length mismatch")
	ErrTooShort       = errors.New("kolsky: input series too short")
	ErrMissingGauge   = errors.New("kolsky: voltage input requires gauges for both bars")
	ErrNoActivity     = errors.New("kolsky: no stress activity above the noise floor")
)
