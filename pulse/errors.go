package pulse

import "errors"

// Errors returned by detection and conditioning functions.
var (
	ErrEmptySignal   = errors.New("pulse: empty signal")
	ErrInvalidBounds = errors.New("pulse: search bounds too narrow for pulse length")
	ErrInvalidWindow = errors.New("pulse: window out of signal range")
	ErrNoPulse       = errors.New("pulse: no pulse above any detection threshold")
	ErrRiseTime      = errors.New("pulse: no usable rise in pulse")
)
