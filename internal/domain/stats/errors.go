package stats

import "errors"

// Sentinel kinds for statistics errors.
var (
	ErrInsufficientSamples = errors.New("at least two samples are required")
	ErrNonFinite           = errors.New("sample is not a finite number")
)
