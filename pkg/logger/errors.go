package logger

import "errors"

// Sentinel kinds for logger configuration errors.
var (
	ErrUnknownLevel  = errors.New("unknown log level")
	ErrUnknownFormat = errors.New("unknown log format")
)
