package repository

import "errors"

// Sentinel kinds for repository errors.
var (
	ErrNotFound       = errors.New("entrant not found")
	ErrInvalidLimit   = errors.New("invalid standings limit")
	ErrMalformedTable = errors.New("malformed score table")
	ErrNoSource       = errors.New("score source not configured")
)
