package seeding

import "errors"

// Sentinel kinds for seeding errors. These allow errors.Is/As from callers.
var (
	ErrEntrantCount    = errors.New("bracket requires exactly ten entrants")
	ErrDuplicateName   = errors.New("duplicate entrant name")
	ErrInvalidOverride = errors.New("seed override is not a permutation of ranks")
	ErrUnknownEntrant  = errors.New("entrant not found")
	ErrSeedOutOfRange  = errors.New("seed out of range")
)
