package testseason

import "time"

// Generation defaults.
const (
	DefaultPeriods = 14
	DefaultMean    = 110.0
	DefaultSpread  = 12.0
	DefaultNoise   = 22.0
	DefaultTimeout = 30 * time.Second
)

// Bracket invariants checked against the service.
const (
	SemifinalSlots = 4
	FinalistSlots  = 2
	massTolerance  = 1e-6
	sumTolerance   = 1e-9
)

// WorkerChannelMultiplier sizes the job channel relative to the worker count.
const WorkerChannelMultiplier = 2
