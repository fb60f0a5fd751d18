// Package testseason generates synthetic seasons and checks a running
// odds service against them.
package testseason

import "time"

// DefaultNames is the field used when no names are given.
var DefaultNames = []string{
	"Nico", "Sam", "Bryce", "Alex", "Jordan",
	"Casey", "Riley", "Drew", "Quinn", "Morgan",
}

// Config holds configuration for generation and checking
type Config struct {
	BaseURL string        // Base URL of the service
	Names   []string      // Entrant names
	Periods int           // Number of regular-season periods
	Seed    uint64        // Random seed; equal seeds give equal seasons
	Mean    float64       // League-wide mean score
	Spread  float64       // Standard deviation of entrant strength
	Noise   float64       // Standard deviation of a single period around strength
	Workers int           // Number of concurrent workers
	Timeout time.Duration // HTTP request timeout
	Output  string        // CSV file for the generated season
	LogFile string        // Log file for tool output
	Verbose bool          // Enable verbose logging
}

// Stats holds check statistics
type Stats struct {
	QueriesSent     int
	QueriesFailed   int
	Entrants        int
	SemifinalMass   float64
	FinalistMass    float64
	LargestLoss     float64
	LargestLossName string
	StartTime       time.Time
	EndTime         time.Time
	Duration        time.Duration
}
