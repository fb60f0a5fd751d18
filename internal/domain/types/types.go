// Package types contains common types used across the application
package types

// Entry represents a row of the seeded standings
type Entry struct {
	Seed   int     `json:"seed"`
	Rank   int     `json:"rank"` // position by total score, before seed overrides
	Name   string  `json:"name"`
	Total  float64 `json:"total"`
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Probability is a single answered query
type Probability struct {
	Query   string  `json:"query"`
	Subject string  `json:"subject"`
	Against string  `json:"against,omitempty"`
	Value   float64 `json:"value"`
	Percent string  `json:"percent"`
}

// Loss breaks down how the subject can be eliminated
type Loss struct {
	Subject    string  `json:"subject"`
	Seed       int     `json:"seed"`
	Semifinal  float64 `json:"semifinal"`
	Final      float64 `json:"final"`
	Tournament float64 `json:"tournament"`
	Percent    string  `json:"percent"`
}
