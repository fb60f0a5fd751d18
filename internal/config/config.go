// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and PLOFFS_* environment variables on top.
// - Errors are wrapped with this package's sentinel kinds.
package config

import (
	"context"
	"time"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"loglevel"`

	// LogFormat selects text or json log output.
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// ScoresPath points at the season CSV.
	ScoresPath string `koanf:"scores_path"`

	// PeriodColumn is the CSV header holding period labels.
	PeriodColumn string `koanf:"period_column" validate:"required"`

	// Target is the entrant whose elimination odds are headlined.
	Target string `koanf:"target" validate:"required"`

	// PercentPrecision is the number of decimals shown in percentages.
	PercentPrecision int32 `koanf:"percent_precision" validate:"gte=0,lte=10"`

	// SeedOverrides maps a total-score rank to the seed it receives.
	SeedOverrides map[int]int `koanf:"seed_overrides" validate:"dive,keys,gte=1,lte=10,endkeys,gte=1,lte=10"`

	// CacheEnabled memoises probability queries per snapshot.
	CacheEnabled bool `koanf:"cache_enabled"`

	// ReloadInterval re-reads the scores file periodically; zero disables it.
	ReloadInterval time.Duration `koanf:"reload_interval" validate:"gte=0"`

	// MaxStandingsLimit caps GET /standings?limit.
	MaxStandingsLimit int `koanf:"max_standings_limit" validate:"gte=1"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		ScoresPath:        "scores.csv",
		PeriodColumn:      "Week",
		Target:            "Nico",
		PercentPrecision:  2,
		SeedOverrides:     map[int]int{4: 5, 5: 4},
		CacheEnabled:      true,
		ReloadInterval:    0,
		MaxStandingsLimit: 10,
	}
}
