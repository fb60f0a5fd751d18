// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/okian/ploffs/internal/adapters/repository"
	"github.com/okian/ploffs/internal/domain/odds"
	"github.com/okian/ploffs/internal/domain/types"
	"github.com/okian/ploffs/internal/report"
	"github.com/okian/ploffs/pkg/logger"
	"github.com/okian/ploffs/pkg/metrics"
	cache "github.com/patrickmn/go-cache"
)

const defaultMetricsInterval = 10 * time.Second

// Service answers playoff odds queries against the current snapshot.
type Service struct {
	mu sync.RWMutex

	// Core components
	source    repository.Source
	standings repository.Store
	snap      *odds.Snapshot
	memo      *cache.Cache

	// Configuration
	target          string
	precision       int32
	overrides       map[int]int
	cacheEnabled    bool
	reloadInterval  time.Duration
	metricsInterval time.Duration

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where the score table is loaded from.
func WithSource(src repository.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore sets the standings store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.standings = store
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithTarget sets the entrant whose elimination odds are headlined.
func WithTarget(name string) Option {
	return func(s *Service) {
		if name != "" {
			s.target = name
		}
	}
}

// WithPercentPrecision sets the decimals used in percentages.
func WithPercentPrecision(places int32) Option {
	return func(s *Service) {
		if places >= 0 {
			s.precision = places
		}
	}
}

// WithSeedOverrides sets the rank->seed overrides used when seeding.
func WithSeedOverrides(overrides map[int]int) Option {
	return func(s *Service) {
		if len(overrides) > 0 {
			s.overrides = overrides
		}
	}
}

// WithCacheEnabled turns query memoisation on or off.
func WithCacheEnabled(enabled bool) Option {
	return func(s *Service) {
		s.cacheEnabled = enabled
	}
}

// WithReloadInterval re-reads the source periodically. Zero disables it.
func WithReloadInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval >= 0 {
			s.reloadInterval = interval
		}
	}
}

// WithMetricsInterval sets how often runtime gauges are refreshed.
func WithMetricsInterval(interval time.Duration) Option {
	return func(s *Service) {
		if interval > 0 {
			s.metricsInterval = interval
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		target:          "Nico",
		precision:       report.DefaultPrecision,
		cacheEnabled:    true,
		metricsInterval: defaultMetricsInterval,
		stopCh:          make(chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.standings == nil {
		s.standings = repository.NewStandingsStore()
	}
	if s.cacheEnabled {
		s.memo = cache.New(cache.NoExpiration, 0)
	}
	return s
}

// Start builds the first snapshot and starts background maintenance.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Named("service")
	}
	s.mu.Unlock()

	s.logger.Info(ctx, "starting playoff odds service...")
	if err := s.Reload(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopCh = make(chan struct{})
	s.startMaintenance(ctx)
	s.started = true
	s.logger.Info(ctx, "playoff odds service started",
		logger.String("target", s.target),
		logger.Bool("cache", s.memo != nil),
		logger.Duration("reloadInterval", s.reloadInterval),
	)
	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.logger.Info(context.Background(), "stopping playoff odds service...")
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "playoff odds service stopped")
}

// Reload reads the source, builds a fresh snapshot and swaps it in. On
// failure the previous snapshot stays active.
func (s *Service) Reload(ctx context.Context) error {
	if s.source == nil {
		return repository.ErrNoSource
	}
	start := time.Now()
	log := s.log()

	table, err := s.source.Load(ctx)
	if err != nil {
		metrics.RecordErrorByComponent("service", "load")
		log.Error(ctx, "failed to load scores", logger.Error(err))
		return fmt.Errorf("load scores: %w", err)
	}
	snap, err := odds.Build(table, odds.WithSeedOverrides(s.overrides))
	if err != nil {
		metrics.RecordSnapshotBuildError()
		metrics.RecordErrorByComponent("service", "build")
		log.Error(ctx, "failed to build snapshot", logger.Error(err))
		return err
	}
	if err := s.standings.Replace(ctx, entriesOf(snap)); err != nil {
		return fmt.Errorf("publish standings: %w", err)
	}

	s.mu.Lock()
	s.snap = snap
	if s.memo != nil {
		s.memo.Flush()
	}
	s.mu.Unlock()

	metrics.RecordSnapshotBuild(float64(time.Since(start).Milliseconds()), len(table.Entrants), len(table.Periods), snap.BuiltAt())
	metrics.UpdateCacheEntries(0)
	fields := []logger.Field{
		logger.String("snapshot", snap.ID()),
		logger.Int("entrants", len(table.Entrants)),
		logger.Int("periods", len(table.Periods)),
	}
	if loss, err := snap.LosesTournament(s.target); err == nil {
		metrics.UpdateTargetLossProbability(loss)
		fields = append(fields, logger.String("targetLoss", report.Percent(loss, s.precision)))
	} else {
		log.Warn(ctx, "target is not in the standings", logger.String("target", s.target))
	}
	log.Info(ctx, "snapshot built", fields...)
	return nil
}

func (s *Service) log() logger.Logger {
	s.mu.RLock()
	l := s.logger
	s.mu.RUnlock()
	if l == nil {
		return logger.Get()
	}
	return l
}

// startMaintenance refreshes runtime gauges and, when configured, reloads
// the source on a timer. Caller holds s.mu.
func (s *Service) startMaintenance(ctx context.Context) {
	stop := s.stopCh
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		metricsTicker := time.NewTicker(s.metricsInterval)
		defer metricsTicker.Stop()

		var reload <-chan time.Time
		if s.reloadInterval > 0 {
			t := time.NewTicker(s.reloadInterval)
			defer t.Stop()
			reload = t.C
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-metricsTicker.C:
				updateRuntimeMetrics()
			case <-reload:
				// Errors are logged by Reload; the old snapshot keeps serving.
				_ = s.Reload(ctx)
			}
		}
	}()
}

func updateRuntimeMetrics() {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	metrics.UpdateSystemMemoryUsage(ms.HeapAlloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
	if ms.NumGC > 0 {
		metrics.RecordSystemGCPauseTime(float64(ms.PauseNs[(ms.NumGC+255)%256]) / 1e6)
	}
}

// Snapshot returns the active snapshot.
func (s *Service) Snapshot() (*odds.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snap == nil {
		return nil, ErrNotStarted
	}
	return s.snap, nil
}

// Target returns the headlined entrant.
func (s *Service) Target() string {
	return s.target
}

func entriesOf(snap *odds.Snapshot) []types.Entry {
	st := snap.Standings()
	out := make([]types.Entry, 0, len(st))
	for _, p := range st {
		out = append(out, types.Entry{
			Seed:   int(p.Seed),
			Rank:   p.Rank,
			Name:   p.Entrant.Name,
			Total:  p.Total,
			Mean:   p.Stats.Mean,
			StdDev: p.Stats.StdDev,
		})
	}
	return out
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":        s.started,
		"target":         s.target,
		"cacheEnabled":   s.memo != nil,
		"reloadInterval": s.reloadInterval.String(),
	}
	if s.snap != nil {
		stats["snapshotId"] = s.snap.ID()
		stats["builtAt"] = s.snap.BuiltAt().UTC().Format(time.RFC3339)
		stats["periods"] = len(s.snap.Periods())
		stats["entrants"] = s.standings.Count(context.Background())
	}
	if s.memo != nil {
		stats["cacheEntries"] = s.memo.ItemCount()
		metrics.UpdateCacheEntries(s.memo.ItemCount())
	}
	return stats
}
