package testseason

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/ploffs/internal/domain/types"
	"github.com/okian/ploffs/pkg/logger"
)

// ErrInconsistent is returned when the service's answers break a bracket
// invariant.
var ErrInconsistent = errors.New("inconsistent odds")

type advance struct {
	Semifinals types.Probability `json:"semifinals"`
	Finals     types.Probability `json:"finals"`
}

type entrantOdds struct {
	entry   types.Entry
	advance advance
	loss    types.Loss
	err     error
}

// Check exercises a running service and verifies that its answers are
// internally consistent.
func Check(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{StartTime: time.Now()}
	client := newHTTPClient(cfg.BaseURL, cfg.Timeout)

	logger.Get().Info(ctx, "starting odds check",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("workers", cfg.Workers),
		logger.String("timeout", cfg.Timeout.String()))

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client); err != nil {
		return stats, fmt.Errorf("service health check failed: %w", err)
	}

	// Step 2: Read the standings
	var standings []types.Entry
	if err := client.getJSON(ctx, "/standings", &standings); err != nil {
		return stats, fmt.Errorf("standings retrieval failed: %w", err)
	}
	stats.Entrants = len(standings)
	if err := verifyStandings(standings); err != nil {
		return stats, err
	}

	// Step 3: Query every entrant concurrently
	results := retrieveOdds(ctx, client, cfg, standings, stats)

	// Step 4: Verify results
	err := verifyOdds(results, stats)

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, stats)
	return stats, err
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient) error {
	resp, err := client.Get(ctx, "/healthz")
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logger.Get().Error(context.Background(), "failed to close response body", logger.Error(err))
		}
	}()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", resp.StatusCode)
	}
	logger.Get().Info(ctx, "service is healthy")
	return nil
}

// retrieveOdds fetches advancement and loss odds for every entrant using a
// worker pool.
func retrieveOdds(ctx context.Context, client *HTTPClient, cfg *Config, standings []types.Entry, stats *Stats) []entrantOdds {
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	results := make([]entrantOdds, len(standings))
	var sent, failed int64

	jobs := make(chan int, workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res := entrantOdds{entry: standings[i]}
				name := escape(standings[i].Name)
				atomic.AddInt64(&sent, 2)
				if err := client.getJSON(ctx, "/advance/"+name, &res.advance); err != nil {
					res.err = err
				} else if err := client.getJSON(ctx, "/loss/"+name, &res.loss); err != nil {
					res.err = err
				}
				if res.err != nil {
					atomic.AddInt64(&failed, 1)
					if cfg.Verbose {
						logger.Get().Warn(ctx, "query failed", logger.String("entrant", standings[i].Name), logger.Error(res.err))
					}
				}
				results[i] = res
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range standings {
			select {
			case <-ctx.Done():
				return
			case jobs <- i:
			}
		}
	}()
	wg.Wait()

	stats.QueriesSent = int(atomic.LoadInt64(&sent))
	stats.QueriesFailed = int(atomic.LoadInt64(&failed))
	return results
}

// verifyStandings checks that seeds run 1..n in order.
func verifyStandings(standings []types.Entry) error {
	if len(standings) == 0 {
		return fmt.Errorf("%w: empty standings", ErrInconsistent)
	}
	for i, e := range standings {
		if e.Seed != i+1 {
			return fmt.Errorf("%w: entry %d (%s) has seed %d", ErrInconsistent, i, e.Name, e.Seed)
		}
	}
	return nil
}

// verifyOdds checks per-entrant bounds and the bracket-wide masses: four
// semifinal slots and two finalist slots must be filled with certainty.
func verifyOdds(results []entrantOdds, stats *Stats) error {
	var problems []error
	for _, r := range results {
		if r.err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", r.entry.Name, r.err))
			continue
		}
		stats.SemifinalMass += r.advance.Semifinals.Value
		stats.FinalistMass += r.advance.Finals.Value

		l := r.loss
		for _, p := range []float64{r.advance.Semifinals.Value, r.advance.Finals.Value, l.Semifinal, l.Tournament} {
			if p < 0 || p > 1 || math.IsNaN(p) {
				problems = append(problems, fmt.Errorf("%w: %s has probability %v", ErrInconsistent, r.entry.Name, p))
			}
		}
		if math.Abs(l.Tournament-(l.Semifinal+l.Final)) > sumTolerance {
			problems = append(problems, fmt.Errorf("%w: %s loss %v is not %v + %v",
				ErrInconsistent, r.entry.Name, l.Tournament, l.Semifinal, l.Final))
		}
		if l.Tournament > stats.LargestLoss {
			stats.LargestLoss = l.Tournament
			stats.LargestLossName = r.entry.Name
		}
	}
	if len(problems) == 0 {
		if math.Abs(stats.SemifinalMass-SemifinalSlots) > massTolerance {
			problems = append(problems, fmt.Errorf("%w: semifinal mass %v", ErrInconsistent, stats.SemifinalMass))
		}
		if math.Abs(stats.FinalistMass-FinalistSlots) > massTolerance {
			problems = append(problems, fmt.Errorf("%w: finalist mass %v", ErrInconsistent, stats.FinalistMass))
		}
	}
	return errors.Join(problems...)
}

// displayFinalStats logs the final check statistics.
func displayFinalStats(ctx context.Context, stats *Stats) {
	logger.Get().Info(ctx, "final statistics",
		logger.Int("entrants", stats.Entrants),
		logger.Int("queriesSent", stats.QueriesSent),
		logger.Int("queriesFailed", stats.QueriesFailed),
		logger.Float64("semifinalMass", stats.SemifinalMass),
		logger.Float64("finalistMass", stats.FinalistMass),
		logger.String("largestLoss", stats.LargestLossName),
		logger.Float64("largestLossValue", stats.LargestLoss),
		logger.String("duration", stats.Duration.String()))
}
