package testseason

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/okian/ploffs/internal/adapters/repository"
	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/pkg/logger"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

const directoryPermission = 0750

// Generate draws a season. Each entrant gets a strength from
// N(Mean, Spread) and each period's score is drawn from N(strength, Noise),
// rounded to two decimals.
func Generate(ctx context.Context, cfg *Config) (model.ScoreTable, error) {
	names := cfg.Names
	if len(names) == 0 {
		names = DefaultNames
	}
	periods := cfg.Periods
	if periods < 2 {
		return model.ScoreTable{}, fmt.Errorf("need at least 2 periods, got %d", periods)
	}

	src := rand.NewSource(cfg.Seed)
	strength := distuv.Normal{Mu: cfg.Mean, Sigma: cfg.Spread, Src: src}

	table := model.ScoreTable{Periods: make([]string, periods)}
	for p := range table.Periods {
		table.Periods[p] = strconv.Itoa(p + 1)
	}
	for _, name := range names {
		select {
		case <-ctx.Done():
			return model.ScoreTable{}, fmt.Errorf("generation cancelled: %w", ctx.Err())
		default:
		}
		week := distuv.Normal{Mu: strength.Rand(), Sigma: cfg.Noise, Src: src}
		scores := make([]float64, periods)
		for p := range scores {
			scores[p] = math.Round(week.Rand()*100) / 100
		}
		table.Entrants = append(table.Entrants, model.Entrant{Name: name, Scores: scores})
	}

	logger.Get().Info(ctx, "generated season",
		logger.Int("entrants", len(table.Entrants)),
		logger.Int("periods", periods),
		logger.Any("seed", cfg.Seed))
	return table, nil
}

// Save writes table as CSV to path, creating parent directories.
func Save(ctx context.Context, path string, table model.ScoreTable) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := repository.WriteTable(file, table, repository.DefaultPeriodColumn); err != nil {
		_ = file.Close()
		return fmt.Errorf("failed to write season: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close file: %w", err)
	}
	logger.Get().Info(ctx, "season saved to file", logger.String("filename", path))
	return nil
}
