// Package cli provides the command-line interface for ploffs.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/okian/ploffs/internal/adapters/repository"
	service "github.com/okian/ploffs/internal/app"
	"github.com/okian/ploffs/internal/config"
	"github.com/okian/ploffs/pkg/logger"
	"github.com/spf13/cobra"
)

// Version is set at build time.
var Version = "0.1.0"

// state is shared by the subcommands of one root command.
type state struct {
	configPath string
	scoresPath string
	target     string
	precision  int32
	verbose    bool
	jsonOut    bool

	cfg *config.Config
	svc *service.Service
}

// NewRootCommand builds the ploffs command tree.
func NewRootCommand() *cobra.Command {
	st := &state{}
	root := &cobra.Command{
		Use:   "ploffs",
		Short: "Playoff elimination odds",
		Long: `ploffs estimates how likely an entrant is to be knocked out of a
ten-entrant reseeded playoff bracket.

Each entrant's regular-season scores are fitted to a normal distribution;
a single game is won by the higher draw. Entrants are referenced by name
or by seed number.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return st.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if st.svc != nil {
				st.svc.Stop()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.StringVarP(&st.configPath, "config", "c", "", "YAML config file (overrides "+config.EnvConfigFile+")")
	flags.StringVarP(&st.scoresPath, "scores", "s", "", "season CSV file")
	flags.StringVarP(&st.target, "target", "t", "", "entrant to report on")
	flags.Int32Var(&st.precision, "precision", -1, "decimals shown in percentages")
	flags.BoolVarP(&st.verbose, "verbose", "v", false, "verbose output")
	flags.BoolVar(&st.jsonOut, "json", false, "print JSON instead of text")

	root.AddCommand(
		newReportCmd(st),
		newWinCmd(st),
		newMeetCmd(st),
		newAdvanceCmd(st),
		newLossCmd(st),
		newStandingsCmd(st),
		newGenerateCmd(st),
		newCheckCmd(st),
	)
	return root
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCommand().ExecuteContext(ctx)
}

// setup loads configuration and logging for every command, and starts the
// odds service for commands that query a season.
func (st *state) setup(cmd *cobra.Command) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if st.configPath != "" {
		if err := os.Setenv(config.EnvConfigFile, st.configPath); err != nil {
			return fmt.Errorf("set config path: %w", err)
		}
	}
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	if st.scoresPath != "" {
		cfg.ScoresPath = st.scoresPath
	}
	if st.target != "" {
		cfg.Target = st.target
	}
	if st.precision >= 0 {
		cfg.PercentPrecision = st.precision
	}
	st.cfg = cfg

	level := cfg.LogLevel
	if !st.verbose {
		level = "warn"
	}
	if err := logger.Init(
		logger.WithFormat(cfg.LogFormat),
		logger.WithLevel(level),
		logger.WithWriter(cmd.ErrOrStderr()),
	); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	if cmd.Annotations[annotationSeason] == "" {
		return nil
	}
	st.svc = service.New(
		service.WithSource(repository.NewCSVSource(cfg.ScoresPath, repository.WithPeriodColumn(cfg.PeriodColumn))),
		service.WithTarget(cfg.Target),
		service.WithPercentPrecision(cfg.PercentPrecision),
		service.WithSeedOverrides(cfg.SeedOverrides),
		service.WithCacheEnabled(cfg.CacheEnabled),
	)
	if err := st.svc.Start(ctx); err != nil {
		st.svc = nil
		return err
	}
	return nil
}

// annotationSeason marks commands that query the loaded season. Other
// commands, including help and completion, skip loading it.
const annotationSeason = "ploffs/season"

func needsSeason() map[string]string {
	return map[string]string{annotationSeason: "true"}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
