package cli

import (
	"fmt"
	"runtime"

	"github.com/okian/ploffs/internal/testseason"
	"github.com/spf13/cobra"
)

func newGenerateCmd(st *state) *cobra.Command {
	cfg := &testseason.Config{}
	var names []string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write a synthetic season CSV",
		Long: `Draw a synthetic season and write it as CSV. Equal seeds give equal
seasons.

Examples:
  ploffs generate --out scores.csv
  ploffs generate --seed 7 --periods 12 --names "A,B,C,D,E,F,G,H,I,J"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Names = names
			table, err := testseason.Generate(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			if cfg.Output == "" {
				cfg.Output = st.cfg.ScoresPath
			}
			if err := testseason.Save(cmd.Context(), cfg.Output, table); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d entrants x %d periods to %s\n",
				len(table.Entrants), len(table.Periods), cfg.Output)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVarP(&cfg.Output, "out", "o", "", "output CSV (default: configured scores path)")
	f.StringSliceVar(&names, "names", testseason.DefaultNames, "entrant names")
	f.IntVar(&cfg.Periods, "periods", testseason.DefaultPeriods, "number of periods")
	f.Uint64Var(&cfg.Seed, "seed", 1, "random seed")
	f.Float64Var(&cfg.Mean, "mean", testseason.DefaultMean, "league mean score")
	f.Float64Var(&cfg.Spread, "spread", testseason.DefaultSpread, "std dev of entrant strength")
	f.Float64Var(&cfg.Noise, "noise", testseason.DefaultNoise, "std dev of a single period")
	return cmd
}

func newCheckCmd(st *state) *cobra.Command {
	cfg := &testseason.Config{}
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check a running server's odds for consistency",
		Long: `Query every entrant on a running server and verify that the answers
respect the bracket: probabilities in [0,1], loss = semifinal + final, four
semifinal slots and two finalist slots.

Examples:
  ploffs check --url http://localhost:9080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.Verbose = st.verbose
			if cfg.LogFile != "" {
				closeLog, err := testseason.SetupLogging(cfg.LogFile, st.verbose)
				if err != nil {
					return err
				}
				defer closeLog()
			}
			stats, err := testseason.Check(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "ok: %d entrants, %d queries in %s\n",
				stats.Entrants, stats.QueriesSent, stats.Duration)
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&cfg.BaseURL, "url", "http://localhost:9080", "base URL of the server")
	f.IntVar(&cfg.Workers, "workers", runtime.NumCPU()*2, "concurrent workers")
	f.DurationVar(&cfg.Timeout, "timeout", testseason.DefaultTimeout, "HTTP request timeout")
	f.StringVar(&cfg.LogFile, "log", "", "also write logs to this file")
	return cmd
}
