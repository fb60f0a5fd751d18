package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/okian/ploffs/internal/domain/model"
	"github.com/okian/ploffs/internal/domain/types"
	"github.com/okian/ploffs/internal/report"
	"github.com/spf13/cobra"
)

func newWinCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:         "win <a> <b>",
		Short:       "Probability that a beats b in a single game",
		Args:        cobra.ExactArgs(2),
		Annotations: needsSeason(),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := st.svc.WinProbability(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return st.printProbability(cmd, p, fmt.Sprintf("P(%s beats %s)", p.Subject, p.Against))
		},
	}
}

func newMeetCmd(st *state) *cobra.Command {
	var round string
	cmd := &cobra.Command{
		Use:   "meet <a> <b>",
		Short: "Probability that a and b meet in a round",
		Long: `Probability that a and b meet in the semifinals (default) or the final.

Examples:
  ploffs meet Nico 4
  ploffs meet Nico Sam --round final`,
		Args:        cobra.ExactArgs(2),
		Annotations: needsSeason(),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := model.Round(strings.ToLower(round))
			p, err := st.svc.Meet(cmd.Context(), args[0], args[1], r)
			if err != nil {
				return err
			}
			label := "semifinal"
			if r == model.RoundFinal {
				label = "final"
			}
			return st.printProbability(cmd, p, fmt.Sprintf("P(%s meets %s in the %s)", p.Subject, p.Against, label))
		},
	}
	cmd.Flags().StringVarP(&round, "round", "r", string(model.RoundSemifinal), "semifinal or final")
	return cmd
}

func newAdvanceCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:         "advance <entrant>",
		Short:       "Probability of reaching the semifinals and the final",
		Args:        cobra.ExactArgs(1),
		Annotations: needsSeason(),
		RunE: func(cmd *cobra.Command, args []string) error {
			semi, err := st.svc.MakesSemifinals(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			finals, err := st.svc.MakesFinals(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if st.jsonOut {
				return printJSON(cmd.OutOrStdout(), map[string]types.Probability{"semifinals": semi, "finals": finals})
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "P(%s makes the semifinals) = %s\n", semi.Subject, semi.Percent)
			fmt.Fprintf(out, "P(%s makes the final) = %s\n", finals.Subject, finals.Percent)
			return nil
		},
	}
}

func newLossCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:         "loss [entrant]",
		Short:       "Probability of not winning the playoffs, by round",
		Args:        cobra.MaximumNArgs(1),
		Annotations: needsSeason(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := st.cfg.Target
			if len(args) == 1 {
				ref = args[0]
			}
			loss, err := st.svc.Loss(cmd.Context(), ref)
			if err != nil {
				return err
			}
			if st.jsonOut {
				return printJSON(cmd.OutOrStdout(), loss)
			}
			places := st.cfg.PercentPrecision
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s (seed %d)\n", loss.Subject, loss.Seed)
			fmt.Fprintf(out, "  loses semifinals  %s\n", report.Percent(loss.Semifinal, places))
			fmt.Fprintf(out, "  loses final       %s\n", report.Percent(loss.Final, places))
			fmt.Fprintf(out, "  does not win      %s\n", loss.Percent)
			return nil
		},
	}
}

func newStandingsCmd(st *state) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:         "standings",
		Short:       "Show the seeded standings",
		Args:        cobra.NoArgs,
		Annotations: needsSeason(),
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := st.svc.TopN(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if st.jsonOut {
				return printJSON(cmd.OutOrStdout(), entries)
			}
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				BorderStyle(lipgloss.NewStyle().Foreground(report.DefaultTheme.Border)).
				Headers("Seed", "Rank", "Entrant", "Total", "Mean", "Std dev")
			for _, e := range entries {
				t.Row(strconv.Itoa(e.Seed), strconv.Itoa(e.Rank), e.Name,
					strconv.FormatFloat(e.Total, 'f', 2, 64),
					strconv.FormatFloat(e.Mean, 'f', 2, 64),
					strconv.FormatFloat(e.StdDev, 'f', 2, 64))
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), t.Render())
			return err
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of entries")
	return cmd
}

func (st *state) printProbability(cmd *cobra.Command, p types.Probability, label string) error {
	if st.jsonOut {
		return printJSON(cmd.OutOrStdout(), p)
	}
	_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s = %s\n", label, p.Percent)
	return err
}
