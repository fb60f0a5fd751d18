package cli

import (
	"github.com/okian/ploffs/internal/report"
	"github.com/spf13/cobra"
)

func newReportCmd(st *state) *cobra.Command {
	return &cobra.Command{
		Use:   "report [entrant]",
		Short: "Explain an entrant's elimination odds step by step",
		Long: `Print the head-to-head odds, semifinal and final loss odds and the
total chance of not winning the playoffs. Without an argument the configured
target is used.

Examples:
  ploffs report
  ploffs report Sam
  ploffs report 3 --json`,
		Args:        cobra.MaximumNArgs(1),
		Annotations: needsSeason(),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := ""
			if len(args) == 1 {
				ref = args[0]
			}
			r, err := st.svc.Report(cmd.Context(), ref)
			if err != nil {
				return err
			}
			if st.jsonOut {
				return printJSON(cmd.OutOrStdout(), r)
			}
			return r.Render(cmd.OutOrStdout(), report.DefaultTheme)
		},
	}
}
