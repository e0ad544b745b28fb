package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newWeeklyCommand(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "weekly",
		Short: "Generate the weekly summary from the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			var target time.Time
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", dateFlag)
				}
				target = parsed
			}

			path, err := app.Weekly.Generate(target)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Weekly summary written: %s\n", path)

			summary, err := app.Weekly.Rollup(target)
			if err != nil {
				return err
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, summary.ExecSummary)
			return nil
		},
	}
	cmd.Flags().StringVar(&dateFlag, "date", "", "target day (YYYY-MM-DD) whose ISO week to summarize; defaults to today")
	return cmd
}
