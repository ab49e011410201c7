package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmorishita/tasklane/internal/recurrence"
)

func newGenerateCmd(app *App) *cobra.Command {
	var teamID, actor, start, end string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run recurring-task generation for a team",
		Long: `Materializes every active routine of the team into task rows over the
given date range. Safe to re-run over any range, including ranges that
overlap earlier runs; existing tasks are never duplicated.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamID == "" {
				return fmt.Errorf("--team is required")
			}

			// Default range: the current month in the organizational timezone.
			rangeStart, rangeEnd := recurrence.MonthRange(time.Now())
			var err error
			if start != "" {
				if rangeStart, err = time.Parse("2006-01-02", start); err != nil {
					return fmt.Errorf("invalid start date %q: %w", start, err)
				}
			}
			if end != "" {
				if rangeEnd, err = time.Parse("2006-01-02", end); err != nil {
					return fmt.Errorf("invalid end date %q: %w", end, err)
				}
			}

			res, err := app.Generator.Run(cmd.Context(), teamID, actor, rangeStart, rangeEnd)
			if err != nil {
				return err
			}

			fmt.Printf("Routines: %d  Created: %d  Skipped: %d  Failed: %d\n",
				res.Routines, res.Created, res.Skipped, res.Failed)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "team ID (required)")
	cmd.Flags().StringVar(&actor, "actor", "system", "user ID recorded as task creator")
	cmd.Flags().StringVar(&start, "start", "", "range start (YYYY-MM-DD, default: first of current month)")
	cmd.Flags().StringVar(&end, "end", "", "range end (YYYY-MM-DD, default: last of current month)")
	return cmd
}
