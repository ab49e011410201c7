package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmorishita/tasklane/internal/cli/formatter"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Inspect and update tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskToggleCmd(app),
		newTaskOpenCmd(app),
	)

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks for a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamID == "" {
				return fmt.Errorf("--team is required")
			}
			tasks, err := app.Tasks.ListByTeam(cmd.Context(), teamID)
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				fmt.Println("No tasks.")
				return nil
			}
			fmt.Print(formatter.FormatTaskTable(tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "team ID (required)")
	return cmd
}

func newTaskToggleCmd(app *App) *cobra.Command {
	var done bool

	cmd := &cobra.Command{
		Use:   "toggle <task-id>",
		Short: "Mark a task completed or back to pending",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Tasks.Toggle(cmd.Context(), args[0], done)
			if err != nil {
				return err
			}
			fmt.Printf("%s -> %s\n", res.Previous, res.Current)
			return nil
		},
	}

	cmd.Flags().BoolVar(&done, "done", true, "mark completed (--done=false returns the task to pending)")
	return cmd
}

func newTaskOpenCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "open <task-id>",
		Short: "Resolve how a task link should be opened",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := app.Tasks.Open(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if res.Redirected() {
				fmt.Printf("Redirect to parent %s (focus %s)\n", res.ParentID, res.FocusChildID)
				return nil
			}
			fmt.Printf("Open %s: %s [%s]\n", res.Task.ID, res.Task.Title, res.Task.Status)
			return nil
		},
	}
	return cmd
}
