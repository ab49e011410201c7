package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kmorishita/tasklane/internal/importer"
)

func newImportCmd(app *App) *cobra.Command {
	var teamID, actor string

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Bootstrap a team workspace from a JSON file",
		Long: `Loads routines and seed tasks from a JSON import file and creates them
in the given team. The file is validated as a whole before anything is
written; any validation error aborts the import.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamID == "" {
				return fmt.Errorf("--team is required")
			}

			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				for _, e := range errs {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %v\n", e)
				}
				return fmt.Errorf("import file has %d validation error(s)", len(errs))
			}

			ws, err := importer.Convert(schema, teamID, actor)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			for _, rt := range ws.Routines {
				if err := app.Routines.Create(ctx, rt); err != nil {
					return fmt.Errorf("creating routine %q: %w", rt.Title, err)
				}
			}
			// Converted tasks arrive parents-first, so child inserts always
			// find their parent row.
			for _, t := range ws.Tasks {
				if err := app.Tasks.Create(ctx, t); err != nil {
					return fmt.Errorf("creating task %q: %w", t.Title, err)
				}
			}

			fmt.Printf("Imported %d routine(s) and %d task(s)\n", len(ws.Routines), len(ws.Tasks))
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "team ID (required)")
	cmd.Flags().StringVar(&actor, "actor", "system", "user ID recorded as creator")
	return cmd
}
