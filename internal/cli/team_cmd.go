package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/kmorishita/tasklane/internal/cli/formatter"
)

func newTeamCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Manage teams",
	}

	cmd.AddCommand(
		newTeamCreateCmd(app),
		newTeamListCmd(app),
		newTeamMembersCmd(app),
		newTeamInviteCmd(app),
	)

	return cmd
}

func newTeamCreateCmd(app *App) *cobra.Command {
	var name, owner string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new team",
		RunE: func(cmd *cobra.Command, args []string) error {
			if name == "" && app.IsInteractive != nil && app.IsInteractive() {
				form := huh.NewForm(
					huh.NewGroup(
						huh.NewInput().
							Title("Team Name").
							Value(&name).
							Validate(func(s string) error {
								if strings.TrimSpace(s) == "" {
									return fmt.Errorf("name is required")
								}
								return nil
							}),
						huh.NewInput().
							Title("Owner User ID").
							Value(&owner),
					),
				)
				if err := form.Run(); err != nil {
					return err
				}
			}

			team, err := app.Teams.Create(cmd.Context(), name, owner)
			if err != nil {
				return err
			}
			fmt.Printf("Created team %s (%s)\n", team.Name, team.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "team name")
	cmd.Flags().StringVar(&owner, "owner", "", "owner user ID")
	return cmd
}

func newTeamListCmd(app *App) *cobra.Command {
	var userID string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List teams for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID == "" {
				return fmt.Errorf("--user is required")
			}
			teams, err := app.Teams.ListForUser(cmd.Context(), userID)
			if err != nil {
				return err
			}
			if len(teams) == 0 {
				fmt.Println("No teams.")
				return nil
			}
			rows := make([][]string, 0, len(teams))
			for _, t := range teams {
				rows = append(rows, []string{t.ID, t.Name})
			}
			fmt.Print(formatter.RenderTable([]string{"ID", "NAME"}, rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID (required)")
	return cmd
}

func newTeamMembersCmd(app *App) *cobra.Command {
	var teamID string

	cmd := &cobra.Command{
		Use:   "members",
		Short: "List members of a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamID == "" {
				return fmt.Errorf("--team is required")
			}
			members, err := app.Teams.Members(cmd.Context(), teamID)
			if err != nil {
				return err
			}
			fmt.Print(formatter.FormatMemberTable(members))
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "team ID (required)")
	return cmd
}

func newTeamInviteCmd(app *App) *cobra.Command {
	var teamID, createdBy string

	cmd := &cobra.Command{
		Use:   "invite",
		Short: "Create an invite code for a team",
		RunE: func(cmd *cobra.Command, args []string) error {
			if teamID == "" {
				return fmt.Errorf("--team is required")
			}
			invite, err := app.Teams.CreateInvite(cmd.Context(), teamID, createdBy, 0)
			if err != nil {
				return err
			}
			fmt.Printf("Invite code: %s\n", invite.Code)
			return nil
		},
	}

	cmd.Flags().StringVar(&teamID, "team", "", "team ID (required)")
	cmd.Flags().StringVar(&createdBy, "by", "admin", "user ID recorded as invite creator")
	return cmd
}
