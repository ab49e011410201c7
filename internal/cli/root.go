package cli

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/kmorishita/tasklane/internal/config"
	"github.com/kmorishita/tasklane/internal/generation"
	"github.com/kmorishita/tasklane/internal/service"
	"github.com/kmorishita/tasklane/internal/tenancy"
)

// App holds references to all services used by CLI commands.
type App struct {
	Config    *config.Config
	Teams     service.TeamService
	Routines  service.RoutineService
	Tasks     service.TaskService
	Auth      service.AuthService
	Dashboard service.DashboardService
	Resolver  *tenancy.Resolver
	Generator *generation.Generator
	Log       *logrus.Logger

	// IsInteractive reports whether stdin is a terminal; interactive forms
	// are only offered when it is.
	IsInteractive func() bool
}

// NewRootCmd creates the top-level "tasklane" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "tasklane",
		Short: "Team task workspace server and admin tools",
	}

	root.AddCommand(
		newServeCmd(app),
		newGenerateCmd(app),
		newImportCmd(app),
		newTeamCmd(app),
		newTaskCmd(app),
	)

	return root
}
