package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kmorishita/tasklane/internal/httpapi"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = app.Config.Addr
			}

			server := httpapi.NewServer(httpapi.Services{
				Auth:      app.Auth,
				Teams:     app.Teams,
				Routines:  app.Routines,
				Tasks:     app.Tasks,
				Dashboard: app.Dashboard,
				Resolver:  app.Resolver,
				Generator: app.Generator,
			}, app.Log)

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start(addr)
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case <-stop:
				app.Log.Info("shutting down")
				ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return server.Shutdown(ctx)
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	return cmd
}
