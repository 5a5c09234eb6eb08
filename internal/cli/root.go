package cli

import (
	"errors"
	"log/slog"
	"time"

	"github.com/alexanderramin/planner/internal/config"
	"github.com/alexanderramin/planner/internal/service"
	"github.com/spf13/cobra"
)

// App holds what CLI commands and the TUI need: the use-case controller
// and the resolved configuration.
type App struct {
	Controller *service.Controller
	Config     config.Config
	Logger     *slog.Logger

	// Connect builds a controller for another API origin. The --api flag
	// uses it; nil disables the flag.
	Connect func(baseURL string) *service.Controller

	// IsInteractive reports whether stdin is a terminal. Running planner
	// with no arguments on a terminal starts the TUI.
	IsInteractive func() bool

	// Now overrides the clock used for statistics and relative dates.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// NewRootCmd creates the top-level "planner" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var apiURL string

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Project and task dashboard for the planner API",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("api") {
				return nil
			}
			if app.Connect == nil {
				return errors.New("--api is not supported here")
			}
			app.Config.API.URL = apiURL
			app.Controller = app.Connect(apiURL)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.interactive() {
				return runTUI(cmd.Context(), app)
			}
			return cmd.Help()
		},
	}

	root.PersistentFlags().StringVar(&apiURL, "api", app.Config.API.URL, "API base URL")

	root.AddCommand(
		newProjectCmd(app),
		newTaskCmd(app),
		newPlanCmd(app),
		newBoardCmd(app),
		newServeCmd(app),
	)

	return root
}
