package cli

import (
	"fmt"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/spf13/cobra"
)

func newBoardCmd(app *App) *cobra.Command {
	var allColumns bool
	var width int

	cmd := &cobra.Command{
		Use:   "board PROJECT",
		Short: "Show a project's tasks as a kanban board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}
			state := app.Controller.State()

			opts := formatter.BoardOptions{ColumnWidth: width, Now: app.now()}
			if allColumns {
				opts.Columns = domain.TaskStatuses
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(p.Name)+"  "+formatter.StatusPill(p.Status))
			fmt.Fprintln(out, formatter.FormatStatsGrid(appstate.Stats(state, app.now())))
			fmt.Fprintln(out, formatter.FormatBoard(appstate.Board(state), opts))
			return nil
		},
	}

	cmd.Flags().BoolVar(&allColumns, "all", false, "Also draw a COMPLETED column")
	cmd.Flags().IntVar(&width, "width", 0, "Column width")
	return cmd
}

// startSpinner shows a spinner on stderr while a slow call runs, only when
// attached to a terminal.
func startSpinner(cmd *cobra.Command, app *App, message string) func() {
	if !app.interactive() {
		return func() {}
	}
	return formatter.StartSpinner(cmd.ErrOrStderr(), message)
}
