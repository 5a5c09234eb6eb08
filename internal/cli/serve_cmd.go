package cli

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/planner/internal/db"
	"github.com/alexanderramin/planner/internal/devserver"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr, dbPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the development API server backed by SQLite",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			database, err := db.OpenDB(dbPath)
			if err != nil {
				return fmt.Errorf("opening database: %w", err)
			}
			defer database.Close()

			srv := devserver.New(devserver.NewStore(database, nil), app.logger())
			fmt.Fprintf(cmd.OutOrStdout(), "Serving planner API on %s/api (db %s)\n", addr, dbPath)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", app.Config.Server.Addr, "Listen address")
	cmd.Flags().StringVar(&dbPath, "db", app.Config.Server.DBPath, "SQLite database path (:memory: for a throwaway store)")
	return cmd
}
