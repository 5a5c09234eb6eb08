package cli

import (
	"errors"
	"fmt"
	"strings"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/importer"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newProjectCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects", "p"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		newProjectListCmd(app),
		newProjectShowCmd(app),
		newProjectCreateCmd(app),
		newProjectUpdateCmd(app),
		newProjectDeleteCmd(app),
		newProjectStatsCmd(app),
		newProjectImportCmd(app),
	)

	return cmd
}

func newProjectListCmd(app *App) *cobra.Command {
	var search string
	var all, withStats bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List top-level projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			stop := startSpinner(cmd, app, "Loading projects...")
			err := app.Controller.LoadProjects(ctx)
			stop()
			if err != nil {
				return bannerError(app, err)
			}

			state := app.Controller.Dispatch(appstate.SearchChanged{Term: search})
			projects := appstate.VisibleProjects(state)
			if all {
				projects = state.Projects
			}

			rows := make([]formatter.ProjectRow, 0, len(projects))
			for _, p := range projects {
				row := formatter.ProjectRow{Project: p}
				if withStats {
					if err := app.Controller.OpenProject(ctx, p.ID); err != nil {
						return bannerError(app, err)
					}
					st := appstate.Stats(app.Controller.State(), app.now())
					row.Stats = &st
				}
				rows = append(rows, row)
			}
			if withStats {
				app.Controller.Dispatch(appstate.BackToDashboard{})
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatProjectList(rows, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Only projects whose name contains this text")
	cmd.Flags().BoolVar(&all, "all", false, "Include sub-projects")
	cmd.Flags().BoolVar(&withStats, "stats", false, "Load tasks and show progress")
	return cmd
}

func newProjectShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show PROJECT",
		Short: "Show a project with statistics, sub-projects and tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}
			state := app.Controller.State()

			data := formatter.ProjectDetailData{
				Project: p,
				Stats:   appstate.Stats(state, app.now()),
				Now:     app.now(),
			}
			if !p.IsTopLevel() {
				if parent, ok := domain.FindProject(state.Projects, p.ParentProjectID); ok {
					data.Parent = &parent
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.FormatProjectDetail(data))
			fmt.Fprintln(out)
			fmt.Fprintln(out, formatter.Header("Tasks"))
			fmt.Fprintln(out, formatter.FormatTaskList(state.Tasks, app.now()))
			return nil
		},
	}
}

// projectFlags are the editable project fields shared by create and update.
type projectFlags struct {
	name, description, start, end, status string
	parent                                string
}

func (f *projectFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Project name")
	fs.StringVar(&f.description, "description", "", "Project description")
	fs.StringVar(&f.start, "start", "", "Start date (YYYY-MM-DD)")
	fs.StringVar(&f.end, "end", "", "End date (YYYY-MM-DD, empty to clear)")
	fs.StringVar(&f.status, "status", "", "Status (DRAFT, ACTIVE, COMPLETED, ABANDONED)")
	fs.StringVar(&f.parent, "parent", "", "Parent project (ID or name; none or 0 to make top-level)")
}

// apply copies every flag the user set onto p.
func (f *projectFlags) apply(cmd *cobra.Command, app *App, p *domain.Project) error {
	fs := cmd.Flags()
	if fs.Changed("name") {
		p.Name = strings.TrimSpace(f.name)
	}
	if fs.Changed("description") {
		p.Description = f.description
	}
	if fs.Changed("start") {
		d, err := domain.ParseDate(f.start)
		if err != nil {
			return err
		}
		p.StartDate = d
	}
	if fs.Changed("end") {
		d, err := domain.ParseDate(f.end)
		if err != nil {
			return err
		}
		p.EndDate = d
	}
	if fs.Changed("status") {
		st, err := domain.ParseProjectStatus(f.status)
		if err != nil {
			return err
		}
		p.Status = st
	}
	if fs.Changed("parent") {
		if isNoParent(f.parent) {
			p.ParentProjectID = 0
			return nil
		}
		id, err := resolveProjectID(cmd.Context(), app, f.parent)
		if err != nil {
			return err
		}
		if id == p.ID && p.ID != 0 {
			return &domain.ValidationError{Field: "parentProject", Message: "a project cannot be its own parent"}
		}
		p.ParentProjectID = id
	}
	return nil
}

// isNoParent reports whether a --parent value asks for a top-level project.
func isNoParent(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || v == "0" || strings.EqualFold(v, "none")
}

func newProjectCreateCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			draft := app.Controller.NewProjectDraft(0)
			if err := flags.apply(cmd, app, &draft); err != nil {
				return err
			}

			saved, err := app.Controller.SaveProject(cmd.Context(), draft)
			if err != nil {
				return bannerError(app, err)
			}
			if saved == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Created project %s\n", draft.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s %s\n", saved.Name, formatter.FormatID(saved.ID))
			return nil
		},
	}

	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectUpdateCmd(app *App) *cobra.Command {
	var flags projectFlags

	cmd := &cobra.Command{
		Use:   "update PROJECT",
		Short: "Update a project's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, app, &p); err != nil {
				return err
			}

			if err := app.Controller.SaveProjectDetails(cmd.Context(), p); err != nil {
				return bannerError(app, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated project %s %s\n", p.Name, formatter.FormatID(p.ID))
			return nil
		},
	}

	flags.register(cmd.Flags())
	return cmd
}

func newProjectDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete PROJECT",
		Aliases: []string{"rm"},
		Short:   "Delete a project (sub-projects become top-level)",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := resolveProjectID(cmd.Context(), app, args[0])
			if err != nil {
				return err
			}
			if err := app.Controller.DeleteProject(cmd.Context(), id); err != nil {
				return bannerError(app, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted project %s\n", formatter.FormatID(id))
			return nil
		},
	}
}

func newProjectStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats PROJECT",
		Short: "Show progress, task counts, overdue tasks and days remaining",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}
			st := appstate.Stats(app.Controller.State(), app.now())
			fmt.Fprintln(cmd.OutOrStdout(), formatter.Bold(p.Name))
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatStatsGrid(st))
			return nil
		},
	}
}

func newProjectImportCmd(app *App) *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Create a project, its sub-projects and tasks from a JSON or YAML file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			schema, err := importer.LoadImportSchema(args[0])
			if err != nil {
				return err
			}
			if errs := importer.ValidateImportSchema(schema); len(errs) > 0 {
				return fmt.Errorf("invalid import file %s: %w", args[0], errors.Join(errs...))
			}
			plan, err := importer.Convert(schema, domain.DateOf(app.now()))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			projects, tasks := plan.Counts()
			if dryRun {
				fmt.Fprintf(out, "%s is valid: %d projects, %d tasks\n", args[0], projects, tasks)
				return nil
			}

			stop := startSpinner(cmd, app, "Importing...")
			res, err := app.Controller.ImportProject(cmd.Context(), plan)
			stop()
			if err != nil {
				if res != nil && res.Project.ID != 0 {
					fmt.Fprintf(out, "Partially imported %s %s: %d sub-projects, %d tasks\n",
						res.Project.Name, formatter.FormatID(res.Project.ID), res.SubProjects, res.Tasks)
				}
				return bannerError(app, err)
			}
			fmt.Fprintf(out, "Imported %s %s: %d sub-projects, %d tasks\n",
				res.Project.Name, formatter.FormatID(res.Project.ID), res.SubProjects, res.Tasks)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Validate the file without creating anything")
	return cmd
}
