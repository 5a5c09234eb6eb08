package cli

import (
	"fmt"
	"strings"

	appstate "github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newTaskCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "task",
		Aliases: []string{"tasks", "t"},
		Short:   "Manage a project's tasks",
	}

	cmd.AddCommand(
		newTaskListCmd(app),
		newTaskAddCmd(app),
		newTaskUpdateCmd(app),
		newTaskMoveCmd(app),
		newTaskCompleteCmd(app),
		newTaskDeleteCmd(app),
		newTaskHistoryCmd(app),
	)

	return cmd
}

func newTaskListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list PROJECT",
		Short: "List a project's tasks, highest priority first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter domain.TaskStatus
			if status != "" {
				st, err := domain.ParseTaskStatus(status)
				if err != nil {
					return err
				}
				filter = st
			}

			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}
			tasks := app.Controller.State().Tasks
			if filter != "" {
				tasks = appstate.Board(app.Controller.State())[filter]
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(p.Name))
			fmt.Fprintln(out, formatter.FormatTaskList(tasks, app.now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "Only tasks with this status")
	return cmd
}

// taskFlags are the editable task fields shared by add and update.
type taskFlags struct {
	title, description, due, priority, status string
}

func (f *taskFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.title, "title", "", "Task title")
	fs.StringVar(&f.description, "description", "", "Task description")
	fs.StringVar(&f.due, "due", "", "Due date (YYYY-MM-DD, empty to clear)")
	fs.StringVar(&f.priority, "priority", "", "Priority (LOW, MEDIUM, HIGH)")
	fs.StringVar(&f.status, "status", "", "Status (TO_DO, IN_PROGRESS, REVIEW, COMPLETED)")
}

func (f *taskFlags) apply(fs *pflag.FlagSet, t *domain.Task) error {
	if fs.Changed("title") {
		t.Title = strings.TrimSpace(f.title)
	}
	if fs.Changed("description") {
		t.Description = f.description
	}
	if fs.Changed("due") {
		d, err := domain.ParseDate(f.due)
		if err != nil {
			return err
		}
		t.DueDate = d
	}
	if fs.Changed("priority") {
		p, err := domain.ParseTaskPriority(f.priority)
		if err != nil {
			return err
		}
		t.Priority = p
	}
	if fs.Changed("status") {
		st, err := domain.ParseTaskStatus(f.status)
		if err != nil {
			return err
		}
		t.Status = st
	}
	return nil
}

func newTaskAddCmd(app *App) *cobra.Command {
	var flags taskFlags

	cmd := &cobra.Command{
		Use:   "add PROJECT",
		Short: "Add a task to a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(cmd, app, args[0])
			if err != nil {
				return err
			}
			draft := app.Controller.NewTaskDraft(p.ID)
			if err := flags.apply(cmd.Flags(), &draft); err != nil {
				return err
			}

			saved, err := app.Controller.SaveTask(cmd.Context(), draft)
			if err != nil {
				return bannerError(app, err)
			}
			if saved == nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Added task %s to %s\n", draft.Title, p.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task %s %s to %s\n", saved.Title, formatter.FormatID(saved.ID), p.Name)
			return nil
		},
	}

	flags.register(cmd.Flags())
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

// loadTask opens the --project project and finds a task among its tasks.
func loadTask(cmd *cobra.Command, app *App, project, rawID string) (domain.Task, error) {
	id, err := parseID("task", rawID)
	if err != nil {
		return domain.Task{}, err
	}
	if project == "" {
		return domain.Task{}, fmt.Errorf("--project is required to find task %s", formatter.FormatID(id))
	}
	p, err := openProject(cmd, app, project)
	if err != nil {
		return domain.Task{}, err
	}
	t, ok := appstate.Task(app.Controller.State(), id)
	if !ok {
		return domain.Task{}, fmt.Errorf("task #%d not found in %s: %w", id, p.Name, domain.ErrNotFound)
	}
	return t, nil
}

func newTaskUpdateCmd(app *App) *cobra.Command {
	var flags taskFlags
	var project string

	cmd := &cobra.Command{
		Use:   "update TASK",
		Short: "Update a task's fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTask(cmd, app, project, args[0])
			if err != nil {
				return err
			}
			if err := flags.apply(cmd.Flags(), &t); err != nil {
				return err
			}
			if _, err := app.Controller.SaveTask(cmd.Context(), t); err != nil {
				return bannerError(app, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated task %s %s\n", t.Title, formatter.FormatID(t.ID))
			return nil
		},
	}

	flags.register(cmd.Flags())
	cmd.Flags().StringVar(&project, "project", "", "Project the task belongs to (ID or name)")
	return cmd
}

func newTaskMoveCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:   "move TASK STATUS",
		Short: "Move a task to another status column",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := domain.ParseTaskStatus(args[1])
			if err != nil {
				return err
			}
			t, err := loadTask(cmd, app, project, args[0])
			if err != nil {
				return err
			}
			return moveTask(cmd, app, t, to)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the task belongs to (ID or name)")
	return cmd
}

func newTaskCompleteCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:     "complete TASK",
		Aliases: []string{"done"},
		Short:   "Mark a task completed",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTask(cmd, app, project, args[0])
			if err != nil {
				return err
			}
			return moveTask(cmd, app, t, domain.TaskCompleted)
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the task belongs to (ID or name)")
	return cmd
}

func moveTask(cmd *cobra.Command, app *App, t domain.Task, to domain.TaskStatus) error {
	out := cmd.OutOrStdout()
	if t.Status == to {
		fmt.Fprintf(out, "Task %s is already %s\n", formatter.FormatID(t.ID), to.Label())
		return nil
	}
	if err := app.Controller.MoveTask(cmd.Context(), t.ID, to); err != nil {
		return bannerError(app, err)
	}
	fmt.Fprintf(out, "Moved task %s from %s to %s\n", formatter.FormatID(t.ID), t.Status.Label(), to.Label())
	return nil
}

func newTaskDeleteCmd(app *App) *cobra.Command {
	var project string

	cmd := &cobra.Command{
		Use:     "delete TASK",
		Aliases: []string{"rm"},
		Short:   "Delete a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := loadTask(cmd, app, project, args[0])
			if err != nil {
				return err
			}
			if err := app.Controller.DeleteTask(cmd.Context(), t.ID); err != nil {
				return bannerError(app, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %s %s\n", t.Title, formatter.FormatID(t.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&project, "project", "", "Project the task belongs to (ID or name)")
	return cmd
}

func newTaskHistoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "history TASK",
		Short: "Show a task's version history, newest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID("task", args[0])
			if err != nil {
				return err
			}
			entries, err := app.Controller.LoadTaskHistory(cmd.Context(), id)
			if err != nil {
				return bannerError(app, err)
			}
			app.Controller.Dispatch(appstate.ModalClosed{})

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(fmt.Sprintf("History of task #%d", id)))
			fmt.Fprint(out, formatter.FormatTaskHistory(entries, app.now()))
			return nil
		},
	}
}
