package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/domain"
)

// Banner messages shown when a use case fails.
const (
	MsgLoadProjectsFailed  = "Failed to load projects."
	MsgSaveProjectFailed   = "Failed to save project: create/update failed."
	MsgDeleteProjectFailed = "Failed to delete project."
	MsgLoadProjectFailed   = "Failed to load project."
	MsgLoadTasksFailed     = "Failed to load tasks."
	MsgSaveDetailsFailed   = "Failed to save project details. Update failed."
	MsgSaveTaskFailed      = "Failed to save task."
	MsgDeleteTaskFailed    = "Failed to delete task."
	MsgLoadHistoryFailed   = "Failed to load history."
)

// ErrNoSelection is returned by use cases that act on the open project when
// none is open.
var ErrNoSelection = errors.New("no project selected")

// Controller implements the dashboard's use cases against the remote API.
// Every outcome is reduced into the store; failures additionally raise the
// banner and are returned so command-line callers can set an exit status.
type Controller struct {
	api      app.API
	store    *app.Store
	validate *domain.Validator
	observer UseCaseObserver
	now      func() time.Time
}

type Option func(*Controller)

func WithObserver(o UseCaseObserver) Option {
	return func(c *Controller) {
		if o != nil {
			c.observer = o
		}
	}
}

// WithClock overrides the clock used for draft defaults.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

func NewController(api app.API, store *app.Store, opts ...Option) *Controller {
	if store == nil {
		store = app.NewStore(app.NewState())
	}
	c := &Controller{
		api:      api,
		store:    store,
		validate: domain.NewValidator(),
		observer: NoopUseCaseObserver{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() app.State { return c.store.State() }

func (c *Controller) Store() *app.Store { return c.store }

// Dispatch forwards purely local actions (navigation, search, modals).
func (c *Controller) Dispatch(actions ...app.Action) app.State {
	return c.store.Dispatch(actions...)
}

// observe records one use-case execution. Call as
// defer c.observe(ctx, name, time.Now(), fields, &err).
func (c *Controller) observe(ctx context.Context, name string, startedAt time.Time, fields map[string]any, errp *error) {
	var err error
	if errp != nil {
		err = *errp
	}
	c.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func (c *Controller) fail(msg string, err error) error {
	c.store.Dispatch(app.ErrorRaised{Message: msg})
	return err
}

func (c *Controller) selected() (domain.Project, error) {
	p, ok := app.SelectedProject(c.store.State())
	if !ok {
		return domain.Project{}, ErrNoSelection
	}
	return p, nil
}

// NewProjectDraft returns a blank project form: starting today, in DRAFT.
// A non-zero parentID makes it a sub-project.
func (c *Controller) NewProjectDraft(parentID int64) domain.Project {
	return domain.Project{
		StartDate:       domain.DateOf(c.now()),
		Status:          domain.ProjectDraft,
		ParentProjectID: parentID,
	}
}

// NewTaskDraft returns a blank task form: due today, MEDIUM, TO_DO.
func (c *Controller) NewTaskDraft(projectID int64) domain.Task {
	return domain.Task{
		DueDate:   domain.DateOf(c.now()),
		Priority:  domain.PriorityMedium,
		Status:    domain.TaskToDo,
		ProjectID: projectID,
	}
}

// LoadProjects fetches the full project list.
func (c *Controller) LoadProjects(ctx context.Context) (err error) {
	defer c.observe(ctx, "load-projects", time.Now(), nil, &err)

	c.store.Dispatch(app.ProjectsRequested{})
	projects, err := c.api.ListProjects(ctx)
	if err != nil {
		return c.fail(MsgLoadProjectsFailed, fmt.Errorf("loading projects: %w", err))
	}
	c.store.Dispatch(app.ProjectsLoaded{Projects: projects})
	return nil
}

// resyncProjects re-fetches the list and, when a project is open, refreshes
// it from the new list so its child projects stay current.
func (c *Controller) resyncProjects(msg string, mutate func(context.Context) error) app.Resync[[]domain.Project] {
	return app.Resync[[]domain.Project]{
		Mutate:  mutate,
		Refetch: c.api.ListProjects,
		Loaded: func(projects []domain.Project) app.Action {
			batch := app.Batch{app.ProjectsLoaded{Projects: projects}, app.ModalClosed{}}
			if sel, ok := app.SelectedProject(c.store.State()); ok {
				if p, found := domain.FindProject(projects, sel.ID); found {
					batch = append(batch, app.ProjectRefreshed{Project: p})
				}
			}
			return batch
		},
		FailureMessage:        msg,
		RefetchFailureMessage: MsgLoadProjectsFailed,
	}
}

// SaveProject creates (ID 0) or updates a project from the form draft and
// re-fetches the list. The server's response to the save is returned but the
// list is always taken from the re-fetch.
func (c *Controller) SaveProject(ctx context.Context, draft domain.Project) (saved *domain.Project, err error) {
	fields := map[string]any{"project_id": draft.ID}
	defer c.observe(ctx, "save-project", time.Now(), fields, &err)

	if err = c.validate.Validate(draft); err != nil {
		return nil, c.fail(err.Error(), err)
	}
	r := c.resyncProjects(MsgSaveProjectFailed, func(ctx context.Context) error {
		var serr error
		saved, serr = c.api.SaveProject(ctx, draft)
		return serr
	})
	action, err := r.Run(ctx)
	c.store.Dispatch(action)
	if err != nil {
		return nil, fmt.Errorf("saving project: %w", err)
	}
	return saved, nil
}

// DeleteProject removes a project locally and remotely, then re-fetches.
func (c *Controller) DeleteProject(ctx context.Context, id int64) (err error) {
	defer c.observe(ctx, "delete-project", time.Now(), map[string]any{"project_id": id}, &err)

	r := c.resyncProjects(MsgDeleteProjectFailed, func(ctx context.Context) error {
		if derr := c.api.DeleteProject(ctx, id); derr != nil {
			return derr
		}
		c.store.Dispatch(app.ProjectRemoved{ID: id})
		return nil
	})
	action, err := r.Run(ctx)
	c.store.Dispatch(action)
	if err != nil {
		return fmt.Errorf("deleting project %d: %w", id, err)
	}
	return nil
}

// OpenProject switches to the detail view for a project and loads its tasks.
// Projects not already in the list are fetched individually.
func (c *Controller) OpenProject(ctx context.Context, id int64) (err error) {
	defer c.observe(ctx, "open-project", time.Now(), map[string]any{"project_id": id}, &err)

	p, ok := domain.FindProject(c.store.State().Projects, id)
	if !ok {
		fetched, gerr := c.api.GetProject(ctx, id)
		if gerr == nil && fetched == nil {
			gerr = domain.ErrNotFound
		}
		if gerr != nil {
			return c.fail(MsgLoadProjectFailed, fmt.Errorf("loading project %d: %w", id, gerr))
		}
		p = *fetched
	}
	c.store.Dispatch(app.ProjectSelected{Project: p})
	return c.refreshTasks(ctx, id)
}

func (c *Controller) refreshTasks(ctx context.Context, projectID int64) error {
	tasks, err := c.api.ListProjectTasks(ctx, projectID)
	if err != nil {
		return c.fail(MsgLoadTasksFailed, fmt.Errorf("loading tasks for project %d: %w", projectID, err))
	}
	c.store.Dispatch(app.TasksLoaded{Tasks: tasks})
	return nil
}

// SaveProjectDetails sends the whole project and re-reads it from the server.
func (c *Controller) SaveProjectDetails(ctx context.Context, p domain.Project) (err error) {
	defer c.observe(ctx, "save-project-details", time.Now(), map[string]any{"project_id": p.ID}, &err)

	if err = c.validate.Validate(p); err != nil {
		return c.fail(err.Error(), err)
	}
	r := app.Resync[*domain.Project]{
		Mutate: func(ctx context.Context) error {
			_, serr := c.api.SaveProject(ctx, p)
			return serr
		},
		Refetch: func(ctx context.Context) (*domain.Project, error) {
			fresh, gerr := c.api.GetProject(ctx, p.ID)
			if gerr == nil && fresh == nil {
				gerr = domain.ErrNotFound
			}
			return fresh, gerr
		},
		Loaded: func(fresh *domain.Project) app.Action {
			return app.Batch{app.ProjectRefreshed{Project: *fresh}, app.ModalClosed{}}
		},
		FailureMessage:        MsgSaveDetailsFailed,
		RefetchFailureMessage: MsgSaveDetailsFailed,
	}
	action, err := r.Run(ctx)
	c.store.Dispatch(action)
	if err != nil {
		return fmt.Errorf("saving project %d: %w", p.ID, err)
	}
	return nil
}

// SaveStrategy replaces the open project's strategy plan. Unchanged text
// closes the editor without a request.
func (c *Controller) SaveStrategy(ctx context.Context, text string) error {
	p, err := c.selected()
	if err != nil {
		return err
	}
	if text == p.StrategyPlan {
		c.store.Dispatch(app.ModalClosed{})
		return nil
	}
	p.StrategyPlan = text
	return c.SaveProjectDetails(ctx, p)
}

// SaveMarkdown replaces the open project's markdown plan. Unchanged text
// closes the editor without a request.
func (c *Controller) SaveMarkdown(ctx context.Context, text string) error {
	p, err := c.selected()
	if err != nil {
		return err
	}
	if text == p.MarkdownPlan {
		c.store.Dispatch(app.ModalClosed{})
		return nil
	}
	p.MarkdownPlan = text
	return c.SaveProjectDetails(ctx, p)
}

func (c *Controller) resyncTasks(projectID int64, msg string, mutate func(context.Context) error) app.Resync[[]domain.Task] {
	return app.Resync[[]domain.Task]{
		Mutate: mutate,
		Refetch: func(ctx context.Context) ([]domain.Task, error) {
			return c.api.ListProjectTasks(ctx, projectID)
		},
		Loaded: func(tasks []domain.Task) app.Action {
			return app.Batch{app.TasksLoaded{Tasks: tasks}, app.ModalClosed{}}
		},
		FailureMessage:        msg,
		RefetchFailureMessage: MsgLoadTasksFailed,
	}
}

// SaveTask creates (ID 0) or updates a task and re-fetches the project's
// tasks. A draft without a project is attached to the open project.
func (c *Controller) SaveTask(ctx context.Context, draft domain.Task) (saved *domain.Task, err error) {
	fields := map[string]any{"task_id": draft.ID}
	defer c.observe(ctx, "save-task", time.Now(), fields, &err)

	if draft.ProjectID == 0 {
		if p, ok := app.SelectedProject(c.store.State()); ok {
			draft.ProjectID = p.ID
		}
	}
	fields["project_id"] = draft.ProjectID
	if err = c.validate.Validate(draft); err != nil {
		return nil, c.fail(err.Error(), err)
	}
	r := c.resyncTasks(draft.ProjectID, MsgSaveTaskFailed, func(ctx context.Context) error {
		var serr error
		saved, serr = c.api.SaveTask(ctx, draft)
		return serr
	})
	action, err := r.Run(ctx)
	c.store.Dispatch(action)
	if err != nil {
		return nil, fmt.Errorf("saving task: %w", err)
	}
	return saved, nil
}

// DeleteTask removes a task of the open project and re-fetches its tasks.
func (c *Controller) DeleteTask(ctx context.Context, id int64) (err error) {
	defer c.observe(ctx, "delete-task", time.Now(), map[string]any{"task_id": id}, &err)

	p, err := c.selected()
	if err != nil {
		return err
	}
	r := c.resyncTasks(p.ID, MsgDeleteTaskFailed, func(ctx context.Context) error {
		return c.api.DeleteTask(ctx, id)
	})
	action, err := r.Run(ctx)
	c.store.Dispatch(action)
	if err != nil {
		return fmt.Errorf("deleting task %d: %w", id, err)
	}
	return nil
}

// MoveTask changes a loaded task's status optimistically: the new status is
// shown at once and reverted, with a banner, if the server rejects it.
// Moving a task to the status it already has is a no-op.
func (c *Controller) MoveTask(ctx context.Context, id int64, to domain.TaskStatus) error {
	move, err := c.BeginMove(id, to)
	if err != nil || move == nil {
		return err
	}
	return move.Finish(ctx)
}

// PendingMove is a status change already applied locally and awaiting the
// server. Finish must be called exactly once.
type PendingMove struct {
	c         *Controller
	tentative app.Tentative
	moved     domain.Task
	startedAt time.Time
}

// BeginMove applies a status change locally. It returns a nil move when the
// task already has the target status.
func (c *Controller) BeginMove(id int64, to domain.TaskStatus) (*PendingMove, error) {
	if !to.Valid() {
		return nil, &domain.ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", to)}
	}
	state := c.store.State()
	if _, ok := app.Task(state, id); !ok {
		return nil, fmt.Errorf("task %d: %w", id, domain.ErrNotFound)
	}
	tentative, moved, ok := app.MoveTask(state, id, to)
	if !ok {
		return nil, nil
	}
	c.store.Update(tentative.Begin)
	return &PendingMove{c: c, tentative: tentative, moved: moved, startedAt: time.Now()}, nil
}

// Finish sends the change and reverts it locally if the server fails.
func (m *PendingMove) Finish(ctx context.Context) (err error) {
	fields := map[string]any{"task_id": m.moved.ID, "status": string(m.moved.Status)}
	defer m.c.observe(ctx, "move-task", m.startedAt, fields, &err)

	_, err = m.c.api.SaveTask(ctx, m.moved)
	m.c.store.Update(func(s app.State) app.State { return m.tentative.Settle(s, err) })
	if err != nil {
		return fmt.Errorf("moving task %d: %w", m.moved.ID, err)
	}
	return nil
}

// CompleteTask moves a task to COMPLETED.
func (c *Controller) CompleteTask(ctx context.Context, id int64) error {
	return c.MoveTask(ctx, id, domain.TaskCompleted)
}

// LoadTaskHistory opens the history overlay for a task and fills it.
func (c *Controller) LoadTaskHistory(ctx context.Context, taskID int64) (entries []domain.TaskVersionHistory, err error) {
	defer c.observe(ctx, "load-task-history", time.Now(), map[string]any{"task_id": taskID}, &err)

	c.store.Dispatch(app.ModalOpened{Modal: app.ModalTaskHistory, HistoryTaskID: taskID})
	entries, err = c.api.ListTaskHistory(ctx, taskID)
	if err != nil {
		return nil, c.fail(MsgLoadHistoryFailed, fmt.Errorf("loading history for task %d: %w", taskID, err))
	}
	c.store.Dispatch(app.TaskHistoryLoaded{Entries: entries})
	return entries, nil
}

// LoadStrategyHistory opens the strategy history overlay for the open project.
func (c *Controller) LoadStrategyHistory(ctx context.Context) (entries []domain.ProjectStrategyVersion, err error) {
	p, err := c.selected()
	if err != nil {
		return nil, err
	}
	defer c.observe(ctx, "load-strategy-history", time.Now(), map[string]any{"project_id": p.ID}, &err)

	c.store.Dispatch(app.ModalOpened{Modal: app.ModalStrategyHistory})
	entries, err = c.api.ListStrategyHistory(ctx, p.ID)
	if err != nil {
		return nil, c.fail(MsgLoadHistoryFailed, fmt.Errorf("loading strategy history for project %d: %w", p.ID, err))
	}
	c.store.Dispatch(app.StrategyHistoryLoaded{Entries: entries})
	return entries, nil
}
