package devserver

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/alexanderramin/planner/internal/api"
	"github.com/alexanderramin/planner/internal/domain"
)

type handlers struct {
	store *Store
}

func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, &domain.ValidationError{Field: name, Message: fmt.Sprintf("invalid id %q", c.Param(name))}
	}
	return id, nil
}

func bindJSON(c echo.Context, payload any) error {
	if err := c.Bind(payload); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	return nil
}

func projectFromPayload(in api.ProjectPayload) domain.Project {
	p := domain.Project{
		ID:           in.ID,
		Name:         in.Name,
		Description:  in.Description,
		StartDate:    in.StartDate,
		EndDate:      in.EndDate,
		Status:       in.Status,
		StrategyPlan: in.StrategyPlan,
		MarkdownPlan: in.MarkdownPlan,
	}
	if in.ParentProject != nil {
		p.ParentProjectID = in.ParentProject.ID
	}
	return p
}

func taskFromPayload(in api.TaskPayload) domain.Task {
	t := domain.Task{
		ID:          in.ID,
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    in.Priority,
		Status:      in.Status,
	}
	if in.Project != nil {
		t.ProjectID = in.Project.ID
	}
	return t
}

func (h *handlers) listProjects(c echo.Context) error {
	projects, err := h.store.ListProjects(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, projects)
}

func (h *handlers) getProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	p, err := h.store.GetProject(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

func (h *handlers) createProject(c echo.Context) error {
	var in api.ProjectPayload
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	p := projectFromPayload(in)
	p.ID = 0
	if p.Status == "" {
		p.Status = domain.ProjectDraft
	}
	if err := c.Validate(p); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.store.CreateProject(ctx, &p); err != nil {
		return err
	}
	created, err := h.store.GetProject(ctx, p.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, created)
}

func (h *handlers) updateProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in api.ProjectPayload
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	p := projectFromPayload(in)
	p.ID = id
	if err := c.Validate(p); err != nil {
		return err
	}
	ctx := c.Request().Context()
	if err := h.store.UpdateProject(ctx, &p); err != nil {
		return err
	}
	updated, err := h.store.GetProject(ctx, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (h *handlers) deleteProject(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.DeleteProject(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) listProjectTasks(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	tasks, err := h.store.ListTasks(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tasks)
}

func (h *handlers) strategyHistory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	versions, err := h.store.StrategyHistory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, versions)
}

func (h *handlers) createTask(c echo.Context) error {
	var in api.TaskPayload
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	t := taskFromPayload(in)
	t.ID = 0
	if t.Priority == "" {
		t.Priority = domain.PriorityMedium
	}
	if t.Status == "" {
		t.Status = domain.TaskToDo
	}
	if err := c.Validate(t); err != nil {
		return err
	}
	if err := h.store.CreateTask(c.Request().Context(), &t); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, t)
}

func (h *handlers) updateTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var in api.TaskPayload
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	t := taskFromPayload(in)
	t.ID = id
	ctx := c.Request().Context()
	if t.ProjectID == 0 {
		existing, err := h.store.GetTask(ctx, id)
		if err != nil {
			return err
		}
		t.ProjectID = existing.ProjectID
	}
	if err := c.Validate(t); err != nil {
		return err
	}
	if err := h.store.UpdateTask(ctx, &t); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, t)
}

func (h *handlers) deleteTask(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	if err := h.store.DeleteTask(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *handlers) taskHistory(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	entries, err := h.store.TaskHistory(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
