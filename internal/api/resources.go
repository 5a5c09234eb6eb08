package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/alexanderramin/planner/internal/domain"
)

func decodeOne[T any](raw json.RawMessage, what string) (*T, error) {
	if raw == nil {
		return nil, nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", what, err)
	}
	return &v, nil
}

// decodeList treats a missing payload as an empty list.
func decodeList[T any](raw json.RawMessage, what string) ([]T, error) {
	if raw == nil {
		return []T{}, nil
	}
	var v []T
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", what, err)
	}
	if v == nil {
		v = []T{}
	}
	return v, nil
}

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	raw, err := c.Call(ctx, http.MethodGet, "/projects", nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Project](raw, "projects")
}

// GetProject returns nil without error when the server answers with no payload.
func (c *Client) GetProject(ctx context.Context, id int64) (*domain.Project, error) {
	raw, err := c.Call(ctx, http.MethodGet, fmt.Sprintf("/projects/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Project](raw, "project")
}

// SaveProject creates p when it has no ID and replaces it otherwise.
// A nil project with a nil error means the server acknowledged the write
// without returning a body.
func (c *Client) SaveProject(ctx context.Context, p domain.Project) (*domain.Project, error) {
	method, path := http.MethodPost, "/projects"
	if p.ID != 0 {
		method, path = http.MethodPut, fmt.Sprintf("/projects/%d", p.ID)
	}
	raw, err := c.Call(ctx, method, path, NewProjectPayload(p))
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Project](raw, "saved project")
}

func (c *Client) DeleteProject(ctx context.Context, id int64) error {
	_, err := c.Call(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil)
	return err
}

func (c *Client) ListProjectTasks(ctx context.Context, projectID int64) ([]domain.Task, error) {
	raw, err := c.Call(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/tasks", projectID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.Task](raw, "tasks")
}

// ListStrategyHistory returns the project's strategy versions, newest first
// as ordered by the server.
func (c *Client) ListStrategyHistory(ctx context.Context, projectID int64) ([]domain.ProjectStrategyVersion, error) {
	raw, err := c.Call(ctx, http.MethodGet, fmt.Sprintf("/projects/%d/strategy-history", projectID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.ProjectStrategyVersion](raw, "strategy history")
}

// SaveTask creates t when it has no ID and replaces it otherwise.
func (c *Client) SaveTask(ctx context.Context, t domain.Task) (*domain.Task, error) {
	method, path := http.MethodPost, "/tasks"
	if t.ID != 0 {
		method, path = http.MethodPut, fmt.Sprintf("/tasks/%d", t.ID)
	}
	raw, err := c.Call(ctx, method, path, NewTaskPayload(t))
	if err != nil {
		return nil, err
	}
	return decodeOne[domain.Task](raw, "saved task")
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	_, err := c.Call(ctx, http.MethodDelete, fmt.Sprintf("/tasks/%d", id), nil)
	return err
}

func (c *Client) ListTaskHistory(ctx context.Context, taskID int64) ([]domain.TaskVersionHistory, error) {
	raw, err := c.Call(ctx, http.MethodGet, fmt.Sprintf("/tasks/%d/history", taskID), nil)
	if err != nil {
		return nil, err
	}
	return decodeList[domain.TaskVersionHistory](raw, "task history")
}
