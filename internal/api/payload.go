package api

import "github.com/alexanderramin/planner/internal/domain"

// Ref is the nested {"id": N} shape the server expects for associations.
type Ref struct {
	ID int64 `json:"id"`
}

// ProjectPayload is the request body for creating or replacing a project.
// The parent travels as a nested reference; the flat parentProjectId field
// and the server-computed child list are never sent.
type ProjectPayload struct {
	ID            int64                `json:"id,omitempty"`
	Name          string               `json:"name"`
	Description   string               `json:"description"`
	StartDate     domain.Date          `json:"startDate,omitzero"`
	EndDate       domain.Date          `json:"endDate"`
	Status        domain.ProjectStatus `json:"status"`
	StrategyPlan  string               `json:"strategyPlan"`
	MarkdownPlan  string               `json:"markdownPlan"`
	ParentProject *Ref                 `json:"parentProject,omitempty"`
}

// NewProjectPayload shapes p for transmission.
func NewProjectPayload(p domain.Project) ProjectPayload {
	payload := ProjectPayload{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
		Status:       p.Status,
		StrategyPlan: p.StrategyPlan,
		MarkdownPlan: p.MarkdownPlan,
	}
	if p.ParentProjectID != 0 {
		payload.ParentProject = &Ref{ID: p.ParentProjectID}
	}
	return payload
}

// TaskPayload is the request body for creating or replacing a task. The
// owning project travels as a nested reference.
type TaskPayload struct {
	ID          int64               `json:"id,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	DueDate     domain.Date         `json:"dueDate"`
	Priority    domain.TaskPriority `json:"priority"`
	Status      domain.TaskStatus   `json:"status"`
	Project     *Ref                `json:"project,omitempty"`
}

// NewTaskPayload shapes t for transmission.
func NewTaskPayload(t domain.Task) TaskPayload {
	payload := TaskPayload{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Priority:    t.Priority,
		Status:      t.Status,
	}
	if t.ProjectID != 0 {
		payload.Project = &Ref{ID: t.ProjectID}
	}
	return payload
}
