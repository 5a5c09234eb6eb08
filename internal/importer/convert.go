package importer

import (
	"fmt"

	"github.com/alexanderramin/planner/internal/domain"
)

// Plan is a converted import file: drafts ready to send to the API in
// order. Sub-project and task drafts carry no parent or project ID yet;
// the importing side fills those in as the server assigns IDs.
type Plan struct {
	Project     domain.Project
	SubProjects []SubProject
	Tasks       []PlannedTask
}

// SubProject is a sub-project draft with the ref tasks use to find it.
type SubProject struct {
	Ref     string
	Project domain.Project
}

// PlannedTask is a task draft and the ref of the project it belongs to
// ("" for the top-level project).
type PlannedTask struct {
	ProjectRef string
	Task       domain.Task
}

// Convert transforms a validated ImportSchema into drafts. Call
// ValidateImportSchema first; Convert assumes the schema is valid. Projects
// without a start date start on today, matching the project form.
func Convert(schema *ImportSchema, today domain.Date) (*Plan, error) {
	root, err := convertProject(schema.Project, today)
	if err != nil {
		return nil, fmt.Errorf("project: %w", err)
	}
	plan := &Plan{Project: root}

	for _, sp := range schema.SubProjects {
		p, err := convertProject(sp, today)
		if err != nil {
			return nil, fmt.Errorf("sub-project %q: %w", sp.Ref, err)
		}
		plan.SubProjects = append(plan.SubProjects, SubProject{Ref: sp.Ref, Project: p})
	}

	for _, ti := range schema.Tasks {
		t, err := convertTask(ti)
		if err != nil {
			return nil, fmt.Errorf("task %q: %w", ti.Title, err)
		}
		plan.Tasks = append(plan.Tasks, PlannedTask{ProjectRef: ti.ProjectRef, Task: t})
	}

	return plan, nil
}

func convertProject(in ProjectImport, today domain.Date) (domain.Project, error) {
	p := domain.Project{
		Name:         in.Name,
		Description:  in.Description,
		Status:       domain.ProjectDraft,
		StartDate:    today,
		StrategyPlan: in.StrategyPlan,
		MarkdownPlan: in.MarkdownPlan,
	}

	var err error
	if in.StartDate != "" {
		if p.StartDate, err = domain.ParseDate(in.StartDate); err != nil {
			return domain.Project{}, err
		}
	}
	if p.EndDate, err = domain.ParseDate(in.EndDate); err != nil {
		return domain.Project{}, err
	}
	if in.Status != "" {
		if p.Status, err = domain.ParseProjectStatus(in.Status); err != nil {
			return domain.Project{}, err
		}
	}
	return p, nil
}

func convertTask(in TaskImport) (domain.Task, error) {
	t := domain.Task{
		Title:       in.Title,
		Description: in.Description,
		Priority:    domain.PriorityMedium,
		Status:      domain.TaskToDo,
	}

	var err error
	if t.DueDate, err = domain.ParseDate(in.DueDate); err != nil {
		return domain.Task{}, err
	}
	if in.Priority != "" {
		if t.Priority, err = domain.ParseTaskPriority(in.Priority); err != nil {
			return domain.Task{}, err
		}
	}
	if in.Status != "" {
		if t.Status, err = domain.ParseTaskStatus(in.Status); err != nil {
			return domain.Task{}, err
		}
	}
	return t, nil
}

// Counts summarizes what a plan will create.
func (p *Plan) Counts() (projects, tasks int) {
	return 1 + len(p.SubProjects), len(p.Tasks)
}
