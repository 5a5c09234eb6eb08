package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/planner/internal/app"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/importer"
)

// MsgImportFailed is the banner raised when an import stops part way.
const MsgImportFailed = "Failed to import project."

// ErrNoCreatedEntity means the server accepted a create but did not return
// the new entity, so its ID is unknown.
var ErrNoCreatedEntity = errors.New("server did not return the created entity")

// ImportResult reports what an import created.
type ImportResult struct {
	Project     domain.Project
	SubProjects int
	Tasks       int
}

// ImportProject sends a converted import plan to the API: the project,
// then its sub-projects, then the tasks. A failure stops the import and
// leaves what was already created in place. The project list is re-fetched
// once at the end, or after a failure, so state matches the server.
func (c *Controller) ImportProject(ctx context.Context, plan *importer.Plan) (res *ImportResult, err error) {
	fields := map[string]any{"project": plan.Project.Name}
	defer c.observe(ctx, "import-project", time.Now(), fields, &err)

	for _, p := range append([]domain.Project{plan.Project}, subProjectDrafts(plan)...) {
		if err = c.validate.Validate(p); err != nil {
			return nil, c.fail(err.Error(), err)
		}
	}

	res = &ImportResult{}
	importErr := c.runImport(ctx, plan, res)
	fields["sub_projects"] = res.SubProjects
	fields["tasks"] = res.Tasks

	projects, lerr := c.api.ListProjects(ctx)
	if lerr == nil {
		c.store.Dispatch(app.ProjectsLoaded{Projects: projects})
	}
	if importErr != nil {
		var verr *domain.ValidationError
		if errors.As(importErr, &verr) {
			return res, c.fail(verr.Error(), importErr)
		}
		return res, c.fail(MsgImportFailed, importErr)
	}
	if lerr != nil {
		return res, c.fail(MsgLoadProjectsFailed, fmt.Errorf("loading projects: %w", lerr))
	}
	if p, ok := domain.FindProject(projects, res.Project.ID); ok {
		res.Project = p
	}
	return res, nil
}

func subProjectDrafts(plan *importer.Plan) []domain.Project {
	out := make([]domain.Project, 0, len(plan.SubProjects))
	for _, sp := range plan.SubProjects {
		out = append(out, sp.Project)
	}
	return out
}

func (c *Controller) runImport(ctx context.Context, plan *importer.Plan, res *ImportResult) error {
	root, err := c.createProject(ctx, plan.Project)
	if err != nil {
		return fmt.Errorf("creating project %q: %w", plan.Project.Name, err)
	}
	res.Project = *root

	ids := map[string]int64{"": root.ID}
	for _, sp := range plan.SubProjects {
		draft := sp.Project
		draft.ParentProjectID = root.ID
		saved, err := c.createProject(ctx, draft)
		if err != nil {
			return fmt.Errorf("creating sub-project %q: %w", draft.Name, err)
		}
		ids[sp.Ref] = saved.ID
		res.SubProjects++
	}

	for _, pt := range plan.Tasks {
		draft := pt.Task
		id, ok := ids[pt.ProjectRef]
		if !ok {
			return fmt.Errorf("task %q: unknown sub-project %q: %w", draft.Title, pt.ProjectRef, domain.ErrNotFound)
		}
		draft.ProjectID = id
		if err := c.validate.Validate(draft); err != nil {
			return err
		}
		if _, err := c.api.SaveTask(ctx, draft); err != nil {
			return fmt.Errorf("creating task %q: %w", draft.Title, err)
		}
		res.Tasks++
	}
	return nil
}

func (c *Controller) createProject(ctx context.Context, draft domain.Project) (*domain.Project, error) {
	saved, err := c.api.SaveProject(ctx, draft)
	if err != nil {
		return nil, err
	}
	if saved == nil || saved.ID == 0 {
		return nil, ErrNoCreatedEntity
	}
	return saved, nil
}
