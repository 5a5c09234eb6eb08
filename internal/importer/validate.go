package importer

import (
	"fmt"

	"github.com/alexanderramin/planner/internal/domain"
)

// ValidateImportSchema checks the import schema for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateImportSchema(schema *ImportSchema) []error {
	var errs []error

	errs = append(errs, validateProject("project", &schema.Project)...)

	refs := make(map[string]bool)
	for i := range schema.SubProjects {
		sub := &schema.SubProjects[i]
		prefix := fmt.Sprintf("sub_projects[%d]", i)
		errs = append(errs, validateProject(prefix, sub)...)
		switch {
		case sub.Ref == "":
			errs = append(errs, fmt.Errorf("%s.ref is required", prefix))
		case refs[sub.Ref]:
			errs = append(errs, fmt.Errorf("%s.ref: duplicate ref %q", prefix, sub.Ref))
		default:
			refs[sub.Ref] = true
		}
	}

	errs = append(errs, validateTasks(schema.Tasks, refs)...)

	return errs
}

func validateProject(prefix string, p *ProjectImport) []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("%s.name is required", prefix))
	}

	start, startErr := domain.ParseDate(p.StartDate)
	if startErr != nil {
		errs = append(errs, fmt.Errorf("%s.start_date: %w", prefix, startErr))
	}
	end, endErr := domain.ParseDate(p.EndDate)
	if endErr != nil {
		errs = append(errs, fmt.Errorf("%s.end_date: %w", prefix, endErr))
	}
	if startErr == nil && endErr == nil && !start.IsZero() && !end.IsZero() && end.Before(start) {
		errs = append(errs, fmt.Errorf("%s.end_date %q must not be before start_date %q", prefix, p.EndDate, p.StartDate))
	}

	if p.Status != "" {
		if _, err := domain.ParseProjectStatus(p.Status); err != nil {
			errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, p.Status))
		}
	}

	return errs
}

func validateTasks(tasks []TaskImport, refs map[string]bool) []error {
	var errs []error

	for i, t := range tasks {
		prefix := fmt.Sprintf("tasks[%d]", i)
		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.ProjectRef != "" && !refs[t.ProjectRef] {
			errs = append(errs, fmt.Errorf("%s.project_ref: unknown sub-project %q", prefix, t.ProjectRef))
		}
		if _, err := domain.ParseDate(t.DueDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.due_date: %w", prefix, err))
		}
		if t.Priority != "" {
			if _, err := domain.ParseTaskPriority(t.Priority); err != nil {
				errs = append(errs, fmt.Errorf("%s.priority: invalid value %q", prefix, t.Priority))
			}
		}
		if t.Status != "" {
			if _, err := domain.ParseTaskStatus(t.Status); err != nil {
				errs = append(errs, fmt.Errorf("%s.status: invalid value %q", prefix, t.Status))
			}
		}
	}

	return errs
}
