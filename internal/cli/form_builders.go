package cli

import (
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/charmbracelet/huh"
)

// dateInput returns a huh.Input for an optional date field with YYYY-MM-DD validation.
func dateInput(title string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder("2026-06-30").
		Value(value).
		Validate(validateOptionalDate)
}

func statusOptions[S ~string](values []S, label func(S) string) []huh.Option[S] {
	opts := make([]huh.Option[S], 0, len(values))
	for _, v := range values {
		opts = append(opts, huh.NewOption(label(v), v))
	}
	return opts
}

// projectForm builds the create/edit project form bound to v.
func projectForm(v *projectFormValues) *huh.Form {
	title := "New project"
	switch {
	case v.draft.ID != 0:
		title = "Edit project"
	case v.draft.ParentProjectID != 0:
		title = "New sub-project"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Name").
				Value(&v.name).
				Validate(validateRequired("name")),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&v.description),
			dateInput("Start date", &v.start),
			dateInput("End date (blank for none)", &v.end),
			huh.NewSelect[domain.ProjectStatus]().
				Title("Status").
				Options(statusOptions(domain.ProjectStatuses, func(s domain.ProjectStatus) string { return string(s) })...).
				Value(&v.status),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}

// taskForm builds the create/edit task form bound to v.
func taskForm(v *taskFormValues) *huh.Form {
	title := "New task"
	if v.draft.ID != 0 {
		title = "Edit task"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(title).
				Description("Title").
				Value(&v.title).
				Validate(validateRequired("title")),
			huh.NewText().
				Title("Description").
				Lines(3).
				Value(&v.description),
			dateInput("Due date (blank for none)", &v.due),
			huh.NewSelect[domain.TaskPriority]().
				Title("Priority").
				Options(statusOptions(domain.TaskPriorities, func(p domain.TaskPriority) string { return string(p) })...).
				Value(&v.priority),
			huh.NewSelect[domain.TaskStatus]().
				Title("Status").
				Options(statusOptions(domain.TaskStatuses, domain.TaskStatus.Label)...).
				Value(&v.status),
		),
	).WithTheme(plannerHuhTheme()).WithShowHelp(false)
}
