package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/planner/internal/cli/formatter"
	"github.com/alexanderramin/planner/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// plannerHuhTheme returns a huh theme using the formatter palette.
func plannerHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// projectFormValues holds the string-typed fields a project form edits.
// The draft carries everything the form does not show (ID, parent, plans).
type projectFormValues struct {
	draft       domain.Project
	name        string
	description string
	start       string
	end         string
	status      domain.ProjectStatus
}

func newProjectFormValues(draft domain.Project) *projectFormValues {
	return &projectFormValues{
		draft:       draft,
		name:        draft.Name,
		description: draft.Description,
		start:       draft.StartDate.String(),
		end:         draft.EndDate.String(),
		status:      draft.Status,
	}
}

// project merges the edited fields back into the draft.
func (v *projectFormValues) project() (domain.Project, error) {
	p := v.draft
	p.Name = strings.TrimSpace(v.name)
	p.Description = v.description
	p.Status = v.status

	var err error
	if p.StartDate, err = domain.ParseDate(v.start); err != nil {
		return domain.Project{}, err
	}
	if p.EndDate, err = domain.ParseDate(v.end); err != nil {
		return domain.Project{}, err
	}
	return p, nil
}

// taskFormValues holds the string-typed fields a task form edits.
type taskFormValues struct {
	draft       domain.Task
	title       string
	description string
	due         string
	priority    domain.TaskPriority
	status      domain.TaskStatus
}

func newTaskFormValues(draft domain.Task) *taskFormValues {
	return &taskFormValues{
		draft:       draft,
		title:       draft.Title,
		description: draft.Description,
		due:         draft.DueDate.String(),
		priority:    draft.Priority,
		status:      draft.Status,
	}
}

func (v *taskFormValues) task() (domain.Task, error) {
	t := v.draft
	t.Title = strings.TrimSpace(v.title)
	t.Description = v.description
	t.Priority = v.priority
	t.Status = v.status

	var err error
	if t.DueDate, err = domain.ParseDate(v.due); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateOptionalDate accepts empty or a YYYY-MM-DD date.
func validateOptionalDate(s string) error {
	if s == "" {
		return nil
	}
	if _, err := domain.ParseDate(s); err != nil {
		return errors.New("use YYYY-MM-DD format")
	}
	return nil
}
