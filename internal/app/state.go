// Package app holds the dashboard's explicit application state and the pure
// reducer that evolves it. Front ends (CLI commands, the TUI) dispatch
// actions; nothing else writes to State.
package app

import (
	"time"

	"github.com/alexanderramin/planner/internal/domain"
	"github.com/alexanderramin/planner/internal/stats"
)

type View string

const (
	ViewDashboard View = "DASHBOARD"
	ViewDetail    View = "DETAIL"
)

// Modal identifies the overlay shown on top of the current view.
type Modal string

const (
	ModalNone            Modal = ""
	ModalProjectForm     Modal = "PROJECT_FORM"
	ModalTaskForm        Modal = "TASK_FORM"
	ModalTaskHistory     Modal = "TASK_HISTORY"
	ModalStrategyHistory Modal = "STRATEGY_HISTORY"
	ModalStrategyEditor  Modal = "STRATEGY_EDITOR"
	ModalMarkdownEditor  Modal = "MARKDOWN_EDITOR"
	ModalMarkdownView    Modal = "MARKDOWN_VIEW"
)

// State is the complete, serializable dashboard state.
type State struct {
	View            View                            `json:"view"`
	Projects        []domain.Project                `json:"projects"`
	Search          string                          `json:"search"`
	Selected        *domain.Project                 `json:"selected,omitempty"`
	Tasks           []domain.Task                   `json:"tasks"`
	LoadingProjects bool                            `json:"loadingProjects"`
	LoadingTasks    bool                            `json:"loadingTasks"`
	Modal           Modal                           `json:"modal,omitempty"`
	ProjectDraft    *domain.Project                 `json:"projectDraft,omitempty"`
	TaskDraft       *domain.Task                    `json:"taskDraft,omitempty"`
	HistoryTaskID   int64                           `json:"historyTaskId,omitempty"`
	TaskHistory     []domain.TaskVersionHistory     `json:"taskHistory,omitempty"`
	StrategyHistory []domain.ProjectStrategyVersion `json:"strategyHistory,omitempty"`
	Banner          string                          `json:"banner,omitempty"`
}

// NewState returns the state the dashboard starts in.
func NewState() State {
	return State{View: ViewDashboard, Projects: []domain.Project{}, Tasks: []domain.Task{}}
}

// SelectedProject returns the project open in the detail view.
func SelectedProject(s State) (domain.Project, bool) {
	if s.Selected == nil {
		return domain.Project{}, false
	}
	return *s.Selected, true
}

// VisibleProjects returns the top-level projects matching the search term.
func VisibleProjects(s State) []domain.Project {
	return domain.TopLevel(s.Projects, s.Search)
}

// Board groups the selected project's tasks into kanban columns.
func Board(s State) domain.Board {
	return domain.GroupByStatus(s.Tasks)
}

// Stats computes the selected project's statistics as of now.
func Stats(s State, now time.Time) stats.Project {
	var end domain.Date
	if s.Selected != nil {
		end = s.Selected.EndDate
	}
	return stats.Compute(s.Tasks, end, now)
}

// Task returns the loaded task with the given ID.
func Task(s State, id int64) (domain.Task, bool) {
	return domain.FindTask(s.Tasks, id)
}
