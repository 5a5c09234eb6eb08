package app

import "github.com/alexanderramin/planner/internal/domain"

// Action is a user intent or the result of an asynchronous call.
type Action interface {
	action()
}

type (
	ProjectsRequested struct{}
	ProjectsLoaded    struct{ Projects []domain.Project }
	// ProjectRefreshed carries a re-fetched project; it replaces the
	// selection (when it is the same project) and the matching list entry.
	ProjectRefreshed struct{ Project domain.Project }
	ProjectRemoved   struct{ ID int64 }
	ProjectSelected  struct{ Project domain.Project }
	BackToDashboard  struct{}
	SearchChanged    struct{ Term string }

	TasksLoaded   struct{ Tasks []domain.Task }
	TaskStatusSet struct {
		TaskID int64
		Status domain.TaskStatus
	}

	// ModalOpened shows an overlay. Drafts are only read for the form modals;
	// HistoryTaskID only for ModalTaskHistory.
	ModalOpened struct {
		Modal         Modal
		ProjectDraft  *domain.Project
		TaskDraft     *domain.Task
		HistoryTaskID int64
	}
	ModalClosed           struct{}
	TaskHistoryLoaded     struct{ Entries []domain.TaskVersionHistory }
	StrategyHistoryLoaded struct{ Entries []domain.ProjectStrategyVersion }

	ErrorRaised  struct{ Message string }
	ErrorCleared struct{}

	// Batch applies several actions in order.
	Batch []Action
)

func (ProjectsRequested) action()     {}
func (ProjectsLoaded) action()        {}
func (ProjectRefreshed) action()      {}
func (ProjectRemoved) action()        {}
func (ProjectSelected) action()       {}
func (BackToDashboard) action()       {}
func (SearchChanged) action()         {}
func (TasksLoaded) action()           {}
func (TaskStatusSet) action()         {}
func (ModalOpened) action()           {}
func (ModalClosed) action()           {}
func (TaskHistoryLoaded) action()     {}
func (StrategyHistoryLoaded) action() {}
func (ErrorRaised) action()           {}
func (ErrorCleared) action()          {}
func (Batch) action()                 {}
