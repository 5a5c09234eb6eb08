package app

import (
	"slices"

	"github.com/alexanderramin/planner/internal/domain"
)

// Reduce returns the state that results from applying a to s. It never
// mutates s: slices and pointers that change are replaced, not written
// through.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case ProjectsRequested:
		s.LoadingProjects = true

	case ProjectsLoaded:
		s.Projects = slices.Clone(a.Projects)
		if s.Projects == nil {
			s.Projects = []domain.Project{}
		}
		s.LoadingProjects = false

	case ProjectRefreshed:
		p := a.Project
		if s.Selected != nil && s.Selected.ID == p.ID {
			s.Selected = &p
		}
		s.Projects = replaceProject(s.Projects, p)

	case ProjectRemoved:
		s.Projects = slices.DeleteFunc(slices.Clone(s.Projects), func(p domain.Project) bool {
			return p.ID == a.ID
		})
		if s.Selected != nil && s.Selected.ID == a.ID {
			s = toDashboard(s)
		}

	case ProjectSelected:
		p := a.Project
		s.View = ViewDetail
		s.Selected = &p
		s.Tasks = []domain.Task{}
		s.LoadingTasks = true
		s = closeModal(s)

	case BackToDashboard:
		s = toDashboard(s)

	case SearchChanged:
		s.Search = a.Term

	case TasksLoaded:
		// Late responses are applied even if the user has navigated away.
		s.Tasks = domain.SortByPriority(a.Tasks)
		s.LoadingTasks = false

	case TaskStatusSet:
		tasks := slices.Clone(s.Tasks)
		for i := range tasks {
			if tasks[i].ID == a.TaskID {
				tasks[i].Status = a.Status
			}
		}
		s.Tasks = tasks

	case ModalOpened:
		s = closeModal(s)
		s.Modal = a.Modal
		switch a.Modal {
		case ModalProjectForm:
			s.ProjectDraft = cloneProject(a.ProjectDraft)
		case ModalTaskForm:
			s.TaskDraft = cloneTask(a.TaskDraft)
		case ModalTaskHistory:
			s.HistoryTaskID = a.HistoryTaskID
		}

	case ModalClosed:
		s = closeModal(s)

	case TaskHistoryLoaded:
		s.TaskHistory = slices.Clone(a.Entries)

	case StrategyHistoryLoaded:
		s.StrategyHistory = slices.Clone(a.Entries)

	case ErrorRaised:
		s.Banner = a.Message
		s.LoadingProjects = false
		s.LoadingTasks = false

	case ErrorCleared:
		s.Banner = ""

	case Batch:
		for _, next := range a {
			s = Reduce(s, next)
		}
	}
	return s
}

func toDashboard(s State) State {
	s.View = ViewDashboard
	s.Selected = nil
	s.Tasks = []domain.Task{}
	s.LoadingTasks = false
	return closeModal(s)
}

func closeModal(s State) State {
	s.Modal = ModalNone
	s.ProjectDraft = nil
	s.TaskDraft = nil
	s.HistoryTaskID = 0
	s.TaskHistory = nil
	s.StrategyHistory = nil
	return s
}

func replaceProject(projects []domain.Project, p domain.Project) []domain.Project {
	out := slices.Clone(projects)
	for i := range out {
		if out[i].ID == p.ID {
			out[i] = p
		}
	}
	return out
}

func cloneProject(p *domain.Project) *domain.Project {
	if p == nil {
		return &domain.Project{}
	}
	c := *p
	c.ChildProjects = slices.Clone(p.ChildProjects)
	return &c
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return &domain.Task{}
	}
	c := *t
	return &c
}
