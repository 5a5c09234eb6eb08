package service

import (
	"context"
	"errors"
	"slices"
	"sync"

	"github.com/alexanderramin/planner/internal/domain"
)

var errServer = errors.New("server unavailable")

// fakeAPI is an in-memory backend. failOn makes the named method fail.
type fakeAPI struct {
	mu        sync.Mutex
	projects  map[int64]domain.Project
	tasks     map[int64]domain.Task
	taskHist  map[int64][]domain.TaskVersionHistory
	stratHist map[int64][]domain.ProjectStrategyVersion
	nextID    int64
	failOn    map[string]bool
	calls     []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		projects:  map[int64]domain.Project{},
		tasks:     map[int64]domain.Task{},
		taskHist:  map[int64][]domain.TaskVersionHistory{},
		stratHist: map[int64][]domain.ProjectStrategyVersion{},
		nextID:    100,
		failOn:    map[string]bool{},
	}
}

func (f *fakeAPI) call(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	if f.failOn[name] {
		return errServer
	}
	return nil
}

func (f *fakeAPI) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeAPI) addProject(p domain.Project) domain.Project {
	f.projects[p.ID] = p
	return p
}

func (f *fakeAPI) addTask(t domain.Task) domain.Task {
	f.tasks[t.ID] = t
	return t
}

func (f *fakeAPI) ListProjects(context.Context) ([]domain.Project, error) {
	if err := f.call("ListProjects"); err != nil {
		return nil, err
	}
	out := make([]domain.Project, 0, len(f.projects))
	for _, p := range f.projects {
		out = append(out, p)
	}
	slices.SortFunc(out, func(a, b domain.Project) int { return int(a.ID - b.ID) })
	return out, nil
}

func (f *fakeAPI) GetProject(_ context.Context, id int64) (*domain.Project, error) {
	if err := f.call("GetProject"); err != nil {
		return nil, err
	}
	p, ok := f.projects[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (f *fakeAPI) SaveProject(_ context.Context, p domain.Project) (*domain.Project, error) {
	if err := f.call("SaveProject"); err != nil {
		return nil, err
	}
	if p.ID == 0 {
		f.nextID++
		p.ID = f.nextID
	}
	f.projects[p.ID] = p
	return &p, nil
}

func (f *fakeAPI) DeleteProject(_ context.Context, id int64) error {
	if err := f.call("DeleteProject"); err != nil {
		return err
	}
	delete(f.projects, id)
	return nil
}

func (f *fakeAPI) ListProjectTasks(_ context.Context, projectID int64) ([]domain.Task, error) {
	if err := f.call("ListProjectTasks"); err != nil {
		return nil, err
	}
	var out []domain.Task
	for _, t := range f.tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b domain.Task) int { return int(a.ID - b.ID) })
	return out, nil
}

func (f *fakeAPI) ListStrategyHistory(_ context.Context, projectID int64) ([]domain.ProjectStrategyVersion, error) {
	if err := f.call("ListStrategyHistory"); err != nil {
		return nil, err
	}
	return f.stratHist[projectID], nil
}

func (f *fakeAPI) SaveTask(_ context.Context, t domain.Task) (*domain.Task, error) {
	if err := f.call("SaveTask"); err != nil {
		return nil, err
	}
	if t.ID == 0 {
		f.nextID++
		t.ID = f.nextID
	}
	f.tasks[t.ID] = t
	return &t, nil
}

func (f *fakeAPI) DeleteTask(_ context.Context, id int64) error {
	if err := f.call("DeleteTask"); err != nil {
		return err
	}
	delete(f.tasks, id)
	return nil
}

func (f *fakeAPI) ListTaskHistory(_ context.Context, taskID int64) ([]domain.TaskVersionHistory, error) {
	if err := f.call("ListTaskHistory"); err != nil {
		return nil, err
	}
	return f.taskHist[taskID], nil
}
