package domain

import "sort"

type Task struct {
	ID          int64        `json:"id,omitempty"`
	Title       string       `json:"title" validate:"required,max=200"`
	Description string       `json:"description"`
	DueDate     Date         `json:"dueDate,omitzero"`
	Priority    TaskPriority `json:"priority" validate:"required,oneof=LOW MEDIUM HIGH"`
	Status      TaskStatus   `json:"status" validate:"required,oneof=TO_DO IN_PROGRESS REVIEW COMPLETED"`
	ProjectID   int64        `json:"projectId,omitempty" validate:"required"`
	CreatedAt   Timestamp    `json:"createdAt,omitzero"`
	UpdatedAt   Timestamp    `json:"updatedAt,omitzero"`
}

// IsCompleted reports whether the task is in the terminal COMPLETED status.
func (t *Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}

// SortByPriority returns a copy of tasks ordered HIGH, MEDIUM, LOW.
// Tasks of equal priority keep their server order.
func SortByPriority(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority.Rank() > out[j].Priority.Rank()
	})
	return out
}

// FindTask returns the task with the given ID.
func FindTask(tasks []Task, id int64) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

// BoardColumns are the statuses shown as kanban columns. Completed tasks are
// grouped on the board but not displayed as a column.
var BoardColumns = []TaskStatus{TaskToDo, TaskInProgress, TaskReview}

// Board partitions a project's tasks by status.
type Board map[TaskStatus][]Task

// GroupByStatus builds a Board with an entry (possibly empty) for every status.
func GroupByStatus(tasks []Task) Board {
	b := make(Board, len(TaskStatuses))
	for _, st := range TaskStatuses {
		b[st] = []Task{}
	}
	for _, t := range tasks {
		b[t.Status] = append(b[t.Status], t)
	}
	return b
}
