package domain

import (
	"fmt"
	"strings"
)

type ProjectStatus string

const (
	ProjectDraft     ProjectStatus = "DRAFT"
	ProjectActive    ProjectStatus = "ACTIVE"
	ProjectCompleted ProjectStatus = "COMPLETED"
	ProjectAbandoned ProjectStatus = "ABANDONED"
)

// ProjectStatuses lists every project status in display order.
var ProjectStatuses = []ProjectStatus{ProjectDraft, ProjectActive, ProjectCompleted, ProjectAbandoned}

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectDraft, ProjectActive, ProjectCompleted, ProjectAbandoned:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskToDo       TaskStatus = "TO_DO"
	TaskInProgress TaskStatus = "IN_PROGRESS"
	TaskReview     TaskStatus = "REVIEW"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// TaskStatuses lists every task status in workflow order.
var TaskStatuses = []TaskStatus{TaskToDo, TaskInProgress, TaskReview, TaskCompleted}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskToDo, TaskInProgress, TaskReview, TaskCompleted:
		return true
	}
	return false
}

// Label returns the status with underscores replaced, e.g. "IN PROGRESS".
func (s TaskStatus) Label() string {
	return strings.ReplaceAll(string(s), "_", " ")
}

// Next returns the following status in workflow order. COMPLETED is terminal.
func (s TaskStatus) Next() TaskStatus {
	for i, st := range TaskStatuses {
		if st == s && i < len(TaskStatuses)-1 {
			return TaskStatuses[i+1]
		}
	}
	return s
}

// Prev returns the preceding status in workflow order. TO_DO is the first.
func (s TaskStatus) Prev() TaskStatus {
	for i, st := range TaskStatuses {
		if st == s && i > 0 {
			return TaskStatuses[i-1]
		}
	}
	return s
}

type TaskPriority string

const (
	PriorityLow    TaskPriority = "LOW"
	PriorityMedium TaskPriority = "MEDIUM"
	PriorityHigh   TaskPriority = "HIGH"
)

// TaskPriorities lists every priority from lowest to highest.
var TaskPriorities = []TaskPriority{PriorityLow, PriorityMedium, PriorityHigh}

func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Rank orders priorities for sorting: HIGH=3, MEDIUM=2, LOW=1, unknown=0.
func (p TaskPriority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

// normalizeEnum upper-cases s and turns spaces and dashes into underscores,
// so "in progress" and "in-progress" both become "IN_PROGRESS".
func normalizeEnum(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	return strings.NewReplacer(" ", "_", "-", "_").Replace(s)
}

func ParseProjectStatus(s string) (ProjectStatus, error) {
	st := ProjectStatus(normalizeEnum(s))
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown project status %q", s)}
	}
	return st, nil
}

func ParseTaskStatus(s string) (TaskStatus, error) {
	st := TaskStatus(normalizeEnum(s))
	if !st.Valid() {
		return "", &ValidationError{Field: "status", Message: fmt.Sprintf("unknown task status %q", s)}
	}
	return st, nil
}

func ParseTaskPriority(s string) (TaskPriority, error) {
	p := TaskPriority(normalizeEnum(s))
	if !p.Valid() {
		return "", &ValidationError{Field: "priority", Message: fmt.Sprintf("unknown task priority %q", s)}
	}
	return p, nil
}
