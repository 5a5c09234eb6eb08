// Package stats derives the read-only project statistics shown in the
// detail header: progress, task counts, overdue tasks and days remaining.
package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/planner/internal/domain"
)

// DaysRemaining is the whole number of calendar days until a project's end
// date. Negative values mean the end date has passed.
type DaysRemaining int

// PastDue reports whether the end date is before today.
func (d DaysRemaining) PastDue() bool {
	return d < 0
}

func (d DaysRemaining) String() string {
	if d.PastDue() {
		return "Past Due"
	}
	return fmt.Sprintf("%d days remaining", int(d))
}

// Project holds the statistics for one project's task set.
type Project struct {
	Progress       int            `json:"progress"`
	TotalTasks     int            `json:"totalTasks"`
	CompletedTasks int            `json:"completedTasks"`
	OverdueTasks   int            `json:"overdueTasks"`
	DaysRemaining  *DaysRemaining `json:"daysRemaining"`
}

// ProgressRatio returns Progress as a fraction in [0, 1].
func (p Project) ProgressRatio() float64 {
	return float64(p.Progress) / 100
}

// DaysRemainingLabel renders the days-remaining figure, or "" when the
// project has no end date.
func (p Project) DaysRemainingLabel() string {
	if p.DaysRemaining == nil {
		return ""
	}
	return p.DaysRemaining.String()
}

// Compute derives statistics from tasks. A zero endDate leaves
// DaysRemaining nil. now supplies both the instant used for overdue checks
// and the location that defines "today".
func Compute(tasks []domain.Task, endDate domain.Date, now time.Time) Project {
	var s Project
	s.TotalTasks = len(tasks)
	for _, t := range tasks {
		if t.IsCompleted() {
			s.CompletedTasks++
			continue
		}
		if IsOverdue(t, now) {
			s.OverdueTasks++
		}
	}
	if s.TotalTasks > 0 {
		s.Progress = int(math.Round(float64(s.CompletedTasks) / float64(s.TotalTasks) * 100))
	}
	if !endDate.IsZero() {
		d := DaysRemaining(domain.DateOf(now).DaysUntil(endDate))
		s.DaysRemaining = &d
	}
	return s
}

// IsOverdue reports whether t is unfinished and its due day began before now.
// Tasks without a due date are never overdue.
func IsOverdue(t domain.Task, now time.Time) bool {
	if t.IsCompleted() || t.DueDate.IsZero() {
		return false
	}
	return t.DueDate.StartIn(now.Location()).Before(now)
}
