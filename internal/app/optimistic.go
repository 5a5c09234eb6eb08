package app

import "github.com/alexanderramin/planner/internal/domain"

// MoveFailedMessage is the banner shown when a status change is rolled back.
const MoveFailedMessage = "Failed to move task. Status reverted."

// Tentative is a local change applied before the server confirms it,
// paired with the action that undoes it.
type Tentative struct {
	Apply          Action
	Revert         Action
	FailureMessage string
	// Holds reports whether s still shows the applied change. A change
	// overtaken by a later one is not reverted on failure. Nil means always.
	Holds func(s State) bool
}

// Begin applies the change optimistically.
func (t Tentative) Begin(s State) State {
	return Reduce(s, t.Apply)
}

// Settle resolves the change once the remote call returns. On failure the
// change is reverted, unless a later change replaced it, and the banner
// raised; on success s is returned as is.
func (t Tentative) Settle(s State, err error) State {
	if err == nil {
		return s
	}
	if t.Holds != nil && !t.Holds(s) {
		return Reduce(s, ErrorRaised{Message: t.FailureMessage})
	}
	return Reduce(s, Batch{t.Revert, ErrorRaised{Message: t.FailureMessage}})
}

// MoveTask builds the tentative status change for a loaded task. It reports
// false when the task is unknown or already has the target status.
func MoveTask(s State, taskID int64, to domain.TaskStatus) (Tentative, domain.Task, bool) {
	t, ok := Task(s, taskID)
	if !ok || t.Status == to {
		return Tentative{}, domain.Task{}, false
	}
	moved := t
	moved.Status = to
	return Tentative{
		Apply:          TaskStatusSet{TaskID: taskID, Status: to},
		Revert:         TaskStatusSet{TaskID: taskID, Status: t.Status},
		FailureMessage: MoveFailedMessage,
		Holds:          func(s State) bool {
			cur, ok := Task(s, taskID)
			return ok && cur.Status == to
		},
	}, moved, true
}
