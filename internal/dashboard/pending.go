package dashboard

import (
	"clientportal/internal/model"
)

// PendingToggle records an optimistic task completion applied locally
// before the repository confirms it. The canonical task list is never
// mutated: ApplyCompletion works on a copy, and the snapshot here allows a
// rollback when the server rejects the write.
type PendingToggle struct {
	TaskID   model.FlexID
	previous model.Task
}

// ApplyCompletion returns a copy of tasks with the given task marked
// completed, plus the pending record needed to roll it back. A nil pending
// record means the task was not found and nothing changed.
func ApplyCompletion(tasks []model.Task, taskID model.FlexID) ([]model.Task, *PendingToggle) {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	for i := range out {
		if out[i].ID.Equal(taskID) {
			pt := &PendingToggle{TaskID: taskID, previous: tasks[i]}
			out[i].Completed = true
			out[i].Status = model.StatusCompleted
			full := 100
			out[i].Progress = &full
			return out, pt
		}
	}
	return out, nil
}

// Rollback restores the snapshotted task in a copy of tasks, for when the
// server rejects the completion.
func (pt *PendingToggle) Rollback(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)

	for i := range out {
		if out[i].ID.Equal(pt.TaskID) {
			out[i] = pt.previous
			break
		}
	}
	return out
}
