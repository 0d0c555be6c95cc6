package model

import "strings"

// Task status values. Upstream payloads use both hyphen and underscore
// spellings for in-progress; NormalizeStatus collapses them.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Task struct {
	ID        FlexID `json:"id"`
	ProjectID FlexID `json:"project_id,omitempty"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Progress  *int   `json:"progress,omitempty"`
	Completed bool   `json:"completed"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// NormalizeStatus maps any accepted spelling onto the canonical enumeration.
// Unknown or empty values become pending.
func NormalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case StatusCompleted:
		return StatusCompleted
	case StatusInProgress, "in-progress":
		return StatusInProgress
	case StatusPending, "":
		return StatusPending
	default:
		return StatusPending
	}
}

// Normalize enforces the task consistency invariants in place:
// canonical status spelling, completed flag kept in sync with status,
// progress clamped to [0,100].
func (t *Task) Normalize() {
	t.Status = NormalizeStatus(t.Status)

	if t.Status == StatusCompleted {
		t.Completed = true
	} else if t.Completed {
		t.Status = StatusCompleted
	}

	if t.Progress != nil {
		if *t.Progress < 0 {
			*t.Progress = 0
		} else if *t.Progress > 100 {
			*t.Progress = 100
		}
	}
}

// EffectiveProgress returns the task's progress, defaulting a missing value
// to 100 for completed tasks and 0 otherwise.
func (t *Task) EffectiveProgress() int {
	if t.Progress != nil {
		return *t.Progress
	}
	if t.Completed || NormalizeStatus(t.Status) == StatusCompleted {
		return 100
	}
	return 0
}
