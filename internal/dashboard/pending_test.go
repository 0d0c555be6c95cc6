package dashboard

import (
	"testing"

	"clientportal/internal/model"
)

func TestApplyCompletion(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Status: model.StatusPending, Progress: pct(20)},
		{ID: "t2", Status: model.StatusInProgress, Progress: pct(60)},
	}

	applied, pending := ApplyCompletion(tasks, "t2")
	if pending == nil {
		t.Fatal("expected a pending record")
	}

	if applied[1].Status != model.StatusCompleted || !applied[1].Completed {
		t.Errorf("toggled task not completed: %+v", applied[1])
	}
	if *applied[1].Progress != 100 {
		t.Errorf("toggled progress: got %d, want 100", *applied[1].Progress)
	}

	// The canonical list stays untouched until the server confirms.
	if tasks[1].Status != model.StatusInProgress || tasks[1].Completed {
		t.Errorf("canonical task mutated: %+v", tasks[1])
	}
}

func TestApplyCompletionUnknownTask(t *testing.T) {
	tasks := []model.Task{{ID: "t1"}}
	applied, pending := ApplyCompletion(tasks, "missing")
	if pending != nil {
		t.Errorf("expected nil pending record, got %+v", pending)
	}
	if len(applied) != 1 || applied[0].ID != "t1" {
		t.Errorf("task list changed: %v", applied)
	}
}

func TestPendingToggleRollback(t *testing.T) {
	tasks := []model.Task{
		{ID: "t1", Status: model.StatusInProgress, Progress: pct(60)},
	}

	applied, pending := ApplyCompletion(tasks, "t1")
	restored := pending.Rollback(applied)

	if restored[0].Status != model.StatusInProgress {
		t.Errorf("status after rollback: got %q, want in_progress", restored[0].Status)
	}
	if restored[0].Completed {
		t.Error("completed flag survived rollback")
	}
	if *restored[0].Progress != 60 {
		t.Errorf("progress after rollback: got %d, want 60", *restored[0].Progress)
	}
}
