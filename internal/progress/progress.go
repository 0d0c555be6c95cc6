package progress

import (
	"math"

	"clientportal/internal/model"
)

// Aggregate computes a project's completion percentage as the rounded mean
// of its tasks' progress. Tasks without an explicit progress count as 100
// when completed and 0 otherwise. An empty task list is 0 percent.
func Aggregate(tasks []model.Task) int {
	if len(tasks) == 0 {
		return 0
	}

	sum := 0
	for i := range tasks {
		sum += tasks[i].EffectiveProgress()
	}

	return Clamp(int(math.Round(float64(sum) / float64(len(tasks)))))
}

// ProjectProgress returns the progress figure for a project. When
// trustServer is set and the project carries a stored value, that value is
// authoritative; otherwise the figure is recomputed from the tasks. Call
// sites that toggle tasks optimistically recompute, call sites rendering
// the server's rollup trust it.
func ProjectProgress(p *model.Project, trustServer bool) int {
	if trustServer && p.Progress != nil {
		return Clamp(*p.Progress)
	}
	return Aggregate(p.Tasks)
}

// Clamp bounds a percentage to [0,100].
func Clamp(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// NormalizeTasks enforces the task consistency invariants across a list,
// in place, and returns it for convenience.
func NormalizeTasks(tasks []model.Task) []model.Task {
	for i := range tasks {
		tasks[i].Normalize()
	}
	return tasks
}
