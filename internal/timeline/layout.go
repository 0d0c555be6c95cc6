package timeline

import (
	"time"

	"clientportal/internal/model"
)

// Row positions one task bar on the gantt chart. Percentages are relative
// to the window width.
type Row struct {
	Task         model.Task `json:"task"`
	LeftPercent  float64    `json:"left_percent"`
	WidthPercent float64    `json:"width_percent"`
}

// Layout maps tasks onto normalized horizontal bar positions. Rows keep the
// input order: row order conveys the workflow sequence chosen by the
// project owner, not chronology.
//
// A nil window is derived from the tasks that carry dates. Tasks with no
// dates at all are omitted (they cannot be positioned); tasks with
// malformed dates are treated the same way rather than failing the layout.
// A task entirely outside the window collapses to zero width at the
// nearest boundary so its row still renders.
func Layout(tasks []model.Task, window *Window) []Row {
	ranges := make([]Range, 0, len(tasks))
	parsed := make([]*Range, len(tasks))

	for i, t := range tasks {
		r, ok := taskRange(t)
		if !ok {
			continue
		}
		parsed[i] = &r
		ranges = append(ranges, r)
	}

	w := Window{}
	if window != nil {
		w = *window
	} else {
		if len(ranges) == 0 {
			return nil
		}
		w = DeriveWindow(ranges)
	}

	total := w.TotalDays()
	rows := make([]Row, 0, len(ranges))

	for i, t := range tasks {
		r := parsed[i]
		if r == nil {
			continue
		}
		rows = append(rows, positionRow(t, *r, w, total))
	}

	return rows
}

// taskRange parses a task's dates. A single present date yields a one-day
// range; no parseable dates means the task cannot be positioned.
func taskRange(t model.Task) (Range, bool) {
	var start, end time.Time
	var haveStart, haveEnd bool

	if t.StartDate != "" {
		if d, err := ParseDate(t.StartDate); err == nil {
			start, haveStart = d, true
		}
	}
	if t.EndDate != "" {
		if d, err := ParseDate(t.EndDate); err == nil {
			end, haveEnd = d, true
		}
	}

	switch {
	case haveStart && haveEnd:
		return Range{Start: start, End: end}, true
	case haveStart:
		return Range{Start: start, End: start}, true
	case haveEnd:
		return Range{Start: end, End: end}, true
	default:
		return Range{}, false
	}
}

func positionRow(t model.Task, r Range, w Window, total int) Row {
	// Entirely outside the window: zero width at the nearest boundary.
	if r.End.Before(w.Start) {
		return Row{Task: t, LeftPercent: 0, WidthPercent: 0}
	}
	if r.Start.After(w.End) {
		return Row{Task: t, LeftPercent: 100, WidthPercent: 0}
	}

	start := clampDate(r.Start, w)
	end := clampDate(r.End, w)

	offset := DaysBetween(w.Start, start)
	if offset < 0 {
		offset = 0
	}
	duration := SpanDays(start, end)

	left := float64(offset) / float64(total) * 100
	width := float64(duration) / float64(total) * 100
	if left+width > 100 {
		width = 100 - left
	}

	return Row{Task: t, LeftPercent: left, WidthPercent: width}
}

func clampDate(d time.Time, w Window) time.Time {
	if d.Before(w.Start) {
		return w.Start
	}
	if d.After(w.End) {
		return w.End
	}
	return d
}
