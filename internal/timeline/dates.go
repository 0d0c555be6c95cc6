package timeline

import (
	"fmt"
	"time"
)

// fallbackWindowDays is the span used when no task carries dates; the
// dashboard always needs a non-empty window to render.
const fallbackWindowDays = 30

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// ParseError signals a date string that is present but malformed.
// Missing dates are not errors; they are insufficient data.
type ParseError struct {
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("unparseable date %q: %v", e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ParseDate parses a calendar date string at day granularity. Time-of-day
// components are accepted and discarded.
func ParseDate(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return truncateToDay(t), nil
		}
		lastErr = err
	}
	return time.Time{}, &ParseError{Value: value, Err: lastErr}
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from a to b at day
// granularity. Negative when b precedes a.
func DaysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}

// SpanDays returns the inclusive duration in whole days between start and
// end, with a floor of one day. An end before start clamps to one day
// rather than failing.
func SpanDays(start, end time.Time) int {
	span := DaysBetween(start, end) + 1
	if span < 1 {
		return 1
	}
	return span
}

// Range is a task's date interval.
type Range struct {
	Start time.Time
	End   time.Time
}

// Window is the visible date span of the gantt chart.
type Window struct {
	Start time.Time
	End   time.Time
}

// TotalDays returns the inclusive day count of the window, never below one.
func (w Window) TotalDays() int {
	return SpanDays(w.Start, w.End)
}

// DeriveWindow returns the minimum start and maximum end across all ranges.
// With no ranges it falls back to a window opening today, so every render
// has a usable span.
func DeriveWindow(ranges []Range) Window {
	if len(ranges) == 0 {
		today := truncateToDay(time.Now())
		return Window{Start: today, End: today.AddDate(0, 0, fallbackWindowDays-1)}
	}

	w := Window{Start: ranges[0].Start, End: ranges[0].End}
	for _, r := range ranges[1:] {
		if r.Start.Before(w.Start) {
			w.Start = r.Start
		}
		if r.End.After(w.End) {
			w.End = r.End
		}
	}
	return w
}
