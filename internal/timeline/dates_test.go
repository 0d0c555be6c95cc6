package timeline

import (
	"errors"
	"testing"
	"time"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain date", input: "2025-01-05", want: "2025-01-05"},
		{name: "rfc3339 drops time", input: "2025-01-05T14:30:00Z", want: "2025-01-05"},
		{name: "datetime without zone", input: "2025-01-05T14:30:00", want: "2025-01-05"},
		{name: "malformed", input: "05/01/2025", wantErr: true},
		{name: "garbage", input: "not-a-date", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseDate(%q): expected error, got %v", tt.input, got)
				}
				var parseErr *ParseError
				if !errors.As(err, &parseErr) {
					t.Errorf("error type: got %T, want *ParseError", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseDate(%q) failed: %v", tt.input, err)
			}
			if got.Format("2006-01-02") != tt.want {
				t.Errorf("ParseDate(%q): got %s, want %s", tt.input, got.Format("2006-01-02"), tt.want)
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{name: "same day", a: "2025-01-01", b: "2025-01-01", want: 0},
		{name: "forward", a: "2025-01-01", b: "2025-01-10", want: 9},
		{name: "backward", a: "2025-01-10", b: "2025-01-01", want: -9},
		{name: "across month", a: "2025-01-31", b: "2025-02-02", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(date(tt.a), date(tt.b)); got != tt.want {
				t.Errorf("DaysBetween(%s, %s): got %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSpanDays(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       int
	}{
		{name: "single day", start: "2025-01-01", end: "2025-01-01", want: 1},
		{name: "inclusive", start: "2025-01-01", end: "2025-01-05", want: 5},
		{name: "end before start clamps to one day", start: "2025-01-05", end: "2025-01-01", want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SpanDays(date(tt.start), date(tt.end)); got != tt.want {
				t.Errorf("SpanDays(%s, %s): got %d, want %d", tt.start, tt.end, got, tt.want)
			}
		})
	}
}

func TestDeriveWindow(t *testing.T) {
	ranges := []Range{
		{Start: date("2025-02-01"), End: date("2025-02-10")},
		{Start: date("2025-01-15"), End: date("2025-01-20")},
		{Start: date("2025-03-01"), End: date("2025-03-05")},
	}

	w := DeriveWindow(ranges)
	if !w.Start.Equal(date("2025-01-15")) {
		t.Errorf("window start: got %s, want 2025-01-15", w.Start.Format("2006-01-02"))
	}
	if !w.End.Equal(date("2025-03-05")) {
		t.Errorf("window end: got %s, want 2025-03-05", w.End.Format("2006-01-02"))
	}
}

func TestDeriveWindowEmpty(t *testing.T) {
	w := DeriveWindow(nil)
	if w.TotalDays() != fallbackWindowDays {
		t.Errorf("fallback window days: got %d, want %d", w.TotalDays(), fallbackWindowDays)
	}
	if w.End.Before(w.Start) {
		t.Errorf("fallback window inverted: %v .. %v", w.Start, w.End)
	}
}

func TestWindowTotalDays(t *testing.T) {
	w := Window{Start: date("2025-01-01"), End: date("2025-01-10")}
	if got := w.TotalDays(); got != 10 {
		t.Errorf("TotalDays: got %d, want 10", got)
	}

	// Degenerate window still spans at least one day.
	w = Window{Start: date("2025-01-01"), End: date("2025-01-01")}
	if got := w.TotalDays(); got != 1 {
		t.Errorf("TotalDays degenerate: got %d, want 1", got)
	}
}
