package model

import (
	"encoding/json"
	"testing"
)

func TestFlexIDUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  FlexID
	}{
		{name: "string id", input: `{"id":"7"}`, want: "7"},
		{name: "numeric id", input: `{"id":7}`, want: "7"},
		{name: "large numeric id", input: `{"id":9007199254740993}`, want: "9007199254740993"},
		{name: "null id", input: `{"id":null}`, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload struct {
				ID FlexID `json:"id"`
			}
			if err := json.Unmarshal([]byte(tt.input), &payload); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if payload.ID != tt.want {
				t.Errorf("id: got %q, want %q", payload.ID, tt.want)
			}
		})
	}
}

func TestFlexIDEqual(t *testing.T) {
	if !FlexID("7").Equal(FlexID("7")) {
		t.Error("identical ids must match")
	}
	if FlexID("7").Equal(FlexID("8")) {
		t.Error("distinct ids must not match")
	}
	// Absent ids never match anything, including each other.
	if FlexID("").Equal(FlexID("")) {
		t.Error("empty ids must not match")
	}
}

func TestTaskNormalizeStatusSpellings(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"pending", StatusPending},
		{"in_progress", StatusInProgress},
		{"in-progress", StatusInProgress},
		{"completed", StatusCompleted},
		{"Completed", StatusCompleted},
		{"", StatusPending},
		{"cancelled", StatusPending},
	}
	for _, tt := range tests {
		if got := NormalizeStatus(tt.in); got != tt.want {
			t.Errorf("NormalizeStatus(%q): got %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTaskEffectiveProgress(t *testing.T) {
	p := 60
	tests := []struct {
		name string
		task Task
		want int
	}{
		{name: "explicit progress", task: Task{Progress: &p}, want: 60},
		{name: "completed without progress", task: Task{Completed: true}, want: 100},
		{name: "completed status without progress", task: Task{Status: "completed"}, want: 100},
		{name: "pending without progress", task: Task{Status: "pending"}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.task.EffectiveProgress(); got != tt.want {
				t.Errorf("EffectiveProgress: got %d, want %d", got, tt.want)
			}
		})
	}
}
