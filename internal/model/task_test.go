package model

import (
	"errors"
	"testing"
	"time"
)

func TestTaskValidateSuccess(t *testing.T) {
	task := Task{ID: "task-1", Title: "Ship v1", Deadline: "2026-10-20"}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestTaskValidateRequiresTitleAndDeadline(t *testing.T) {
	task := Task{ID: "task-1", Title: "  ", Deadline: "2026-10-20"}
	if err := task.Validate(); !errors.Is(err, ErrEmptyTitle) {
		t.Fatalf("expected ErrEmptyTitle, got: %v", err)
	}

	task.Title = "Ship v1"
	task.Deadline = ""
	if err := task.Validate(); !errors.Is(err, ErrEmptyDeadline) {
		t.Fatalf("expected ErrEmptyDeadline, got: %v", err)
	}

	task.Deadline = "next tuesday"
	if err := task.Validate(); !errors.Is(err, ErrInvalidDeadline) {
		t.Fatalf("expected ErrInvalidDeadline, got: %v", err)
	}
}

func TestTaskDueAt(t *testing.T) {
	loc := time.FixedZone("test", 2*60*60)
	due, ok := Task{Deadline: "2026-10-20"}.DueAt(loc)
	if !ok {
		t.Fatal("expected deadline to resolve")
	}
	if want := time.Date(2026, 10, 20, 0, 0, 0, 0, loc); !due.Equal(want) {
		t.Fatalf("unexpected due time: got %s want %s", due, want)
	}

	if _, ok := (Task{}).DueAt(loc); ok {
		t.Fatal("expected task without deadline to report false")
	}
}

func TestProjectValidateAndClone(t *testing.T) {
	p := Project{ID: "p1", Name: "", Tasks: []Task{{ID: "t1", Title: "a"}}}
	if err := p.Validate(); !errors.Is(err, ErrEmptyName) {
		t.Fatalf("expected ErrEmptyName, got: %v", err)
	}

	p.Name = "Launch"
	clone := p.Clone()
	clone.Tasks[0].Title = "changed"
	if p.Tasks[0].Title != "a" {
		t.Fatalf("clone shares task storage with original: %q", p.Tasks[0].Title)
	}
	if p.TaskIndex("t1") != 0 || p.TaskIndex("missing") != -1 {
		t.Fatalf("unexpected task index lookup")
	}
}

func TestTaskOverdueAt(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	cases := []struct {
		task Task
		want bool
	}{
		{Task{Deadline: "2026-10-18"}, true},
		{Task{Deadline: "2026-10-18 23:59"}, true},
		{Task{Deadline: "2026-10-19"}, false},
		{Task{Deadline: "2026-10-19 08:00"}, false},
		{Task{Deadline: "2026-10-18", Completed: true}, false},
		{Task{Deadline: "later"}, false},
	}
	for _, tc := range cases {
		if got := tc.task.OverdueAt(now); got != tc.want {
			t.Fatalf("OverdueAt(%+v) = %v, want %v", tc.task, got, tc.want)
		}
	}
}
