package commands

import (
	"errors"
	"testing"

	"github.com/sandeepkv93/taskboard/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/project new Home", TypeProject},
		{"project use Home", TypeProject},
		{"project delete", TypeProject},
		{"/add 2026-10-20 buy milk", TypeAdd},
		{"edit a1b2c3d4", TypeEdit},
		{"toggle a1b2c3d4", TypeToggle},
		{"rm a1b2c3d4", TypeRemove},
		{"/complete-all", TypeCompleteAll},
		{"filter pending", TypeFilter},
		{"reminders on", TypeReminders},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseAddDeadlineAndTitle(t *testing.T) {
	cmd, err := Parse("add 2026-10-20 buy oat milk")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Deadline != "2026-10-20" || cmd.Add.Title != "buy oat milk" {
		t.Fatalf("unexpected add args: %+v", cmd.Add)
	}

	cmd, err = Parse("add 2026-10-20 17:30 call bank")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Deadline != "2026-10-20 17:30" || cmd.Add.Title != "call bank" {
		t.Fatalf("expected time of day folded into deadline, got %+v", cmd.Add)
	}

	cmd, err = Parse("add 2026-10-20 9:00")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Add.Title != "9:00" {
		t.Fatalf("a lone clock word is the title, got %+v", cmd.Add)
	}
}

func TestParseProjectArgs(t *testing.T) {
	cmd, err := Parse("project new  Side   Quest ")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Project.Action != ProjectNew || cmd.Project.Name != "Side Quest" {
		t.Fatalf("unexpected project args: %+v", cmd.Project)
	}
}

func TestParseFilterAndReminders(t *testing.T) {
	cmd, err := Parse("filter COMPLETED")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Filter.Mode != model.FilterCompleted {
		t.Fatalf("unexpected filter: %+v", cmd.Filter)
	}
	cmd, err = Parse("reminders off")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Reminders.On {
		t.Fatal("expected reminders off")
	}
}

func TestParseInvalidArguments(t *testing.T) {
	for _, in := range []string{
		"project",
		"project new",
		"project rename x",
		"add 2026-10-20",
		"edit",
		"toggle a b",
		"filter someday",
		"reminders maybe",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseEmptyAndUnknown(t *testing.T) {
	var ce *CommandError
	if _, err := Parse("  / "); !errors.As(err, &ce) || ce.Code != ErrCodeEmptyInput {
		t.Fatalf("expected empty input error, got %v", err)
	}
	if _, err := Parse("/unknown do x"); !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/toggle a1b2c3d4")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Toggle: func(a TaskArgs) (Result, error) {
			called = true
			if a.ID != "a1b2c3d4" {
				t.Fatalf("unexpected id: %q", a.ID)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("complete-all")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
