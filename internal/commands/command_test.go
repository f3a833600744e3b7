package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/lazybuster/lazybuster/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add pay rent due:2024-03-10", TypeAdd},
		{"done a1b2", TypeDone},
		{"del a1b2", TypeDelete},
		{"start", TypeStart},
		{"pause", TypePause},
		{"skip", TypeSkip},
		{"type short", TypeTimer},
		{"focus 25 5 15", TypeFocus},
		{"note good deep work day mood:great", TypeNote},
		{"show tasks pri:high", TypeShow},
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

func TestParseAddModifiers(t *testing.T) {
	cmd, err := Parse("add file taxes pri:high cat:finance due:2024-04-15 every:monthly")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	add := cmd.Add
	if add.Title != "file taxes" {
		t.Fatalf("title = %q, want %q", add.Title, "file taxes")
	}
	if add.Priority != model.PriorityHigh || add.Category != "finance" || add.Recurring != model.RecurringMonthly {
		t.Fatalf("unexpected modifiers: %+v", add)
	}
	want := time.Date(2024, 4, 15, 0, 0, 0, 0, time.Local)
	if add.Due == nil || !add.Due.Equal(want) {
		t.Fatalf("due = %v, want %v", add.Due, want)
	}
}

func TestParseAddRejectsBadModifiers(t *testing.T) {
	for _, in := range []string{
		"add task pri:urgent",
		"add task due:april",
		"add task every:fortnightly",
		"add pri:high",
	} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseTimerAliases(t *testing.T) {
	cases := map[string]model.TimerType{
		"type pomodoro":   model.TimerPomodoro,
		"type pomo":       model.TimerPomodoro,
		"type shortBreak": model.TimerShortBreak,
		"type long":       model.TimerLongBreak,
	}
	for in, want := range cases {
		cmd, err := Parse(in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", in, err)
		}
		if cmd.Timer.Timer != want {
			t.Fatalf("parse %q timer = %s, want %s", in, cmd.Timer.Timer, want)
		}
	}
}

func TestParseFocusValidatesMinutes(t *testing.T) {
	cmd, err := Parse("focus 50 10 30")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if cmd.Focus.Pomodoro != 50 || cmd.Focus.ShortBreak != 10 || cmd.Focus.LongBreak != 30 {
		t.Fatalf("unexpected focus args: %+v", cmd.Focus)
	}

	for _, in := range []string{"focus 25 5", "focus 25 x 15", "focus 0 5 15"} {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != ErrCodeInvalidArgument {
			t.Fatalf("parse %q: expected invalid argument, got %v", in, err)
		}
	}
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse("/unknown do x")
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeUnknownCommand {
		t.Fatalf("expected unknown command error, got %v", err)
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/done a1b2")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Done: func(a TargetArgs) (Result, error) {
			called = true
			if a.Target != "a1b2" {
				t.Fatalf("unexpected target: %q", a.Target)
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
	cmd, err := Parse("show tasks")
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
