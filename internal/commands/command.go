// Package commands parses the command palette input into typed commands.
package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lazybuster/lazybuster/internal/model"
)

const dueLayout = "2006-01-02"

type Type string

const (
	TypeAdd    Type = "add"
	TypeDone   Type = "done"
	TypeDelete Type = "del"
	TypeStart  Type = "start"
	TypePause  Type = "pause"
	TypeSkip   Type = "skip"
	TypeTimer  Type = "type"
	TypeFocus  Type = "focus"
	TypeNote   Type = "note"
	TypeShow   Type = "show"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// AddArgs carries a new task. Title keeps every word that is not a
// key:value modifier.
type AddArgs struct {
	Title     string
	Priority  model.Priority
	Category  string
	Due       *time.Time
	Recurring model.RecurringType
}

type TargetArgs struct {
	Target string
}

type StartArgs struct {
	Target string
}

type TimerArgs struct {
	Timer model.TimerType
}

type FocusArgs struct {
	Pomodoro   int
	ShortBreak int
	LongBreak  int
}

type NoteArgs struct {
	Text string
	Mood string
}

type ShowArgs struct {
	Subject  string
	Priority model.Priority
}

type Command struct {
	Type   Type
	Raw    string
	Add    *AddArgs
	Done   *TargetArgs
	Delete *TargetArgs
	Start  *StartArgs
	Timer  *TimerArgs
	Focus  *FocusArgs
	Note   *NoteArgs
	Show   *ShowArgs
}

func Parse(input string) (Command, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}
	if strings.HasPrefix(raw, "/") {
		raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	}
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args)
	case TypeDone:
		return parseTarget(input, args, TypeDone, "done")
	case TypeDelete:
		return parseTarget(input, args, TypeDelete, "del")
	case TypeStart:
		target := ""
		if len(args) > 0 {
			target = args[0]
		}
		return Command{Type: TypeStart, Raw: input, Start: &StartArgs{Target: target}}, nil
	case TypePause:
		return Command{Type: TypePause, Raw: input}, nil
	case TypeSkip:
		return Command{Type: TypeSkip, Raw: input}, nil
	case TypeTimer:
		return parseTimer(input, args)
	case TypeFocus:
		return parseFocus(input, args)
	case TypeNote:
		return parseNote(input, args)
	case TypeShow:
		return parseShow(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}

	add := AddArgs{}
	words := make([]string, 0, len(args))
	for _, arg := range args {
		key, value, found := strings.Cut(arg, ":")
		if !found {
			words = append(words, arg)
			continue
		}
		switch strings.ToLower(key) {
		case "pri":
			p := model.Priority(strings.ToLower(value))
			if !p.IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", value)}
			}
			add.Priority = p
		case "cat":
			add.Category = value
		case "due":
			due, err := time.ParseInLocation(dueLayout, value, time.Local)
			if err != nil {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("due date must be %s: %s", dueLayout, value)}
			}
			add.Due = &due
		case "every":
			r := model.RecurringType(strings.ToLower(value))
			if !r.IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown recurrence: %s", value)}
			}
			add.Recurring = r
		default:
			words = append(words, arg)
		}
	}

	add.Title = strings.TrimSpace(strings.Join(words, " "))
	if add.Title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &add}, nil
}

func parseTarget(raw string, args []string, typ Type, verb string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", verb)}
	}
	target := &TargetArgs{Target: args[0]}
	cmd := Command{Type: typ, Raw: raw}
	switch typ {
	case TypeDone:
		cmd.Done = target
	case TypeDelete:
		cmd.Delete = target
	}
	return cmd, nil
}

func parseTimer(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "type requires pomodoro, shortBreak or longBreak"}
	}
	timer, ok := timerAlias(args[0])
	if !ok {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown timer type: %s", args[0])}
	}
	return Command{Type: TypeTimer, Raw: raw, Timer: &TimerArgs{Timer: timer}}, nil
}

func timerAlias(s string) (model.TimerType, bool) {
	switch strings.ToLower(s) {
	case "pomodoro", "pomo":
		return model.TimerPomodoro, true
	case "shortbreak", "short":
		return model.TimerShortBreak, true
	case "longbreak", "long":
		return model.TimerLongBreak, true
	default:
		return "", false
	}
}

func parseFocus(raw string, args []string) (Command, error) {
	if len(args) != 3 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "focus requires pomodoro, short break and long break minutes"}
	}
	values := make([]int, 3)
	for i, arg := range args {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("minutes must be a positive number: %s", arg)}
		}
		values[i] = n
	}
	return Command{Type: TypeFocus, Raw: raw, Focus: &FocusArgs{Pomodoro: values[0], ShortBreak: values[1], LongBreak: values[2]}}, nil
}

func parseNote(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "note requires text"}
	}
	mood := ""
	words := make([]string, 0, len(args))
	for _, arg := range args {
		if strings.HasPrefix(strings.ToLower(arg), "mood:") {
			mood = strings.TrimSpace(arg[len("mood:"):])
			continue
		}
		words = append(words, arg)
	}
	text := strings.TrimSpace(strings.Join(words, " "))
	if text == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "note requires text"}
	}
	return Command{Type: TypeNote, Raw: raw, Note: &NoteArgs{Text: text, Mood: mood}}, nil
}

func parseShow(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "show requires a subject"}
	}
	subject := strings.ToLower(args[0])
	show := ShowArgs{Subject: subject}
	for _, arg := range args[1:] {
		if strings.HasPrefix(strings.ToLower(arg), "pri:") {
			p := model.Priority(strings.ToLower(arg[len("pri:"):]))
			if !p.IsValid() {
				return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown priority: %s", arg)}
			}
			show.Priority = p
		}
	}
	return Command{Type: TypeShow, Raw: raw, Show: &show}, nil
}
