package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add    func(AddArgs) (Result, error)
	Done   func(TargetArgs) (Result, error)
	Delete func(TargetArgs) (Result, error)
	Start  func(StartArgs) (Result, error)
	Pause  func() (Result, error)
	Skip   func() (Result, error)
	Timer  func(TimerArgs) (Result, error)
	Focus  func(FocusArgs) (Result, error)
	Note   func(NoteArgs) (Result, error)
	Show   func(ShowArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "add handler not configured"}
		}
		return handlers.Add(*cmd.Add)
	case TypeDone:
		if handlers.Done == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "done handler not configured"}
		}
		return handlers.Done(*cmd.Done)
	case TypeDelete:
		if handlers.Delete == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "del handler not configured"}
		}
		return handlers.Delete(*cmd.Delete)
	case TypeStart:
		if handlers.Start == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "start handler not configured"}
		}
		return handlers.Start(*cmd.Start)
	case TypePause:
		if handlers.Pause == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "pause handler not configured"}
		}
		return handlers.Pause()
	case TypeSkip:
		if handlers.Skip == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "skip handler not configured"}
		}
		return handlers.Skip()
	case TypeTimer:
		if handlers.Timer == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "type handler not configured"}
		}
		return handlers.Timer(*cmd.Timer)
	case TypeFocus:
		if handlers.Focus == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "focus handler not configured"}
		}
		return handlers.Focus(*cmd.Focus)
	case TypeNote:
		if handlers.Note == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "note handler not configured"}
		}
		return handlers.Note(*cmd.Note)
	case TypeShow:
		if handlers.Show == nil {
			return Result{}, &CommandError{Code: ErrCodeHandlerMissing, Message: "show handler not configured"}
		}
		return handlers.Show(*cmd.Show)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}
