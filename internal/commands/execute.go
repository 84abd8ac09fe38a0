package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Project     func(ProjectArgs) (Result, error)
	Add         func(AddArgs) (Result, error)
	Edit        func(TaskArgs) (Result, error)
	Toggle      func(TaskArgs) (Result, error)
	Remove      func(TaskArgs) (Result, error)
	CompleteAll func() (Result, error)
	Filter      func(FilterArgs) (Result, error)
	Reminders   func(RemindersArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeProject:
		if handlers.Project == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Project(*cmd.Project)
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypeEdit:
		if handlers.Edit == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Edit(*cmd.Task)
	case TypeToggle:
		if handlers.Toggle == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Toggle(*cmd.Task)
	case TypeRemove:
		if handlers.Remove == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Remove(*cmd.Task)
	case TypeCompleteAll:
		if handlers.CompleteAll == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.CompleteAll()
	case TypeFilter:
		if handlers.Filter == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Filter(*cmd.Filter)
	case TypeReminders:
		if handlers.Reminders == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Reminders(*cmd.Reminders)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
