package commands

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sandeepkv93/taskboard/internal/model"
)

type Type string

const (
	TypeProject     Type = "project"
	TypeAdd         Type = "add"
	TypeEdit        Type = "edit"
	TypeToggle      Type = "toggle"
	TypeRemove      Type = "rm"
	TypeCompleteAll Type = "complete-all"
	TypeFilter      Type = "filter"
	TypeReminders   Type = "reminders"
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

type ProjectAction string

const (
	ProjectNew    ProjectAction = "new"
	ProjectUse    ProjectAction = "use"
	ProjectDelete ProjectAction = "delete"
)

type ProjectArgs struct {
	Action ProjectAction
	// Name is the new project's name for "new" and an id or name for "use".
	Name string
}

type AddArgs struct {
	Deadline string
	Title    string
}

type TaskArgs struct {
	ID string
}

type FilterArgs struct {
	Mode model.FilterMode
}

type RemindersArgs struct {
	On bool
}

type Command struct {
	Type      Type
	Raw       string
	Project   *ProjectArgs
	Add       *AddArgs
	Task      *TaskArgs
	Filter    *FilterArgs
	Reminders *RemindersArgs
}

var clockPattern = regexp.MustCompile(`^\d{1,2}:\d{2}$`)

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
	case TypeProject:
		return parseProject(input, args)
	case TypeAdd:
		return parseAdd(input, args)
	case TypeEdit, TypeToggle, TypeRemove:
		return parseTaskRef(input, Type(head), args)
	case TypeCompleteAll:
		return Command{Type: TypeCompleteAll, Raw: input}, nil
	case TypeFilter:
		return parseFilter(input, args)
	case TypeReminders:
		return parseReminders(input, args)
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseProject(raw string, args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "project requires new, use or delete"}
	}
	action := ProjectAction(strings.ToLower(args[0]))
	name := strings.TrimSpace(strings.Join(args[1:], " "))
	switch action {
	case ProjectNew:
		if name == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "project new requires a name"}
		}
	case ProjectUse:
		if name == "" {
			return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "project use requires an id or name"}
		}
	case ProjectDelete:
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown project action: %s", action)}
	}
	return Command{Type: TypeProject, Raw: raw, Project: &ProjectArgs{Action: action, Name: name}}, nil
}

// parseAdd reads "add <deadline> <title...>". A deadline may carry a time of
// day as a separate HH:MM word.
func parseAdd(raw string, args []string) (Command, error) {
	if len(args) < 2 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a deadline and a title"}
	}
	deadline := args[0]
	rest := args[1:]
	if len(rest) > 1 && clockPattern.MatchString(rest[0]) {
		deadline += " " + rest[0]
		rest = rest[1:]
	}
	title := strings.TrimSpace(strings.Join(rest, " "))
	if title == "" {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "add requires a title"}
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Deadline: deadline, Title: title}}, nil
}

func parseTaskRef(raw string, typ Type, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("%s requires a task id", typ)}
	}
	return Command{Type: typ, Raw: raw, Task: &TaskArgs{ID: args[0]}}, nil
}

func parseFilter(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "filter requires all, completed or pending"}
	}
	mode := model.FilterMode(strings.ToLower(args[0]))
	if !mode.IsValid() {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("unknown filter: %s", args[0])}
	}
	return Command{Type: TypeFilter, Raw: raw, Filter: &FilterArgs{Mode: mode}}, nil
}

func parseReminders(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: "reminders requires on or off"}
	}
	switch strings.ToLower(args[0]) {
	case "on":
		return Command{Type: TypeReminders, Raw: raw, Reminders: &RemindersArgs{On: true}}, nil
	case "off":
		return Command{Type: TypeReminders, Raw: raw, Reminders: &RemindersArgs{On: false}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("reminders expects on or off, got %s", args[0])}
	}
}
