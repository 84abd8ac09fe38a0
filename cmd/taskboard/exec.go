package main

import (
	"fmt"
	"strings"

	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/commands"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/spf13/cobra"
)

// editFlags carry the answers an interactive edit would prompt for. An unset
// flag keeps the current value.
type editFlags struct {
	title    string
	deadline string
}

// runLine parses words with the palette grammar and executes it against a.
func runLine(cmd *cobra.Command, a *app, edit editFlags, words ...string) error {
	parsed, err := commands.Parse(strings.Join(words, " "))
	if err != nil {
		return err
	}
	res, err := commands.Execute(parsed, cliHandlers(cmd, a, edit))
	if err != nil {
		return err
	}
	if res.Message != "" {
		a.logger.Debug(res.Message)
	}
	return nil
}

func cliHandlers(cmd *cobra.Command, a *app, edit editFlags) commands.Handlers {
	ctx := cmd.Context()
	return commands.Handlers{
		Project: func(p commands.ProjectArgs) (commands.Result, error) {
			switch p.Action {
			case commands.ProjectNew:
				id, err := a.board.CreateProject(ctx, p.Name)
				if err != nil {
					return commands.Result{}, err
				}
				fmt.Fprintln(cmd.OutOrStdout(), id)
				return commands.Result{Message: "project created"}, nil
			case commands.ProjectUse:
				proj, ok := resolveProject(a.store.Snapshot(), p.Name)
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no project matches %s", p.Name)}
				}
				return commands.Result{Message: "project selected"}, a.board.SelectProject(ctx, proj.ID)
			default:
				proj, ok := a.store.ActiveProject()
				if !ok {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no active project"}
				}
				return commands.Result{Message: "project deleted"}, a.board.DeleteProject(ctx, proj.ID)
			}
		},
		Add: func(t commands.AddArgs) (commands.Result, error) {
			id, err := a.board.AddTask(ctx, t.Title, t.Deadline)
			if err != nil {
				return commands.Result{}, err
			}
			if id == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task not added, deadlines look like 2026-10-20 or 2026-10-20 18:00"}
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return commands.Result{Message: "task added"}, nil
		},
		Edit: func(t commands.TaskArgs) (commands.Result, error) {
			if _, ok := findTask(a, t.ID); !ok {
				return commands.Result{}, unknownTask(t.ID)
			}
			err := a.board.EditTask(ctx, t.ID, board.Submitted(edit.title), board.Submitted(edit.deadline))
			return commands.Result{Message: "task edited"}, err
		},
		Toggle: func(t commands.TaskArgs) (commands.Result, error) {
			task, ok := findTask(a, t.ID)
			if !ok {
				return commands.Result{}, unknownTask(t.ID)
			}
			return commands.Result{Message: "task toggled"}, a.board.ToggleTask(ctx, t.ID, !task.Completed)
		},
		Remove: func(t commands.TaskArgs) (commands.Result, error) {
			if _, ok := findTask(a, t.ID); !ok {
				return commands.Result{}, unknownTask(t.ID)
			}
			return commands.Result{Message: "task removed"}, a.board.DeleteTask(ctx, t.ID)
		},
		CompleteAll: func() (commands.Result, error) {
			return commands.Result{Message: "tasks completed"}, a.board.CompleteAll(ctx)
		},
		Reminders: func(r commands.RemindersArgs) (commands.Result, error) {
			if !r.On {
				// No scan runs in a one-shot command; only the saved flag is left.
				return commands.Result{Message: "reminders off"}, a.reminders.ClearFlag(ctx)
			}
			// Start persists the flag; the scan itself runs in the TUI or
			// "reminders run".
			err := a.reminders.Start(ctx)
			a.reminders.Shutdown()
			return commands.Result{Message: "reminders on"}, err
		},
	}
}

// resolveProject matches an id first, then a case-insensitive name.
func resolveProject(state model.AppState, ref string) (model.Project, bool) {
	if idx := state.ProjectIndex(ref); idx >= 0 {
		return state.Projects[idx], true
	}
	for _, p := range state.Projects {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return model.Project{}, false
}

func findTask(a *app, id string) (model.Task, bool) {
	state := a.store.Snapshot()
	pi, ti, ok := state.FindTask(id)
	if !ok {
		return model.Task{}, false
	}
	return state.Projects[pi].Tasks[ti], true
}

func unknownTask(id string) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task %s", id)}
}
