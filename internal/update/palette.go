package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskboard/internal/commands"
	"github.com/sandeepkv93/taskboard/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Project: func(a commands.ProjectArgs) (commands.Result, error) {
			switch a.Action {
			case commands.ProjectNew:
				if _, err := m.board.CreateProject(m.ctx, a.Name); err != nil {
					return commands.Result{}, err
				}
				m.ProjectCursor = 0
				return commands.Result{Message: fmt.Sprintf("created project: %s", a.Name)}, nil
			case commands.ProjectUse:
				idx := m.findProject(a.Name)
				if idx < 0 {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no project matches %s", a.Name)}
				}
				p := m.Snapshot.Projects[idx]
				if err := m.board.SelectProject(m.ctx, p.ID); err != nil {
					return commands.Result{}, err
				}
				m.ProjectCursor = idx
				m.TaskCursor = 0
				return commands.Result{Message: fmt.Sprintf("using project: %s", p.Name)}, nil
			default:
				if !m.Snapshot.HasActive {
					return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "no active project"}
				}
				m.beginDeleteProject()
				return commands.Result{Message: "confirm project deletion"}, nil
			}
		},
		Add: func(a commands.AddArgs) (commands.Result, error) {
			id, err := m.board.AddTask(m.ctx, a.Title, a.Deadline)
			if err != nil {
				return commands.Result{}, err
			}
			if id == "" {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: "task not added"}
			}
			m.TaskCursor = 0
			return commands.Result{Message: fmt.Sprintf("added task %s", id)}, nil
		},
		Edit: func(a commands.TaskArgs) (commands.Result, error) {
			t, ok := m.findTask(a.ID)
			if !ok {
				return commands.Result{}, unknownTask(a.ID)
			}
			m.beginEditTask(t)
			return commands.Result{Message: fmt.Sprintf("editing task %s", t.ID)}, nil
		},
		Toggle: func(a commands.TaskArgs) (commands.Result, error) {
			t, ok := m.findTask(a.ID)
			if !ok {
				return commands.Result{}, unknownTask(a.ID)
			}
			if err := m.board.ToggleTask(m.ctx, t.ID, !t.Completed); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("toggled task %s", t.ID)}, nil
		},
		Remove: func(a commands.TaskArgs) (commands.Result, error) {
			t, ok := m.findTask(a.ID)
			if !ok {
				return commands.Result{}, unknownTask(a.ID)
			}
			if err := m.board.DeleteTask(m.ctx, t.ID); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: fmt.Sprintf("removed task %s", t.ID)}, nil
		},
		CompleteAll: func() (commands.Result, error) {
			if err := m.board.CompleteAll(m.ctx); err != nil {
				return commands.Result{}, err
			}
			return commands.Result{Message: "completed all tasks"}, nil
		},
		Filter: func(a commands.FilterArgs) (commands.Result, error) {
			m.board.SetFilter(m.ctx, a.Mode)
			m.TaskCursor = 0
			return commands.Result{Message: fmt.Sprintf("filter: %s", a.Mode)}, nil
		},
		Reminders: func(a commands.RemindersArgs) (commands.Result, error) {
			if m.reminders == nil {
				return commands.Result{}, &commands.CommandError{Code: commands.ErrCodeHandlerMissing, Message: "reminders are not available"}
			}
			var err error
			if a.On {
				err = m.reminders.Start(m.ctx)
			} else {
				err = m.reminders.Stop(m.ctx)
			}
			if err != nil {
				return commands.Result{}, err
			}
			if a.On {
				return commands.Result{Message: "reminders on"}, nil
			}
			return commands.Result{Message: "reminders off"}, nil
		},
	})
	if err != nil {
		m.LastError = err
		m.Status = StatusBar{Text: err.Error(), IsError: true}
	} else {
		m.Status = StatusBar{Text: res.Message}
	}
	m.refresh()
	return m
}

// findProject matches an id first, then a case-insensitive name.
func (m Model) findProject(ref string) int {
	for i, p := range m.Snapshot.Projects {
		if p.ID == ref {
			return i
		}
	}
	for i, p := range m.Snapshot.Projects {
		if strings.EqualFold(p.Name, ref) {
			return i
		}
	}
	return -1
}

// findTask looks in the active project regardless of the current filter.
func (m Model) findTask(id string) (model.Task, bool) {
	for _, t := range m.Snapshot.Active.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

func unknownTask(id string) error {
	return &commands.CommandError{Code: commands.ErrCodeInvalidArgument, Message: fmt.Sprintf("no task %s in the active project", id)}
}
