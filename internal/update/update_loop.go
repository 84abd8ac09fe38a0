package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/notify"
	"github.com/sandeepkv93/taskboard/internal/views"
)

const clockInterval = time.Minute

func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForNotificationCmd(m.notifications), clockTickCmd())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		if typed.String() == "ctrl+c" {
			m.Quitting = true
			return m, tea.Quit
		}
		if m.Prompt.Kind != PromptNone {
			return m.handlePromptKey(typed), nil
		}
		if m.Confirm.Active {
			return m.handleConfirmKey(typed), nil
		}
		if m.Palette.Active {
			return m.handlePaletteKey(typed), nil
		}
		return m.handleKey(typed)
	case NotificationMsg:
		id := m.pushToast(typed.Notification)
		m.refresh()
		return m, tea.Batch(waitForNotificationCmd(m.notifications), expireToastCmd(id))
	case ToastExpiredMsg:
		m.dropToast(typed.ID)
		return m, nil
	case ClockTickMsg:
		m.refresh()
		return m, clockTickCmd()
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		return m, nil
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case "tab":
		if m.Focus == PaneProjects {
			m.Focus = PaneTasks
		} else {
			m.Focus = PaneProjects
		}
		return m, nil
	case "j", "down":
		m.moveCursor(1)
		return m, nil
	case "k", "up":
		m.moveCursor(-1)
		return m, nil
	case "enter":
		if m.Focus == PaneProjects {
			m.selectProjectAtCursor()
		} else {
			m.toggleTaskAtCursor()
		}
		return m, nil
	case " ":
		if m.Focus == PaneTasks {
			m.toggleTaskAtCursor()
		}
		return m, nil
	case "n":
		m.openPrompt(PromptProjectName, "New project name", "")
		return m, nil
	case "a":
		m.beginAddTask()
		return m, nil
	case "e":
		if t, ok := m.taskAtCursor(); ok {
			m.beginEditTask(t)
		}
		return m, nil
	case "x":
		if t, ok := m.taskAtCursor(); ok {
			m.fail(m.board.DeleteTask(m.ctx, t.ID))
			m.refresh()
		}
		return m, nil
	case "D":
		m.beginDeleteProject()
		return m, nil
	case "c":
		m.fail(m.board.CompleteAll(m.ctx))
		m.refresh()
		return m, nil
	case "f":
		m.board.SetFilter(m.ctx, nextFilter(m.board.Filter()))
		m.refresh()
		m.Status = StatusBar{Text: fmt.Sprintf("filter: %s", m.board.Filter())}
		return m, nil
	case "r":
		if m.reminders != nil {
			m.fail(m.reminders.Toggle(m.ctx))
			m.refresh()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) moveCursor(delta int) {
	if m.Focus == PaneProjects {
		m.ProjectCursor = clamp(m.ProjectCursor+delta, len(m.Snapshot.Projects))
		return
	}
	m.TaskCursor = clamp(m.TaskCursor+delta, len(m.Snapshot.Tasks))
}

func (m *Model) selectProjectAtCursor() {
	if len(m.Snapshot.Projects) == 0 {
		return
	}
	p := m.Snapshot.Projects[m.ProjectCursor]
	m.fail(m.board.SelectProject(m.ctx, p.ID))
	m.TaskCursor = 0
	m.refresh()
}

func (m Model) taskAtCursor() (model.Task, bool) {
	if m.TaskCursor < 0 || m.TaskCursor >= len(m.Snapshot.Tasks) {
		return model.Task{}, false
	}
	return m.Snapshot.Tasks[m.TaskCursor], true
}

func (m *Model) toggleTaskAtCursor() {
	t, ok := m.taskAtCursor()
	if !ok {
		return
	}
	m.fail(m.board.ToggleTask(m.ctx, t.ID, !t.Completed))
	m.refresh()
}

func (m *Model) beginAddTask() {
	if !m.Snapshot.HasActive {
		// The board raises the "select a project" notice itself.
		_, err := m.board.AddTask(m.ctx, "", "")
		m.fail(err)
		return
	}
	m.openPrompt(PromptTaskTitle, "Task title", "")
}

func (m *Model) beginEditTask(t model.Task) {
	m.openPrompt(PromptEditTitle, "Task title", t.Title)
	m.Prompt.TaskID = t.ID
}

func (m *Model) beginDeleteProject() {
	if !m.Snapshot.HasActive {
		return
	}
	m.Confirm = ConfirmState{
		Active:    true,
		Question:  fmt.Sprintf("Delete project %q and all of its tasks?", m.Snapshot.Active.Name),
		ProjectID: m.Snapshot.Active.ID,
	}
}

func (m *Model) openPrompt(kind PromptKind, label, initial string) {
	m.Prompt = PromptState{Kind: kind, Label: label}
	m.promptInput.SetValue(initial)
	m.promptInput.CursorEnd()
	m.promptInput.Focus()
}

func (m *Model) closePrompt() {
	m.Prompt = PromptState{}
	m.promptInput.SetValue("")
	m.promptInput.Blur()
}

func (m Model) handlePromptKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.cancelPrompt()
		return m
	case "enter":
		m.submitPrompt(m.promptInput.Value())
		return m
	}
	if msg.Type == tea.KeyRunes {
		m.promptInput.SetValue(m.promptInput.Value() + string(msg.Runes))
		return m
	}
	m.promptInput, _ = m.promptInput.Update(msg)
	return m
}

func (m *Model) cancelPrompt() {
	p := m.Prompt
	m.closePrompt()
	switch p.Kind {
	case PromptEditTitle:
		m.fail(m.board.EditTask(m.ctx, p.TaskID, board.Cancelled(), board.Cancelled()))
	case PromptEditDeadline:
		m.fail(m.board.EditTask(m.ctx, p.TaskID, p.Title, board.Cancelled()))
	}
	m.refresh()
}

func (m *Model) submitPrompt(value string) {
	p := m.Prompt
	switch p.Kind {
	case PromptProjectName:
		m.closePrompt()
		id, err := m.board.CreateProject(m.ctx, value)
		m.fail(err)
		if id != "" {
			m.ProjectCursor = 0
			m.TaskCursor = 0
		}
	case PromptTaskTitle:
		if strings.TrimSpace(value) == "" {
			m.closePrompt()
			return
		}
		title := value
		m.openPrompt(PromptTaskDeadline, "Deadline (YYYY-MM-DD or YYYY-MM-DD HH:MM)", "")
		m.Prompt.Title = board.Submitted(title)
	case PromptTaskDeadline:
		m.closePrompt()
		title, _ := p.Title.Value()
		id, err := m.board.AddTask(m.ctx, title, value)
		m.fail(err)
		if id != "" {
			m.TaskCursor = 0
		}
	case PromptEditTitle:
		deadline := ""
		for _, t := range m.Snapshot.Tasks {
			if t.ID == p.TaskID {
				deadline = t.Deadline
			}
		}
		m.openPrompt(PromptEditDeadline, "Deadline", deadline)
		m.Prompt.TaskID = p.TaskID
		m.Prompt.Title = board.Submitted(value)
	case PromptEditDeadline:
		m.closePrompt()
		m.fail(m.board.EditTask(m.ctx, p.TaskID, p.Title, board.Submitted(value)))
	}
	m.refresh()
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y":
		id := m.Confirm.ProjectID
		m.Confirm = ConfirmState{}
		m.fail(m.board.DeleteProject(m.ctx, id))
		m.ProjectCursor = 0
		m.TaskCursor = 0
		m.refresh()
	case "n", "N", "esc":
		m.Confirm = ConfirmState{}
	}
	return m
}

func (m *Model) pushToast(n notify.Notification) int {
	m.lastToastID++
	m.Toasts = append(m.Toasts, Toast{ID: m.lastToastID, Title: n.Title, Body: n.Body, At: n.At})
	if len(m.Toasts) > maxToasts {
		m.Toasts = m.Toasts[len(m.Toasts)-maxToasts:]
	}
	return m.lastToastID
}

func (m *Model) dropToast(id int) {
	kept := make([]Toast, 0, len(m.Toasts))
	for _, t := range m.Toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	m.Toasts = kept
}

// fail records a board error on the status line. The board has already
// raised a notification for it.
func (m *Model) fail(err error) {
	if err == nil {
		return
	}
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.Warn("operation failed", "err", err)
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		status = fmt.Sprintf("status: %s", m.Status.Text)
	}
	overlay := ""
	switch {
	case m.Prompt.Kind != PromptNone:
		overlay = views.RenderPrompt(views.PromptData{Label: m.Prompt.Label, InputView: m.promptInput.View()})
	case m.Confirm.Active:
		overlay = views.RenderConfirm(m.Confirm.Question)
	case m.Palette.Active:
		overlay = views.RenderCommandPalette(true, m.commandInput.View())
	case m.HelpVisible:
		overlay = m.renderHelpView()
	}

	reminderState := "off"
	if m.RemindersOn {
		reminderState = "on"
	}
	project := "-"
	if m.Snapshot.HasActive {
		project = m.Snapshot.Active.Name
	}

	return views.RenderApp(views.AppData{
		Header:     fmt.Sprintf("taskboard | project: %s | filter: %s | reminders: %s", project, m.Snapshot.Filter, reminderState),
		LeftPane:   m.renderProjectsPanel(),
		RightPane:  m.renderTasksPanel(),
		Overlay:    overlay,
		StatusLine: status,
		StatusErr:  m.Status.IsError,
		Toasts:     m.renderToasts(),
		Footer:     fmt.Sprintf("keys: tab pane | n project | a add | e edit | x rm | D del project | c all | f filter | r reminders | / cmd | %s help | %s quit", m.Keys.Help, m.Keys.Quit),
	}, m.Focus)
}

func waitForNotificationCmd(ch <-chan notify.Notification) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		n, ok := <-ch
		if !ok {
			return nil
		}
		return NotificationMsg{Notification: n}
	}
}

func expireToastCmd(id int) tea.Cmd {
	return tea.Tick(toastTTL, func(time.Time) tea.Msg { return ToastExpiredMsg{ID: id} })
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(clockInterval, func(t time.Time) tea.Msg { return ClockTickMsg{At: t} })
}
