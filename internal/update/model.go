package update

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/notify"
	"github.com/sandeepkv93/taskboard/internal/reminders"
	"github.com/sandeepkv93/taskboard/internal/views"
)

// maxToasts is how many recent notifications stay on screen, each for at
// most toastTTL.
const (
	maxToasts = 4
	toastTTL  = 4200 * time.Millisecond
)

type Pane = views.Pane

const (
	PaneProjects = views.PaneProjects
	PaneTasks    = views.PaneTasks
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Help string
	Quit string
}

type PromptKind string

const (
	PromptNone         PromptKind = ""
	PromptProjectName  PromptKind = "project_name"
	PromptTaskTitle    PromptKind = "task_title"
	PromptTaskDeadline PromptKind = "task_deadline"
	PromptEditTitle    PromptKind = "edit_title"
	PromptEditDeadline PromptKind = "edit_deadline"
)

// PromptState tracks a multi-step text prompt. Title holds the first answer
// while the deadline step is open.
type PromptState struct {
	Kind   PromptKind
	Label  string
	TaskID string
	Title  board.Input
}

type ConfirmState struct {
	Active    bool
	Question  string
	ProjectID string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Toast struct {
	ID    int
	Title string
	Body  string
	At    time.Time
}

// Deps are the collaborators the TUI drives. Reminders and Notifications
// may be nil.
type Deps struct {
	Context       context.Context
	Board         *board.Board
	Reminders     *reminders.Service
	Notifications <-chan notify.Notification
	Logger        *log.Logger
	Now           func() time.Time
}

type Model struct {
	Focus          Pane
	ProjectCursor  int
	TaskCursor     int
	Prompt         PromptState
	Confirm        ConfirmState
	Palette        CommandPaletteState
	HelpVisible    bool
	Toasts         []Toast
	lastToastID    int
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error
	Snapshot       board.View
	RemindersOn    bool
	ctx            context.Context
	board          *board.Board
	reminders      *reminders.Service
	notifications  <-chan notify.Notification
	logger         *log.Logger
	now            func() time.Time
	promptInput    textinput.Model
	commandInput   textinput.Model
	projectBar     progress.Model
	helpModel      help.Model
	helpViewport   viewport.Model
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

type NotificationMsg struct {
	Notification notify.Notification
}

// ToastExpiredMsg removes the toast with ID once its time on screen is up.
type ToastExpiredMsg struct {
	ID int
}

// ClockTickMsg re-renders so overdue markers follow the wall clock.
type ClockTickMsg struct {
	At time.Time
}

func NewModel(deps Deps) Model {
	m := Model{
		Focus:         PaneProjects,
		Keys:          GlobalKeyMap{Help: "?", Quit: "q"},
		ctx:           deps.Context,
		board:         deps.Board,
		reminders:     deps.Reminders,
		notifications: deps.Notifications,
		logger:        deps.Logger,
		now:           deps.Now,
	}
	if m.ctx == nil {
		m.ctx = context.Background()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.promptInput = textinput.New()
	m.promptInput.Prompt = "> "
	m.promptInput.CharLimit = 256
	m.promptInput.Width = 48

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.projectBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(30))

	m.helpModel = help.New()
	m.helpViewport = viewport.New(72, 14)
	m.helpViewport.SetContent(views.RenderMarkdown(views.HelpSheetMarkdown))
}

// refresh pulls the latest view from the board and clamps cursors.
func (m *Model) refresh() {
	if m.board == nil {
		return
	}
	m.Snapshot = m.board.View()
	m.RemindersOn = m.Snapshot.RemindersOn
	if m.reminders != nil {
		m.RemindersOn = m.reminders.Running()
	}
	m.ProjectCursor = clamp(m.ProjectCursor, len(m.Snapshot.Projects))
	m.TaskCursor = clamp(m.TaskCursor, len(m.Snapshot.Tasks))
}
