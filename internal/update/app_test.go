package update

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sandeepkv93/taskboard/internal/board"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/notify"
	"github.com/sandeepkv93/taskboard/internal/reminders"
	"github.com/sandeepkv93/taskboard/internal/scheduler"
	"github.com/sandeepkv93/taskboard/internal/storage"
	"github.com/sandeepkv93/taskboard/internal/store"
)

var fixedNow = time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

type harness struct {
	store *store.Store
	board *board.Board
	rec   *notify.Recorder
	timer *scheduler.Manual
}

func newHarness(t *testing.T) (Model, harness) {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	st := store.New(storage.Slot{KV: storage.NewMemoryStore(), Key: store.StorageKey}, nil)
	st.Load(context.Background())
	rec := &notify.Recorder{}
	b := board.New(st, rec, board.WithClock(clock))
	timer := scheduler.NewManual(fixedNow)
	svc := reminders.NewService(st, rec, timer, reminders.WithClock(clock))
	m := NewModel(Deps{Board: b, Reminders: svc, Now: clock})
	return m, harness{store: st, board: b, rec: rec, timer: timer}
}

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

func hasTitle(rec *notify.Recorder, title string) bool {
	return len(rec.Titled(title)) > 0
}

func TestNewModelDefaults(t *testing.T) {
	m, _ := newHarness(t)
	if m.Focus != PaneProjects {
		t.Fatalf("expected projects pane focused, got %v", m.Focus)
	}
	if m.Keys.Quit != "q" || m.Keys.Help != "?" {
		t.Fatalf("unexpected key map: %+v", m.Keys)
	}
	if len(m.Snapshot.Projects) != 0 || m.Snapshot.HasActive {
		t.Fatalf("expected empty board, got %+v", m.Snapshot)
	}
}

func TestCreateProjectAndAddTaskThroughPrompts(t *testing.T) {
	m, h := newHarness(t)

	m = press(t, m, "n", "Home", "enter")
	if m.Prompt.Kind != PromptNone {
		t.Fatalf("expected prompt closed, got %q", m.Prompt.Kind)
	}
	if !m.Snapshot.HasActive || m.Snapshot.Active.Name != "Home" {
		t.Fatalf("expected Home active, got %+v", m.Snapshot.Active)
	}
	if !hasTitle(h.rec, board.TitleProjectCreated) {
		t.Fatal("expected project created notification")
	}

	m = press(t, m, "a", "Buy milk", "enter")
	if m.Prompt.Kind != PromptTaskDeadline {
		t.Fatalf("expected deadline prompt, got %q", m.Prompt.Kind)
	}
	m = press(t, m, "2026-10-20", "enter")
	if len(m.Snapshot.Tasks) != 1 {
		t.Fatalf("expected one task, got %d", len(m.Snapshot.Tasks))
	}
	task := m.Snapshot.Tasks[0]
	if task.Title != "Buy milk" || task.Deadline != "2026-10-20" || task.Completed {
		t.Fatalf("unexpected task: %+v", task)
	}
	added := h.rec.Titled(board.TitleTaskAdded)
	if len(added) != 1 || added[0].Body != `"Buy milk" due 2026-10-20` {
		t.Fatalf("unexpected task added notifications: %+v", added)
	}
}

func TestAddTaskWithoutProjectRaisesNotice(t *testing.T) {
	m, h := newHarness(t)
	m = press(t, m, "a")
	if m.Prompt.Kind != PromptNone {
		t.Fatalf("expected no prompt, got %q", m.Prompt.Kind)
	}
	if !hasTitle(h.rec, board.TitleSelectProject) {
		t.Fatal("expected select project notice")
	}
}

func TestPromptKeysDoNotTriggerShortcuts(t *testing.T) {
	m, _ := newHarness(t)
	updated, _ := m.Update(keyMsg("n"))
	m = updated.(Model)
	updated, cmd := m.Update(keyMsg("q"))
	m = updated.(Model)
	if m.Quitting || cmd != nil {
		t.Fatal("expected q to be typed into the prompt")
	}
	if m.promptInput.Value() != "q" {
		t.Fatalf("expected prompt value q, got %q", m.promptInput.Value())
	}
	m = press(t, m, "esc")
	if m.Prompt.Kind != PromptNone || len(m.Snapshot.Projects) != 0 {
		t.Fatal("expected cancelled prompt to create nothing")
	}
}

func seedTask(t *testing.T, m Model, title, deadline string) Model {
	t.Helper()
	if !m.Snapshot.HasActive {
		m = press(t, m, "n", "Home", "enter")
	}
	return press(t, m, "a", title, "enter", deadline, "enter")
}

func TestEditTaskCancelKeepsTask(t *testing.T) {
	m, _ := newHarness(t)
	m = seedTask(t, m, "Buy milk", "2026-10-20")
	m = press(t, m, "tab", "e")
	if m.Prompt.Kind != PromptEditTitle || m.promptInput.Value() != "Buy milk" {
		t.Fatalf("expected edit prompt prefilled, got %q %q", m.Prompt.Kind, m.promptInput.Value())
	}
	m = press(t, m, " oat", "enter", "esc")
	got := m.Snapshot.Tasks[0]
	if got.Title != "Buy milk" {
		t.Fatalf("expected title unchanged after cancel, got %q", got.Title)
	}
}

func TestEditTaskSubmitsBothFields(t *testing.T) {
	m, _ := newHarness(t)
	m = seedTask(t, m, "Buy milk", "2026-10-20")
	m = press(t, m, "tab", "e", " now", "enter")
	if m.Prompt.Kind != PromptEditDeadline || m.promptInput.Value() != "2026-10-20" {
		t.Fatalf("expected deadline prompt prefilled, got %q %q", m.Prompt.Kind, m.promptInput.Value())
	}
	m.promptInput.SetValue("")
	m = press(t, m, "2026-10-21 18:00", "enter")
	got := m.Snapshot.Tasks[0]
	if got.Title != "Buy milk now" || got.Deadline != "2026-10-21 18:00" {
		t.Fatalf("unexpected edited task: %+v", got)
	}
}

func TestToggleAndDeleteTaskFromTasksPane(t *testing.T) {
	m, h := newHarness(t)
	m = seedTask(t, m, "Buy milk", "2026-10-20")
	m = press(t, m, "tab", " ")
	if !m.Snapshot.Tasks[0].Completed {
		t.Fatal("expected task completed")
	}
	if !hasTitle(h.rec, board.TitleTaskCompleted) {
		t.Fatal("expected task completed notification")
	}
	if m.Snapshot.Progress.Pct != 100 {
		t.Fatalf("expected 100%% progress, got %d", m.Snapshot.Progress.Pct)
	}

	m = press(t, m, "x")
	if len(m.Snapshot.Tasks) != 0 {
		t.Fatalf("expected task deleted, got %d", len(m.Snapshot.Tasks))
	}
}

func TestDeleteProjectNeedsConfirmation(t *testing.T) {
	m, h := newHarness(t)
	m = press(t, m, "n", "Home", "enter")

	m = press(t, m, "D")
	if !m.Confirm.Active {
		t.Fatal("expected confirmation prompt")
	}
	m = press(t, m, "n")
	if m.Confirm.Active || len(m.Snapshot.Projects) != 1 {
		t.Fatal("expected project kept after declining")
	}

	m = press(t, m, "D", "y")
	if len(m.Snapshot.Projects) != 0 || m.Snapshot.HasActive {
		t.Fatalf("expected project deleted, got %+v", m.Snapshot.Projects)
	}
	if !hasTitle(h.rec, board.TitleProjectDeleted) {
		t.Fatal("expected project deleted notification")
	}
	if len(h.store.Snapshot().Projects) != 0 {
		t.Fatal("expected deletion persisted")
	}
}

func TestSelectProjectWithEnter(t *testing.T) {
	m, _ := newHarness(t)
	m = press(t, m, "n", "Home", "enter", "n", "Work", "enter")
	if m.Snapshot.Active.Name != "Work" {
		t.Fatalf("expected newest project active, got %q", m.Snapshot.Active.Name)
	}
	m = press(t, m, "j", "enter")
	if m.Snapshot.Active.Name != "Home" {
		t.Fatalf("expected Home active, got %q", m.Snapshot.Active.Name)
	}
}

func TestCompleteAllAndFilterKeys(t *testing.T) {
	m, h := newHarness(t)
	m = seedTask(t, m, "a", "2026-10-20")
	m = seedTask(t, m, "b", "2026-10-21")
	m = press(t, m, "c")
	if m.Snapshot.Progress.Pct != 100 {
		t.Fatalf("expected all done, got %+v", m.Snapshot.Progress)
	}
	if !hasTitle(h.rec, board.TitleAllCompleted) {
		t.Fatal("expected all completed notification")
	}

	m = press(t, m, "f")
	if m.Snapshot.Filter != model.FilterPending || len(m.Snapshot.Tasks) != 0 {
		t.Fatalf("expected pending filter hiding done tasks, got %q %d", m.Snapshot.Filter, len(m.Snapshot.Tasks))
	}
	m = press(t, m, "f", "f")
	if m.Snapshot.Filter != model.FilterAll {
		t.Fatalf("expected filter to cycle back to all, got %q", m.Snapshot.Filter)
	}
}

func TestRemindersKeyToggles(t *testing.T) {
	m, h := newHarness(t)
	m = seedTask(t, m, "Ship v1", "2026-10-18")
	m = press(t, m, "r")
	if !m.RemindersOn || !h.store.RemindersOn() {
		t.Fatal("expected reminders on and persisted")
	}
	h.timer.Advance(reminders.DefaultInterval)
	if !hasTitle(h.rec, reminders.TitleOverdue) {
		t.Fatal("expected overdue reminder after one interval")
	}
	m = press(t, m, "r")
	if m.RemindersOn || h.store.RemindersOn() {
		t.Fatal("expected reminders off")
	}
}

func TestPaletteExecutesBoardCommands(t *testing.T) {
	m, _ := newHarness(t)
	m = press(t, m, "/", "project new Launch", "enter")
	if m.Palette.Active {
		t.Fatal("expected palette closed after execute")
	}
	if m.Status.IsError || !m.Snapshot.HasActive {
		t.Fatalf("unexpected status: %+v", m.Status)
	}

	m = press(t, m, "/", "add 2026-10-20 09:30 Ship v1", "enter")
	if len(m.Snapshot.Tasks) != 1 || m.Snapshot.Tasks[0].Deadline != "2026-10-20 09:30" {
		t.Fatalf("unexpected tasks: %+v", m.Snapshot.Tasks)
	}
	id := m.Snapshot.Tasks[0].ID

	m = press(t, m, "/", "toggle "+id, "enter")
	if !m.Snapshot.Tasks[0].Completed {
		t.Fatal("expected task toggled")
	}

	m = press(t, m, "/", "filter pending", "enter")
	if m.Snapshot.Filter != model.FilterPending {
		t.Fatalf("expected pending filter, got %q", m.Snapshot.Filter)
	}

	m = press(t, m, "/", "rm "+id, "enter")
	if len(m.Snapshot.Active.Tasks) != 0 {
		t.Fatal("expected task removed")
	}
}

func TestPaletteReportsErrors(t *testing.T) {
	m, _ := newHarness(t)
	m = press(t, m, "/", "launch rockets", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "unknown_command") {
		t.Fatalf("expected unknown command error, got %+v", m.Status)
	}
	m = press(t, m, "/", "toggle nope", "enter")
	if !m.Status.IsError || !strings.Contains(m.Status.Text, "invalid_argument") {
		t.Fatalf("expected invalid argument error, got %+v", m.Status)
	}
}

func TestNotificationMsgKeepsRecentToasts(t *testing.T) {
	m, _ := newHarness(t)
	for i := 0; i < maxToasts+2; i++ {
		updated, cmd := m.Update(NotificationMsg{Notification: notify.Notification{Title: "n", Body: string(rune('a' + i)), At: fixedNow}})
		m = updated.(Model)
		if cmd == nil {
			t.Fatal("expected an expiry to be scheduled")
		}
	}
	if len(m.Toasts) != maxToasts {
		t.Fatalf("expected %d toasts, got %d", maxToasts, len(m.Toasts))
	}
	if m.Toasts[0].Body != "c" {
		t.Fatalf("expected oldest toasts dropped, got %q", m.Toasts[0].Body)
	}
}

func TestToastExpires(t *testing.T) {
	m, _ := newHarness(t)
	for _, body := range []string{"first", "second"} {
		updated, _ := m.Update(NotificationMsg{Notification: notify.Notification{Title: "n", Body: body, At: fixedNow}})
		m = updated.(Model)
	}
	if len(m.Toasts) != 2 {
		t.Fatalf("expected two toasts, got %d", len(m.Toasts))
	}

	updated, cmd := m.Update(ToastExpiredMsg{ID: m.Toasts[0].ID})
	m = updated.(Model)
	if cmd != nil {
		t.Fatal("expected no follow-up command")
	}
	if len(m.Toasts) != 1 || m.Toasts[0].Body != "second" {
		t.Fatalf("expected only the newer toast left, got %+v", m.Toasts)
	}

	updated, _ = m.Update(ToastExpiredMsg{ID: 999})
	m = updated.(Model)
	if len(m.Toasts) != 1 {
		t.Fatalf("unknown toast id must be ignored, got %+v", m.Toasts)
	}
}

func TestWaitForNotificationCmd(t *testing.T) {
	if waitForNotificationCmd(nil) != nil {
		t.Fatal("expected nil cmd for nil channel")
	}
	q := notify.NewQueue(1)
	q.Notify(notify.Notification{Title: "Task added"})
	msg := waitForNotificationCmd(q.C())()
	got, ok := msg.(NotificationMsg)
	if !ok || got.Notification.Title != "Task added" {
		t.Fatalf("unexpected msg: %#v", msg)
	}
}

func TestUpdateStatusAndError(t *testing.T) {
	m, _ := newHarness(t)
	updated, _ := m.Update(SetStatusMsg{Text: "ready", IsError: false})
	next := updated.(Model)
	if next.Status.Text != "ready" || next.Status.IsError {
		t.Fatalf("unexpected status: %+v", next.Status)
	}

	updated, _ = next.Update(AppErrorMsg{Err: errors.New("boom")})
	next = updated.(Model)
	if next.LastError == nil || next.LastError.Error() != "boom" {
		t.Fatalf("expected last error boom, got: %v", next.LastError)
	}
	if !next.Status.IsError || next.Status.Text != "boom" {
		t.Fatalf("unexpected error status: %+v", next.Status)
	}

	updated, _ = next.Update(ClearStatusMsg{})
	next = updated.(Model)
	if next.Status.Text != "" || next.Status.IsError {
		t.Fatalf("expected cleared status, got: %+v", next.Status)
	}
}

func TestViewMarksOverdueTasks(t *testing.T) {
	m, _ := newHarness(t)
	m = seedTask(t, m, "Ship v1", "2026-10-18")
	m = seedTask(t, m, "Later", "2026-10-25")
	out := m.View()
	if !strings.Contains(out, "project: Home") {
		t.Fatalf("expected header with project, got:\n%s", out)
	}
	if strings.Count(out, "(overdue)") != 1 {
		t.Fatalf("expected exactly one overdue marker, got:\n%s", out)
	}
}

func TestHelpAndQuitKeys(t *testing.T) {
	m, _ := newHarness(t)
	m = press(t, m, "?")
	if !m.HelpVisible {
		t.Fatal("expected help visible")
	}
	if !strings.Contains(m.View(), "help:") {
		t.Fatal("expected help panel in view")
	}
	updated, cmd := m.Update(keyMsg("q"))
	if !updated.(Model).Quitting || cmd == nil {
		t.Fatal("expected quit")
	}
}
