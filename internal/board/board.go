// Package board applies user intents to the task store. Every operation is
// one atomic store update, followed by a view refresh and then the
// operation's own notification.
package board

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/notify"
	"github.com/sandeepkv93/taskboard/internal/store"
	"github.com/sandeepkv93/taskboard/internal/tracker"
)

const (
	TitleProjectCreated  = "Project created"
	TitleProjectDeleted  = "Project deleted"
	TitleSelectProject   = "Select a project first"
	TitleTaskAdded       = "Task added"
	TitleTaskCompleted   = "Task completed"
	TitleAllCompleted    = "All tasks completed"
	TitleProgressUpdated = "Project progress updated"
	TitleSaveFailed      = notify.TitleSaveFailed
)

type Option func(*Board)

func WithClock(now func() time.Time) Option {
	return func(b *Board) {
		if now != nil {
			b.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(b *Board) {
		if logger != nil {
			b.logger = logger
		}
	}
}

type Board struct {
	mu      sync.Mutex
	store   *store.Store
	tracker *tracker.Tracker
	sink    notify.Sink
	logger  *log.Logger
	now     func() time.Time
	filter  model.FilterMode
	view    View
}

func New(st *store.Store, sink notify.Sink, opts ...Option) *Board {
	if sink == nil {
		sink = notify.Discard
	}
	b := &Board{
		store:   st,
		tracker: tracker.New(),
		sink:    sink,
		logger:  log.New(io.Discard),
		now:     time.Now,
		filter:  model.FilterAll,
	}
	for _, opt := range opts {
		opt(b)
	}
	// The loaded state is the first refresh: it sets the progress baseline
	// without notifying.
	b.refreshLocked()
	return b
}

// CreateProject adds a project at the front of the list and makes it active.
// It returns the new id, or "" when name is blank.
func (b *Board) CreateProject(ctx context.Context, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	var id string
	err := b.mutate(ctx, func(s *model.AppState) bool {
		id = store.NewID(func(candidate string) bool { return s.ProjectIndex(candidate) >= 0 })
		p := model.Project{ID: id, Name: name, Tasks: []model.Task{}}
		s.Projects = append([]model.Project{p}, s.Projects...)
		s.ActiveProjectID = id
		return true
	})
	b.refreshLocked()
	b.emit(TitleProjectCreated, fmt.Sprintf("%s added", name))
	return id, err
}

// DeleteProject removes a project and its tasks. Confirmation is the caller's
// job. Unknown ids are ignored.
func (b *Board) DeleteProject(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var name string
	removed := false
	err := b.mutate(ctx, func(s *model.AppState) bool {
		idx := s.ProjectIndex(id)
		if idx < 0 {
			return false
		}
		name = s.Projects[idx].Name
		s.Projects = append(s.Projects[:idx], s.Projects[idx+1:]...)
		if s.ActiveProjectID == id {
			s.ActiveProjectID = s.FirstProjectID()
		}
		removed = true
		return true
	})
	if !removed {
		return err
	}
	b.tracker.Forget(id)
	b.refreshLocked()
	b.emit(TitleProjectDeleted, fmt.Sprintf("%s removed", name))
	return err
}

func (b *Board) SelectProject(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.mutate(ctx, func(s *model.AppState) bool {
		if s.ProjectIndex(id) < 0 || s.ActiveProjectID == id {
			return false
		}
		s.ActiveProjectID = id
		return true
	})
	b.refreshLocked()
	return err
}

// AddTask inserts a pending task at the front of the active project. It
// returns the new id, or "" when nothing was added.
func (b *Board) AddTask(ctx context.Context, title, deadline string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.store.ActiveProject(); !ok {
		b.emit(TitleSelectProject, "")
		return "", nil
	}
	title = strings.TrimSpace(title)
	deadline = strings.TrimSpace(deadline)
	if title == "" || deadline == "" {
		return "", nil
	}
	if _, err := model.ParseDeadline(deadline, b.now().Location()); err != nil {
		b.logger.Debug("ignoring task with unparseable deadline", "deadline", deadline, "err", err)
		return "", nil
	}

	var id string
	err := b.mutate(ctx, func(s *model.AppState) bool {
		idx := s.ProjectIndex(s.ActiveProjectID)
		if idx < 0 {
			return false
		}
		id = store.NewID(func(candidate string) bool {
			_, _, taken := s.FindTask(candidate)
			return taken
		})
		t := model.Task{ID: id, Title: title, Deadline: deadline}
		s.Projects[idx].Tasks = append([]model.Task{t}, s.Projects[idx].Tasks...)
		return true
	})
	if id == "" {
		return "", err
	}
	b.refreshLocked()
	b.emit(TitleTaskAdded, fmt.Sprintf("\"%s\" due %s", title, deadline))
	return id, err
}

// EditTask rewrites a task's title and deadline. Cancelling either prompt
// aborts the whole edit; blank or unparseable answers keep the old value.
func (b *Board) EditTask(ctx context.Context, id string, title, deadline Input) error {
	if title.IsCancelled() || deadline.IsCancelled() {
		return nil
	}
	newTitle, _ := title.Value()
	newDeadline, _ := deadline.Value()
	newTitle = strings.TrimSpace(newTitle)
	newDeadline = strings.TrimSpace(newDeadline)
	if newDeadline != "" {
		if _, err := model.ParseDeadline(newDeadline, b.now().Location()); err != nil {
			newDeadline = ""
		}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.mutate(ctx, func(s *model.AppState) bool {
		pi, ti, ok := s.FindTask(id)
		if !ok {
			return false
		}
		t := &s.Projects[pi].Tasks[ti]
		changed := false
		if newTitle != "" && newTitle != t.Title {
			t.Title = newTitle
			changed = true
		}
		if newDeadline != "" && newDeadline != t.Deadline {
			t.Deadline = newDeadline
			changed = true
		}
		return changed
	})
	b.refreshLocked()
	return err
}

func (b *Board) ToggleTask(ctx context.Context, id string, completed bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var title string
	finished := false
	err := b.mutate(ctx, func(s *model.AppState) bool {
		pi, ti, ok := s.FindTask(id)
		if !ok {
			return false
		}
		t := &s.Projects[pi].Tasks[ti]
		if t.Completed == completed {
			return false
		}
		t.Completed = completed
		title = t.Title
		finished = completed
		return true
	})
	b.refreshLocked()
	if finished {
		b.emit(TitleTaskCompleted, fmt.Sprintf("\"%s\" marked done", title))
	}
	return err
}

func (b *Board) DeleteTask(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	err := b.mutate(ctx, func(s *model.AppState) bool {
		pi, ti, ok := s.FindTask(id)
		if !ok {
			return false
		}
		tasks := s.Projects[pi].Tasks
		s.Projects[pi].Tasks = append(tasks[:ti], tasks[ti+1:]...)
		return true
	})
	b.refreshLocked()
	return err
}

// CompleteAll marks every task of the active project done. Without an
// active project it raises the select-a-project notice.
func (b *Board) CompleteAll(ctx context.Context) error {
	active, ok := b.store.ActiveProject()
	if !ok {
		b.mu.Lock()
		defer b.mu.Unlock()
		b.emit(TitleSelectProject, "")
		return nil
	}
	return b.CompleteAllIn(ctx, active.ID)
}

// CompleteAllIn marks every task of the project done. It reports success even
// when the project was already complete or empty. Unknown ids are ignored.
func (b *Board) CompleteAllIn(ctx context.Context, projectID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	var name string
	found := false
	err := b.mutate(ctx, func(s *model.AppState) bool {
		idx := s.ProjectIndex(projectID)
		if idx < 0 {
			return false
		}
		p := &s.Projects[idx]
		for i := range p.Tasks {
			p.Tasks[i].Completed = true
		}
		name = p.Name
		found = true
		return true
	})
	if !found {
		return err
	}
	b.refreshLocked()
	b.emit(TitleAllCompleted, fmt.Sprintf("%s 100%% done", name))
	return err
}

// SetFilter changes the visible task subset. Unknown modes show everything.
func (b *Board) SetFilter(ctx context.Context, mode model.FilterMode) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !mode.IsValid() {
		mode = model.FilterAll
	}
	b.filter = mode
	b.refreshLocked()
}

func (b *Board) Filter() model.FilterMode {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.filter
}

// Refresh recomputes the view from the store, emitting a progress
// notification when the active project's percentage moved.
func (b *Board) Refresh(ctx context.Context) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refreshLocked()
}

func (b *Board) View() View {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.view
}

func (b *Board) refreshLocked() {
	state := b.store.Snapshot()
	if active, ok := state.ActiveProject(); ok {
		if pct, changed := b.tracker.Observe(active); changed {
			b.emit(TitleProgressUpdated, fmt.Sprintf("%s is now %d%% complete", active.Name, pct))
		}
	}
	b.view = buildView(state, b.filter)
}

func (b *Board) mutate(ctx context.Context, fn func(*model.AppState) bool) error {
	_, err := b.store.Update(ctx, fn)
	if err != nil {
		b.logger.Error("save failed", "err", err)
		b.emit(TitleSaveFailed, err.Error())
	}
	return err
}

func (b *Board) emit(title, body string) {
	b.sink.Notify(notify.Notification{Title: title, Body: body, At: b.now()})
}
