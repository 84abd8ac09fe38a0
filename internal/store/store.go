// Package store owns the canonical AppState and hands it to a persistence
// collaborator after every change.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskboard/internal/model"
)

// StorageKey names the persisted record. An incompatible shape gets a new key
// under StorageKeyPrefix.
const (
	StorageKeyPrefix = "taskmgr:"
	StorageKey       = StorageKeyPrefix + "v1"
)

var ErrNoPersister = errors.New("store: no persister configured")

// Persister reads and writes the serialized AppState. Read returns empty
// content when nothing has been stored yet.
type Persister interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, data []byte) error
}

type Store struct {
	mu        sync.Mutex
	state     model.AppState
	persister Persister
	logger    *log.Logger
}

func New(persister Persister, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Store{
		state:     model.DefaultState(),
		persister: persister,
		logger:    logger,
	}
}

// Load replaces the in-memory state with the persisted one. Missing, empty or
// malformed content yields the default state; Load never fails.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.readState(ctx)
}

func (s *Store) readState(ctx context.Context) model.AppState {
	if s.persister == nil {
		return model.DefaultState()
	}
	raw, err := s.persister.Read(ctx)
	if err != nil {
		s.logger.Warn("state read failed, starting empty", "err", err)
		return model.DefaultState()
	}
	if strings.TrimSpace(string(raw)) == "" {
		return model.DefaultState()
	}
	var state model.AppState
	if err := json.Unmarshal(raw, &state); err != nil {
		s.logger.Warn("stored state is malformed, starting empty", "err", err)
		return model.DefaultState()
	}
	s.dropInvalid(&state)
	state.Normalize()
	return state
}

// dropInvalid removes records that could not have been written by a board
// mutation: projects without id or name, tasks without id, title or a
// parseable deadline.
func (s *Store) dropInvalid(state *model.AppState) {
	projects := state.Projects[:0]
	for _, p := range state.Projects {
		if err := p.Validate(); err != nil {
			s.logger.Warn("dropping invalid stored project", "id", p.ID, "err", err)
			continue
		}
		tasks := make([]model.Task, 0, len(p.Tasks))
		for _, t := range p.Tasks {
			if err := t.Validate(); err != nil {
				s.logger.Warn("dropping invalid stored task", "project", p.ID, "id", t.ID, "err", err)
				continue
			}
			tasks = append(tasks, t)
		}
		p.Tasks = tasks
		projects = append(projects, p)
	}
	state.Projects = projects
}

// Save writes the whole state synchronously.
func (s *Store) Save(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx)
}

func (s *Store) saveLocked(ctx context.Context) error {
	if s.persister == nil {
		return ErrNoPersister
	}
	payload, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	if err := s.persister.Write(ctx, payload); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

// Update runs fn as one read-modify-write. When fn reports a change the state
// is saved before Update returns. A failed save leaves the in-memory change in
// place and is returned to the caller.
func (s *Store) Update(ctx context.Context, fn func(*model.AppState) bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !fn(&s.state) {
		return false, nil
	}
	return true, s.saveLocked(ctx)
}

// Snapshot returns a deep copy that readers may hold without locking.
func (s *Store) Snapshot() model.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

func (s *Store) ActiveProject() (model.Project, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.state.ActiveProject()
	if !ok {
		return model.Project{}, false
	}
	return p.Clone(), true
}

func (s *Store) RemindersOn() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.RemindersOn
}
