package reminders

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/notify"
	"github.com/sandeepkv93/taskboard/internal/scheduler"
	"github.com/sandeepkv93/taskboard/internal/store"
)

// DefaultInterval is the scan cadence when none is configured.
const DefaultInterval = 30 * time.Second

type Option func(*Service)

func WithInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.interval = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Service owns the recurring reminder scan. Start and Stop persist the
// remindersOn flag so the next launch can Resume.
type Service struct {
	mu       sync.Mutex
	store    *store.Store
	sink     notify.Sink
	timer    scheduler.Timer
	interval time.Duration
	now      func() time.Time
	logger   *log.Logger
	handle   *scheduler.Handle
}

func NewService(st *store.Store, sink notify.Sink, timer scheduler.Timer, opts ...Option) *Service {
	if sink == nil {
		sink = notify.Discard
	}
	s := &Service{
		store:    st,
		sink:     sink,
		timer:    timer,
		interval: DefaultInterval,
		now:      time.Now,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Interval() time.Duration {
	return s.interval
}

func (s *Service) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.handle != nil
}

// Start schedules the scan. It is a no-op when already running.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil {
		return nil
	}

	h, err := s.timer.Schedule(func(time.Time) { s.Tick(s.now()) }, s.interval)
	if err != nil {
		return err
	}
	s.handle = h
	s.logger.Debug("reminders started", "interval", s.interval)
	err = s.persist(ctx, true)
	s.emit(TitleStarted)
	return err
}

// Stop cancels the scan and waits for an in-flight tick to finish. It is a
// no-op when not running.
func (s *Service) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return nil
	}

	s.timer.Cancel(s.handle)
	s.handle = nil
	s.logger.Debug("reminders stopped")
	err := s.persist(ctx, false)
	s.emit(TitleStopped)
	return err
}

// ClearFlag turns off a persisted remindersOn flag without a running scan,
// as left by a session that exited with reminders on. It is a no-op while
// running or when the flag is already off.
func (s *Service) ClearFlag(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle != nil || !s.store.RemindersOn() {
		return nil
	}
	s.logger.Debug("reminders flag cleared")
	err := s.persist(ctx, false)
	s.emit(TitleStopped)
	return err
}

func (s *Service) Toggle(ctx context.Context) error {
	if s.Running() {
		return s.Stop(ctx)
	}
	return s.Start(ctx)
}

// Resume starts the scan when the loaded state says reminders were on.
func (s *Service) Resume(ctx context.Context) error {
	if !s.store.RemindersOn() {
		return nil
	}
	return s.Start(ctx)
}

// Shutdown cancels the scan without touching the persisted flag, so the
// next launch resumes where this one left off.
func (s *Service) Shutdown() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.handle == nil {
		return
	}
	s.timer.Cancel(s.handle)
	s.handle = nil
}

// Tick runs one scan over a snapshot and emits one notification per
// classified task. It returns the reminders it raised.
func (s *Service) Tick(now time.Time) []model.Reminder {
	found := Scan(s.store.Snapshot(), now)
	for _, r := range found {
		s.sink.Notify(Notification(r, now))
	}
	if len(found) > 0 {
		s.logger.Debug("reminder scan", "raised", len(found))
	}
	return found
}

func (s *Service) persist(ctx context.Context, on bool) error {
	_, err := s.store.Update(ctx, func(st *model.AppState) bool {
		if st.RemindersOn == on {
			return false
		}
		st.RemindersOn = on
		return true
	})
	if err != nil {
		s.logger.Error("save failed", "err", err)
		s.sink.Notify(notify.Notification{Title: notify.TitleSaveFailed, Body: err.Error(), At: s.now()})
	}
	return err
}

func (s *Service) emit(title string) {
	s.sink.Notify(notify.Notification{Title: title, At: s.now()})
}
