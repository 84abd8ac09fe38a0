package scheduler

import (
	"errors"
	"sync"
	"time"
)

var (
	ErrInvalidInterval = errors.New("scheduler: invalid interval")
	ErrEngineStopped   = errors.New("scheduler: engine stopped")
)

// Timer runs a callback repeatedly until its handle is cancelled.
type Timer interface {
	Schedule(fn func(now time.Time), interval time.Duration) (*Handle, error)
	Cancel(h *Handle)
}

// Handle identifies one recurring schedule.
type Handle struct {
	interval time.Duration
	fn       func(time.Time)
	stopCh   chan struct{}
	doneCh   chan struct{}
	once     sync.Once
}

func newHandle(fn func(time.Time), interval time.Duration) *Handle {
	return &Handle{
		interval: interval,
		fn:       fn,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Engine runs each schedule on its own goroutine. Callbacks of one handle
// never overlap, and Cancel returns only after the loop has exited.
type Engine struct {
	mu      sync.Mutex
	handles map[*Handle]struct{}
	stopped bool
}

func NewEngine() *Engine {
	return &Engine{handles: make(map[*Handle]struct{})}
}

func (e *Engine) Schedule(fn func(time.Time), interval time.Duration) (*Handle, error) {
	if interval <= 0 || fn == nil {
		return nil, ErrInvalidInterval
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return nil, ErrEngineStopped
	}

	h := newHandle(fn, interval)
	e.handles[h] = struct{}{}
	go e.loop(h)
	return h, nil
}

func (e *Engine) Cancel(h *Handle) {
	if h == nil {
		return
	}
	e.mu.Lock()
	delete(e.handles, h)
	e.mu.Unlock()

	h.once.Do(func() { close(h.stopCh) })
	<-h.doneCh
}

// Stop cancels every live schedule and rejects new ones.
func (e *Engine) Stop() {
	e.mu.Lock()
	if e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	live := make([]*Handle, 0, len(e.handles))
	for h := range e.handles {
		live = append(live, h)
	}
	e.mu.Unlock()

	for _, h := range live {
		e.Cancel(h)
	}
}

func (e *Engine) Active() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.handles)
}

func (e *Engine) loop(h *Handle) {
	defer close(h.doneCh)

	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	for {
		select {
		case <-h.stopCh:
			return
		case now := <-ticker.C:
			// A cancel that raced the tick wins.
			select {
			case <-h.stopCh:
				return
			default:
			}
			h.fn(now)
		}
	}
}
