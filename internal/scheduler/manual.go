package scheduler

import (
	"sort"
	"sync"
	"time"
)

// Manual is a Timer driven by Advance. Callbacks run synchronously on the
// caller's goroutine, which keeps reminder tests free of sleeps.
type Manual struct {
	mu    sync.Mutex
	now   time.Time
	slots []*manualSlot
}

type manualSlot struct {
	handle *Handle
	next   time.Time
}

func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

func (m *Manual) Schedule(fn func(time.Time), interval time.Duration) (*Handle, error) {
	if interval <= 0 || fn == nil {
		return nil, ErrInvalidInterval
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	h := newHandle(fn, interval)
	m.slots = append(m.slots, &manualSlot{handle: h, next: m.now.Add(interval)})
	return h, nil
}

func (m *Manual) Cancel(h *Handle) {
	if h == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, s := range m.slots {
		if s.handle == h {
			m.slots = append(m.slots[:i], m.slots[i+1:]...)
			break
		}
	}
	h.once.Do(func() { close(h.stopCh) })
}

// Active reports the number of live schedules.
func (m *Manual) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.slots)
}

// Advance moves the clock forward by d, firing every callback that falls due
// in fire-time order. A callback may cancel its own or another handle.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now.Add(d)
	m.mu.Unlock()

	for {
		m.mu.Lock()
		slot := m.nextDueLocked(target)
		if slot == nil {
			m.now = target
			m.mu.Unlock()
			return
		}
		fireAt := slot.next
		slot.next = slot.next.Add(slot.handle.interval)
		m.now = fireAt
		fn := slot.handle.fn
		m.mu.Unlock()

		fn(fireAt)
	}
}

func (m *Manual) nextDueLocked(target time.Time) *manualSlot {
	due := make([]*manualSlot, 0, len(m.slots))
	for _, s := range m.slots {
		if !s.next.After(target) {
			due = append(due, s)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].next.Before(due[j].next) })
	return due[0]
}
