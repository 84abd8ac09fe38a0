// Package notify carries user-facing notification events (toasts) from the
// board and the reminder service to whatever displays them.
package notify

import (
	"sync"
	"time"
)

// Notification is a fire-and-forget message. An empty Body means the event
// has a title only.
type Notification struct {
	Title string
	Body  string
	At    time.Time
}

// TitleSaveFailed is raised by any component whose state write failed.
const TitleSaveFailed = "Save failed"

type Sink interface {
	Notify(Notification)
}

// Func adapts a plain function to Sink.
type Func func(Notification)

func (f Func) Notify(n Notification) {
	if f != nil {
		f(n)
	}
}

// Discard drops every notification.
var Discard Sink = Func(nil)

// Multi delivers to every sink in order.
type Multi []Sink

func (m Multi) Notify(n Notification) {
	for _, s := range m {
		if s != nil {
			s.Notify(n)
		}
	}
}

// Recorder keeps every notification it receives. It is safe for concurrent use.
type Recorder struct {
	mu    sync.Mutex
	items []Notification
}

func (r *Recorder) Notify(n Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = append(r.items, n)
}

func (r *Recorder) All() []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, len(r.items))
	copy(out, r.items)
	return out
}

// Titled returns the recorded notifications with the given title.
func (r *Recorder) Titled(title string) []Notification {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Notification, 0)
	for _, n := range r.items {
		if n.Title == title {
			out = append(out, n)
		}
	}
	return out
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = nil
}
