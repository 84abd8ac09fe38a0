package notify

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync/atomic"

	"github.com/charmbracelet/log"
)

// LogSink writes each notification as an info line.
type LogSink struct {
	Logger *log.Logger
}

func (s LogSink) Notify(n Notification) {
	if s.Logger == nil {
		return
	}
	if n.Body == "" {
		s.Logger.Info(n.Title)
		return
	}
	s.Logger.Info(n.Title, "body", n.Body)
}

// Desktop raises OS notifications through notify-send or osascript. Failures
// are logged and otherwise ignored.
type Desktop struct {
	Logger *log.Logger
	run    func(name string, args ...string) error
}

func NewDesktop(logger *log.Logger) *Desktop {
	return &Desktop{
		Logger: logger,
		run: func(name string, args ...string) error {
			return exec.Command(name, args...).Run()
		},
	}
}

func (d *Desktop) Notify(n Notification) {
	name, args := desktopCommand(runtime.GOOS, n)
	if name == "" {
		return
	}
	if err := d.run(name, args...); err != nil && d.Logger != nil {
		d.Logger.Warn("desktop notification failed", "err", err)
	}
}

func desktopCommand(goos string, n Notification) (string, []string) {
	switch goos {
	case "linux":
		args := []string{n.Title}
		if n.Body != "" {
			args = append(args, n.Body)
		}
		return "notify-send", args
	case "darwin":
		script := fmt.Sprintf(`display notification "%s" with title "%s"`, escapeAppleScript(n.Body), escapeAppleScript(n.Title))
		return "osascript", []string{"-e", script}
	default:
		return "", nil
	}
}

func escapeAppleScript(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

// Queue buffers notifications for a single consumer, typically the TUI loop.
// Notify never blocks; when the buffer is full the event is counted as
// dropped.
type Queue struct {
	ch      chan Notification
	dropped uint64
}

func NewQueue(bufferSize int) *Queue {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Queue{ch: make(chan Notification, bufferSize)}
}

func (q *Queue) Notify(n Notification) {
	select {
	case q.ch <- n:
	default:
		atomic.AddUint64(&q.dropped, 1)
	}
}

func (q *Queue) C() <-chan Notification {
	return q.ch
}

func (q *Queue) Dropped() uint64 {
	return atomic.LoadUint64(&q.dropped)
}
