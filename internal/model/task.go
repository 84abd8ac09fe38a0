package model

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrEmptyName     = errors.New("model: project name is required")
	ErrEmptyTitle    = errors.New("model: task title is required")
	ErrEmptyDeadline = errors.New("model: task deadline is required")
)

type Task struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Deadline  string `json:"deadline"`
	Completed bool   `json:"completed"`
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if _, err := ParseDeadline(t.Deadline, time.Local); err != nil {
		return err
	}
	return nil
}

// DueAt resolves the stored deadline in loc. Tasks without a usable deadline
// report false.
func (t Task) DueAt(loc *time.Location) (time.Time, bool) {
	due, err := ParseDeadline(t.Deadline, loc)
	if err != nil {
		return time.Time{}, false
	}
	return due, true
}

type Project struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

func (p Project) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: project id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyName
	}
	return nil
}

func (p Project) TaskIndex(id string) int {
	for i := range p.Tasks {
		if p.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (p Project) Clone() Project {
	out := p
	out.Tasks = make([]Task, len(p.Tasks))
	copy(out.Tasks, p.Tasks)
	return out
}

// OverdueAt reports whether an incomplete task's deadline date is before the
// date of now, both taken in now's location.
func (t Task) OverdueAt(now time.Time) bool {
	if t.Completed {
		return false
	}
	due, ok := t.DueAt(now.Location())
	if !ok {
		return false
	}
	return StartOfDay(due.In(now.Location())).Before(StartOfDay(now))
}
