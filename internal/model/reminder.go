package model

import "time"

type ReminderKind string

const (
	ReminderOverdue ReminderKind = "overdue"
	ReminderDueSoon ReminderKind = "due_soon"
)

// Reminder is one classified task from a reminder scan.
type Reminder struct {
	Kind        ReminderKind
	ProjectID   string
	ProjectName string
	TaskID      string
	TaskTitle   string
	Deadline    string
	DueAt       time.Time
}
