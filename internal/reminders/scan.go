// Package reminders classifies incomplete tasks as overdue or due soon and
// raises a notification for each on a recurring timer.
package reminders

import (
	"fmt"
	"time"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/sandeepkv93/taskboard/internal/notify"
)

// DueSoonWindow is how far ahead a deadline counts as upcoming.
const DueSoonWindow = time.Hour

const (
	TitleOverdue  = "Overdue task"
	TitleUpcoming = "Upcoming deadline"
	TitleStarted  = "Reminders started"
	TitleStopped  = "Reminders stopped"
)

// Scan walks every incomplete task of every project. A task is overdue when
// its deadline date is before today's date in now's location; otherwise it is
// due soon when the deadline falls within [now, now+DueSoonWindow]. Tasks
// without a parseable deadline are skipped.
func Scan(state model.AppState, now time.Time) []model.Reminder {
	loc := now.Location()
	horizon := now.Add(DueSoonWindow)

	out := make([]model.Reminder, 0)
	for _, p := range state.Projects {
		for _, t := range p.Tasks {
			if t.Completed {
				continue
			}
			due, ok := t.DueAt(loc)
			if !ok {
				continue
			}
			r := model.Reminder{
				ProjectID:   p.ID,
				ProjectName: p.Name,
				TaskID:      t.ID,
				TaskTitle:   t.Title,
				Deadline:    t.Deadline,
				DueAt:       due,
			}
			switch {
			case t.OverdueAt(now):
				r.Kind = model.ReminderOverdue
			case !due.Before(now) && !due.After(horizon):
				r.Kind = model.ReminderDueSoon
			default:
				continue
			}
			out = append(out, r)
		}
	}
	return out
}

// Notification renders a reminder the way it is shown to the user.
func Notification(r model.Reminder, at time.Time) notify.Notification {
	n := notify.Notification{At: at}
	switch r.Kind {
	case model.ReminderOverdue:
		n.Title = TitleOverdue
		n.Body = fmt.Sprintf("\"%s\" in %s is overdue", r.TaskTitle, r.ProjectName)
	default:
		n.Title = TitleUpcoming
		n.Body = fmt.Sprintf("\"%s\" due %s", r.TaskTitle, r.Deadline)
	}
	return n
}
