package update

import (
	"github.com/sandeepkv93/taskboard/internal/views"
)

func (m Model) renderProjectsPanel() string {
	rows := make([]views.ProjectRowData, 0, len(m.Snapshot.Projects))
	for _, p := range m.Snapshot.Projects {
		rows = append(rows, views.ProjectRowData{
			ID:     p.ID,
			Name:   p.Name,
			Done:   p.Progress.Done,
			Total:  p.Progress.Total,
			Pct:    p.Progress.Pct,
			Active: p.Active,
		})
	}
	return views.RenderProjectsPanel(views.ProjectsPanelData{Rows: rows, Cursor: m.ProjectCursor})
}

func (m Model) renderTasksPanel() string {
	now := m.now()
	rows := make([]views.TaskRowData, 0, len(m.Snapshot.Tasks))
	for _, t := range m.Snapshot.Tasks {
		rows = append(rows, views.TaskRowData{
			ID:        t.ID,
			Title:     t.Title,
			Deadline:  t.Deadline,
			Completed: t.Completed,
			Overdue:   !t.Completed && t.OverdueAt(now),
		})
	}
	cursor := -1
	if m.Focus == PaneTasks {
		cursor = m.TaskCursor
	}
	return views.RenderTasksPanel(views.TasksPanelData{
		ProjectName:  m.Snapshot.Active.Name,
		HasProject:   m.Snapshot.HasActive,
		Filter:       string(m.Snapshot.Filter),
		Done:         m.Snapshot.Progress.Done,
		Total:        m.Snapshot.Progress.Total,
		ProgressView: m.projectBar.ViewAs(m.Snapshot.Progress.Fraction()),
		Rows:         rows,
		Cursor:       cursor,
	})
}

func (m Model) renderToasts() string {
	toasts := make([]views.ToastData, 0, len(m.Toasts))
	for _, t := range m.Toasts {
		toasts = append(toasts, views.ToastData{
			Title: t.Title,
			Body:  t.Body,
			At:    t.At.Format("15:04:05"),
		})
	}
	return views.RenderToasts(toasts)
}
