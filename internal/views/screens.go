package views

import (
	"fmt"
	"strings"
)

type ProjectRowData struct {
	ID     string
	Name   string
	Done   int
	Total  int
	Pct    int
	Active bool
}

type ProjectsPanelData struct {
	Rows   []ProjectRowData
	Cursor int
}

type TaskRowData struct {
	ID        string
	Title     string
	Deadline  string
	Completed bool
	Overdue   bool
}

type TasksPanelData struct {
	ProjectName  string
	HasProject   bool
	Filter       string
	Done         int
	Total        int
	ProgressView string
	Rows         []TaskRowData
	Cursor       int
}

type ToastData struct {
	Title string
	Body  string
	At    string
}

type PromptData struct {
	Label     string
	InputView string
}

type HelpPanelData struct {
	Bindings []string
	HelpView string
	Sheet    string
}

func RenderProjectsPanel(data ProjectsPanelData) string {
	var b strings.Builder
	b.WriteString("projects:\n")
	if len(data.Rows) == 0 {
		b.WriteString("(no projects, press n to create one)")
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		line := fmt.Sprintf("%s %s  %d/%d %3d%%", cursor, row.Name, row.Done, row.Total, row.Pct)
		if row.Active {
			line = activeStyle.Render(line + " *")
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSpace(b.String())
}

func RenderTasksPanel(data TasksPanelData) string {
	var b strings.Builder
	if !data.HasProject {
		b.WriteString("tasks:\n(no project selected)")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("tasks: %s | filter: %s\n", data.ProjectName, data.Filter))
	b.WriteString(fmt.Sprintf("%s %d/%d done\n", data.ProgressView, data.Done, data.Total))
	if len(data.Rows) == 0 {
		b.WriteString("(no tasks)")
		return b.String()
	}
	for i, row := range data.Rows {
		cursor := " "
		if i == data.Cursor {
			cursor = ">"
		}
		box := "[ ]"
		if row.Completed {
			box = "[x]"
		}
		title := row.Title
		switch {
		case row.Completed:
			title = doneStyle.Render(title)
		case row.Overdue:
			title = overdueStyle.Render(title + " (overdue)")
		}
		deadline := row.Deadline
		if deadline == "" {
			deadline = "-"
		}
		b.WriteString(fmt.Sprintf("%s %s %s  due: %s  #%s\n", cursor, box, title, deadline, row.ID))
	}
	return strings.TrimSpace(b.String())
}

func RenderToasts(toasts []ToastData) string {
	if len(toasts) == 0 {
		return ""
	}
	lines := make([]string, 0, len(toasts))
	for _, t := range toasts {
		line := fmt.Sprintf("%s %s", t.At, t.Title)
		if t.Body != "" {
			line += ": " + t.Body
		}
		lines = append(lines, toastStyle.Render(line))
	}
	return strings.Join(lines, "\n")
}

func RenderPrompt(data PromptData) string {
	return fmt.Sprintf("%s\n%s\n[enter] submit  [esc] cancel", data.Label, data.InputView)
}

func RenderConfirm(question string) string {
	return fmt.Sprintf("%s\n[y] yes  [n/esc] no", question)
}

func RenderCommandPalette(active bool, inputView string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command:\n%s", inputView)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString("help:\n")
	for _, line := range data.Bindings {
		b.WriteString(line + "\n")
	}
	if data.HelpView != "" {
		b.WriteString("\n" + data.HelpView + "\n")
	}
	if data.Sheet != "" {
		b.WriteString("\n" + data.Sheet)
	}
	return strings.TrimSpace(b.String())
}

// HelpSheetMarkdown documents the command palette grammar.
const HelpSheetMarkdown = `## Commands

| command | effect |
|---|---|
| ` + "`project new <name>`" + ` | create and select a project |
| ` + "`project use <id or name>`" + ` | select a project |
| ` + "`project delete`" + ` | delete the active project |
| ` + "`add <deadline> <title>`" + ` | add a task, deadline as YYYY-MM-DD [HH:MM] |
| ` + "`edit <task-id>`" + ` | edit a task's title and deadline |
| ` + "`toggle <task-id>`" + ` | flip a task's completion |
| ` + "`rm <task-id>`" + ` | delete a task |
| ` + "`complete-all`" + ` | complete every task in the active project |
| ` + "`filter all, completed or pending`" + ` | change the visible tasks |
| ` + "`reminders on or off`" + ` | start or stop deadline reminders |
`
