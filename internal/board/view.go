package board

import "github.com/sandeepkv93/taskboard/internal/model"

// ProjectSummary is one row of the project list.
type ProjectSummary struct {
	ID       string
	Name     string
	Progress model.Progress
	Active   bool
}

// View is what the presentation layer draws after a refresh.
type View struct {
	Projects    []ProjectSummary
	Active      model.Project
	HasActive   bool
	Filter      model.FilterMode
	Tasks       []model.Task
	Progress    model.Progress
	RemindersOn bool
}

func buildView(state model.AppState, mode model.FilterMode) View {
	v := View{
		Projects:    make([]ProjectSummary, 0, len(state.Projects)),
		Filter:      mode,
		Tasks:       []model.Task{},
		RemindersOn: state.RemindersOn,
	}
	for _, p := range state.Projects {
		v.Projects = append(v.Projects, ProjectSummary{
			ID:       p.ID,
			Name:     p.Name,
			Progress: model.ProgressOf(p),
			Active:   p.ID == state.ActiveProjectID,
		})
	}
	if active, ok := state.ActiveProject(); ok {
		v.Active = active
		v.HasActive = true
		v.Tasks = model.Filter(active.Tasks, mode)
		v.Progress = model.ProgressOf(active)
	}
	return v
}
