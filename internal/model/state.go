package model

import "encoding/json"

type AppState struct {
	Projects        []Project
	ActiveProjectID string
	RemindersOn     bool
}

// appStateJSON is the persisted record. activeProjectId is null when no
// project is active.
type appStateJSON struct {
	Projects        []Project `json:"projects"`
	ActiveProjectID *string   `json:"activeProjectId"`
	RemindersOn     bool      `json:"remindersOn"`
}

func DefaultState() AppState {
	return AppState{Projects: []Project{}}
}

func (s AppState) MarshalJSON() ([]byte, error) {
	wire := appStateJSON{
		Projects:    s.Projects,
		RemindersOn: s.RemindersOn,
	}
	if wire.Projects == nil {
		wire.Projects = []Project{}
	}
	if s.ActiveProjectID != "" {
		id := s.ActiveProjectID
		wire.ActiveProjectID = &id
	}
	return json.Marshal(wire)
}

func (s *AppState) UnmarshalJSON(data []byte) error {
	var wire appStateJSON
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	s.Projects = wire.Projects
	s.ActiveProjectID = ""
	if wire.ActiveProjectID != nil {
		s.ActiveProjectID = *wire.ActiveProjectID
	}
	s.RemindersOn = wire.RemindersOn
	return nil
}

func (s AppState) Clone() AppState {
	out := s
	out.Projects = make([]Project, len(s.Projects))
	for i := range s.Projects {
		out.Projects[i] = s.Projects[i].Clone()
	}
	return out
}

func (s AppState) ProjectIndex(id string) int {
	if id == "" {
		return -1
	}
	for i := range s.Projects {
		if s.Projects[i].ID == id {
			return i
		}
	}
	return -1
}

func (s AppState) ActiveProject() (Project, bool) {
	idx := s.ProjectIndex(s.ActiveProjectID)
	if idx < 0 {
		return Project{}, false
	}
	return s.Projects[idx], true
}

// FindTask locates a task across all projects.
func (s AppState) FindTask(taskID string) (projectIdx, taskIdx int, ok bool) {
	for pi := range s.Projects {
		if ti := s.Projects[pi].TaskIndex(taskID); ti >= 0 {
			return pi, ti, true
		}
	}
	return -1, -1, false
}

// Normalize repairs state read from storage: nil slices become empty and a
// dangling active pointer moves to the first project, or clears.
func (s *AppState) Normalize() {
	if s.Projects == nil {
		s.Projects = []Project{}
	}
	for i := range s.Projects {
		if s.Projects[i].Tasks == nil {
			s.Projects[i].Tasks = []Task{}
		}
	}
	if s.ActiveProjectID != "" && s.ProjectIndex(s.ActiveProjectID) < 0 {
		s.ActiveProjectID = s.FirstProjectID()
	}
}

func (s AppState) FirstProjectID() string {
	if len(s.Projects) == 0 {
		return ""
	}
	return s.Projects[0].ID
}
