package model

import "strings"

type FilterMode string

const (
	FilterAll       FilterMode = "all"
	FilterCompleted FilterMode = "completed"
	FilterPending   FilterMode = "pending"
)

func (f FilterMode) IsValid() bool {
	switch f {
	case FilterAll, FilterCompleted, FilterPending:
		return true
	default:
		return false
	}
}

// ParseFilterMode maps unknown input to FilterAll.
func ParseFilterMode(raw string) FilterMode {
	mode := FilterMode(strings.ToLower(strings.TrimSpace(raw)))
	if !mode.IsValid() {
		return FilterAll
	}
	return mode
}

// Filter returns the tasks matching mode in their original order. The input
// slice is never modified.
func Filter(tasks []Task, mode FilterMode) []Task {
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		switch mode {
		case FilterCompleted:
			if !t.Completed {
				continue
			}
		case FilterPending:
			if t.Completed {
				continue
			}
		}
		out = append(out, t)
	}
	return out
}
