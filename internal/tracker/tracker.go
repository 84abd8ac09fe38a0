// Package tracker remembers the last completion percentage seen for each
// project so callers can tell when progress actually moved.
package tracker

import (
	"sync"

	"github.com/sandeepkv93/taskboard/internal/model"
)

type Tracker struct {
	mu   sync.Mutex
	last map[string]int
}

func New() *Tracker {
	return &Tracker{last: make(map[string]int)}
}

// Observe records the project's current percentage. The first observation of
// a project only records it; later ones report changed when the value moved.
func (t *Tracker) Observe(p model.Project) (pct int, changed bool) {
	pct = model.ProgressOf(p).Pct

	t.mu.Lock()
	defer t.mu.Unlock()
	prev, seen := t.last[p.ID]
	t.last[p.ID] = pct
	return pct, seen && prev != pct
}

func (t *Tracker) Forget(projectID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.last, projectID)
}
