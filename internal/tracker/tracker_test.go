package tracker

import (
	"testing"

	"github.com/sandeepkv93/taskboard/internal/model"
	"github.com/stretchr/testify/assert"
)

func project(done, total int) model.Project {
	p := model.Project{ID: "p1", Name: "Home", Tasks: make([]model.Task, total)}
	for i := 0; i < done; i++ {
		p.Tasks[i].Completed = true
	}
	return p
}

func TestFirstObservationRecordsWithoutChange(t *testing.T) {
	tr := New()
	pct, changed := tr.Observe(project(1, 2))
	assert.Equal(t, 50, pct)
	assert.False(t, changed)

	_, changed = tr.Observe(project(2, 2))
	assert.True(t, changed, "the first observation is the baseline")
}

func TestObserveReportsOnlyRealChanges(t *testing.T) {
	tr := New()
	tr.Observe(project(0, 3))

	_, changed := tr.Observe(project(0, 3))
	assert.False(t, changed, "unchanged pct must not report")

	pct, changed := tr.Observe(project(1, 3))
	assert.True(t, changed)
	assert.Equal(t, 33, pct)

	_, changed = tr.Observe(project(1, 3))
	assert.False(t, changed, "repeat observation is idempotent")
}

func TestAddingTaskToCompleteProjectReportsDrop(t *testing.T) {
	tr := New()
	tr.Observe(project(1, 1))
	pct, changed := tr.Observe(project(1, 2))
	assert.True(t, changed)
	assert.Equal(t, 50, pct)
}

func TestForgetResetsProject(t *testing.T) {
	tr := New()
	tr.Observe(project(1, 1))
	tr.Forget("p1")

	_, changed := tr.Observe(project(0, 1))
	assert.False(t, changed, "a forgotten project starts fresh")
}
