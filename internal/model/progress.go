package model

type Progress struct {
	Total int
	Done  int
	Pct   int
}

// ProgressOf counts completed tasks. Pct is rounded half up and is 0 for an
// empty project.
func ProgressOf(p Project) Progress {
	total := len(p.Tasks)
	done := 0
	for _, t := range p.Tasks {
		if t.Completed {
			done++
		}
	}
	pct := 0
	if total > 0 {
		pct = (done*200 + total) / (2 * total)
	}
	return Progress{Total: total, Done: done, Pct: pct}
}

// Fraction is the completed share in [0, 1], suitable for progress bars.
func (p Progress) Fraction() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total)
}
