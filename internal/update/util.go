package update

import "github.com/sandeepkv93/taskboard/internal/model"

func clamp(i, n int) int {
	if n <= 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

func nextFilter(mode model.FilterMode) model.FilterMode {
	switch mode {
	case model.FilterAll:
		return model.FilterPending
	case model.FilterPending:
		return model.FilterCompleted
	default:
		return model.FilterAll
	}
}
