package store

import (
	"strings"

	"github.com/google/uuid"
)

const idLength = 8

// NewID returns a short random identifier that taken does not report as in
// use. taken may be nil.
func NewID(taken func(string) bool) string {
	for {
		id := strings.ReplaceAll(uuid.NewString(), "-", "")[:idLength]
		if taken == nil || !taken(id) {
			return id
		}
	}
}
