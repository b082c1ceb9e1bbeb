package task

import (
	"time"

	"github.com/taskifyapp/taskify/internal/ids"
)

// GenerateID creates a unique 8-character alphanumeric ID from a title
// and timestamp. Subtask IDs use the same scheme, seeded with the
// owning task's ID.
func GenerateID(title string, timestamp time.Time) string {
	return ids.GenerateWithTimestamp(title, timestamp, ids.DefaultLength)
}

// TagID derives a tag's identifier from its label.
func TagID(label string) string {
	return ids.Slug(label)
}
