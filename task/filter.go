package task

import (
	"strings"
	"time"
)

// Filter selects tasks. Criteria are independent, each optional, and
// combined with logical AND. The zero Filter matches everything.
type Filter struct {
	// Status filters by exact status match.
	Status *Status

	// Priority filters by exact priority match.
	Priority *Priority

	// Date filters to tasks whose schedule occurs on that calendar day.
	// Unscheduled tasks never match a date criterion.
	Date *time.Time

	// Tags filters to tasks whose tag set intersects these IDs.
	Tags []string

	// Search is a case-insensitive substring match over title and
	// description.
	Search string
}

// Matches reports whether the task satisfies every present criterion.
func (f Filter) Matches(t *Task) bool {
	if f.Status != nil && t.Status != *f.Status {
		return false
	}
	if f.Priority != nil && t.Priority != *f.Priority {
		return false
	}
	if f.Date != nil && !t.Schedule.OccursOn(*f.Date) {
		return false
	}
	if len(f.Tags) > 0 {
		hit := false
		for _, tagID := range f.Tags {
			if t.HasTag(tagID) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}
	if f.Search != "" {
		query := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(t.Title), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			return false
		}
	}
	return true
}

// Apply returns the tasks matching the filter, preserving input order.
// It never mutates its input and keeps no state, so it is safe to call
// on every re-evaluation.
func Apply(tasks []Task, f Filter) []Task {
	var out []Task
	for i := range tasks {
		if f.Matches(&tasks[i]) {
			out = append(out, tasks[i])
		}
	}
	return out
}

// List returns copies of the repository's tasks matching the filter, in
// insertion order.
func (r *Repository) List(f Filter) []Task {
	var out []Task
	for i := range r.tasks {
		if f.Matches(&r.tasks[i]) {
			out = append(out, cloneTask(r.tasks[i]))
		}
	}
	return out
}
