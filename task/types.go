// Package task implements the scheduling core: the task repository, the
// schedule occurrence resolver, the filter engine, and the completion
// lifecycle rules.
//
// The public API mirrors the operations the surrounding views consume:
//   - Create, Update, Delete, ToggleCompletion, SetStatus for the task lifecycle
//   - Get, Tasks, List for querying
//   - AddTag, UpdateTags, DeleteTag for the tag registry
package task

import "time"

// Status represents the state of a task.
type Status string

const (
	// StatusTodo indicates the task has not been started.
	StatusTodo Status = "todo"

	// StatusInProgress indicates the task is being worked on.
	StatusInProgress Status = "in-progress"

	// StatusDone indicates the task has been completed.
	StatusDone Status = "done"
)

// ValidStatuses returns all valid status values.
func ValidStatuses() []Status {
	return []Status{StatusTodo, StatusInProgress, StatusDone}
}

// IsValid returns true if the status is a known valid value.
func (s Status) IsValid() bool {
	for _, valid := range ValidStatuses() {
		if s == valid {
			return true
		}
	}
	return false
}

// Priority represents the importance level of a task.
type Priority string

const (
	// PriorityLow is the default priority for new tasks.
	PriorityLow Priority = "low"

	// PriorityMedium marks a task as moderately important.
	PriorityMedium Priority = "medium"

	// PriorityHigh marks a task as urgent.
	PriorityHigh Priority = "high"
)

// ValidPriorities returns all valid priority values.
func ValidPriorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// IsValid returns true if the priority is a known valid value.
func (p Priority) IsValid() bool {
	for _, valid := range ValidPriorities() {
		if p == valid {
			return true
		}
	}
	return false
}

// PriorityRank returns the sort rank for a priority (high first).
func PriorityRank(p Priority) int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// Subtask is a titled checklist item owned by exactly one task.
type Subtask struct {
	// ID is a unique identifier within the owning task.
	ID string `json:"id"`

	// Title is the checklist item text.
	Title string `json:"title"`

	// Completed reports whether the item has been checked off.
	Completed bool `json:"completed"`
}

// Tag is a label that can be applied to tasks. Its ID is derived from
// the label and must be unique within the registry.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	// Color is a display color in #RRGGBB form.
	Color string `json:"color"`
}

// Task represents a single unit of work.
type Task struct {
	// ID is a unique identifier (8-char alphanumeric, derived from initial title + timestamp).
	ID string `json:"id"`

	// Title is the short summary of the task.
	Title string `json:"title"`

	// Description provides additional context, formatted as markdown.
	Description string `json:"description"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	// Priority is the importance level.
	Priority Priority `json:"priority"`

	// Tags holds the IDs of tags applied to this task. Every entry must
	// exist in the repository's tag registry.
	Tags []string `json:"tags"`

	// Subtasks is the ordered checklist owned by this task.
	Subtasks []Subtask `json:"subtasks"`

	// Schedule is the temporal occurrence rule, nil for unscheduled tasks.
	Schedule *Schedule `json:"schedule,omitempty"`

	// CreatedAt is when the task was created. Immutable.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is when the task entered done (nil otherwise).
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// HasTag reports whether the task carries the given tag ID.
func (t *Task) HasTag(tagID string) bool {
	for _, id := range t.Tags {
		if id == tagID {
			return true
		}
	}
	return false
}

// SubtasksDone returns the number of completed subtasks.
func (t *Task) SubtasksDone() int {
	n := 0
	for _, st := range t.Subtasks {
		if st.Completed {
			n++
		}
	}
	return n
}
