package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrEmptyTitle is returned when a task title is empty or whitespace.
	ErrEmptyTitle = errors.New("title cannot be empty")

	// ErrInvalidStatus is returned when an invalid status is provided.
	ErrInvalidStatus = errors.New("invalid status")

	// ErrInvalidPriority is returned when an invalid priority is provided.
	ErrInvalidPriority = errors.New("invalid priority")

	// ErrTaskNotFound is returned when a task with the given ID doesn't exist.
	ErrTaskNotFound = errors.New("task not found")

	// ErrTagNotFound is returned when a tag with the given ID doesn't exist.
	ErrTagNotFound = errors.New("tag not found")

	// ErrDuplicateTag is returned when a tag ID already exists in the registry.
	ErrDuplicateTag = errors.New("tag already exists")

	// ErrEmptyTagLabel is returned when a tag label reduces to nothing.
	ErrEmptyTagLabel = errors.New("tag label cannot be empty")

	// ErrUnknownTag is returned when a task references a tag ID missing
	// from the registry.
	ErrUnknownTag = errors.New("unknown tag")

	// ErrInvalidScheduleKind is returned when a schedule has an unknown kind.
	ErrInvalidScheduleKind = errors.New("invalid schedule kind")

	// ErrEmptyWeekDays is returned when a weekly schedule has no weekdays.
	ErrEmptyWeekDays = errors.New("weekly schedule requires at least one weekday")

	// ErrInvalidWeekday is returned when a weekday is outside 0-6.
	ErrInvalidWeekday = errors.New("weekday must be between 0 (Sunday) and 6 (Saturday)")

	// ErrCompletedAtMismatch is returned when completed_at disagrees with
	// the status: it must be set exactly when the task is done.
	ErrCompletedAtMismatch = errors.New("completed_at must be set if and only if status is done")
)

// ValidateTitle checks that the title contains at least one
// non-whitespace character.
func ValidateTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrEmptyTitle
	}
	return nil
}

// ValidateTask checks if a task struct is internally consistent.
func ValidateTask(t *Task) error {
	if err := ValidateTitle(t.Title); err != nil {
		return err
	}

	if !t.Status.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, t.Status)
	}

	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}

	if t.Status == StatusDone {
		if t.CompletedAt == nil {
			return ErrCompletedAtMismatch
		}
	} else if t.CompletedAt != nil {
		return ErrCompletedAtMismatch
	}

	if err := t.Schedule.Validate(); err != nil {
		return err
	}

	return nil
}
