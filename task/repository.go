package task

import (
	"fmt"
	"time"
)

// Repository owns the mutable task collection and the tag registry.
// Tasks keep their insertion order for the lifetime of the repository.
//
// The repository is synchronous and single-threaded: every mutation runs
// to completion before the next is accepted, and subscribers are
// notified after the mutation has been applied.
type Repository struct {
	tasks []Task
	tags  []Tag

	subscribers []func()
	now         func() time.Time
}

// DefaultTags returns the tag registry a fresh repository starts with.
func DefaultTags() []Tag {
	return []Tag{
		{ID: "personal", Label: "Personal", Color: "#3B82F6"},
		{ID: "work", Label: "Work", Color: "#10B981"},
		{ID: "urgent", Label: "Urgent", Color: "#EF4444"},
	}
}

// NewRepository returns an empty repository seeded with the default tags.
func NewRepository() *Repository {
	return &Repository{
		tags: DefaultTags(),
		now:  time.Now,
	}
}

// Subscribe registers fn to be called after every completed mutation.
// Subscribers must not mutate the repository.
func (r *Repository) Subscribe(fn func()) {
	r.subscribers = append(r.subscribers, fn)
}

func (r *Repository) notify() {
	for _, fn := range r.subscribers {
		fn()
	}
}

// Tasks returns a copy of every task in insertion order. Callers own
// the returned slice and may not reach the repository's state through it.
func (r *Repository) Tasks() []Task {
	out := make([]Task, len(r.tasks))
	for i := range r.tasks {
		out[i] = cloneTask(r.tasks[i])
	}
	return out
}

// Get returns the task with the given ID.
func (r *Repository) Get(id string) (Task, error) {
	if i := r.indexOf(id); i >= 0 {
		return cloneTask(r.tasks[i]), nil
	}
	return Task{}, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
}

// Tags returns a copy of the tag registry.
func (r *Repository) Tags() []Tag {
	return append([]Tag(nil), r.tags...)
}

// TagByID returns the tag with the given ID.
func (r *Repository) TagByID(id string) (Tag, bool) {
	for _, tag := range r.tags {
		if tag.ID == id {
			return tag, true
		}
	}
	return Tag{}, false
}

func (r *Repository) indexOf(id string) int {
	for i := range r.tasks {
		if r.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateOptions configures a new task. Zero values fall back to the
// defaults: status todo, priority low, no tags, no subtasks, no schedule.
type CreateOptions struct {
	Description string
	Status      Status
	Priority    Priority
	Tags        []string
	Subtasks    []Subtask
	Schedule    *Schedule
}

// Create creates a new task with the given title, merging opts over the
// defaults. An empty or whitespace title yields ErrEmptyTitle and no task.
func (r *Repository) Create(title string, opts CreateOptions) (*Task, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}

	if opts.Status == "" {
		opts.Status = StatusTodo
	}
	if !opts.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, opts.Status)
	}

	if opts.Priority == "" {
		opts.Priority = PriorityLow
	}
	if !opts.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, opts.Priority)
	}

	if err := r.checkTagsExist(opts.Tags); err != nil {
		return nil, err
	}
	if err := opts.Schedule.Validate(); err != nil {
		return nil, err
	}

	now := r.now()
	t := Task{
		ID:          GenerateID(title, now),
		Title:       title,
		Description: opts.Description,
		Status:      opts.Status,
		Priority:    opts.Priority,
		Tags:        append([]string(nil), opts.Tags...),
		Subtasks:    r.fillSubtaskIDs(opts.Subtasks, now),
		Schedule:    opts.Schedule.clone(),
		CreatedAt:   now,
	}
	if t.Status == StatusDone {
		completed := now
		t.CompletedAt = &completed
	}

	r.tasks = append(r.tasks, t)
	r.notify()

	created := cloneTask(t)
	return &created, nil
}

// UpdateOptions configures fields to update on a task. Nil pointers
// mean "don't update this field". Updated fields are replaced wholesale:
// the subtask slice and the schedule are never merged element-by-element.
type UpdateOptions struct {
	Title       *string
	Description *string
	Status      *Status
	Priority    *Priority
	Tags        *[]string
	Subtasks    *[]Subtask

	// Schedule replaces the task's schedule. RemoveSchedule clears it;
	// setting both is rejected.
	Schedule       *Schedule
	RemoveSchedule bool
}

// Update applies opts to the task with the given ID.
//
// Replacing the subtask slice carries a deliberate one-way cascade:
// when the new slice is non-empty and every entry is completed, the
// task is forced to done and completed_at is stamped. Unchecking a
// subtask later never reverts the status.
func (r *Repository) Update(id string, opts UpdateOptions) (*Task, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	if opts.Title != nil {
		if err := ValidateTitle(*opts.Title); err != nil {
			return nil, err
		}
	}
	if opts.Status != nil && !opts.Status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, *opts.Status)
	}
	if opts.Priority != nil && !opts.Priority.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPriority, *opts.Priority)
	}
	if opts.Tags != nil {
		if err := r.checkTagsExist(*opts.Tags); err != nil {
			return nil, err
		}
	}
	if opts.Schedule != nil && opts.RemoveSchedule {
		return nil, fmt.Errorf("cannot set and remove a schedule in the same update")
	}
	if err := opts.Schedule.Validate(); err != nil {
		return nil, err
	}

	t := &r.tasks[i]
	now := r.now()

	if opts.Title != nil {
		t.Title = *opts.Title
	}
	if opts.Description != nil {
		t.Description = *opts.Description
	}
	if opts.Status != nil {
		r.applyStatus(t, *opts.Status, now)
	}
	if opts.Priority != nil {
		t.Priority = *opts.Priority
	}
	if opts.Tags != nil {
		t.Tags = append([]string(nil), (*opts.Tags)...)
	}
	if opts.Schedule != nil {
		t.Schedule = opts.Schedule.clone()
	}
	if opts.RemoveSchedule {
		t.Schedule = nil
	}

	if opts.Subtasks != nil {
		t.Subtasks = r.fillSubtaskIDs(*opts.Subtasks, now)
		if allCompleted(t.Subtasks) {
			r.applyStatus(t, StatusDone, now)
		}
	}

	r.notify()

	updated := cloneTask(*t)
	return &updated, nil
}

// Delete removes the task with the given ID. Pomodoro sessions
// referencing it are left dangling; the ledger handles that on read.
func (r *Repository) Delete(id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}
	r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
	r.notify()
	return nil
}

// applyStatus sets the status and keeps completed_at consistent:
// entering done stamps it, leaving done clears it. Subtasks are not
// touched.
func (r *Repository) applyStatus(t *Task, status Status, now time.Time) {
	if t.Status == status {
		return
	}
	t.Status = status
	if status == StatusDone {
		completed := now
		t.CompletedAt = &completed
	} else {
		t.CompletedAt = nil
	}
}

func (r *Repository) checkTagsExist(tagIDs []string) error {
	for _, id := range tagIDs {
		if _, ok := r.TagByID(id); !ok {
			return fmt.Errorf("%w: %s", ErrUnknownTag, id)
		}
	}
	return nil
}

func (r *Repository) fillSubtaskIDs(subtasks []Subtask, now time.Time) []Subtask {
	out := append([]Subtask(nil), subtasks...)
	for i := range out {
		if out[i].ID == "" {
			out[i].ID = GenerateID(out[i].Title+fmt.Sprint(i), now)
		}
	}
	return out
}

func allCompleted(subtasks []Subtask) bool {
	if len(subtasks) == 0 {
		return false
	}
	for _, st := range subtasks {
		if !st.Completed {
			return false
		}
	}
	return true
}

func cloneTask(t Task) Task {
	out := t
	out.Tags = append([]string(nil), t.Tags...)
	out.Subtasks = append([]Subtask(nil), t.Subtasks...)
	out.Schedule = t.Schedule.clone()
	if t.CompletedAt != nil {
		completed := *t.CompletedAt
		out.CompletedAt = &completed
	}
	return out
}
