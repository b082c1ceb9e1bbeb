package task

import "fmt"

// ToggleCompletion flips the task between done and todo.
//
// Completing forces every subtask to completed and stamps completed_at;
// un-completing forces every subtask back to unchecked and clears it.
// Toggling twice restores the original status, but subtasks end up with
// the value implied by the second toggle, not their original per-item
// state.
func (r *Repository) ToggleCompletion(id string) (*Task, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	t := &r.tasks[i]
	now := r.now()

	if t.Status == StatusDone {
		r.applyStatus(t, StatusTodo, now)
		setAllSubtasks(t, false)
	} else {
		r.applyStatus(t, StatusDone, now)
		setAllSubtasks(t, true)
	}

	r.notify()

	toggled := cloneTask(*t)
	return &toggled, nil
}

// SetStatus assigns the status directly, as when a task is dragged
// between board columns. Subtasks are untouched; completed_at still
// follows the done transitions.
func (r *Repository) SetStatus(id string, status Status) (*Task, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s", ErrTaskNotFound, id)
	}

	t := &r.tasks[i]
	r.applyStatus(t, status, r.now())
	r.notify()

	moved := cloneTask(*t)
	return &moved, nil
}

func setAllSubtasks(t *Task, completed bool) {
	for i := range t.Subtasks {
		t.Subtasks[i].Completed = completed
	}
}
