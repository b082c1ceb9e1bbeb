package task

import (
	"errors"
	"testing"
	"time"
)

func TestValidateTitle(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantErr error
	}{
		{"valid", "Fix bug", nil},
		{"valid with inner spaces", "  Fix bug  ", nil},
		{"empty", "", ErrEmptyTitle},
		{"whitespace", "   ", ErrEmptyTitle},
		{"tabs and newlines", "\t\n", ErrEmptyTitle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTitle(tt.title)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTitle(%q) unexpected error: %v", tt.title, err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTitle(%q) = %v, want %v", tt.title, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTask(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name    string
		task    Task
		wantErr error
	}{
		{
			name: "valid todo",
			task: Task{ID: "abc12345", Title: "Fix bug", Status: StatusTodo, Priority: PriorityLow, CreatedAt: now},
		},
		{
			name: "valid done",
			task: Task{ID: "abc12345", Title: "Fix bug", Status: StatusDone, Priority: PriorityHigh, CreatedAt: now, CompletedAt: &now},
		},
		{
			name:    "blank title",
			task:    Task{Title: " ", Status: StatusTodo, Priority: PriorityLow},
			wantErr: ErrEmptyTitle,
		},
		{
			name:    "bad status",
			task:    Task{Title: "x", Status: "paused", Priority: PriorityLow},
			wantErr: ErrInvalidStatus,
		},
		{
			name:    "bad priority",
			task:    Task{Title: "x", Status: StatusTodo, Priority: "critical"},
			wantErr: ErrInvalidPriority,
		},
		{
			name:    "done without completed_at",
			task:    Task{Title: "x", Status: StatusDone, Priority: PriorityLow},
			wantErr: ErrCompletedAtMismatch,
		},
		{
			name:    "todo with completed_at",
			task:    Task{Title: "x", Status: StatusTodo, Priority: PriorityLow, CompletedAt: &now},
			wantErr: ErrCompletedAtMismatch,
		},
		{
			name: "weekly schedule without weekdays",
			task: Task{
				Title: "x", Status: StatusTodo, Priority: PriorityLow,
				Schedule: &Schedule{Kind: KindWeekly, StartDate: now},
			},
			wantErr: ErrEmptyWeekDays,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTask(&tt.task)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateTask unexpected error: %v", err)
				}
			} else if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateTask = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestStatusIsValid(t *testing.T) {
	for _, s := range ValidStatuses() {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if Status("deleted").IsValid() {
		t.Error("unknown status should be invalid")
	}
}

func TestPriorityIsValid(t *testing.T) {
	for _, p := range ValidPriorities() {
		if !p.IsValid() {
			t.Errorf("%q should be valid", p)
		}
	}
	if Priority("max").IsValid() {
		t.Error("unknown priority should be invalid")
	}
}

func TestPriorityRankOrdersHighFirst(t *testing.T) {
	if !(PriorityRank(PriorityHigh) < PriorityRank(PriorityMedium) &&
		PriorityRank(PriorityMedium) < PriorityRank(PriorityLow)) {
		t.Error("priority rank must order high before medium before low")
	}
}
