package task

import (
	"fmt"
	"time"

	"github.com/taskifyapp/taskify/internal/dates"
)

// ScheduleKind discriminates the schedule union.
type ScheduleKind string

const (
	// KindOnce occurs on exactly one date.
	KindOnce ScheduleKind = "once"

	// KindDaily occurs every day within the schedule's range.
	KindDaily ScheduleKind = "daily"

	// KindWeekly occurs on selected weekdays within the range.
	KindWeekly ScheduleKind = "weekly"

	// KindMonthly occurs on the start date's day-of-month within the range.
	KindMonthly ScheduleKind = "monthly"
)

// ValidScheduleKinds returns all valid schedule kinds.
func ValidScheduleKinds() []ScheduleKind {
	return []ScheduleKind{KindOnce, KindDaily, KindWeekly, KindMonthly}
}

// IsValid returns true if the kind is a known valid value.
func (k ScheduleKind) IsValid() bool {
	for _, valid := range ValidScheduleKinds() {
		if k == valid {
			return true
		}
	}
	return false
}

// IsRecurring reports whether the kind repeats over a date range.
func (k ScheduleKind) IsRecurring() bool {
	switch k {
	case KindDaily, KindWeekly, KindMonthly:
		return true
	default:
		return false
	}
}

// Schedule is a task's temporal occurrence rule. Use the Once, Daily,
// Weekly, and Monthly constructors; they reject invalid combinations so
// that the resolver never sees them.
//
// StartTime and EndTime are optional HH:MM display strings. They are
// never consulted by occurrence tests.
type Schedule struct {
	Kind ScheduleKind `json:"kind"`

	// Date is the occurrence date for once schedules.
	Date time.Time `json:"date,omitempty"`

	// StartDate is the first day a recurring schedule is active.
	StartDate time.Time `json:"start_date,omitempty"`

	// EndDate is the last day a recurring schedule is active.
	// Nil means unbounded into the future.
	EndDate *time.Time `json:"end_date,omitempty"`

	// WeekDays holds the active weekdays for weekly schedules
	// (time.Sunday == 0). Always non-empty for weekly schedules.
	WeekDays []time.Weekday `json:"week_days,omitempty"`

	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`
}

// Once returns a schedule occurring only on date.
func Once(date time.Time) *Schedule {
	return &Schedule{Kind: KindOnce, Date: date}
}

// Daily returns a schedule occurring every day from start.
// A nil end means the schedule never expires.
func Daily(start time.Time, end *time.Time) *Schedule {
	return &Schedule{Kind: KindDaily, StartDate: start, EndDate: end}
}

// Weekly returns a schedule occurring on the given weekdays from start.
// At least one weekday is required.
func Weekly(start time.Time, end *time.Time, weekDays []time.Weekday) (*Schedule, error) {
	if len(weekDays) == 0 {
		return nil, ErrEmptyWeekDays
	}
	for _, wd := range weekDays {
		if wd < time.Sunday || wd > time.Saturday {
			return nil, fmt.Errorf("%w: %d", ErrInvalidWeekday, wd)
		}
	}
	return &Schedule{Kind: KindWeekly, StartDate: start, EndDate: end, WeekDays: weekDays}, nil
}

// Monthly returns a schedule occurring on start's day-of-month.
// When that day does not exist in a month (say, the 31st in February),
// the occurrence is skipped rather than moved.
func Monthly(start time.Time, end *time.Time) *Schedule {
	return &Schedule{Kind: KindMonthly, StartDate: start, EndDate: end}
}

// Validate checks a schedule for invalid combinations. It exists for
// snapshots loaded from storage; schedules built through the
// constructors are valid already.
func (s *Schedule) Validate() error {
	if s == nil {
		return nil
	}
	if !s.Kind.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidScheduleKind, s.Kind)
	}
	if s.Kind == KindWeekly {
		if len(s.WeekDays) == 0 {
			return ErrEmptyWeekDays
		}
		for _, wd := range s.WeekDays {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("%w: %d", ErrInvalidWeekday, wd)
			}
		}
	}
	return nil
}

// OccursOn reports whether the schedule is active on the given calendar
// date. Both sides are normalized to local midnight first; time-of-day
// never affects the result. A nil schedule never occurs.
func (s *Schedule) OccursOn(date time.Time) bool {
	if s == nil {
		return false
	}

	day := dates.Midnight(date)

	if s.Kind == KindOnce {
		return dates.Midnight(s.Date).Equal(day)
	}

	start := dates.Midnight(s.StartDate)
	if day.Before(start) {
		return false
	}
	if s.EndDate != nil && day.After(dates.Midnight(*s.EndDate)) {
		return false
	}

	switch s.Kind {
	case KindDaily:
		return true
	case KindWeekly:
		for _, wd := range s.WeekDays {
			if day.Weekday() == wd {
				return true
			}
		}
		return false
	case KindMonthly:
		return day.Day() == start.Day()
	default:
		return false
	}
}

// EffectiveEnd returns the date after which the schedule can no longer
// occur: the date itself for once schedules, the end date for bounded
// recurring schedules, and the start date for unbounded ones. The
// overdue computation in the analytics package relies on this.
func (s *Schedule) EffectiveEnd() time.Time {
	if s.Kind == KindOnce {
		return dates.Midnight(s.Date)
	}
	if s.EndDate != nil {
		return dates.Midnight(*s.EndDate)
	}
	return dates.Midnight(s.StartDate)
}

// clone returns a deep copy of the schedule.
func (s *Schedule) clone() *Schedule {
	if s == nil {
		return nil
	}
	out := *s
	if s.EndDate != nil {
		end := *s.EndDate
		out.EndDate = &end
	}
	if s.WeekDays != nil {
		out.WeekDays = append([]time.Weekday(nil), s.WeekDays...)
	}
	return &out
}
