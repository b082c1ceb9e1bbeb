// Package analytics derives aggregate views from the task collection:
// counts, completion rates, time-series buckets, and duration figures.
//
// Every function here is pure and recomputes from the tasks it is
// handed. Nothing is cached; at personal-task-list scale the
// O(buckets x tasks) series cost is irrelevant, and a memoization layer
// keyed on a repository version counter can be bolted on later without
// changing any result.
package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/taskifyapp/taskify/internal/dates"
	"github.com/taskifyapp/taskify/task"
)

// Summary is the dashboard's headline view of the task collection.
type Summary struct {
	Total      int
	Completed  int
	InProgress int
	Pending    int

	ByStatus   map[task.Status]int
	ByPriority map[task.Priority]int
	ByTag      map[string]int

	// Overdue counts unfinished tasks whose schedule can no longer
	// occur: the effective end date lies strictly before today.
	Overdue int

	// CompletionRate is completed/total as a percentage, 0 for an
	// empty collection.
	CompletionRate float64
}

// Summarize computes the Summary for the given tasks as of now.
func Summarize(tasks []task.Task, now time.Time) Summary {
	s := Summary{
		ByStatus:   make(map[task.Status]int),
		ByPriority: make(map[task.Priority]int),
		ByTag:      make(map[string]int),
	}

	today := dates.Midnight(now)
	for i := range tasks {
		t := &tasks[i]
		s.Total++
		s.ByStatus[t.Status]++
		s.ByPriority[t.Priority]++
		for _, tagID := range t.Tags {
			s.ByTag[tagID]++
		}

		switch t.Status {
		case task.StatusDone:
			s.Completed++
		case task.StatusInProgress:
			s.InProgress++
		case task.StatusTodo:
			s.Pending++
		}

		if t.Status != task.StatusDone && t.Schedule != nil &&
			t.Schedule.EffectiveEnd().Before(today) {
			s.Overdue++
		}
	}

	s.CompletionRate = CompletionRate(s.Completed, s.Total)
	return s
}

// CompletionRate returns completed/total as a percentage, 0 when total
// is zero.
func CompletionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// Period selects a time-series range.
type Period string

const (
	// PeriodWeek covers the trailing 7 days in daily buckets.
	PeriodWeek Period = "week"

	// PeriodMonth covers the current month to date in daily buckets.
	PeriodMonth Period = "month"

	// PeriodYear covers the current year to date in monthly buckets.
	PeriodYear Period = "year"
)

// ValidPeriods returns all valid period values.
func ValidPeriods() []Period {
	return []Period{PeriodWeek, PeriodMonth, PeriodYear}
}

// IsValid returns true if the period is a known valid value.
func (p Period) IsValid() bool {
	for _, valid := range ValidPeriods() {
		if p == valid {
			return true
		}
	}
	return false
}

// Bucket is one time-series data point: the tasks occurring on a date
// and how many of them are done.
type Bucket struct {
	Date      time.Time
	Total     int
	Completed int
}

// PeriodSeries generates ordered buckets from the period's start
// through today inclusive. Each bucket runs the filter engine with its
// date, so recurring schedules contribute to every day they occur on.
func PeriodSeries(tasks []task.Task, period Period, now time.Time) []Bucket {
	today := dates.Midnight(now)

	var start time.Time
	monthly := false
	switch period {
	case PeriodWeek:
		start = today.AddDate(0, 0, -6)
	case PeriodMonth:
		start = dates.StartOfMonth(today)
	case PeriodYear:
		start = dates.StartOfYear(today)
		monthly = true
	default:
		return nil
	}

	var buckets []Bucket
	for cur := start; !cur.After(today); {
		date := cur
		occurring := task.Apply(tasks, task.Filter{Date: &date})

		completed := 0
		for _, t := range occurring {
			if t.Status == task.StatusDone {
				completed++
			}
		}
		buckets = append(buckets, Bucket{Date: cur, Total: len(occurring), Completed: completed})

		if monthly {
			cur = cur.AddDate(0, 1, 0)
		} else {
			cur = cur.AddDate(0, 0, 1)
		}
	}

	return buckets
}

// ProductivityStats summarizes the trailing seven days of task
// creation.
type ProductivityStats struct {
	Created        int
	Completed      int
	CompletionRate float64

	// PerDay is the average number of tasks created per day, rounded
	// to one decimal place.
	PerDay float64
}

// Productivity computes stats over tasks created in the trailing 7-day
// window. The window is by creation time, not schedule.
func Productivity(tasks []task.Task, now time.Time) ProductivityStats {
	windowStart := now.AddDate(0, 0, -7)

	var stats ProductivityStats
	for i := range tasks {
		t := &tasks[i]
		if t.CreatedAt.Before(windowStart) || t.CreatedAt.After(now) {
			continue
		}
		stats.Created++
		if t.Status == task.StatusDone {
			stats.Completed++
		}
	}

	stats.CompletionRate = CompletionRate(stats.Completed, stats.Created)
	stats.PerDay = math.Round(float64(stats.Created)/7*10) / 10
	return stats
}

// DurationStats reports how long completed tasks took, in whole days
// from creation to completion. HasData is false when no completed task
// carries a completion timestamp.
type DurationStats struct {
	Average int
	Fastest int
	Slowest int
	HasData bool
}

// Durations computes duration stats over done tasks with a completion
// timestamp. Durations floor to whole days and clamp at zero.
func Durations(tasks []task.Task) DurationStats {
	var durations []int
	for i := range tasks {
		t := &tasks[i]
		if t.Status != task.StatusDone || t.CompletedAt == nil {
			continue
		}
		days := int(t.CompletedAt.Sub(t.CreatedAt).Hours() / 24)
		if days < 0 {
			days = 0
		}
		durations = append(durations, days)
	}

	if len(durations) == 0 {
		return DurationStats{}
	}

	stats := DurationStats{HasData: true, Fastest: durations[0], Slowest: durations[0]}
	sum := 0
	for _, d := range durations {
		sum += d
		if d < stats.Fastest {
			stats.Fastest = d
		}
		if d > stats.Slowest {
			stats.Slowest = d
		}
	}
	stats.Average = int(math.Round(float64(sum) / float64(len(durations))))
	return stats
}

// Recent returns up to n tasks ordered newest-first by creation time.
func Recent(tasks []task.Task, n int) []task.Task {
	sorted := append([]task.Task(nil), tasks...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n > 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// Upcoming returns up to n tasks occurring today, in collection order.
func Upcoming(tasks []task.Task, now time.Time, n int) []task.Task {
	today := dates.Midnight(now)
	occurring := task.Apply(tasks, task.Filter{Date: &today})
	if n > 0 && len(occurring) > n {
		occurring = occurring[:n]
	}
	return occurring
}
