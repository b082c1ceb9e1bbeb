package analytics

import (
	"testing"
	"time"

	"github.com/taskifyapp/taskify/task"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

func doneTask(created, completed time.Time) task.Task {
	return task.Task{
		Title:       "done",
		Status:      task.StatusDone,
		Priority:    task.PriorityLow,
		CreatedAt:   created,
		CompletedAt: &completed,
	}
}

func TestSummarizeCounts(t *testing.T) {
	now := day(2024, 6, 15)
	completed := day(2024, 6, 14)
	tasks := []task.Task{
		doneTask(day(2024, 6, 10), completed),
		doneTask(day(2024, 6, 11), completed),
		{Title: "wip", Status: task.StatusInProgress, Priority: task.PriorityHigh, Tags: []string{"work"}},
		{Title: "later", Status: task.StatusTodo, Priority: task.PriorityHigh, Tags: []string{"work", "urgent"}},
	}

	s := Summarize(tasks, now)

	if s.Total != 4 || s.Completed != 2 || s.InProgress != 1 || s.Pending != 1 {
		t.Errorf("headline counts wrong: %+v", s)
	}
	if s.CompletionRate != 50 {
		t.Errorf("completion rate = %v, want 50", s.CompletionRate)
	}
	if s.ByStatus[task.StatusTodo] != 1 || s.ByStatus[task.StatusInProgress] != 1 || s.ByStatus[task.StatusDone] != 2 {
		t.Errorf("status counts wrong: %v", s.ByStatus)
	}
	if s.ByPriority[task.PriorityHigh] != 2 || s.ByPriority[task.PriorityLow] != 2 {
		t.Errorf("priority counts wrong: %v", s.ByPriority)
	}
	if s.ByTag["work"] != 2 || s.ByTag["urgent"] != 1 {
		t.Errorf("tag counts wrong: %v", s.ByTag)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil, day(2024, 6, 15))
	if s.CompletionRate != 0 {
		t.Errorf("completion rate for empty collection = %v, want 0", s.CompletionRate)
	}
	if s.Total != 0 || s.Overdue != 0 {
		t.Errorf("empty summary has counts: %+v", s)
	}
}

func TestCompletionRateAllDone(t *testing.T) {
	if got := CompletionRate(3, 3); got != 100 {
		t.Errorf("CompletionRate(3,3) = %v, want 100", got)
	}
}

func TestSummarizeOverdue(t *testing.T) {
	now := day(2024, 6, 15)
	tasks := []task.Task{
		// once, yesterday, not done -> overdue
		{Title: "a", Status: task.StatusTodo, Priority: task.PriorityLow, Schedule: task.Once(day(2024, 6, 14))},
		// once, yesterday, done -> never overdue
		doneWithSchedule(task.Once(day(2024, 6, 14)), now),
		// once, today -> not overdue (strictly before today)
		{Title: "c", Status: task.StatusTodo, Priority: task.PriorityLow, Schedule: task.Once(day(2024, 6, 15))},
		// bounded recurring ended last week -> overdue
		{Title: "d", Status: task.StatusInProgress, Priority: task.PriorityLow, Schedule: task.Daily(day(2024, 6, 1), dayPtr(2024, 6, 7))},
		// unbounded recurring started in the past: effective end is the
		// start date, so it counts as overdue once started
		{Title: "e", Status: task.StatusTodo, Priority: task.PriorityLow, Schedule: task.Daily(day(2024, 6, 1), nil)},
		// unscheduled -> never overdue
		{Title: "f", Status: task.StatusTodo, Priority: task.PriorityLow},
	}

	s := Summarize(tasks, now)
	if s.Overdue != 3 {
		t.Errorf("overdue = %d, want 3", s.Overdue)
	}
}

func doneWithSchedule(s *task.Schedule, completed time.Time) task.Task {
	t := doneTask(completed.AddDate(0, 0, -2), completed)
	t.Schedule = s
	return t
}

func TestPeriodSeriesWeek(t *testing.T) {
	now := day(2024, 6, 15) // Saturday
	tasks := []task.Task{
		{Title: "daily", Status: task.StatusTodo, Priority: task.PriorityLow, Schedule: task.Daily(day(2024, 6, 1), nil)},
		doneWithSchedule(task.Once(day(2024, 6, 12)), day(2024, 6, 12)),
	}

	buckets := PeriodSeries(tasks, PeriodWeek, now)

	if len(buckets) != 7 {
		t.Fatalf("week series has %d buckets, want 7", len(buckets))
	}
	if !buckets[0].Date.Equal(day(2024, 6, 9)) {
		t.Errorf("first bucket = %v, want 2024-06-09", buckets[0].Date)
	}
	if !buckets[6].Date.Equal(now) {
		t.Errorf("last bucket = %v, want today", buckets[6].Date)
	}

	for _, b := range buckets {
		wantTotal := 1
		wantDone := 0
		if b.Date.Equal(day(2024, 6, 12)) {
			wantTotal = 2
			wantDone = 1
		}
		if b.Total != wantTotal || b.Completed != wantDone {
			t.Errorf("bucket %v = {total %d done %d}, want {%d %d}",
				b.Date, b.Total, b.Completed, wantTotal, wantDone)
		}
	}
}

func TestPeriodSeriesMonth(t *testing.T) {
	now := day(2024, 6, 10)
	buckets := PeriodSeries(nil, PeriodMonth, now)

	if len(buckets) != 10 {
		t.Fatalf("month series has %d buckets, want 10 (June 1..10)", len(buckets))
	}
	if !buckets[0].Date.Equal(day(2024, 6, 1)) {
		t.Errorf("first bucket = %v, want June 1", buckets[0].Date)
	}
}

func TestPeriodSeriesYear(t *testing.T) {
	now := day(2024, 6, 10)
	buckets := PeriodSeries(nil, PeriodYear, now)

	if len(buckets) != 6 {
		t.Fatalf("year series has %d buckets, want 6 (Jan..Jun)", len(buckets))
	}
	for i, b := range buckets {
		want := day(2024, time.Month(i+1), 1)
		if !b.Date.Equal(want) {
			t.Errorf("bucket %d = %v, want %v", i, b.Date, want)
		}
	}
}

func TestPeriodSeriesUnknownPeriod(t *testing.T) {
	if buckets := PeriodSeries(nil, Period("decade"), day(2024, 6, 10)); buckets != nil {
		t.Errorf("unknown period = %v, want nil", buckets)
	}
}

func TestProductivity(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.Local)
	tasks := []task.Task{
		doneTask(now.AddDate(0, 0, -1), now),
		doneTask(now.AddDate(0, 0, -3), now),
		{Title: "recent todo", Status: task.StatusTodo, Priority: task.PriorityLow, CreatedAt: now.AddDate(0, 0, -2)},
		// outside the window
		doneTask(now.AddDate(0, 0, -10), now),
	}

	stats := Productivity(tasks, now)

	if stats.Created != 3 {
		t.Errorf("created = %d, want 3", stats.Created)
	}
	if stats.Completed != 2 {
		t.Errorf("completed = %d, want 2", stats.Completed)
	}
	if stats.PerDay != 0.4 {
		t.Errorf("per day = %v, want 0.4 (3/7 rounded to one decimal)", stats.PerDay)
	}
}

func TestProductivityEmptyWindow(t *testing.T) {
	now := day(2024, 6, 15)
	stats := Productivity(nil, now)
	if stats.CompletionRate != 0 || stats.PerDay != 0 {
		t.Errorf("empty window stats = %+v, want zeros", stats)
	}
}

func TestDurations(t *testing.T) {
	tasks := []task.Task{
		doneTask(day(2024, 6, 1), day(2024, 6, 4)),  // 3 days
		doneTask(day(2024, 6, 1), day(2024, 6, 2)),  // 1 day
		doneTask(day(2024, 6, 1), day(2024, 6, 10)), // 9 days
		// done but no completion timestamp: excluded
		{Title: "x", Status: task.StatusDone, Priority: task.PriorityLow, CreatedAt: day(2024, 6, 1)},
		// not done: excluded
		{Title: "y", Status: task.StatusTodo, Priority: task.PriorityLow, CreatedAt: day(2024, 6, 1)},
	}

	stats := Durations(tasks)

	if !stats.HasData {
		t.Fatal("expected duration data")
	}
	if stats.Fastest != 1 || stats.Slowest != 9 {
		t.Errorf("fastest/slowest = %d/%d, want 1/9", stats.Fastest, stats.Slowest)
	}
	if stats.Average != 4 {
		t.Errorf("average = %d, want 4 (13/3 rounded)", stats.Average)
	}
}

func TestDurationsClampNegative(t *testing.T) {
	// completed before created (clock skew): clamps to zero
	stats := Durations([]task.Task{doneTask(day(2024, 6, 10), day(2024, 6, 5))})
	if !stats.HasData || stats.Fastest != 0 || stats.Average != 0 {
		t.Errorf("negative duration not clamped: %+v", stats)
	}
}

func TestDurationsNoData(t *testing.T) {
	stats := Durations([]task.Task{
		{Title: "x", Status: task.StatusTodo, Priority: task.PriorityLow},
	})
	if stats.HasData {
		t.Error("expected the no-data sentinel for zero eligible tasks")
	}

	if Durations(nil).HasData {
		t.Error("expected the no-data sentinel for an empty collection")
	}
}

func TestRecent(t *testing.T) {
	tasks := []task.Task{
		{ID: "old", CreatedAt: day(2024, 6, 1)},
		{ID: "newest", CreatedAt: day(2024, 6, 10)},
		{ID: "mid", CreatedAt: day(2024, 6, 5)},
	}

	got := Recent(tasks, 2)
	if len(got) != 2 || got[0].ID != "newest" || got[1].ID != "mid" {
		t.Errorf("Recent = %v", got)
	}

	// input order must be untouched
	if tasks[0].ID != "old" {
		t.Error("Recent must not reorder its input")
	}
}

func TestUpcoming(t *testing.T) {
	now := day(2024, 6, 10)
	tasks := []task.Task{
		{ID: "today", Schedule: task.Once(day(2024, 6, 10))},
		{ID: "tomorrow", Schedule: task.Once(day(2024, 6, 11))},
		{ID: "unscheduled"},
	}

	got := Upcoming(tasks, now, 5)
	if len(got) != 1 || got[0].ID != "today" {
		t.Errorf("Upcoming = %v, want [today]", got)
	}
}
