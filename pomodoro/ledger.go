// Package pomodoro implements the work/break session ledger and the
// countdown timer that feeds it.
//
// The ledger is append-only: sessions are never edited or individually
// removed, only wiped wholesale with Clear. Sessions reference tasks by
// ID without owning them; a session whose task has since been deleted
// stays in the daily log but drops out of per-task groupings.
package pomodoro

import (
	"fmt"
	"sort"
	"time"

	"github.com/taskifyapp/taskify/internal/dates"
	"github.com/taskifyapp/taskify/internal/ids"
)

// Kind classifies a session as focused work or a break.
type Kind string

const (
	// KindWork is a focused work interval.
	KindWork Kind = "work"

	// KindBreak is a rest interval.
	KindBreak Kind = "break"
)

// IsValid returns true if the kind is a known valid value.
func (k Kind) IsValid() bool {
	return k == KindWork || k == KindBreak
}

// Session is one logged interval.
type Session struct {
	// ID is assigned by the ledger when the session is recorded.
	ID string `json:"id"`

	// Date is when the session finished.
	Date time.Time `json:"date"`

	// Duration is the interval length in minutes.
	Duration int `json:"duration"`

	Kind Kind `json:"kind"`

	// TaskID is a weak reference to the task worked on, empty when the
	// session wasn't tied to a task. It may dangle after task deletion;
	// the ledger never repairs it.
	TaskID string `json:"task_id,omitempty"`
}

// Settings holds the timer configuration, in minutes.
type Settings struct {
	WorkDuration           int `json:"work_duration"`
	BreakDuration          int `json:"break_duration"`
	LongBreakDuration      int `json:"long_break_duration"`
	SessionsUntilLongBreak int `json:"sessions_until_long_break"`
}

// DefaultSettings returns the classic pomodoro configuration.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:           25,
		BreakDuration:          5,
		LongBreakDuration:      15,
		SessionsUntilLongBreak: 4,
	}
}

// SettingsUpdate configures fields to update. Nil pointers mean "don't
// update this field".
type SettingsUpdate struct {
	WorkDuration           *int
	BreakDuration          *int
	LongBreakDuration      *int
	SessionsUntilLongBreak *int
}

// Ledger owns the session log and the timer settings.
type Ledger struct {
	sessions []Session
	settings Settings

	subscribers []func()
	now         func() time.Time
}

// NewLedger returns an empty ledger with default settings.
func NewLedger() *Ledger {
	return &Ledger{
		settings: DefaultSettings(),
		now:      time.Now,
	}
}

// Subscribe registers fn to be called after every completed mutation.
func (l *Ledger) Subscribe(fn func()) {
	l.subscribers = append(l.subscribers, fn)
}

func (l *Ledger) notify() {
	for _, fn := range l.subscribers {
		fn()
	}
}

// Settings returns the current timer settings.
func (l *Ledger) Settings() Settings {
	return l.settings
}

// UpdateSettings merges the update into the settings. Non-positive
// values are ignored rather than raised.
func (l *Ledger) UpdateSettings(update SettingsUpdate) Settings {
	apply := func(dst *int, src *int) {
		if src != nil && *src > 0 {
			*dst = *src
		}
	}
	apply(&l.settings.WorkDuration, update.WorkDuration)
	apply(&l.settings.BreakDuration, update.BreakDuration)
	apply(&l.settings.LongBreakDuration, update.LongBreakDuration)
	apply(&l.settings.SessionsUntilLongBreak, update.SessionsUntilLongBreak)

	l.notify()
	return l.settings
}

// AddSession appends a session with a freshly assigned ID and returns
// the recorded entry.
func (l *Ledger) AddSession(s Session) (Session, error) {
	if !s.Kind.IsValid() {
		return Session{}, fmt.Errorf("invalid session kind %q", s.Kind)
	}
	if s.Duration <= 0 {
		return Session{}, fmt.Errorf("session duration must be positive, got %d", s.Duration)
	}
	if s.Date.IsZero() {
		s.Date = l.now()
	}

	s.ID = ids.GenerateWithTimestamp(string(s.Kind)+s.TaskID, l.now(), ids.DefaultLength)
	l.sessions = append(l.sessions, s)
	l.notify()
	return s, nil
}

// Sessions returns a copy of the full log in append order.
func (l *Ledger) Sessions() []Session {
	return append([]Session(nil), l.sessions...)
}

// TodaySessions returns the sessions whose date falls on today's local
// calendar day, including ones whose task reference dangles.
func (l *Ledger) TodaySessions(now time.Time) []Session {
	var out []Session
	for _, s := range l.sessions {
		if dates.SameDay(s.Date, now) {
			out = append(out, s)
		}
	}
	return out
}

// TodayTotals returns today's session count and total minutes.
func (l *Ledger) TodayTotals(now time.Time) (sessions, minutes int) {
	for _, s := range l.TodaySessions(now) {
		sessions++
		minutes += s.Duration
	}
	return sessions, minutes
}

// TaskTotals aggregates a task's sessions.
type TaskTotals struct {
	TaskID   string
	Sessions int
	Minutes  int
}

// ByTask groups work sessions by task, summing durations. Sessions
// with no task reference, and sessions whose task no longer resolves
// through the exists callback, are excluded.
func (l *Ledger) ByTask(exists func(taskID string) bool) []TaskTotals {
	byID := make(map[string]*TaskTotals)
	for _, s := range l.sessions {
		if s.TaskID == "" || !exists(s.TaskID) {
			continue
		}
		totals, ok := byID[s.TaskID]
		if !ok {
			totals = &TaskTotals{TaskID: s.TaskID}
			byID[s.TaskID] = totals
		}
		totals.Sessions++
		totals.Minutes += s.Duration
	}

	out := make([]TaskTotals, 0, len(byID))
	for _, totals := range byID {
		out = append(out, *totals)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Minutes != out[j].Minutes {
			return out[i].Minutes > out[j].Minutes
		}
		return out[i].TaskID < out[j].TaskID
	})
	return out
}

// Clear wipes the session log. Settings survive.
func (l *Ledger) Clear() {
	l.sessions = nil
	l.notify()
}
