package pomodoro

import "time"

// Phase is the timer's current interval type.
type Phase string

const (
	PhaseWork       Phase = "work"
	PhaseShortBreak Phase = "short-break"
	PhaseLongBreak  Phase = "long-break"
)

// Timer runs the pomodoro countdown against a ledger. It does not keep
// its own clock; the caller drives it with Tick, once per second.
type Timer struct {
	ledger *Ledger

	phase     Phase
	remaining int
	running   bool
	taskID    string

	// completedWork counts finished work intervals since Reset, used to
	// decide when the long break is due.
	completedWork int
}

// NewTimer returns a stopped timer at the start of a work interval.
func NewTimer(ledger *Ledger) *Timer {
	t := &Timer{ledger: ledger}
	t.resetPhase(PhaseWork)
	return t
}

// Phase returns the current interval type.
func (t *Timer) Phase() Phase { return t.phase }

// Remaining returns the seconds left in the current interval.
func (t *Timer) Remaining() int { return t.remaining }

// Running reports whether the countdown is live.
func (t *Timer) Running() bool { return t.running }

// CompletedWork returns the work intervals finished since Reset.
func (t *Timer) CompletedWork() int { return t.completedWork }

// SetTask associates upcoming work sessions with a task. An empty id
// detaches the timer.
func (t *Timer) SetTask(taskID string) {
	t.taskID = taskID
}

// Start resumes the countdown.
func (t *Timer) Start() {
	t.running = true
}

// Pause suspends the countdown without losing progress.
func (t *Timer) Pause() {
	t.running = false
}

// Reset stops the timer and returns it to a fresh work interval. The
// long-break cadence starts over; logged sessions are untouched.
func (t *Timer) Reset() {
	t.running = false
	t.completedWork = 0
	t.resetPhase(PhaseWork)
}

// Tick advances the countdown by one second. When an interval reaches
// zero the finished session is logged, the next phase is loaded, and
// the timer stops so the user decides when to begin it. The error is
// the ledger's, when logging the finished session fails; the phase
// transition happens regardless.
func (t *Timer) Tick(now time.Time) error {
	if !t.running || t.remaining <= 0 {
		return nil
	}
	t.remaining--
	if t.remaining > 0 {
		return nil
	}
	return t.completePhase(now)
}

func (t *Timer) completePhase(now time.Time) error {
	t.running = false
	settings := t.ledger.Settings()

	var err error
	switch t.phase {
	case PhaseWork:
		t.completedWork++
		_, err = t.ledger.AddSession(Session{
			Date:     now,
			Duration: settings.WorkDuration,
			Kind:     KindWork,
			TaskID:   t.taskID,
		})
		if settings.SessionsUntilLongBreak > 0 && t.completedWork%settings.SessionsUntilLongBreak == 0 {
			t.resetPhase(PhaseLongBreak)
		} else {
			t.resetPhase(PhaseShortBreak)
		}
	case PhaseShortBreak, PhaseLongBreak:
		duration := settings.BreakDuration
		if t.phase == PhaseLongBreak {
			duration = settings.LongBreakDuration
		}
		_, err = t.ledger.AddSession(Session{
			Date:     now,
			Duration: duration,
			Kind:     KindBreak,
		})
		t.resetPhase(PhaseWork)
	}
	return err
}

func (t *Timer) resetPhase(phase Phase) {
	settings := t.ledger.Settings()
	t.phase = phase
	switch phase {
	case PhaseWork:
		t.remaining = settings.WorkDuration * 60
	case PhaseShortBreak:
		t.remaining = settings.BreakDuration * 60
	case PhaseLongBreak:
		t.remaining = settings.LongBreakDuration * 60
	}
}
