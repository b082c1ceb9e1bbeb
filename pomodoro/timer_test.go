package pomodoro

import (
	"testing"
	"time"
)

// runOut ticks the timer through the rest of the current interval.
func runOut(t *testing.T, timer *Timer, now time.Time) {
	t.Helper()
	timer.Start()
	remaining := timer.Remaining()
	for i := 0; i < remaining; i++ {
		if err := timer.Tick(now); err != nil {
			t.Fatalf("Tick: %v", err)
		}
	}
	if timer.Running() {
		t.Fatal("timer still running after interval should have completed")
	}
}

func TestTimerInitialState(t *testing.T) {
	timer := NewTimer(NewLedger())

	if timer.Phase() != PhaseWork {
		t.Errorf("expected initial phase %q, got %q", PhaseWork, timer.Phase())
	}
	if timer.Remaining() != 25*60 {
		t.Errorf("expected %d seconds remaining, got %d", 25*60, timer.Remaining())
	}
	if timer.Running() {
		t.Error("expected new timer to be stopped")
	}
}

func TestTickRequiresRunning(t *testing.T) {
	timer := NewTimer(NewLedger())

	timer.Tick(at("2024-06-14", 9))
	if timer.Remaining() != 25*60 {
		t.Errorf("expected paused timer to hold at %d, got %d", 25*60, timer.Remaining())
	}
}

func TestWorkCompletionLogsSessionAndStops(t *testing.T) {
	ledger := NewLedger()
	timer := NewTimer(ledger)
	timer.SetTask("abc123")
	now := at("2024-06-14", 9)

	runOut(t, timer, now)

	if timer.Running() {
		t.Error("expected timer to stop after the interval")
	}
	if timer.Phase() != PhaseShortBreak {
		t.Errorf("expected phase %q, got %q", PhaseShortBreak, timer.Phase())
	}
	if timer.Remaining() != 5*60 {
		t.Errorf("expected %d seconds of break loaded, got %d", 5*60, timer.Remaining())
	}

	sessions := ledger.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 logged session, got %d", len(sessions))
	}
	s := sessions[0]
	if s.Kind != KindWork {
		t.Errorf("expected kind %q, got %q", KindWork, s.Kind)
	}
	if s.Duration != 25 {
		t.Errorf("expected duration 25, got %d", s.Duration)
	}
	if s.TaskID != "abc123" {
		t.Errorf("expected task %q, got %q", "abc123", s.TaskID)
	}
	if !s.Date.Equal(now) {
		t.Errorf("expected session dated %v, got %v", now, s.Date)
	}
}

func TestBreakCompletionReturnsToWork(t *testing.T) {
	ledger := NewLedger()
	timer := NewTimer(ledger)
	now := at("2024-06-14", 9)

	runOut(t, timer, now) // work
	runOut(t, timer, now) // short break

	if timer.Phase() != PhaseWork {
		t.Errorf("expected phase %q after break, got %q", PhaseWork, timer.Phase())
	}

	sessions := ledger.Sessions()
	if len(sessions) != 2 {
		t.Fatalf("expected 2 logged sessions, got %d", len(sessions))
	}
	if sessions[1].Kind != KindBreak {
		t.Errorf("expected kind %q, got %q", KindBreak, sessions[1].Kind)
	}
	if sessions[1].Duration != 5 {
		t.Errorf("expected duration 5, got %d", sessions[1].Duration)
	}
	if sessions[1].TaskID != "" {
		t.Errorf("expected break session untied to a task, got %q", sessions[1].TaskID)
	}
}

func TestLongBreakCadence(t *testing.T) {
	ledger := NewLedger()
	timer := NewTimer(ledger)
	timer.SetTask("abc123")
	now := at("2024-06-14", 9)

	// The fourth finished work interval earns the long break.
	for i := 0; i < 3; i++ {
		runOut(t, timer, now) // work
		if timer.Phase() != PhaseShortBreak {
			t.Fatalf("interval %d: expected %q, got %q", i+1, PhaseShortBreak, timer.Phase())
		}
		runOut(t, timer, now) // break
	}
	runOut(t, timer, now)

	if timer.Phase() != PhaseLongBreak {
		t.Errorf("expected phase %q, got %q", PhaseLongBreak, timer.Phase())
	}
	if timer.Remaining() != 15*60 {
		t.Errorf("expected %d seconds of long break loaded, got %d", 15*60, timer.Remaining())
	}
	if timer.CompletedWork() != 4 {
		t.Errorf("expected 4 completed work intervals, got %d", timer.CompletedWork())
	}
}

func TestPauseAndResume(t *testing.T) {
	timer := NewTimer(NewLedger())
	now := at("2024-06-14", 9)

	timer.Start()
	timer.Tick(now)
	timer.Tick(now)
	timer.Pause()
	timer.Tick(now)

	if got := timer.Remaining(); got != 25*60-2 {
		t.Errorf("expected %d seconds remaining, got %d", 25*60-2, got)
	}

	timer.Start()
	timer.Tick(now)
	if got := timer.Remaining(); got != 25*60-3 {
		t.Errorf("expected %d seconds remaining, got %d", 25*60-3, got)
	}
}

func TestResetRestartsCadence(t *testing.T) {
	ledger := NewLedger()
	timer := NewTimer(ledger)
	now := at("2024-06-14", 9)

	runOut(t, timer, now)
	timer.Reset()

	if timer.Phase() != PhaseWork {
		t.Errorf("expected phase %q, got %q", PhaseWork, timer.Phase())
	}
	if timer.Remaining() != 25*60 {
		t.Errorf("expected a fresh work interval, got %d seconds", timer.Remaining())
	}
	if timer.CompletedWork() != 0 {
		t.Errorf("expected cadence counter reset, got %d", timer.CompletedWork())
	}
	if len(ledger.Sessions()) != 1 {
		t.Errorf("expected logged sessions to survive reset, got %d", len(ledger.Sessions()))
	}
}

func TestTimerHonorsUpdatedSettings(t *testing.T) {
	ledger := NewLedger()
	ledger.UpdateSettings(SettingsUpdate{WorkDuration: intPtr(1)})
	timer := NewTimer(ledger)
	now := at("2024-06-14", 9)

	if timer.Remaining() != 60 {
		t.Fatalf("expected %d seconds, got %d", 60, timer.Remaining())
	}

	runOut(t, timer, now)

	sessions := ledger.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected 1 logged session, got %d", len(sessions))
	}
	if sessions[0].Duration != 1 {
		t.Errorf("expected duration 1, got %d", sessions[0].Duration)
	}
}
