package pomodoro

import (
	"encoding/json"
	"fmt"

	"github.com/taskifyapp/taskify/internal/storage"
)

// StoreNamespace is the storage namespace for the pomodoro ledger.
const StoreNamespace = "pomodoro-store"

// SnapshotVersion is the current snapshot schema version.
const SnapshotVersion = 1

// Snapshot is the persisted form of a ledger.
type Snapshot struct {
	Version  int       `json:"version"`
	Sessions []Session `json:"sessions"`
	Settings Settings  `json:"settings"`
}

// LoadLedger reads the ledger snapshot from the store. A missing
// snapshot yields an empty ledger with default settings and a nil
// error. An unreadable or corrupt snapshot also yields that fallback,
// with the underlying error returned so the caller can log it.
func LoadLedger(store storage.Store) (*Ledger, error) {
	ledger := NewLedger()

	data, err := store.Load(StoreNamespace)
	if err != nil {
		return ledger, fmt.Errorf("load %s: %w", StoreNamespace, err)
	}
	if data == nil {
		return ledger, nil
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return ledger, fmt.Errorf("unmarshal %s: %w", StoreNamespace, err)
	}

	ledger.sessions = snapshot.Sessions
	ledger.settings = sanitizeSettings(snapshot.Settings)
	return ledger, nil
}

// sanitizeSettings replaces non-positive fields with their defaults.
// A hand-edited snapshot must not be able to stall the timer or make
// it log zero-duration sessions.
func sanitizeSettings(s Settings) Settings {
	defaults := DefaultSettings()
	if s.WorkDuration <= 0 {
		s.WorkDuration = defaults.WorkDuration
	}
	if s.BreakDuration <= 0 {
		s.BreakDuration = defaults.BreakDuration
	}
	if s.LongBreakDuration <= 0 {
		s.LongBreakDuration = defaults.LongBreakDuration
	}
	if s.SessionsUntilLongBreak <= 0 {
		s.SessionsUntilLongBreak = defaults.SessionsUntilLongBreak
	}
	return s
}

// SnapshotData marshals the current ledger state.
func (l *Ledger) SnapshotData() ([]byte, error) {
	snapshot := Snapshot{
		Version:  SnapshotVersion,
		Sessions: l.sessions,
		Settings: l.settings,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", StoreNamespace, err)
	}
	return data, nil
}

// SaveTo writes the ledger snapshot to the store.
func (l *Ledger) SaveTo(store storage.Store) error {
	data, err := l.SnapshotData()
	if err != nil {
		return err
	}
	if err := store.Save(StoreNamespace, data); err != nil {
		return fmt.Errorf("save %s: %w", StoreNamespace, err)
	}
	return nil
}
