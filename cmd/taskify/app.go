package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"github.com/taskifyapp/taskify/internal/config"
	"github.com/taskifyapp/taskify/internal/storage"
	"github.com/taskifyapp/taskify/pomodoro"
	"github.com/taskifyapp/taskify/task"
)

// app wires configuration, logging, storage, and the domain stores
// together for the duration of one command.
type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	store  storage.Store
	repo   *task.Repository
	ledger *pomodoro.Ledger

	logFile *os.File

	// saves tracks in-flight background snapshot writes so Close can
	// drain them before the process exits.
	saves   sync.WaitGroup
	saveMu  sync.Mutex
	saveSeq uint64
	written map[string]uint64
}

// openApp loads config, opens the snapshot store, and restores both
// domain stores. Mutations persist in the background; snapshot
// failures are logged, never raised.
func openApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg, written: map[string]uint64{}}

	if err := os.MkdirAll(cfg.Storage.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	if err := a.openLogger(); err != nil {
		return nil, err
	}

	if err := a.openStore(); err != nil {
		a.Close()
		return nil, err
	}

	a.repo, err = task.LoadRepository(a.store)
	if err != nil {
		a.log.Warn().Err(err).Msg("task snapshot unreadable, starting from defaults")
	}
	a.ledger, err = pomodoro.LoadLedger(a.store)
	if err != nil {
		a.log.Warn().Err(err).Msg("pomodoro snapshot unreadable, starting from defaults")
	}

	a.applyPomodoroConfig()

	a.repo.Subscribe(func() {
		a.persist(task.StoreNamespace, a.repo.SnapshotData)
	})
	a.ledger.Subscribe(func() {
		a.persist(pomodoro.StoreNamespace, a.ledger.SnapshotData)
	})

	return a, nil
}

func (a *app) openLogger() error {
	if err := os.MkdirAll(filepath.Dir(a.cfg.Log.File), 0o755); err != nil {
		return fmt.Errorf("create log dir: %w", err)
	}

	logFile, err := os.OpenFile(a.cfg.Log.File, os.O_RDWR|os.O_CREATE|os.O_APPEND, fs.FileMode(0o644))
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	a.logFile = logFile

	level, err := zerolog.ParseLevel(a.cfg.Log.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	a.log = zerolog.New(zerolog.ConsoleWriter{
		Out: logFile, TimeFormat: "2006-01-02_15:04:05", NoColor: true,
	}).Level(level).With().Timestamp().Logger()
	return nil
}

func (a *app) openStore() error {
	switch a.cfg.Storage.Backend {
	case config.BackendSQLite:
		store, err := storage.NewSQLiteStore(filepath.Join(a.cfg.Storage.Dir, "taskify.db"))
		if err != nil {
			return fmt.Errorf("open sqlite store: %w", err)
		}
		a.store = store
	default:
		a.store = storage.NewFileStore(a.cfg.Storage.Dir)
	}
	return nil
}

// applyPomodoroConfig layers config.toml timer overrides on top of the
// persisted settings. It runs before the save subscription so loading
// alone never rewrites the snapshot.
func (a *app) applyPomodoroConfig() {
	var update pomodoro.SettingsUpdate
	if v := a.cfg.Pomodoro.WorkDuration; v > 0 {
		update.WorkDuration = &v
	}
	if v := a.cfg.Pomodoro.BreakDuration; v > 0 {
		update.BreakDuration = &v
	}
	if v := a.cfg.Pomodoro.LongBreakDuration; v > 0 {
		update.LongBreakDuration = &v
	}
	if v := a.cfg.Pomodoro.SessionsUntilLongBreak; v > 0 {
		update.SessionsUntilLongBreak = &v
	}
	a.ledger.UpdateSettings(update)
}

// persist snapshots the namespace synchronously and writes it out in the
// background, so a slow disk never blocks the mutation that triggered it.
// A sequence number per namespace keeps a reordered goroutine from
// clobbering a newer snapshot with an older one.
func (a *app) persist(namespace string, marshal func() ([]byte, error)) {
	data, err := marshal()
	if err != nil {
		a.log.Error().Err(err).Str("store", namespace).Msg("snapshot encode failed")
		return
	}

	a.saveSeq++
	seq := a.saveSeq

	a.saves.Add(1)
	go func() {
		defer a.saves.Done()
		a.saveMu.Lock()
		defer a.saveMu.Unlock()
		if a.written[namespace] > seq {
			return
		}
		a.written[namespace] = seq
		if err := a.store.Save(namespace, data); err != nil {
			a.log.Error().Err(err).Str("store", namespace).Msg("snapshot write failed")
		}
	}()
}

// Close drains pending snapshot writes and releases the store and log
// file.
func (a *app) Close() {
	a.saves.Wait()
	if closer, ok := a.store.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.log.Error().Err(err).Msg("close store")
		}
	}
	if a.logFile != nil {
		a.logFile.Close()
	}
}
