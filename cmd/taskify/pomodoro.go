package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskifyapp/taskify/pomodoro"
)

var pomodoroCmd = &cobra.Command{
	Use:     "pomodoro",
	Aliases: []string{"pomo"},
	Short:   "Track focused work sessions",
}

// pomodoro log
var pomodoroLogCmd = &cobra.Command{
	Use:   "log",
	Short: "Record a finished session",
	RunE:  runPomodoroLog,
}

var (
	pomodoroLogDuration int
	pomodoroLogKind     string
	pomodoroLogTask     string
)

// pomodoro today
var pomodoroTodayCmd = &cobra.Command{
	Use:   "today",
	Short: "Show today's sessions",
	RunE:  runPomodoroToday,
}

var pomodoroTodayJSON bool

// pomodoro by-task
var pomodoroByTaskCmd = &cobra.Command{
	Use:   "by-task",
	Short: "Total focused time per task",
	RunE:  runPomodoroByTask,
}

var pomodoroByTaskJSON bool

// pomodoro clear
var pomodoroClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Wipe the session log",
	RunE:  runPomodoroClear,
}

// pomodoro settings
var pomodoroSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or change timer settings",
	RunE:  runPomodoroSettings,
}

var (
	pomodoroSettingsWork      int
	pomodoroSettingsBreak     int
	pomodoroSettingsLongBreak int
	pomodoroSettingsCadence   int
)

// pomodoro run
var pomodoroRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run one work interval, then log it",
	RunE:  runPomodoroRun,
}

var pomodoroRunTask string

func init() {
	rootCmd.AddCommand(pomodoroCmd)
	pomodoroCmd.AddCommand(pomodoroLogCmd, pomodoroTodayCmd, pomodoroByTaskCmd,
		pomodoroClearCmd, pomodoroSettingsCmd, pomodoroRunCmd)

	pomodoroLogCmd.Flags().IntVar(&pomodoroLogDuration, "duration", 0, "Session length in minutes (defaults to the work duration)")
	pomodoroLogCmd.Flags().StringVar(&pomodoroLogKind, "kind", string(pomodoro.KindWork), "Session kind (work, break)")
	pomodoroLogCmd.Flags().StringVar(&pomodoroLogTask, "task", "", "Task id the session was spent on")

	pomodoroTodayCmd.Flags().BoolVar(&pomodoroTodayJSON, "json", false, "Output as JSON")
	pomodoroByTaskCmd.Flags().BoolVar(&pomodoroByTaskJSON, "json", false, "Output as JSON")

	pomodoroSettingsCmd.Flags().IntVar(&pomodoroSettingsWork, "work", 0, "Work duration in minutes")
	pomodoroSettingsCmd.Flags().IntVar(&pomodoroSettingsBreak, "break", 0, "Break duration in minutes")
	pomodoroSettingsCmd.Flags().IntVar(&pomodoroSettingsLongBreak, "long-break", 0, "Long break duration in minutes")
	pomodoroSettingsCmd.Flags().IntVar(&pomodoroSettingsCadence, "cadence", 0, "Work sessions between long breaks")

	pomodoroRunCmd.Flags().StringVar(&pomodoroRunTask, "task", "", "Task id to attribute the session to")
}

func runPomodoroLog(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if pomodoroLogTask != "" {
		if _, err := a.repo.Get(pomodoroLogTask); err != nil {
			return err
		}
	}

	duration := pomodoroLogDuration
	if duration == 0 {
		duration = a.ledger.Settings().WorkDuration
	}

	logged, err := a.ledger.AddSession(pomodoro.Session{
		Duration: duration,
		Kind:     pomodoro.Kind(pomodoroLogKind),
		TaskID:   pomodoroLogTask,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Logged %d minute %s session %s\n", logged.Duration, logged.Kind, logged.ID)
	return nil
}

func runPomodoroToday(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	now := time.Now()
	sessions := a.ledger.TodaySessions(now)

	if pomodoroTodayJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(sessions)
	}

	if len(sessions) == 0 {
		fmt.Println("No sessions today.")
		return nil
	}

	headers := []string{"TIME", "KIND", "MINUTES", "TASK"}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		taskCell := s.TaskID
		if t, err := a.repo.Get(s.TaskID); err == nil {
			taskCell = clipCell(t.Title)
		}
		rows = append(rows, []string{
			s.Date.Format("15:04"),
			string(s.Kind),
			fmt.Sprintf("%d", s.Duration),
			taskCell,
		})
	}
	fmt.Print(formatTable(headers, rows))

	count, minutes := a.ledger.TodayTotals(now)
	fmt.Printf("\n%d sessions, %d minutes\n", count, minutes)
	return nil
}

func runPomodoroByTask(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	totals := a.ledger.ByTask(func(id string) bool {
		_, err := a.repo.Get(id)
		return err == nil
	})

	if pomodoroByTaskJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(totals)
	}

	if len(totals) == 0 {
		fmt.Println("No task-linked sessions yet.")
		return nil
	}

	headers := []string{"TASK", "SESSIONS", "MINUTES"}
	rows := make([][]string, 0, len(totals))
	for _, total := range totals {
		title := total.TaskID
		if t, err := a.repo.Get(total.TaskID); err == nil {
			title = clipCell(t.Title)
		}
		rows = append(rows, []string{
			title,
			fmt.Sprintf("%d", total.Sessions),
			fmt.Sprintf("%d", total.Minutes),
		})
	}
	fmt.Print(formatTable(headers, rows))
	return nil
}

func runPomodoroClear(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.ledger.Clear()
	fmt.Println("Cleared session log.")
	return nil
}

func runPomodoroSettings(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	update := pomodoro.SettingsUpdate{}
	if cmd.Flags().Changed("work") {
		update.WorkDuration = &pomodoroSettingsWork
	}
	if cmd.Flags().Changed("break") {
		update.BreakDuration = &pomodoroSettingsBreak
	}
	if cmd.Flags().Changed("long-break") {
		update.LongBreakDuration = &pomodoroSettingsLongBreak
	}
	if cmd.Flags().Changed("cadence") {
		update.SessionsUntilLongBreak = &pomodoroSettingsCadence
	}

	settings := a.ledger.UpdateSettings(update)

	fmt.Printf("Work:       %d min\n", settings.WorkDuration)
	fmt.Printf("Break:      %d min\n", settings.BreakDuration)
	fmt.Printf("Long break: %d min\n", settings.LongBreakDuration)
	fmt.Printf("Cadence:    every %d sessions\n", settings.SessionsUntilLongBreak)
	return nil
}

func runPomodoroRun(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if pomodoroRunTask != "" {
		if _, err := a.repo.Get(pomodoroRunTask); err != nil {
			return err
		}
	}

	timer := pomodoro.NewTimer(a.ledger)
	timer.SetTask(pomodoroRunTask)
	timer.Start()

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)
	defer signal.Stop(interrupt)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for timer.Running() {
		select {
		case <-interrupt:
			fmt.Println("\nInterrupted, session not logged.")
			return nil
		case now := <-ticker.C:
			if err := timer.Tick(now); err != nil {
				return err
			}
			remaining := timer.Remaining()
			if timer.Running() {
				fmt.Printf("\r%02d:%02d remaining ", remaining/60, remaining%60)
			}
		}
	}

	fmt.Printf("\nWork session logged. Time for a %s.\n", timer.Phase())
	return nil
}
