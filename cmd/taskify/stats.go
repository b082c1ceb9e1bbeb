package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskifyapp/taskify/analytics"
	"github.com/taskifyapp/taskify/internal/dates"
	"github.com/taskifyapp/taskify/task"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Analytics over the task store",
}

// stats summary
var statsSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Counts, overdue tasks, and completion rate",
	RunE:  runStatsSummary,
}

var statsSummaryJSON bool

// stats trend
var statsTrendCmd = &cobra.Command{
	Use:   "trend",
	Short: "Per-day task activity over a period",
	RunE:  runStatsTrend,
}

var (
	statsTrendPeriod string
	statsTrendJSON   bool
)

// stats productivity
var statsProductivityCmd = &cobra.Command{
	Use:   "productivity",
	Short: "Task creation and completion over the trailing week",
	RunE:  runStatsProductivity,
}

var statsProductivityJSON bool

// stats durations
var statsDurationsCmd = &cobra.Command{
	Use:   "durations",
	Short: "How long completed tasks took, in days",
	RunE:  runStatsDurations,
}

var statsDurationsJSON bool

// agenda
var agendaCmd = &cobra.Command{
	Use:   "agenda",
	Short: "Tasks occurring on a date",
	RunE:  runAgenda,
}

var (
	agendaDate  string
	agendaLimit int
	agendaJSON  bool
)

func init() {
	rootCmd.AddCommand(statsCmd, agendaCmd)
	statsCmd.AddCommand(statsSummaryCmd, statsTrendCmd, statsProductivityCmd, statsDurationsCmd)

	statsSummaryCmd.Flags().BoolVar(&statsSummaryJSON, "json", false, "Output as JSON")
	statsTrendCmd.Flags().StringVar(&statsTrendPeriod, "period", "week", "Period (week, month, year)")
	statsTrendCmd.Flags().BoolVar(&statsTrendJSON, "json", false, "Output as JSON")
	statsProductivityCmd.Flags().BoolVar(&statsProductivityJSON, "json", false, "Output as JSON")
	statsDurationsCmd.Flags().BoolVar(&statsDurationsJSON, "json", false, "Output as JSON")

	agendaCmd.Flags().StringVar(&agendaDate, "date", "today", "Date to plan (YYYY-MM-DD, or 'today')")
	agendaCmd.Flags().IntVar(&agendaLimit, "limit", 0, "Show at most this many tasks (0 for all)")
	agendaCmd.Flags().BoolVar(&agendaJSON, "json", false, "Output as JSON")
}

func runStatsSummary(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	summary := analytics.Summarize(a.repo.Tasks(), time.Now())

	if statsSummaryJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}

	fmt.Printf("Total:       %d\n", summary.Total)
	fmt.Printf("Todo:        %d\n", summary.Pending)
	fmt.Printf("In progress: %d\n", summary.InProgress)
	fmt.Printf("Completed:   %d\n", summary.Completed)
	fmt.Printf("Overdue:     %d\n", summary.Overdue)
	fmt.Printf("Completion:  %.1f%%\n", summary.CompletionRate)

	if len(summary.ByPriority) > 0 {
		fmt.Println("\nBy priority:")
		for _, p := range task.ValidPriorities() {
			if n := summary.ByPriority[p]; n > 0 {
				fmt.Printf("  %-8s %d\n", p, n)
			}
		}
	}
	if len(summary.ByTag) > 0 {
		fmt.Println("\nBy tag:")
		for _, tag := range a.repo.Tags() {
			if n := summary.ByTag[tag.ID]; n > 0 {
				fmt.Printf("  %-12s %d\n", renderTag(tag), n)
			}
		}
	}
	if recent := analytics.Recent(a.repo.Tasks(), 3); len(recent) > 0 {
		fmt.Println("\nRecently added:")
		for _, t := range recent {
			fmt.Printf("  %s  %s\n", t.ID, clipCell(t.Title))
		}
	}
	return nil
}

func runStatsTrend(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	period := analytics.Period(statsTrendPeriod)
	if !period.IsValid() {
		return fmt.Errorf("invalid period %q, want week, month, or year", statsTrendPeriod)
	}

	buckets := analytics.PeriodSeries(a.repo.Tasks(), period, time.Now())

	if statsTrendJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(buckets)
	}

	headers := []string{"DATE", "TOTAL", "COMPLETED"}
	rows := make([][]string, 0, len(buckets))
	for _, b := range buckets {
		rows = append(rows, []string{
			dates.FormatDay(b.Date),
			fmt.Sprintf("%d", b.Total),
			fmt.Sprintf("%d", b.Completed),
		})
	}
	fmt.Print(formatTable(headers, rows))
	return nil
}

func runStatsProductivity(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats := analytics.Productivity(a.repo.Tasks(), time.Now())

	if statsProductivityJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	fmt.Printf("Created (7d):   %d\n", stats.Created)
	fmt.Printf("Completed (7d): %d\n", stats.Completed)
	fmt.Printf("Completion:     %.1f%%\n", stats.CompletionRate)
	fmt.Printf("Per day:        %.1f\n", stats.PerDay)
	return nil
}

func runStatsDurations(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	stats := analytics.Durations(a.repo.Tasks())

	if statsDurationsJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	}

	if !stats.HasData {
		fmt.Println("Average: -\nFastest: -\nSlowest: -")
		return nil
	}

	fmt.Printf("Average: %s\n", formatDays(stats.Average))
	fmt.Printf("Fastest: %s\n", formatDays(stats.Fastest))
	fmt.Printf("Slowest: %s\n", formatDays(stats.Slowest))
	return nil
}

func formatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

func runAgenda(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	date, err := parseFlagDate(agendaDate)
	if err != nil {
		return err
	}

	var tasks []task.Task
	if agendaLimit > 0 {
		tasks = analytics.Upcoming(a.repo.List(task.Filter{}), date, agendaLimit)
	} else {
		tasks = a.repo.List(task.Filter{Date: &date})
	}

	if agendaJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	if len(tasks) == 0 {
		fmt.Printf("Nothing scheduled for %s.\n", dates.FormatDay(date))
		return nil
	}

	fmt.Printf("Agenda for %s:\n\n", dates.FormatDay(date))
	printTaskTable(a, tasks)
	return nil
}
