package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/taskifyapp/taskify/internal/dates"
	"github.com/taskifyapp/taskify/internal/markdown"
	"github.com/taskifyapp/taskify/task"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage tasks",
}

// task create
var taskCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a new task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskCreate,
}

var (
	taskCreateDescription string
	taskCreateStatus      string
	taskCreatePriority    string
	taskCreateTags        []string
	taskCreateSubtasks    []string
)

// task update
var taskUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a task",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskUpdate,
}

var (
	taskUpdateTitle       string
	taskUpdateDescription string
	taskUpdateStatus      string
	taskUpdatePriority    string
	taskUpdateTags        []string
	taskUpdateSubtasks    []string
	taskUpdateCheck       []string
	taskUpdateUncheck     []string
)

// task delete
var taskDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskDelete,
}

// task show
var taskShowCmd = &cobra.Command{
	Use:   "show <id>...",
	Short: "Show detailed information about tasks",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskShow,
}

var taskShowJSON bool

// task list
var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE:  runTaskList,
}

var (
	taskListStatus   string
	taskListPriority string
	taskListDate     string
	taskListTags     []string
	taskListSearch   string
	taskListJSON     bool
)

// task toggle
var taskToggleCmd = &cobra.Command{
	Use:   "toggle <id>...",
	Short: "Toggle tasks between done and todo",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runTaskToggle,
}

// task move
var taskMoveCmd = &cobra.Command{
	Use:   "move <id> <status>",
	Short: "Move a task to another status, leaving subtasks alone",
	Args:  cobra.ExactArgs(2),
	RunE:  runTaskMove,
}

// task schedule
var taskScheduleCmd = &cobra.Command{
	Use:   "schedule <id>",
	Short: "Set or remove a task's schedule",
	Args:  cobra.ExactArgs(1),
	RunE:  runTaskSchedule,
}

var taskScheduleRemove bool

// scheduleFlags is the shared set of schedule-building flags, bound
// once per command that accepts them.
type scheduleFlags struct {
	once      string
	daily     bool
	weekly    bool
	monthly   bool
	start     string
	end       string
	weekdays  []string
	startTime string
	endTime   string
}

var (
	taskCreateSchedule   scheduleFlags
	taskScheduleSchedule scheduleFlags
)

func (f *scheduleFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.once, "once", "", "Schedule for a single date (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&f.daily, "daily", false, "Repeat every day")
	cmd.Flags().BoolVar(&f.weekly, "weekly", false, "Repeat on chosen weekdays")
	cmd.Flags().BoolVar(&f.monthly, "monthly", false, "Repeat monthly on the start date's day")
	cmd.Flags().StringVar(&f.start, "start", "", "Recurrence start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "Recurrence end date (YYYY-MM-DD)")
	cmd.Flags().StringSliceVar(&f.weekdays, "weekday", nil, "Weekday for weekly schedules (mon..sun), repeatable")
	cmd.Flags().StringVar(&f.startTime, "start-time", "", "Display start time (HH:MM)")
	cmd.Flags().StringVar(&f.endTime, "end-time", "", "Display end time (HH:MM)")
}

func init() {
	rootCmd.AddCommand(taskCmd)
	taskCmd.AddCommand(taskCreateCmd, taskUpdateCmd, taskDeleteCmd, taskShowCmd,
		taskListCmd, taskToggleCmd, taskMoveCmd, taskScheduleCmd)

	// task create flags
	taskCreateCmd.Flags().StringVarP(&taskCreateDescription, "description", "d", "", "Description (markdown)")
	taskCreateCmd.Flags().StringVarP(&taskCreateStatus, "status", "s", "", "Status (todo, in-progress, done)")
	taskCreateCmd.Flags().StringVarP(&taskCreatePriority, "priority", "p", "", "Priority (low, medium, high)")
	taskCreateCmd.Flags().StringArrayVar(&taskCreateTags, "tag", nil, "Tag id, repeatable")
	taskCreateCmd.Flags().StringArrayVar(&taskCreateSubtasks, "subtask", nil, "Subtask title, repeatable")
	taskCreateSchedule.bind(taskCreateCmd)

	// task update flags
	taskUpdateCmd.Flags().StringVar(&taskUpdateTitle, "title", "", "New title")
	taskUpdateCmd.Flags().StringVar(&taskUpdateDescription, "description", "", "New description")
	taskUpdateCmd.Flags().StringVar(&taskUpdateStatus, "status", "", "New status (todo, in-progress, done)")
	taskUpdateCmd.Flags().StringVar(&taskUpdatePriority, "priority", "", "New priority (low, medium, high)")
	taskUpdateCmd.Flags().StringArrayVar(&taskUpdateTags, "tag", nil, "Replace tags with these ids")
	taskUpdateCmd.Flags().StringArrayVar(&taskUpdateSubtasks, "subtask", nil, "Replace subtasks with these titles")
	taskUpdateCmd.Flags().StringArrayVar(&taskUpdateCheck, "check", nil, "Mark a subtask completed by id")
	taskUpdateCmd.Flags().StringArrayVar(&taskUpdateUncheck, "uncheck", nil, "Mark a subtask incomplete by id")

	// task show flags
	taskShowCmd.Flags().BoolVar(&taskShowJSON, "json", false, "Output as JSON")

	// task list flags
	taskListCmd.Flags().StringVar(&taskListStatus, "status", "", "Filter by status")
	taskListCmd.Flags().StringVar(&taskListPriority, "priority", "", "Filter by priority")
	taskListCmd.Flags().StringVar(&taskListDate, "date", "", "Filter by occurrence date (YYYY-MM-DD, or 'today')")
	taskListCmd.Flags().StringArrayVar(&taskListTags, "tag", nil, "Filter by tag id, repeatable")
	taskListCmd.Flags().StringVar(&taskListSearch, "search", "", "Filter by title/description substring")
	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output as JSON")

	// task schedule flags
	taskScheduleSchedule.bind(taskScheduleCmd)
	taskScheduleCmd.Flags().BoolVar(&taskScheduleRemove, "remove", false, "Remove the schedule")
}

func runTaskCreate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	schedule, err := taskCreateSchedule.build(cmd)
	if err != nil {
		return err
	}

	opts := task.CreateOptions{
		Description: taskCreateDescription,
		Status:      task.Status(taskCreateStatus),
		Priority:    task.Priority(taskCreatePriority),
		Tags:        taskCreateTags,
		Schedule:    schedule,
	}
	for _, title := range taskCreateSubtasks {
		opts.Subtasks = append(opts.Subtasks, task.Subtask{Title: title})
	}

	created, err := a.repo.Create(args[0], opts)
	if err != nil {
		return err
	}

	fmt.Printf("Created task %s: %s\n", created.ID, created.Title)
	return nil
}

func runTaskUpdate(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts := task.UpdateOptions{}

	// Only set fields that were explicitly provided
	if cmd.Flags().Changed("title") {
		opts.Title = &taskUpdateTitle
	}
	if cmd.Flags().Changed("description") {
		opts.Description = &taskUpdateDescription
	}
	if cmd.Flags().Changed("status") {
		status := task.Status(taskUpdateStatus)
		opts.Status = &status
	}
	if cmd.Flags().Changed("priority") {
		priority := task.Priority(taskUpdatePriority)
		opts.Priority = &priority
	}
	if cmd.Flags().Changed("tag") {
		opts.Tags = &taskUpdateTags
	}
	if cmd.Flags().Changed("subtask") {
		subtasks := make([]task.Subtask, 0, len(taskUpdateSubtasks))
		for _, title := range taskUpdateSubtasks {
			subtasks = append(subtasks, task.Subtask{Title: title})
		}
		opts.Subtasks = &subtasks
	}
	if len(taskUpdateCheck) > 0 || len(taskUpdateUncheck) > 0 {
		if opts.Subtasks != nil {
			return fmt.Errorf("--subtask cannot be combined with --check/--uncheck")
		}
		subtasks, err := checkedSubtasks(a.repo, args[0], taskUpdateCheck, taskUpdateUncheck)
		if err != nil {
			return err
		}
		opts.Subtasks = &subtasks
	}

	updated, err := a.repo.Update(args[0], opts)
	if err != nil {
		return err
	}

	fmt.Printf("Updated %s: %s\n", updated.ID, updated.Title)
	return nil
}

// checkedSubtasks returns the task's subtasks with the named ones
// flipped. The caller passes the result through Update so the
// completion cascade applies.
func checkedSubtasks(repo *task.Repository, taskID string, check, uncheck []string) ([]task.Subtask, error) {
	t, err := repo.Get(taskID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]int, len(t.Subtasks))
	for i, s := range t.Subtasks {
		byID[s.ID] = i
	}
	flip := func(ids []string, completed bool) error {
		for _, id := range ids {
			i, ok := byID[id]
			if !ok {
				return fmt.Errorf("task %s has no subtask %s", taskID, id)
			}
			t.Subtasks[i].Completed = completed
		}
		return nil
	}
	if err := flip(check, true); err != nil {
		return nil, err
	}
	if err := flip(uncheck, false); err != nil {
		return nil, err
	}
	return t.Subtasks, nil
}

func runTaskDelete(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		if err := a.repo.Delete(id); err != nil {
			return err
		}
		fmt.Printf("Deleted %s\n", id)
	}
	return nil
}

func runTaskToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range args {
		toggled, err := a.repo.ToggleCompletion(id)
		if err != nil {
			return err
		}
		fmt.Printf("%s is now %s\n", toggled.ID, toggled.Status)
	}
	return nil
}

func runTaskMove(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	moved, err := a.repo.SetStatus(args[0], task.Status(args[1]))
	if err != nil {
		return err
	}

	fmt.Printf("%s is now %s\n", moved.ID, moved.Status)
	return nil
}

func runTaskSchedule(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	opts := task.UpdateOptions{}
	if taskScheduleRemove {
		opts.RemoveSchedule = true
	} else {
		schedule, err := taskScheduleSchedule.build(cmd)
		if err != nil {
			return err
		}
		if schedule == nil {
			return fmt.Errorf("specify --once, --daily, --weekly, --monthly, or --remove")
		}
		opts.Schedule = schedule
	}

	updated, err := a.repo.Update(args[0], opts)
	if err != nil {
		return err
	}

	if updated.Schedule == nil {
		fmt.Printf("%s is now unscheduled\n", updated.ID)
	} else {
		fmt.Printf("%s is now scheduled %s\n", updated.ID, describeSchedule(updated.Schedule))
	}
	return nil
}

func runTaskShow(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	tasks := make([]task.Task, 0, len(args))
	for _, id := range args {
		t, err := a.repo.Get(id)
		if err != nil {
			return err
		}
		tasks = append(tasks, t)
	}

	if taskShowJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	for i, t := range tasks {
		if i > 0 {
			fmt.Println("---")
		}
		printTaskDetail(a, t)
	}
	return nil
}

func runTaskList(cmd *cobra.Command, args []string) error {
	a, err := openApp()
	if err != nil {
		return err
	}
	defer a.Close()

	filter := task.Filter{}

	if taskListStatus != "" {
		status := task.Status(taskListStatus)
		if !status.IsValid() {
			return fmt.Errorf("invalid status %q", taskListStatus)
		}
		filter.Status = &status
	}
	if taskListPriority != "" {
		priority := task.Priority(taskListPriority)
		if !priority.IsValid() {
			return fmt.Errorf("invalid priority %q", taskListPriority)
		}
		filter.Priority = &priority
	}
	if taskListDate != "" {
		date, err := parseFlagDate(taskListDate)
		if err != nil {
			return err
		}
		filter.Date = &date
	}
	filter.Tags = taskListTags
	filter.Search = taskListSearch

	tasks := a.repo.List(filter)

	if taskListJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tasks)
	}

	printTaskTable(a, tasks)
	return nil
}

// printTaskTable prints a compact task listing.
func printTaskTable(a *app, tasks []task.Task) {
	if len(tasks) == 0 {
		fmt.Println("No tasks found.")
		return
	}

	headers := []string{"ID", "STATUS", "PRI", "TITLE", "TAGS", "SCHEDULE", "SUBTASKS"}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		subtasks := ""
		if len(t.Subtasks) > 0 {
			subtasks = fmt.Sprintf("%d/%d", t.SubtasksDone(), len(t.Subtasks))
		}
		rows = append(rows, []string{
			t.ID,
			renderStatus(t.Status),
			renderPriority(t.Priority),
			clipCell(t.Title),
			tagList(a, t.Tags),
			describeSchedule(t.Schedule),
			subtasks,
		})
	}

	fmt.Print(formatTable(headers, rows))
}

// printTaskDetail prints detailed information about a task.
func printTaskDetail(a *app, t task.Task) {
	fmt.Printf("ID:       %s\n", t.ID)
	fmt.Printf("Title:    %s\n", t.Title)
	fmt.Printf("Status:   %s\n", renderStatus(t.Status))
	fmt.Printf("Priority: %s\n", renderPriority(t.Priority))
	fmt.Printf("Created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04:05"))

	if t.CompletedAt != nil {
		fmt.Printf("Done:     %s\n", t.CompletedAt.Format("2006-01-02 15:04:05"))
	}
	if len(t.Tags) > 0 {
		fmt.Printf("Tags:     %s\n", tagList(a, t.Tags))
	}
	if t.Schedule != nil {
		fmt.Printf("Schedule: %s\n", describeSchedule(t.Schedule))
	}

	if len(t.Subtasks) > 0 {
		fmt.Printf("\nSubtasks (%d/%d):\n", t.SubtasksDone(), len(t.Subtasks))
		for _, s := range t.Subtasks {
			mark := " "
			if s.Completed {
				mark = "x"
			}
			fmt.Printf("  [%s] %s %s\n", mark, s.ID, s.Title)
		}
	}

	if t.Description != "" {
		fmt.Println()
		if rendered := markdown.SafeRender(terminalWidth(), 2, []byte(t.Description)); rendered != nil {
			fmt.Println(string(rendered))
		}
	}
}

func tagList(a *app, tagIDs []string) string {
	labels := make([]string, 0, len(tagIDs))
	for _, id := range tagIDs {
		if tag, ok := a.repo.TagByID(id); ok {
			labels = append(labels, renderTag(tag))
		} else {
			labels = append(labels, id)
		}
	}
	return strings.Join(labels, ",")
}

func describeSchedule(s *task.Schedule) string {
	if s == nil {
		return ""
	}
	switch s.Kind {
	case task.KindOnce:
		return dates.FormatDay(s.Date)
	case task.KindWeekly:
		days := make([]string, 0, len(s.WeekDays))
		for _, d := range s.WeekDays {
			days = append(days, d.String()[:3])
		}
		return fmt.Sprintf("weekly %s%s", strings.Join(days, ","), recurrenceRange(s))
	default:
		return fmt.Sprintf("%s%s", s.Kind, recurrenceRange(s))
	}
}

func recurrenceRange(s *task.Schedule) string {
	if s.StartDate.IsZero() {
		return ""
	}
	out := " from " + dates.FormatDay(s.StartDate)
	if s.EndDate != nil {
		out += " until " + dates.FormatDay(*s.EndDate)
	}
	return out
}

// build converts the schedule flags into a schedule, or nil when no
// schedule flag was given.
func (f *scheduleFlags) build(cmd *cobra.Command) (*task.Schedule, error) {
	kinds := 0
	if f.once != "" {
		kinds++
	}
	for _, set := range []bool{f.daily, f.weekly, f.monthly} {
		if set {
			kinds++
		}
	}
	if kinds == 0 {
		return nil, nil
	}
	if kinds > 1 {
		return nil, fmt.Errorf("--once, --daily, --weekly, and --monthly are mutually exclusive")
	}

	if f.once != "" {
		date, err := parseFlagDate(f.once)
		if err != nil {
			return nil, err
		}
		s := task.Once(date)
		s.StartTime, s.EndTime = f.startTime, f.endTime
		return s, nil
	}

	if f.start == "" {
		return nil, fmt.Errorf("recurring schedules need --start")
	}
	start, err := parseFlagDate(f.start)
	if err != nil {
		return nil, err
	}
	var end *time.Time
	if f.end != "" {
		parsed, err := parseFlagDate(f.end)
		if err != nil {
			return nil, err
		}
		end = &parsed
	}

	var s *task.Schedule
	switch {
	case f.daily:
		s = task.Daily(start, end)
	case f.monthly:
		s = task.Monthly(start, end)
	case f.weekly:
		weekdays, err := parseWeekdays(f.weekdays)
		if err != nil {
			return nil, err
		}
		s, err = task.Weekly(start, end, weekdays)
		if err != nil {
			return nil, err
		}
	}
	s.StartTime, s.EndTime = f.startTime, f.endTime
	return s, nil
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "wed": time.Wednesday,
	"thu": time.Thursday, "fri": time.Friday, "sat": time.Saturday,
}

func parseWeekdays(names []string) ([]time.Weekday, error) {
	out := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		key := strings.ToLower(name)
		if len(key) > 3 {
			key = key[:3]
		}
		day, ok := weekdayNames[key]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		out = append(out, day)
	}
	return out, nil
}

func parseFlagDate(value string) (time.Time, error) {
	if strings.EqualFold(value, "today") {
		return dates.Midnight(time.Now()), nil
	}
	date, err := dates.ParseDay(value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
	}
	return date, nil
}
