package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"tempo/internal/bootstrap"
	eventsdto "tempo/internal/modules/events/dto"
	taskdto "tempo/internal/modules/task/dto"
	"tempo/internal/platform/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var dataPath string
	var verbose bool

	root := &cobra.Command{
		Use:           "tempo",
		Short:         "Focus timer with atomic session analytics",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&dataPath, "data", config.DefaultDataPath(), "data directory")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "verbose logging")

	root.AddCommand(newTUICmd(&dataPath, &verbose))
	root.AddCommand(newSessionCmd(&dataPath, &verbose))
	root.AddCommand(newEventsCmd(&dataPath, &verbose))
	root.AddCommand(newStatsCmd(&dataPath, &verbose))
	root.AddCommand(newTaskCmd(&dataPath, &verbose))
	root.AddCommand(newSettingsCmd(&dataPath, &verbose))
	root.AddCommand(newMonitorCmd(&dataPath, &verbose))
	return root
}

func loadApp(dataPath string, verbose bool) (*bootstrap.App, error) {
	cfg, err := config.New(dataPath)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(cfg, verbose)
}

func newTUICmd(dataPath *string, verbose *bool) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen timer",
		RunE: func(_ *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newSessionCmd(dataPath *string, verbose *bool) *cobra.Command {
	session := &cobra.Command{Use: "session", Short: "Session history commands"}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			sessions, err := app.TimerCLI.ListSessions(context.Background(), limit)
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no sessions")
				return nil
			}
			for _, s := range sessions {
				marker := "abandoned"
				if s.Completed {
					marker = "completed"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\t%dm%02ds\t%s\tinterruptions=%d", s.ID, s.StartTime.Format(time.RFC3339), s.Mode, s.DurationSeconds/60, s.DurationSeconds%60, marker, s.InterruptionCount)
				if s.TaskName != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\ttask=%q", s.TaskName)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	}
	list.Flags().IntVar(&limit, "limit", 20, "max sessions to show (0 for all)")

	session.AddCommand(list)
	session.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the in-process session state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			status := app.TimerCLI.Status(context.Background())
			if !status.Active {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "no active session (mode %s)\n", status.Mode)
				return nil
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session=%s mode=%s active=%ds paused=%t remaining=%ds interruptions=%d\n", status.SessionID, status.Mode, status.ActiveSeconds, status.IsPaused, status.RemainingSeconds, status.InterruptionCount)
			return nil
		},
	})
	session.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a session and its events",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TimerCLI.DeleteSession(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted session %s\n", args[0])
			return nil
		},
	})
	return session
}

func newEventsCmd(dataPath *string, verbose *bool) *cobra.Command {
	events := &cobra.Command{Use: "events", Short: "Atomic event queries"}

	var kind string
	bySession := &cobra.Command{
		Use:   "session <session-id>",
		Short: "List events for a session in elapsed order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.EventsCLI.BySession(context.Background(), args[0], kind)
			if err != nil {
				return err
			}
			printEvents(cmd, out)
			return nil
		},
	}
	bySession.Flags().StringVar(&kind, "kind", "", "filter by event kind")
	events.AddCommand(bySession)

	var fromStr, toStr string
	byRange := &cobra.Command{
		Use:   "range --from <time> --to <time>",
		Short: "List events across sessions by time range",
		RunE: func(cmd *cobra.Command, _ []string) error {
			from, err := parseTimeFlag(fromStr)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parseTimeFlag(toStr)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.EventsCLI.ByRange(context.Background(), from, to)
			if err != nil {
				return err
			}
			printEvents(cmd, out)
			return nil
		},
	}
	byRange.Flags().StringVar(&fromStr, "from", "", "range start (RFC3339 or 2006-01-02)")
	byRange.Flags().StringVar(&toStr, "to", "", "range end (RFC3339 or 2006-01-02)")
	events.AddCommand(byRange)

	events.AddCommand(&cobra.Command{
		Use:   "flush",
		Short: "Flush buffered events to storage",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.EventsCLI.Flush(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "flushed %d events\n", out.Flushed)
			return nil
		},
	})
	return events
}

func newStatsCmd(dataPath *string, verbose *bool) *cobra.Command {
	stats := &cobra.Command{Use: "stats", Short: "Derived session analytics"}

	var modes []string
	quality := &cobra.Command{
		Use:   "quality",
		Short: "Bucket sessions by interruption count",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.AnalyticsCLI.QualityStats(context.Background(), modes)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deep=%d moderate=%d distracted=%d total=%d\n", out.Deep, out.Moderate, out.Distracted, out.Total)
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out.Summary)
			return nil
		},
	}
	quality.Flags().StringSliceVar(&modes, "modes", nil, "restrict to modes (Focus, ShortBreak, LongBreak, FreeRun)")
	stats.AddCommand(quality)

	interruptions := &cobra.Command{
		Use:   "interruptions <session-id>",
		Short: "Show a session's interruption pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.AnalyticsCLI.InterruptionPattern(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "session=%s total=%d early=%d middle=%d late=%d\n", out.SessionID, out.Total, out.Early, out.Middle, out.Late)
			if out.MeanGapSeconds != nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "mean_gap=%.1fs\n", *out.MeanGapSeconds)
			}
			for severity, count := range out.Severity {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "severity %s=%d\n", severity, count)
			}
			return nil
		},
	}
	stats.AddCommand(interruptions)

	var heatmapDays int
	var heatmapKinds []string
	heatmap := &cobra.Command{
		Use:   "heatmap",
		Short: "Day-by-hour event density",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.AnalyticsCLI.Heatmap(context.Background(), heatmapDays, heatmapKinds)
			if err != nil {
				return err
			}
			for i, day := range out.Days {
				var row strings.Builder
				for _, count := range out.Counts[i] {
					row.WriteString(fmt.Sprintf("%3d", count))
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s%s\n", day, row.String())
			}
			return nil
		},
	}
	heatmap.Flags().IntVar(&heatmapDays, "days", 14, "days to cover")
	heatmap.Flags().StringSliceVar(&heatmapKinds, "kinds", nil, "restrict to event kinds")
	stats.AddCommand(heatmap)

	var trendDays int
	daily := &cobra.Command{
		Use:   "daily",
		Short: "Daily productive totals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.AnalyticsCLI.DailyTrend(context.Background(), trendDays)
			if err != nil {
				return err
			}
			for _, day := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t%dm\t%d sessions\n", day.Day, day.ActiveSeconds/60, day.Sessions)
			}
			return nil
		},
	}
	daily.Flags().IntVar(&trendDays, "days", 7, "days to cover")
	stats.AddCommand(daily)

	var hourlyDays int
	hourly := &cobra.Command{
		Use:   "hourly",
		Short: "Hour-of-day productive profile",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.AnalyticsCLI.HourlyProfile(context.Background(), hourlyDays)
			if err != nil {
				return err
			}
			for _, hour := range out {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%02d:00\t%dm\t%d sessions\n", hour.Hour, hour.ActiveSeconds/60, hour.Sessions)
			}
			return nil
		},
	}
	hourly.Flags().IntVar(&hourlyDays, "days", 30, "days to cover")
	stats.AddCommand(hourly)

	var rateDays int
	completion := &cobra.Command{
		Use:   "completion",
		Short: "Completed share of recorded sessions",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.AnalyticsCLI.CompletionRate(context.Background(), rateDays)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completed=%.1f%% of %d sessions\n", out.Completed*100, out.Total)
			return nil
		},
	}
	completion.Flags().IntVar(&rateDays, "days", 30, "days to cover")
	stats.AddCommand(completion)

	return stats
}

func newTaskCmd(dataPath *string, verbose *bool) *cobra.Command {
	task := &cobra.Command{Use: "task", Short: "Task management"}

	var tag, color string
	var planned int
	var parentID int64
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			input := taskdto.CreateTaskInput{
				Name:           args[0],
				Tag:            tag,
				PlannedMinutes: planned,
				Color:          color,
			}
			if parentID > 0 {
				input.ParentID = &parentID
			}
			out, err := app.TaskCLI.Create(context.Background(), input)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created task %d: %s\n", out.ID, out.Name)
			return nil
		},
	}
	add.Flags().StringVar(&tag, "tag", "", "category tag")
	add.Flags().IntVar(&planned, "planned", 0, "planned minutes")
	add.Flags().Int64Var(&parentID, "parent", 0, "parent task id")
	add.Flags().StringVar(&color, "color", "", "hex color (assigned from palette when empty)")
	task.AddCommand(add)

	task.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List tasks",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			tasks, err := app.TaskCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(tasks) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no tasks")
				return nil
			}
			for _, t := range tasks {
				check := " "
				if t.IsCompleted {
					check = "x"
				}
				active := ""
				if t.IsActive {
					active = "\tactive"
				}
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "[%s] %d\t%s\t%s%s\n", check, t.ID, t.Name, t.Tag, active)
			}
			return nil
		},
	})

	var reopen bool
	done := &cobra.Command{
		Use:   "done <id>",
		Short: "Mark a task complete, including its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TaskCLI.SetCompleted(context.Background(), id, !reopen); err != nil {
				return err
			}
			state := "done"
			if reopen {
				state = "reopened"
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task %d %s\n", id, state)
			return nil
		},
	}
	done.Flags().BoolVar(&reopen, "reopen", false, "mark incomplete instead")
	task.AddCommand(done)

	task.AddCommand(&cobra.Command{
		Use:   "activate <id>",
		Short: "Make a task the active session association (0 clears)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TaskCLI.SetActive(context.Background(), id); err != nil {
				return err
			}
			if id == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "active task cleared")
			} else {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "task %d activated\n", id)
			}
			return nil
		},
	})

	task.AddCommand(&cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task and its subtree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return err
			}
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.TaskCLI.Delete(context.Background(), id); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "deleted task %d\n", id)
			return nil
		},
	})
	return task
}

func newSettingsCmd(dataPath *string, verbose *bool) *cobra.Command {
	settings := &cobra.Command{Use: "settings", Short: "Persistent configuration"}

	settings.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Show all stored settings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			all, err := app.SettingsCLI.All(context.Background())
			if err != nil {
				return err
			}
			if len(all) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no settings stored")
				return nil
			}
			for _, s := range all {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", s.Key, s.Value)
			}
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Show one setting",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			out, err := app.SettingsCLI.Get(context.Background(), args[0])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", out.Key, out.Value)
			return nil
		},
	})

	settings.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Store a setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.SettingsCLI.Set(context.Background(), args[0], args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s=%s\n", args[0], args[1])
			return nil
		},
	})

	var focus, shortBreak, longBreak int
	durations := &cobra.Command{
		Use:   "durations",
		Short: "Show or set planned durations in minutes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if focus > 0 || shortBreak > 0 || longBreak > 0 {
				current, err := app.SettingsCLI.Durations(context.Background())
				if err != nil {
					return err
				}
				if focus == 0 {
					focus = current.Focus
				}
				if shortBreak == 0 {
					shortBreak = current.ShortBreak
				}
				if longBreak == 0 {
					longBreak = current.LongBreak
				}
				if err := app.SettingsCLI.SetDurations(context.Background(), focus, shortBreak, longBreak); err != nil {
					return err
				}
			}
			out, err := app.SettingsCLI.Durations(context.Background())
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "focus=%dm short_break=%dm long_break=%dm\n", out.Focus, out.ShortBreak, out.LongBreak)
			return nil
		},
	}
	durations.Flags().IntVar(&focus, "focus", 0, "focus minutes")
	durations.Flags().IntVar(&shortBreak, "short-break", 0, "short break minutes")
	durations.Flags().IntVar(&longBreak, "long-break", 0, "long break minutes")
	settings.AddCommand(durations)

	return settings
}

func newMonitorCmd(dataPath *string, verbose *bool) *cobra.Command {
	monitor := &cobra.Command{Use: "monitor", Short: "Environment monitor plugins"}

	monitor.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List configured monitors",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			monitors, err := app.MonitorCLI.List(context.Background())
			if err != nil {
				return err
			}
			if len(monitors) == 0 {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no monitors configured")
				return nil
			}
			for _, m := range monitors {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s@%s enabled=%t poll=%ds binary=%s", m.Name, m.Version, m.Enabled, m.PollSeconds, m.Binary)
				if m.Error != "" {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), " error=%q", m.Error)
				}
				_, _ = fmt.Fprintln(cmd.OutOrStdout())
			}
			return nil
		},
	})

	monitor.AddCommand(&cobra.Command{
		Use:   "check <name>",
		Short: "Validate a monitor's lifecycle",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp(*dataPath, *verbose)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			if err := app.MonitorCLI.Check(context.Background(), args[0]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "monitor %s ok\n", args[0])
			return nil
		},
	})
	return monitor
}

func printEvents(cmd *cobra.Command, out []eventsdto.EventOutput) {
	if len(out) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "no events")
		return
	}
	for _, e := range out {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s\t+%ds\t%s\t%s", e.SessionID, e.ElapsedSeconds, e.Kind, e.Timestamp.Format(time.RFC3339))
		if len(e.Metadata) > 0 {
			payload, err := json.Marshal(e.Metadata)
			if err == nil {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "\t%s", payload)
			}
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout())
	}
}

func parseTimeFlag(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("value is required")
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

func parseTaskID(raw string) (int64, error) {
	var id int64
	if _, err := fmt.Sscanf(raw, "%d", &id); err != nil || id < 0 {
		return 0, fmt.Errorf("invalid task id %q", raw)
	}
	return id, nil
}
