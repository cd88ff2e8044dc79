package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	analyticsdto "tempo/internal/modules/analytics/dto"
	taskdto "tempo/internal/modules/task/dto"
	timerdto "tempo/internal/modules/timer/dto"
	"tempo/internal/ui/theme"
)

// Each port is the minimal interface this orchestration layer requires.

type timerPort interface {
	Start(ctx context.Context) error
	Toggle(ctx context.Context) error
	Tick(ctx context.Context)
	Complete(ctx context.Context) error
	Reset(ctx context.Context) error
	SetMode(ctx context.Context, input timerdto.ModeInput) error
	MarkInterruption(ctx context.Context, input timerdto.InterruptionInput) error
	Shutdown(ctx context.Context)
	Status(ctx context.Context) timerdto.StatusOutput
}

type analyticsPort interface {
	QualityStats(ctx context.Context, modes []string) (analyticsdto.QualityStatsOutput, error)
	DailyTrend(ctx context.Context, input analyticsdto.TrendInput) ([]analyticsdto.DayTotalOutput, error)
}

type taskPort interface {
	List(ctx context.Context) ([]taskdto.TaskOutput, error)
	SetActive(ctx context.Context, id int64) error
	SetCompleted(ctx context.Context, id int64, completed bool) error
}

type monitorPort interface {
	Poll(ctx context.Context) error
}

type tabID int

const (
	tabTimer tabID = iota
	tabStats
	tabTasks
	tabCount
)

var tabLabels = [tabCount]string{"Timer", "Stats", "Tasks"}

var modeCycle = []string{"Focus", "ShortBreak", "LongBreak", "FreeRun"}

type tickMsg time.Time

type statsLoadedMsg struct {
	quality analyticsdto.QualityStatsOutput
	trend   []analyticsdto.DayTotalOutput
	err     error
}

type tasksLoadedMsg struct {
	tasks []taskdto.TaskOutput
	err   error
}

type keyMap struct {
	Toggle    key.Binding
	Reset     key.Binding
	Mode      key.Binding
	Interrupt key.Binding
	Complete  key.Binding
	Tab       key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	Done      key.Binding
	Quit      key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.Mode, k.Interrupt, k.Tab, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Reset, k.Mode, k.Interrupt, k.Complete},
		{k.Tab, k.Up, k.Down, k.Select, k.Done, k.Quit},
	}
}

var keys = keyMap{
	Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "start/pause")),
	Reset:     key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Mode:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "mode")),
	Interrupt: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "interruption")),
	Complete:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "complete")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "switch view")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Select:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "activate task")),
	Done:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "toggle done")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

// Model drives the full-screen timer. The 1 Hz tea.Tick loop is the session
// engine's only tick source while the TUI runs.
type Model struct {
	timer     timerPort
	analytics analyticsPort
	tasks     taskPort
	monitors  monitorPort

	tab      tabID
	status   timerdto.StatusOutput
	quality  analyticsdto.QualityStatsOutput
	trend    []analyticsdto.DayTotalOutput
	taskList []taskdto.TaskOutput
	cursor   int
	lastErr  string
	help     help.Model
	width    int
}

func NewModel(timer timerPort, analytics analyticsPort, tasks taskPort, monitors monitorPort) Model {
	return Model{
		timer:     timer,
		analytics: analytics,
		tasks:     tasks,
		monitors:  monitors,
		help:      help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.loadTasks(), m.loadStats())
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadStats() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		quality, err := m.analytics.QualityStats(ctx, nil)
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		trend, err := m.analytics.DailyTrend(ctx, analyticsdto.TrendInput{Days: 7})
		if err != nil {
			return statsLoadedMsg{err: err}
		}
		return statsLoadedMsg{quality: quality, trend: trend}
	}
}

func (m Model) loadTasks() tea.Cmd {
	return func() tea.Msg {
		tasks, err := m.tasks.List(context.Background())
		return tasksLoadedMsg{tasks: tasks, err: err}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	ctx := context.Background()
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		m.timer.Tick(ctx)
		if m.monitors != nil {
			// Monitor failures already log; the tick loop never stalls on them.
			_ = m.monitors.Poll(ctx)
		}
		m.status = m.timer.Status(ctx)
		return m, tick()

	case statsLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.quality = msg.quality
		m.trend = msg.trend
		return m, nil

	case tasksLoadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err.Error()
			return m, nil
		}
		m.taskList = msg.tasks
		if m.cursor >= len(m.taskList) {
			m.cursor = 0
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(ctx, msg)
	}
	return m, nil
}

func (m Model) handleKey(ctx context.Context, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.timer.Shutdown(ctx)
		return m, tea.Quit

	case key.Matches(msg, keys.Toggle):
		if err := m.timer.Toggle(ctx); err != nil {
			m.lastErr = err.Error()
		}
		m.status = m.timer.Status(ctx)
		return m, nil

	case key.Matches(msg, keys.Reset):
		if err := m.timer.Reset(ctx); err != nil {
			m.lastErr = err.Error()
		}
		m.status = m.timer.Status(ctx)
		return m, m.loadStats()

	case key.Matches(msg, keys.Mode):
		next := nextMode(m.status.Mode)
		if err := m.timer.SetMode(ctx, timerdto.ModeInput{Mode: next}); err != nil {
			m.lastErr = err.Error()
		}
		m.status = m.timer.Status(ctx)
		return m, nil

	case key.Matches(msg, keys.Interrupt):
		if err := m.timer.MarkInterruption(ctx, timerdto.InterruptionInput{Kind: "manual"}); err != nil {
			m.lastErr = err.Error()
		}
		m.status = m.timer.Status(ctx)
		return m, nil

	case key.Matches(msg, keys.Complete):
		if err := m.timer.Complete(ctx); err != nil {
			m.lastErr = err.Error()
		}
		m.status = m.timer.Status(ctx)
		return m, m.loadStats()

	case key.Matches(msg, keys.Tab):
		m.tab = (m.tab + 1) % tabCount
		if m.tab == tabStats {
			return m, m.loadStats()
		}
		if m.tab == tabTasks {
			return m, m.loadTasks()
		}
		return m, nil

	case key.Matches(msg, keys.Up):
		if m.tab == tabTasks && m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.tab == tabTasks && m.cursor < len(m.taskList)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, keys.Select):
		if m.tab == tabTasks && m.cursor < len(m.taskList) {
			if err := m.tasks.SetActive(ctx, m.taskList[m.cursor].ID); err != nil {
				m.lastErr = err.Error()
			}
			return m, m.loadTasks()
		}
		return m, nil

	case key.Matches(msg, keys.Done):
		if m.tab == tabTasks && m.cursor < len(m.taskList) {
			task := m.taskList[m.cursor]
			if err := m.tasks.SetCompleted(ctx, task.ID, !task.IsCompleted); err != nil {
				m.lastErr = err.Error()
			}
			return m, m.loadTasks()
		}
		return m, nil
	}
	return m, nil
}

func nextMode(current string) string {
	for i, mode := range modeCycle {
		if mode == current {
			return modeCycle[(i+1)%len(modeCycle)]
		}
	}
	return modeCycle[0]
}

func (m Model) View() string {
	var body string
	switch m.tab {
	case tabStats:
		body = m.viewStats()
	case tabTasks:
		body = m.viewTasks()
	default:
		body = m.viewTimer()
	}

	header := m.viewTabs()
	footer := m.help.View(keys)
	if m.lastErr != "" {
		footer = theme.Alert.Render(m.lastErr) + "\n" + footer
	}
	return theme.App.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}

func (m Model) viewTabs() string {
	parts := make([]string, 0, tabCount)
	for i, label := range tabLabels {
		if tabID(i) == m.tab {
			parts = append(parts, theme.Title.Render("["+label+"]"))
		} else {
			parts = append(parts, theme.Muted.Render(" "+label+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (m Model) viewTimer() string {
	status := m.status
	clockFace := formatClock(status.RemainingSeconds)
	if status.Mode == "FreeRun" {
		clockFace = formatClock(status.ActiveSeconds)
	}

	var state string
	switch {
	case !status.Active:
		state = theme.Muted.Render("idle")
	case status.IsPaused:
		state = theme.Paused.Render("paused")
	default:
		state = theme.Good.Render("running")
	}

	lines := []string{
		theme.Title.Render(status.Mode) + "  " + state,
		theme.Hot.Render(clockFace),
	}
	if status.Active {
		lines = append(lines,
			theme.Muted.Render(fmt.Sprintf("active %s · paused %s · interruptions %d",
				formatClock(status.ActiveSeconds), formatClock(status.PauseSeconds), status.InterruptionCount)))
		if status.TaskName != "" {
			lines = append(lines, theme.Muted.Render("task: "+status.TaskName))
		}
	}
	return theme.PaneActive.Render(strings.Join(lines, "\n"))
}

func (m Model) viewStats() string {
	lines := []string{theme.Title.Render("Session quality")}
	lines = append(lines, fmt.Sprintf("deep %d · moderate %d · distracted %d",
		m.quality.Deep, m.quality.Moderate, m.quality.Distracted))
	lines = append(lines, theme.Muted.Render(m.quality.Summary), "")
	lines = append(lines, theme.Title.Render("Last 7 days"))
	for _, day := range m.trend {
		bar := strings.Repeat("█", day.ActiveSeconds/1800)
		lines = append(lines, fmt.Sprintf("%s %3dm %s", day.Day, day.ActiveSeconds/60, theme.Good.Render(bar)))
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func (m Model) viewTasks() string {
	if len(m.taskList) == 0 {
		return theme.Pane.Render(theme.Muted.Render("no tasks yet"))
	}
	lines := make([]string, 0, len(m.taskList))
	for i, task := range m.taskList {
		marker := "  "
		if i == m.cursor {
			marker = theme.Hot.Render("> ")
		}
		check := "[ ]"
		if task.IsCompleted {
			check = theme.Good.Render("[x]")
		}
		name := task.Name
		if task.IsActive {
			name = theme.Title.Render(name + " *")
		}
		lines = append(lines, marker+check+" "+name)
	}
	return theme.Pane.Render(strings.Join(lines, "\n"))
}

func formatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
