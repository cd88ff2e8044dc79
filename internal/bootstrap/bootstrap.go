package bootstrap

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	analyticsinadapter "tempo/internal/modules/analytics/adapter/in"
	analyticsoutadapter "tempo/internal/modules/analytics/adapter/out"
	analyticsin "tempo/internal/modules/analytics/port/in"
	analyticsservice "tempo/internal/modules/analytics/service"
	analyticsusecase "tempo/internal/modules/analytics/usecase"
	eventsinadapter "tempo/internal/modules/events/adapter/in"
	eventsoutadapter "tempo/internal/modules/events/adapter/out"
	eventsdomain "tempo/internal/modules/events/domain"
	eventsservice "tempo/internal/modules/events/service"
	eventsusecase "tempo/internal/modules/events/usecase"
	monitorinadapter "tempo/internal/modules/monitor/adapter/in"
	monitoroutadapter "tempo/internal/modules/monitor/adapter/out"
	monitorin "tempo/internal/modules/monitor/port/in"
	monitorservice "tempo/internal/modules/monitor/service"
	monitorusecase "tempo/internal/modules/monitor/usecase"
	settingsinadapter "tempo/internal/modules/settings/adapter/in"
	settingsoutadapter "tempo/internal/modules/settings/adapter/out"
	settingsservice "tempo/internal/modules/settings/service"
	settingsusecase "tempo/internal/modules/settings/usecase"
	taskinadapter "tempo/internal/modules/task/adapter/in"
	taskoutadapter "tempo/internal/modules/task/adapter/out"
	taskin "tempo/internal/modules/task/port/in"
	taskservice "tempo/internal/modules/task/service"
	taskusecase "tempo/internal/modules/task/usecase"
	timerinadapter "tempo/internal/modules/timer/adapter/in"
	timeroutadapter "tempo/internal/modules/timer/adapter/out"
	timerdto "tempo/internal/modules/timer/dto"
	timerin "tempo/internal/modules/timer/port/in"
	timerservice "tempo/internal/modules/timer/service"
	timerusecase "tempo/internal/modules/timer/usecase"
	"tempo/internal/platform/clock"
	"tempo/internal/platform/config"
	"tempo/internal/platform/id"
	"tempo/internal/platform/logging"
	"tempo/internal/platform/storage"
	uiapp "tempo/internal/ui/app"
)

// App holds every wired module. Cross-module dependencies are bridged here so
// modules only know each other through ports.
type App struct {
	TimerCLI     timerinadapter.CLIHandler
	EventsCLI    eventsinadapter.CLIHandler
	AnalyticsCLI analyticsinadapter.CLIHandler
	TaskCLI      taskinadapter.CLIHandler
	SettingsCLI  settingsinadapter.CLIHandler
	MonitorCLI   monitorinadapter.CLIHandler

	Timer     timerin.Usecase
	Analytics analyticsin.Usecase
	Tasks     taskin.Usecase
	Monitors  monitorin.Usecase

	gateway *storage.Gateway
}

func New(cfg config.Config, verbose bool) (*App, error) {
	logger := logging.New(verbose)
	clk := clock.SystemClock{}
	ids := id.RandomHex{}

	gateway, err := storage.Open(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	eventStore, err := eventsoutadapter.NewSQLiteEventStore(gateway)
	if err != nil {
		return nil, fmt.Errorf("new event store: %w", err)
	}
	buffer := eventsservice.NewBuffer(eventStore, clk, cfg.AutoFlushThreshold, logger.Named("events"))
	eventsUC := eventsusecase.NewInteractor(buffer, eventStore)

	sessionLedger, err := timeroutadapter.NewSQLiteSessionStore(gateway)
	if err != nil {
		return nil, fmt.Errorf("new session store: %w", err)
	}

	taskStore, err := taskoutadapter.NewSQLiteTaskStore(gateway)
	if err != nil {
		return nil, fmt.Errorf("new task store: %w", err)
	}
	taskUC := taskusecase.NewInteractor(taskservice.NewTaskService(taskStore))

	settingsStore, err := settingsoutadapter.NewSQLiteSettingsStore(gateway)
	if err != nil {
		return nil, fmt.Errorf("new settings store: %w", err)
	}
	settingsSvc := settingsservice.NewSettingsService(settingsStore, cfg.Durations)
	settingsUC := settingsusecase.NewInteractor(settingsSvc)

	timerUC := timerusecase.NewInteractor(timerservice.NewTimerService(
		clk,
		ids,
		sessionLedger,
		bufferRecorder{buffer: buffer},
		taskLookup{tasks: taskUC},
		settingsSvc,
		timeroutadapter.NewBeeepNotifier(),
		logger.Named("timer"),
	), sessionLedger)

	analyticsUC := analyticsusecase.NewInteractor(analyticsservice.NewAnalyzer(
		analyticsoutadapter.NewSQLiteReader(gateway),
		clk,
	))

	monitorUC := monitorusecase.NewInteractor(monitorservice.NewMonitorService(
		monitoroutadapter.NewFileManifestStore(cfg.MonitorsPath),
		monitoroutadapter.NewGRPCHost(),
		signalSink{timer: timerUC},
		logger.Named("monitor"),
	))

	return &App{
		TimerCLI:     timerinadapter.NewCLIHandler(timerUC),
		EventsCLI:    eventsinadapter.NewCLIHandler(eventsUC),
		AnalyticsCLI: analyticsinadapter.NewCLIHandler(analyticsUC),
		TaskCLI:      taskinadapter.NewCLIHandler(taskUC),
		SettingsCLI:  settingsinadapter.NewCLIHandler(settingsUC),
		MonitorCLI:   monitorinadapter.NewCLIHandler(monitorUC),
		Timer:        timerUC,
		Analytics:    analyticsUC,
		Tasks:        taskUC,
		Monitors:     monitorUC,
		gateway:      gateway,
	}, nil
}

func (a *App) Close() error {
	return a.gateway.Close()
}

// RunTUI hosts the bubbletea program. Its 1 Hz tick is the session engine's
// only tick source while the TUI runs.
func RunTUI(app *App) error {
	model := uiapp.NewModel(app.Timer, app.Analytics, app.Tasks, app.Monitors)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err := program.Run()
	return err
}

// bufferRecorder adapts the event buffer to the session engine's recorder
// port without the timer module importing the events service layer.
type bufferRecorder struct {
	buffer *eventsservice.Buffer
}

func (r bufferRecorder) Record(ctx context.Context, sessionID string, kind eventsdomain.Kind, elapsedSeconds int, metadata map[string]any) {
	r.buffer.Record(ctx, sessionID, kind, elapsedSeconds, metadata)
}

func (r bufferRecorder) Flush(ctx context.Context) error {
	return r.buffer.Flush(ctx)
}

type taskLookup struct {
	tasks taskin.Usecase
}

func (l taskLookup) ActiveTaskNameAndCategory(ctx context.Context) (string, string, error) {
	return l.tasks.ActiveNameAndCategory(ctx)
}

// signalSink feeds monitor deltas into the session engine as environmental
// events. Without a live session the engine drops them silently.
type signalSink struct {
	timer timerin.Usecase
}

func (s signalSink) FocusShift(ctx context.Context, monitor, app, windowTitle string) error {
	return s.timer.RecordSignal(ctx, timerdto.SignalInput{
		Kind: string(eventsdomain.KindFocusShiftDetected),
		Metadata: map[string]any{
			"monitor":      monitor,
			"app":          app,
			"window_title": windowTitle,
		},
	})
}

func (s signalSink) DNDToggled(ctx context.Context, monitor string, active bool) error {
	return s.timer.RecordSignal(ctx, timerdto.SignalInput{
		Kind: string(eventsdomain.KindDNDToggled),
		Metadata: map[string]any{
			"monitor": monitor,
			"active":  active,
		},
	})
}
