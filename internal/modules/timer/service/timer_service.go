package service

import (
	"context"

	hclog "github.com/hashicorp/go-hclog"

	eventsdomain "tempo/internal/modules/events/domain"
	"tempo/internal/modules/timer/domain"
	timerout "tempo/internal/modules/timer/port/out"
	"tempo/internal/platform/clock"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/id"
)

// CompletedByTimer and CompletedByUser distinguish countdown expiry from an
// explicit free-run completion in session_completed metadata.
const (
	CompletedByTimer = "timer"
	CompletedByUser  = "user"
)

// TimerService owns the single live session and converts ticks and commands
// into counter mutations, atomic events, and ledger records. It runs under the
// host's single-threaded tick loop, so the session needs no locking. Commands
// that arrive without a session and imply no start are absorbed as no-ops, and
// persistence failures never block a state transition.
type TimerService struct {
	clock     clock.Clock
	idGen     id.Generator
	ledger    timerout.SessionLedger
	events    timerout.EventRecorder
	tasks     timerout.TaskLookup
	durations timerout.DurationSource
	notifier  timerout.Notifier
	logger    hclog.Logger

	selectedMode domain.Mode
	session      *domain.Session
}

func NewTimerService(
	clk clock.Clock,
	idGen id.Generator,
	ledger timerout.SessionLedger,
	events timerout.EventRecorder,
	tasks timerout.TaskLookup,
	durations timerout.DurationSource,
	notifier timerout.Notifier,
	logger hclog.Logger,
) *TimerService {
	return &TimerService{
		clock:        clk,
		idGen:        idGen,
		ledger:       ledger,
		events:       events,
		tasks:        tasks,
		durations:    durations,
		notifier:     notifier,
		logger:       logger,
		selectedMode: domain.ModeFocus,
	}
}

// Start creates a session in the currently selected mode and emits
// session_started at elapsed zero.
func (s *TimerService) Start(ctx context.Context) error {
	if s.session != nil {
		return apperrors.ErrActiveSessionExists
	}
	planned := s.plannedSeconds(ctx, s.selectedMode)

	taskName, category := "", ""
	if s.tasks != nil {
		var err error
		if taskName, category, err = s.tasks.ActiveTaskNameAndCategory(ctx); err != nil {
			s.logger.Warn("active task lookup failed", "error", err)
			taskName, category = "", ""
		}
	}

	s.session = domain.NewSession(s.idGen.New(), s.selectedMode, planned, s.clock.Now(), taskName, category)
	metadata := map[string]any{
		"planned_duration": planned,
		"mode":             string(s.selectedMode),
	}
	if taskName != "" {
		metadata["task_name"] = taskName
	}
	startKind := eventsdomain.KindSessionStarted
	if !s.selectedMode.Productive() {
		startKind = eventsdomain.KindBreakStarted
	}
	s.events.Record(ctx, s.session.ID, startKind, 0, metadata)
	return nil
}

// Toggle pauses a running session, resumes a paused one, and starts a session
// when none exists.
func (s *TimerService) Toggle(ctx context.Context) error {
	if s.session == nil {
		return s.Start(ctx)
	}
	if s.session.IsPaused {
		interval, ok := s.session.Resume()
		if !ok {
			return nil
		}
		s.events.Record(ctx, s.session.ID, eventsdomain.KindSessionResumed, s.session.ActiveSeconds, map[string]any{
			"pause_duration": interval,
		})
		return nil
	}
	if !s.session.Pause(s.clock.Now()) {
		return nil
	}
	s.markInterruption(ctx, "pause", eventsdomain.SeverityLow)
	return nil
}

// Tick advances the live session by one second. Countdown expiry triggers
// completion; quarter milestones are recorded along the way. Tick never fails.
func (s *TimerService) Tick(ctx context.Context) {
	if s.session == nil {
		return
	}
	expired := s.session.Tick()
	if !s.session.IsPaused {
		s.recordMilestone(ctx)
	}
	if expired {
		s.Complete(ctx, CompletedByTimer)
	}
}

// Complete finalizes the live session as completed, persists its record, and
// destroys it. Without a session it is a no-op.
func (s *TimerService) Complete(ctx context.Context, completedBy string) {
	if s.session == nil {
		return
	}
	session := s.session
	session.IsCompleted = true

	endKind := eventsdomain.KindSessionCompleted
	if !session.Mode.Productive() {
		endKind = eventsdomain.KindBreakEnded
	}
	s.events.Record(ctx, session.ID, endKind, session.ActiveSeconds, map[string]any{
		"actual_duration":    session.ActiveSeconds,
		"planned_duration":   session.PlannedSeconds,
		"completed_by":       completedBy,
		"interruption_count": session.InterruptionCount,
		"completion_ratio":   session.CompletionRatio(),
	})
	s.finalize(ctx, session, true)

	if s.notifier != nil {
		if err := s.notifier.SessionCompleted(session.Mode, session.ActiveSeconds); err != nil {
			s.logger.Warn("completion notification failed", "error", err)
		}
	}
}

// Reset abandons the live session. Sessions that never accrued active time
// leave no record and no abandonment event; the countdown is restored either way.
func (s *TimerService) Reset(ctx context.Context, reason string) {
	if s.session == nil {
		return
	}
	session := s.session
	if session.ActiveSeconds == 0 {
		s.session = nil
		return
	}
	if !session.IsPaused {
		s.markInterruption(ctx, reason, eventsdomain.SeverityMedium)
	}
	partial := session.CompletionRatio()
	s.events.Record(ctx, session.ID, eventsdomain.KindSessionAbandoned, session.ActiveSeconds, map[string]any{
		"reason":             reason,
		"interruption_count": session.InterruptionCount,
		"partial_completion": partial,
	})
	s.finalize(ctx, session, false)
}

// SetMode switches the selected mode. A live session is abandoned first, with
// interruption type mode_change.
func (s *TimerService) SetMode(ctx context.Context, mode domain.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	if s.session != nil {
		s.Reset(ctx, "mode_change")
	}
	s.selectedMode = mode
	return nil
}

// MarkInterruption records an interruption without stopping accrual. Without a
// session it is a no-op.
func (s *TimerService) MarkInterruption(ctx context.Context, kind string, severity eventsdomain.Severity) {
	if s.session == nil {
		return
	}
	if err := severity.Validate(); err != nil {
		severity = eventsdomain.SeverityMedium
	}
	s.markInterruption(ctx, kind, severity)
}

// RecordSignal lets external collaborators (focus monitors, DND managers)
// append environmental events on the session's behalf, stamped with the
// session's own elapsed counter. Without a session it is a no-op.
func (s *TimerService) RecordSignal(ctx context.Context, kind eventsdomain.Kind, metadata map[string]any) {
	if s.session == nil {
		return
	}
	if err := kind.Validate(); err != nil {
		s.logger.Warn("dropping signal with unknown kind", "kind", kind)
		return
	}
	s.events.Record(ctx, s.session.ID, kind, s.session.ActiveSeconds, metadata)
}

// Shutdown abandons a session with nonzero active time and flushes the buffer.
func (s *TimerService) Shutdown(ctx context.Context) {
	if s.session != nil {
		s.Reset(ctx, "app_shutdown")
	}
	if err := s.events.Flush(ctx); err != nil {
		s.logger.Error("shutdown flush failed", "error", err)
	}
}

// Snapshot is a read-only view of the machine for presentation layers.
type Snapshot struct {
	Active            bool
	SessionID         string
	Mode              domain.Mode
	PlannedSeconds    int
	ActiveSeconds     int
	TotalSeconds      int
	PauseSeconds      int
	RemainingSeconds  int
	IsPaused          bool
	InterruptionCount int
	TaskName          string
	Category          string
}

func (s *TimerService) Status(ctx context.Context) Snapshot {
	if s.session == nil {
		return Snapshot{
			Mode:             s.selectedMode,
			PlannedSeconds:   s.plannedSeconds(ctx, s.selectedMode),
			RemainingSeconds: s.plannedSeconds(ctx, s.selectedMode),
		}
	}
	return Snapshot{
		Active:            true,
		SessionID:         s.session.ID,
		Mode:              s.session.Mode,
		PlannedSeconds:    s.session.PlannedSeconds,
		ActiveSeconds:     s.session.ActiveSeconds,
		TotalSeconds:      s.session.TotalSeconds,
		PauseSeconds:      s.session.PauseSeconds,
		RemainingSeconds:  s.session.Remaining(),
		IsPaused:          s.session.IsPaused,
		InterruptionCount: s.session.InterruptionCount,
		TaskName:          s.session.TaskName,
		Category:          s.session.Category,
	}
}

func (s *TimerService) markInterruption(ctx context.Context, kind string, severity eventsdomain.Severity) {
	session := s.session
	session.MarkInterruption(kind, s.clock.Now())
	s.events.Record(ctx, session.ID, eventsdomain.KindInterruptionDetected, session.ActiveSeconds, map[string]any{
		"reason":                kind,
		"severity":              string(severity),
		"interruption_number":   session.InterruptionCount,
		"first_interruption_at": session.Interruptions[0].ElapsedSeconds,
	})
}

func (s *TimerService) recordMilestone(ctx context.Context) {
	session := s.session
	if !session.Mode.Countdown() || session.PlannedSeconds < 4 {
		return
	}
	milestones := []struct {
		name       string
		percentage int
	}{
		{"quarter", 25},
		{"halfway", 50},
		{"three_quarters", 75},
	}
	for _, milestone := range milestones {
		if session.ActiveSeconds == session.PlannedSeconds*milestone.percentage/100 {
			s.events.Record(ctx, session.ID, eventsdomain.KindMilestoneReached, session.ActiveSeconds, map[string]any{
				"milestone_type": milestone.name,
				"percentage":     milestone.percentage,
			})
			return
		}
	}
}

// finalize writes the ledger record, flushes events, and destroys the session.
// The in-memory session is cleared even when persistence fails; the loss
// window is accepted and logged, never escalated.
func (s *TimerService) finalize(ctx context.Context, session *domain.Session, completed bool) {
	record := s.buildRecord(session, completed)
	if record.DurationSeconds > 0 {
		if err := s.ledger.SaveSession(ctx, record); err != nil {
			s.logger.Error("session record write failed", "session_id", session.ID, "error", err)
		}
	}
	if err := s.events.Flush(ctx); err != nil {
		s.logger.Error("session boundary flush failed", "session_id", session.ID, "error", err)
	}
	s.session = nil
}

func (s *TimerService) buildRecord(session *domain.Session, completed bool) domain.Record {
	duration := session.ActiveSeconds
	if duration < 0 {
		s.logger.Warn("negative session duration clamped to zero", "session_id", session.ID)
		duration = 0
	}
	return domain.Record{
		ID:                     session.ID,
		StartTime:              session.StartTime,
		EndTime:                s.clock.Now(),
		DurationSeconds:        duration,
		PlannedDurationMinutes: session.PlannedSeconds / 60,
		Mode:                   session.Mode,
		Completed:              completed,
		TaskName:               session.TaskName,
		Category:               session.Category,
		InterruptionCount:      session.InterruptionCount,
	}
}

func (s *TimerService) plannedSeconds(ctx context.Context, mode domain.Mode) int {
	if !mode.Countdown() {
		return 0
	}
	focus, shortBreak, longBreak, err := s.durations.Durations(ctx)
	if err != nil {
		s.logger.Warn("duration lookup failed, using defaults", "error", err)
		focus, shortBreak, longBreak = 25, 5, 15
	}
	minutes := focus
	switch mode {
	case domain.ModeShortBreak:
		minutes = shortBreak
	case domain.ModeLongBreak:
		minutes = longBreak
	}
	return minutes * 60
}
