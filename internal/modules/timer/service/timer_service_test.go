package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	hclog "github.com/hashicorp/go-hclog"

	eventsdomain "tempo/internal/modules/events/domain"
	"tempo/internal/modules/timer/domain"
	apperrors "tempo/internal/platform/errors"
)

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	return f.now
}

type seqID struct {
	n int
}

func (s *seqID) New() string {
	s.n++
	return "session-" + strconv.Itoa(s.n)
}

type recordedEvent struct {
	sessionID string
	kind      eventsdomain.Kind
	elapsed   int
	metadata  map[string]any
}

type fakeRecorder struct {
	events   []recordedEvent
	flushes  int
	flushErr error
}

func (f *fakeRecorder) Record(_ context.Context, sessionID string, kind eventsdomain.Kind, elapsed int, metadata map[string]any) {
	f.events = append(f.events, recordedEvent{sessionID: sessionID, kind: kind, elapsed: elapsed, metadata: metadata})
}

func (f *fakeRecorder) Flush(context.Context) error {
	f.flushes++
	return f.flushErr
}

func (f *fakeRecorder) kinds() []eventsdomain.Kind {
	out := make([]eventsdomain.Kind, 0, len(f.events))
	for _, event := range f.events {
		out = append(out, event.kind)
	}
	return out
}

type fakeLedger struct {
	saved   []domain.Record
	saveErr error
}

func (f *fakeLedger) SaveSession(_ context.Context, record domain.Record) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, record)
	return nil
}

func (f *fakeLedger) GetSession(context.Context, string) (domain.Record, error) {
	return domain.Record{}, apperrors.ErrNotFound
}

func (f *fakeLedger) ListSessions(context.Context, int) ([]domain.Record, error) {
	return nil, nil
}

func (f *fakeLedger) DeleteSession(context.Context, string) error {
	return nil
}

type fakeTasks struct {
	name     string
	category string
}

func (f *fakeTasks) ActiveTaskNameAndCategory(context.Context) (string, string, error) {
	return f.name, f.category, nil
}

type fakeDurations struct {
	focus      int
	shortBreak int
	longBreak  int
}

func (f *fakeDurations) Durations(context.Context) (int, int, int, error) {
	return f.focus, f.shortBreak, f.longBreak, nil
}

type fakeNotifier struct {
	mode  domain.Mode
	calls int
}

func (f *fakeNotifier) SessionCompleted(mode domain.Mode, _ int) error {
	f.mode = mode
	f.calls++
	return nil
}

type fixture struct {
	service  *TimerService
	clock    *fakeClock
	recorder *fakeRecorder
	ledger   *fakeLedger
	notifier *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	clk := &fakeClock{now: time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)}
	recorder := &fakeRecorder{}
	ledger := &fakeLedger{}
	notifier := &fakeNotifier{}
	svc := NewTimerService(
		clk,
		&seqID{},
		ledger,
		recorder,
		&fakeTasks{name: "write report", category: "work"},
		&fakeDurations{focus: 1, shortBreak: 1, longBreak: 2},
		notifier,
		hclog.NewNullLogger(),
	)
	return &fixture{service: svc, clock: clk, recorder: recorder, ledger: ledger, notifier: notifier}
}

func TestFocusSessionRunsToCompletion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := f.service.Start(ctx); !errors.Is(err, apperrors.ErrActiveSessionExists) {
		t.Fatalf("second start = %v, want ErrActiveSessionExists", err)
	}

	// Planned duration is one minute; run 20s, pause for 10s, run to expiry.
	for i := 0; i < 20; i++ {
		f.service.Tick(ctx)
	}
	if err := f.service.Toggle(ctx); err != nil {
		t.Fatalf("toggle pause: %v", err)
	}
	for i := 0; i < 10; i++ {
		f.service.Tick(ctx)
	}
	if err := f.service.Toggle(ctx); err != nil {
		t.Fatalf("toggle resume: %v", err)
	}
	for i := 0; i < 40; i++ {
		f.service.Tick(ctx)
	}

	if f.service.Status(ctx).Active {
		t.Fatal("session should be destroyed after countdown expiry")
	}
	if len(f.ledger.saved) != 1 {
		t.Fatalf("saved records = %d, want 1", len(f.ledger.saved))
	}
	record := f.ledger.saved[0]
	if !record.Completed {
		t.Fatal("record should be marked completed")
	}
	if record.DurationSeconds != 60 {
		t.Fatalf("record duration = %d, want 60 active seconds", record.DurationSeconds)
	}
	if record.PlannedDurationMinutes != 1 {
		t.Fatalf("planned minutes = %d, want 1", record.PlannedDurationMinutes)
	}
	if record.InterruptionCount != 1 {
		t.Fatalf("interruption count = %d, want 1 (the pause)", record.InterruptionCount)
	}
	if record.TaskName != "write report" || record.Category != "work" {
		t.Fatalf("task association = %q/%q, want write report/work", record.TaskName, record.Category)
	}

	want := []eventsdomain.Kind{
		eventsdomain.KindSessionStarted,
		eventsdomain.KindMilestoneReached,
		eventsdomain.KindInterruptionDetected,
		eventsdomain.KindSessionResumed,
		eventsdomain.KindMilestoneReached,
		eventsdomain.KindMilestoneReached,
		eventsdomain.KindSessionCompleted,
	}
	got := f.recorder.kinds()
	if len(got) != len(want) {
		t.Fatalf("event kinds = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("event %d = %s, want %s", i, got[i], want[i])
		}
	}

	completed := f.recorder.events[len(f.recorder.events)-1]
	if completed.elapsed != 60 {
		t.Fatalf("completion elapsed = %d, want 60", completed.elapsed)
	}
	if completed.metadata["completed_by"] != CompletedByTimer {
		t.Fatalf("completed_by = %v, want %s", completed.metadata["completed_by"], CompletedByTimer)
	}
	if completed.metadata["completion_ratio"] != 1.0 {
		t.Fatalf("completion_ratio = %v, want 1.0", completed.metadata["completion_ratio"])
	}
	if f.recorder.flushes != 1 {
		t.Fatalf("flushes = %d, want 1 at session boundary", f.recorder.flushes)
	}
	if f.notifier.calls != 1 {
		t.Fatalf("notifications = %d, want 1", f.notifier.calls)
	}

	resumed := f.recorder.events[3]
	if resumed.metadata["pause_duration"] != 10 {
		t.Fatalf("pause_duration = %v, want 10", resumed.metadata["pause_duration"])
	}
	if resumed.elapsed != 20 {
		t.Fatalf("resume elapsed = %d, want 20 (pause ticks excluded)", resumed.elapsed)
	}
}

func TestResetAbandonsSessionWithPartialCompletion(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 30; i++ {
		f.service.Tick(ctx)
	}
	f.service.Reset(ctx, "reset")

	if f.service.Status(ctx).Active {
		t.Fatal("session should be destroyed by reset")
	}
	if len(f.ledger.saved) != 1 {
		t.Fatalf("saved records = %d, want 1", len(f.ledger.saved))
	}
	if f.ledger.saved[0].Completed {
		t.Fatal("abandoned record must not be marked completed")
	}
	if f.ledger.saved[0].DurationSeconds != 30 {
		t.Fatalf("record duration = %d, want 30", f.ledger.saved[0].DurationSeconds)
	}

	last := f.recorder.events[len(f.recorder.events)-1]
	if last.kind != eventsdomain.KindSessionAbandoned {
		t.Fatalf("last event = %s, want session_abandoned", last.kind)
	}
	if last.metadata["reason"] != "reset" {
		t.Fatalf("reason = %v, want reset", last.metadata["reason"])
	}
	if last.metadata["partial_completion"] != 0.5 {
		t.Fatalf("partial_completion = %v, want 0.5", last.metadata["partial_completion"])
	}

	// The running reset records an interruption before abandoning.
	var sawInterruption bool
	for _, event := range f.recorder.events {
		if event.kind == eventsdomain.KindInterruptionDetected {
			sawInterruption = true
			if event.metadata["reason"] != "reset" {
				t.Fatalf("interruption reason = %v, want reset", event.metadata["reason"])
			}
		}
	}
	if !sawInterruption {
		t.Fatal("reset of a running session must record an interruption")
	}
	if f.recorder.flushes != 1 {
		t.Fatalf("flushes = %d, want 1", f.recorder.flushes)
	}
}

func TestResetBeforeFirstActiveSecondLeavesNoTrace(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	f.service.Reset(ctx, "reset")

	if f.service.Status(ctx).Active {
		t.Fatal("session should be destroyed by reset")
	}
	if len(f.ledger.saved) != 0 {
		t.Fatalf("saved records = %d, want 0 for zero active time", len(f.ledger.saved))
	}
	for _, event := range f.recorder.events {
		if event.kind == eventsdomain.KindSessionAbandoned {
			t.Fatal("zero-activity reset must not emit session_abandoned")
		}
	}
}

func TestResetWhilePausedSkipsInterruption(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 5; i++ {
		f.service.Tick(ctx)
	}
	if err := f.service.Toggle(ctx); err != nil {
		t.Fatalf("toggle pause: %v", err)
	}
	before := len(f.recorder.events)
	f.service.Reset(ctx, "reset")

	for _, event := range f.recorder.events[before:] {
		if event.kind == eventsdomain.KindInterruptionDetected {
			t.Fatal("reset of a paused session must not add another interruption")
		}
	}
	last := f.recorder.events[len(f.recorder.events)-1]
	if last.kind != eventsdomain.KindSessionAbandoned {
		t.Fatalf("last event = %s, want session_abandoned", last.kind)
	}
}

func TestSetModeAbandonsRunningSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 3; i++ {
		f.service.Tick(ctx)
	}
	if err := f.service.SetMode(ctx, domain.ModeShortBreak); err != nil {
		t.Fatalf("set mode: %v", err)
	}

	last := f.recorder.events[len(f.recorder.events)-1]
	if last.kind != eventsdomain.KindSessionAbandoned {
		t.Fatalf("last event = %s, want session_abandoned", last.kind)
	}
	if last.metadata["reason"] != "mode_change" {
		t.Fatalf("reason = %v, want mode_change", last.metadata["reason"])
	}
	if got := f.service.Status(ctx).Mode; got != domain.ModeShortBreak {
		t.Fatalf("selected mode = %s, want ShortBreak", got)
	}
}

func TestBreakSessionsUseBreakEvents(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.SetMode(ctx, domain.ModeShortBreak); err != nil {
		t.Fatalf("set mode: %v", err)
	}
	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 60; i++ {
		f.service.Tick(ctx)
	}

	got := f.recorder.kinds()
	if got[0] != eventsdomain.KindBreakStarted {
		t.Fatalf("first event = %s, want break_started", got[0])
	}
	if got[len(got)-1] != eventsdomain.KindBreakEnded {
		t.Fatalf("last event = %s, want break_ended", got[len(got)-1])
	}
	if f.notifier.mode != domain.ModeShortBreak {
		t.Fatalf("notifier mode = %s, want ShortBreak", f.notifier.mode)
	}
}

func TestToggleWithoutSessionStartsOne(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.Toggle(ctx); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	status := f.service.Status(ctx)
	if !status.Active {
		t.Fatal("toggle without a session should start one")
	}
	if status.Mode != domain.ModeFocus {
		t.Fatalf("mode = %s, want default Focus", status.Mode)
	}
}

func TestCommandsWithoutSessionAreNoOps(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	f.service.Tick(ctx)
	f.service.Complete(ctx, CompletedByUser)
	f.service.Reset(ctx, "reset")
	f.service.MarkInterruption(ctx, "phone", eventsdomain.SeverityLow)
	f.service.RecordSignal(ctx, eventsdomain.KindFocusShiftDetected, nil)

	if len(f.recorder.events) != 0 {
		t.Fatalf("events = %v, want none", f.recorder.kinds())
	}
	if len(f.ledger.saved) != 0 {
		t.Fatalf("saved records = %d, want 0", len(f.ledger.saved))
	}
}

func TestRecordSignalStampsSessionElapsed(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 7; i++ {
		f.service.Tick(ctx)
	}
	f.service.RecordSignal(ctx, eventsdomain.KindFocusShiftDetected, map[string]any{"app": "browser"})

	last := f.recorder.events[len(f.recorder.events)-1]
	if last.kind != eventsdomain.KindFocusShiftDetected {
		t.Fatalf("last event = %s, want focus_shift_detected", last.kind)
	}
	if last.elapsed != 7 {
		t.Fatalf("signal elapsed = %d, want 7", last.elapsed)
	}
}

func TestPersistenceFailureDoesNotBlockDestruction(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)
	f.ledger.saveErr = errors.New("disk full")
	f.recorder.flushErr = errors.New("disk full")

	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 10; i++ {
		f.service.Tick(ctx)
	}
	f.service.Complete(ctx, CompletedByUser)

	if f.service.Status(ctx).Active {
		t.Fatal("session must be destroyed even when persistence fails")
	}
}

func TestShutdownAbandonsAndFlushes(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newFixture(t)

	if err := f.service.Start(ctx); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 4; i++ {
		f.service.Tick(ctx)
	}
	f.service.Shutdown(ctx)

	last := f.recorder.events[len(f.recorder.events)-1]
	if last.kind != eventsdomain.KindSessionAbandoned {
		t.Fatalf("last event = %s, want session_abandoned", last.kind)
	}
	if last.metadata["reason"] != "app_shutdown" {
		t.Fatalf("reason = %v, want app_shutdown", last.metadata["reason"])
	}
	if f.recorder.flushes != 2 {
		t.Fatalf("flushes = %d, want 2 (abandon flush then shutdown flush)", f.recorder.flushes)
	}
}
