package domain

import (
	"testing"
	"time"
)

func TestSessionTickAccounting(t *testing.T) {
	t.Parallel()

	start := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	session := NewSession("s1", ModeFocus, 10, start, "", "")

	for i := 0; i < 4; i++ {
		if expired := session.Tick(); expired {
			t.Fatalf("tick %d: unexpected expiry", i)
		}
	}
	if !session.Pause(start.Add(4 * time.Second)) {
		t.Fatal("pause on running session should succeed")
	}
	if session.Pause(start.Add(5 * time.Second)) {
		t.Fatal("pause on paused session should be a no-op")
	}
	for i := 0; i < 3; i++ {
		session.Tick()
	}
	interval, ok := session.Resume()
	if !ok {
		t.Fatal("resume on paused session should succeed")
	}
	if interval != 3 {
		t.Fatalf("pause interval = %d, want 3", interval)
	}
	if _, ok := session.Resume(); ok {
		t.Fatal("resume on running session should be a no-op")
	}

	if session.ActiveSeconds != 4 || session.PauseSeconds != 3 || session.TotalSeconds != 7 {
		t.Fatalf("counters = active %d pause %d total %d, want 4 3 7",
			session.ActiveSeconds, session.PauseSeconds, session.TotalSeconds)
	}
	if session.ActiveSeconds+session.PauseSeconds != session.TotalSeconds {
		t.Fatal("active + pause must equal total")
	}
	if got := len(session.PauseDurations); got != 1 || session.PauseDurations[0] != 3 {
		t.Fatalf("pause durations = %v, want [3]", session.PauseDurations)
	}
}

func TestSessionCountdownExpiry(t *testing.T) {
	t.Parallel()

	session := NewSession("s1", ModeShortBreak, 3, time.Now(), "", "")
	for i := 0; i < 2; i++ {
		if session.Tick() {
			t.Fatalf("tick %d: premature expiry", i)
		}
	}
	if !session.Tick() {
		t.Fatal("third tick should report expiry")
	}
	if session.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", session.Remaining())
	}
}

func TestSessionFreeRunNeverExpires(t *testing.T) {
	t.Parallel()

	session := NewSession("s1", ModeFreeRun, 999, time.Now(), "", "")
	if session.PlannedSeconds != 0 {
		t.Fatalf("free-run planned seconds = %d, want 0", session.PlannedSeconds)
	}
	for i := 0; i < 100; i++ {
		if session.Tick() {
			t.Fatal("free-run session must never expire")
		}
	}
	if session.Remaining() != 0 {
		t.Fatalf("remaining = %d, want 0", session.Remaining())
	}
	if session.CompletionRatio() != 0 {
		t.Fatalf("completion ratio = %f, want 0", session.CompletionRatio())
	}
}

func TestSessionCompletionRatioClamped(t *testing.T) {
	t.Parallel()

	session := NewSession("s1", ModeFocus, 4, time.Now(), "", "")
	session.Tick()
	if got := session.CompletionRatio(); got != 0.25 {
		t.Fatalf("ratio = %f, want 0.25", got)
	}
	for i := 0; i < 10; i++ {
		session.Tick()
	}
	if got := session.CompletionRatio(); got != 1 {
		t.Fatalf("ratio = %f, want clamp at 1", got)
	}
}

func TestSessionInterruptionLogUsesActiveOffset(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.Local)
	session := NewSession("s1", ModeFocus, 100, now, "", "")
	for i := 0; i < 5; i++ {
		session.Tick()
	}
	session.Pause(now)
	session.Tick()
	session.Tick()
	session.MarkInterruption("phone", now)

	if session.InterruptionCount != 1 {
		t.Fatalf("interruption count = %d, want 1", session.InterruptionCount)
	}
	// Two ticks while paused must not move the recorded offset.
	if got := session.Interruptions[0].ElapsedSeconds; got != 5 {
		t.Fatalf("interruption offset = %d, want 5", got)
	}
}
