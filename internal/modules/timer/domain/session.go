package domain

import (
	"fmt"
	"time"
)

// Mode selects the planned duration table entry for a session. FreeRun counts
// up with no planned duration.
type Mode string

const (
	ModeFocus      Mode = "Focus"
	ModeShortBreak Mode = "ShortBreak"
	ModeLongBreak  Mode = "LongBreak"
	ModeFreeRun    Mode = "FreeRun"
)

func (m Mode) Validate() error {
	switch m {
	case ModeFocus, ModeShortBreak, ModeLongBreak, ModeFreeRun:
		return nil
	default:
		return fmt.Errorf("unknown mode: %s", m)
	}
}

// Productive reports whether sessions in this mode count toward daily and
// hourly productivity aggregates.
func (m Mode) Productive() bool {
	return m == ModeFocus || m == ModeFreeRun
}

// Countdown reports whether the mode runs against a planned duration.
func (m Mode) Countdown() bool {
	return m != ModeFreeRun
}

// Interruption is one entry of the live session's interruption log.
type Interruption struct {
	ElapsedSeconds int
	At             time.Time
	Kind           string
}

// Session is the single live session. It is exclusively owned by the timer
// service; no other component holds a mutable reference. All counters advance
// in whole seconds, driven by the 1 Hz tick, so active/pause accounting stays
// correct regardless of wall-clock skew.
//
// Invariant: ActiveSeconds + PauseSeconds == TotalSeconds after every mutation.
type Session struct {
	ID             string
	StartTime      time.Time
	Mode           Mode
	PlannedSeconds int

	ActiveSeconds int
	TotalSeconds  int
	PauseSeconds  int

	PauseCount     int
	PauseDurations []int
	IsPaused       bool
	PauseStartedAt time.Time
	pauseTicks     int

	InterruptionCount int
	Interruptions     []Interruption

	IsCompleted bool

	TaskName string
	Category string
}

func NewSession(id string, mode Mode, plannedSeconds int, start time.Time, taskName, category string) *Session {
	if !mode.Countdown() {
		plannedSeconds = 0
	}
	return &Session{
		ID:             id,
		StartTime:      start,
		Mode:           mode,
		PlannedSeconds: plannedSeconds,
		TaskName:       taskName,
		Category:       category,
	}
}

// Tick advances the session by one second. While running it accrues active
// time; while paused it accrues pause time. It reports whether a countdown
// session has just reached its planned duration.
func (s *Session) Tick() bool {
	s.TotalSeconds++
	if s.IsPaused {
		s.PauseSeconds++
		s.pauseTicks++
		return false
	}
	s.ActiveSeconds++
	return s.Mode.Countdown() && s.ActiveSeconds >= s.PlannedSeconds
}

// Pause stops active-time accrual. Pausing an already paused session is
// absorbed as a no-op.
func (s *Session) Pause(now time.Time) bool {
	if s.IsPaused {
		return false
	}
	s.IsPaused = true
	s.PauseStartedAt = now
	s.PauseCount++
	s.pauseTicks = 0
	return true
}

// Resume restarts active-time accrual and records the finished pause interval,
// measured in ticks so it agrees with PauseSeconds. Resuming a session that is
// not paused is absorbed as a no-op.
func (s *Session) Resume() (int, bool) {
	if !s.IsPaused {
		return 0, false
	}
	interval := s.pauseTicks
	s.PauseDurations = append(s.PauseDurations, interval)
	s.IsPaused = false
	s.PauseStartedAt = time.Time{}
	s.pauseTicks = 0
	return interval, true
}

// MarkInterruption appends to the interruption log using the session's own
// active counter as the elapsed offset. It does not stop accrual.
func (s *Session) MarkInterruption(kind string, now time.Time) {
	s.InterruptionCount++
	s.Interruptions = append(s.Interruptions, Interruption{
		ElapsedSeconds: s.ActiveSeconds,
		At:             now,
		Kind:           kind,
	})
}

// Remaining is the countdown value; zero for FreeRun and for expired sessions.
func (s *Session) Remaining() int {
	if !s.Mode.Countdown() {
		return 0
	}
	remaining := s.PlannedSeconds - s.ActiveSeconds
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CompletionRatio is actual over planned active time, clamped to 1.0; zero
// when no plan exists.
func (s *Session) CompletionRatio() float64 {
	if s.PlannedSeconds <= 0 {
		return 0
	}
	ratio := float64(s.ActiveSeconds) / float64(s.PlannedSeconds)
	if ratio > 1 {
		return 1
	}
	return ratio
}
