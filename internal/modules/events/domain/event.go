package domain

import (
	"fmt"
	"time"
)

// Kind is the closed set of atomic event categories. Analytics switches over
// these values, so additions must extend Validate as well.
type Kind string

const (
	KindSessionStarted        Kind = "session_started"
	KindSessionResumed        Kind = "session_resumed"
	KindSessionPaused         Kind = "session_paused"
	KindSessionCompleted      Kind = "session_completed"
	KindSessionAbandoned      Kind = "session_abandoned"
	KindInterruptionDetected  Kind = "interruption_detected"
	KindFocusShiftDetected    Kind = "focus_shift_detected"
	KindDistractionIdentified Kind = "distraction_identified"
	KindDNDToggled            Kind = "dnd_toggled"
	KindEnvironmentChanged    Kind = "environment_changed"
	KindMilestoneReached      Kind = "milestone_reached"
	KindBreakStarted          Kind = "break_started"
	KindBreakEnded            Kind = "break_ended"
)

func (k Kind) Validate() error {
	switch k {
	case KindSessionStarted, KindSessionResumed, KindSessionPaused,
		KindSessionCompleted, KindSessionAbandoned,
		KindInterruptionDetected, KindFocusShiftDetected, KindDistractionIdentified,
		KindDNDToggled, KindEnvironmentChanged,
		KindMilestoneReached, KindBreakStarted, KindBreakEnded:
		return nil
	default:
		return fmt.Errorf("unknown event kind: %s", k)
	}
}

// Severity grades an interruption; it travels in event metadata, not as its
// own entity.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

func (s Severity) Validate() error {
	switch s {
	case SeverityLow, SeverityMedium, SeverityHigh:
		return nil
	default:
		return fmt.Errorf("unknown severity: %s", s)
	}
}

// Event is an immutable record of a single occurrence during a session.
// ElapsedSeconds is the session's own active-time counter at record time, not
// a wall-clock delta, so it stays correct across pause/resume cycles.
type Event struct {
	ID             int64
	SessionID      string
	Kind           Kind
	ElapsedSeconds int
	Timestamp      time.Time
	Metadata       map[string]any
	CreatedAt      time.Time
}

func (e Event) Validate() error {
	if e.SessionID == "" {
		return fmt.Errorf("event session id is required")
	}
	if e.ElapsedSeconds < 0 {
		return fmt.Errorf("event elapsed seconds must be non-negative")
	}
	return e.Kind.Validate()
}
