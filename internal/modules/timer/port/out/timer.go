package out

import (
	"context"

	eventsdomain "tempo/internal/modules/events/domain"
	"tempo/internal/modules/timer/domain"
)

// SessionLedger persists completed and abandoned session records.
type SessionLedger interface {
	SaveSession(ctx context.Context, record domain.Record) error
	GetSession(ctx context.Context, id string) (domain.Record, error)
	ListSessions(ctx context.Context, limit int) ([]domain.Record, error)
	// DeleteSession removes the record and cascades to its atomic events
	// inside one transaction.
	DeleteSession(ctx context.Context, id string) error
}

// EventRecorder is the timer's view of the atomic event buffer. Record never
// fails; Flush reports failure so the caller can defer to the next flush point.
type EventRecorder interface {
	Record(ctx context.Context, sessionID string, kind eventsdomain.Kind, elapsedSeconds int, metadata map[string]any)
	Flush(ctx context.Context) error
}

// TaskLookup resolves the active task association, if any. A missing task is
// a valid state, not an error.
type TaskLookup interface {
	ActiveTaskNameAndCategory(ctx context.Context) (name, category string, err error)
}

// DurationSource supplies planned durations in minutes per mode.
type DurationSource interface {
	Durations(ctx context.Context) (focus, shortBreak, longBreak int, err error)
}

// Notifier surfaces session boundaries to the desktop. Failures are logged
// and ignored.
type Notifier interface {
	SessionCompleted(mode domain.Mode, activeSeconds int) error
}
