package out

import (
	"context"
	"time"

	"tempo/internal/modules/analytics/domain"
	eventsdomain "tempo/internal/modules/events/domain"
)

// Reader is the read-only query surface the analytics engine derives from.
// It only ever sees flushed data; the in-memory event buffer is invisible here.
type Reader interface {
	// InterruptionEvents returns a session's interruption_detected events
	// ordered by elapsed offset.
	InterruptionEvents(ctx context.Context, sessionID string) ([]eventsdomain.Event, error)
	// SessionPlannedSeconds returns the planned duration of a persisted
	// session, or zero when the session is unknown.
	SessionPlannedSeconds(ctx context.Context, sessionID string) (int, error)
	// InterruptionCounts returns per-session interruption counts across all
	// persisted sessions, optionally restricted to the given modes.
	InterruptionCounts(ctx context.Context, modes []string) ([]int, error)
	// HeatmapCells aggregates flushed events into day/hour counts.
	HeatmapCells(ctx context.Context, since time.Time, kinds []eventsdomain.Kind) ([]eventsdomain.HeatmapCell, error)
	// DailyTotals sums productive active seconds per calendar day.
	DailyTotals(ctx context.Context, since time.Time) (map[string]domain.DayTotal, error)
	// HourlyTotals sums productive active seconds per hour of day.
	HourlyTotals(ctx context.Context, since time.Time) (map[int]domain.HourTotal, error)
	// CompletionCounts returns completed and total persisted sessions since
	// the given instant.
	CompletionCounts(ctx context.Context, since time.Time) (completed, total int, err error)
}
