package out

import (
	"context"
	"time"

	"tempo/internal/modules/events/domain"
)

// EventStore persists flushed events. InsertBatch is all-or-nothing: it runs
// in a single transaction so a failed flush leaves nothing behind.
type EventStore interface {
	InsertBatch(ctx context.Context, events []domain.Event) error
	BySession(ctx context.Context, sessionID string) ([]domain.Event, error)
	BySessionAndKind(ctx context.Context, sessionID string, kind domain.Kind) ([]domain.Event, error)
	ByRange(ctx context.Context, from, to time.Time) ([]domain.Event, error)
	HeatmapCells(ctx context.Context, since time.Time, kinds []domain.Kind) ([]domain.HeatmapCell, error)
	DeleteBySession(ctx context.Context, sessionID string) error
	DeleteByRange(ctx context.Context, from, to time.Time) error
}
