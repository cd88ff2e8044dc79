package in

import (
	"context"

	"tempo/internal/modules/timer/dto"
)

// Usecase is the command surface of the session engine. Lifecycle commands on
// a missing session are tolerated as no-ops; only malformed input is rejected.
type Usecase interface {
	Start(ctx context.Context) error
	Toggle(ctx context.Context) error
	Tick(ctx context.Context)
	Complete(ctx context.Context) error
	Reset(ctx context.Context) error
	SetMode(ctx context.Context, input dto.ModeInput) error
	MarkInterruption(ctx context.Context, input dto.InterruptionInput) error
	RecordSignal(ctx context.Context, input dto.SignalInput) error
	Shutdown(ctx context.Context)
	Status(ctx context.Context) dto.StatusOutput
	ListSessions(ctx context.Context, input dto.ListSessionsInput) ([]dto.SessionOutput, error)
	DeleteSession(ctx context.Context, id string) error
}
