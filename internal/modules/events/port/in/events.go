package in

import (
	"context"

	"tempo/internal/modules/events/dto"
)

type Usecase interface {
	BySession(ctx context.Context, sessionID string) ([]dto.EventOutput, error)
	BySessionAndKind(ctx context.Context, sessionID, kind string) ([]dto.EventOutput, error)
	ByRange(ctx context.Context, input dto.RangeInput) ([]dto.EventOutput, error)
	Flush(ctx context.Context) (dto.FlushOutput, error)
}
