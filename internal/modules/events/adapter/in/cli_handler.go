package in

import (
	"context"
	"time"

	"tempo/internal/modules/events/dto"
	eventsin "tempo/internal/modules/events/port/in"
)

type CLIHandler struct {
	usecase eventsin.Usecase
}

func NewCLIHandler(usecase eventsin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) BySession(ctx context.Context, sessionID, kind string) ([]dto.EventOutput, error) {
	if kind != "" {
		return h.usecase.BySessionAndKind(ctx, sessionID, kind)
	}
	return h.usecase.BySession(ctx, sessionID)
}

func (h CLIHandler) ByRange(ctx context.Context, from, to time.Time) ([]dto.EventOutput, error) {
	return h.usecase.ByRange(ctx, dto.RangeInput{From: from, To: to})
}

func (h CLIHandler) Flush(ctx context.Context) (dto.FlushOutput, error) {
	return h.usecase.Flush(ctx)
}
