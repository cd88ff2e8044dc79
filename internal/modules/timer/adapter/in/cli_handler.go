package in

import (
	"context"

	"tempo/internal/modules/timer/dto"
	timerin "tempo/internal/modules/timer/port/in"
)

type CLIHandler struct {
	usecase timerin.Usecase
}

func NewCLIHandler(usecase timerin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Status(ctx context.Context) dto.StatusOutput {
	return h.usecase.Status(ctx)
}

func (h CLIHandler) ListSessions(ctx context.Context, limit int) ([]dto.SessionOutput, error) {
	return h.usecase.ListSessions(ctx, dto.ListSessionsInput{Limit: limit})
}

func (h CLIHandler) DeleteSession(ctx context.Context, id string) error {
	return h.usecase.DeleteSession(ctx, id)
}
