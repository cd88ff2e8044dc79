package in

import (
	"context"

	"tempo/internal/modules/monitor/dto"
	monitorin "tempo/internal/modules/monitor/port/in"
)

type CLIHandler struct {
	usecase monitorin.Usecase
}

func NewCLIHandler(usecase monitorin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) List(ctx context.Context) ([]dto.MonitorOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) Check(ctx context.Context, name string) error {
	return h.usecase.Check(ctx, name)
}

func (h CLIHandler) Poll(ctx context.Context) error {
	return h.usecase.Poll(ctx)
}
