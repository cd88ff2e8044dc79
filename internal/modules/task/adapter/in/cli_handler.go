package in

import (
	"context"

	"tempo/internal/modules/task/dto"
	taskin "tempo/internal/modules/task/port/in"
)

type CLIHandler struct {
	usecase taskin.Usecase
}

func NewCLIHandler(usecase taskin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Create(ctx context.Context, input dto.CreateTaskInput) (dto.TaskOutput, error) {
	return h.usecase.Create(ctx, input)
}

func (h CLIHandler) List(ctx context.Context) ([]dto.TaskOutput, error) {
	return h.usecase.List(ctx)
}

func (h CLIHandler) SetCompleted(ctx context.Context, id int64, completed bool) error {
	return h.usecase.SetCompleted(ctx, id, completed)
}

func (h CLIHandler) SetActive(ctx context.Context, id int64) error {
	return h.usecase.SetActive(ctx, id)
}

func (h CLIHandler) Active(ctx context.Context) (dto.TaskOutput, error) {
	return h.usecase.Active(ctx)
}

func (h CLIHandler) Delete(ctx context.Context, id int64) error {
	return h.usecase.Delete(ctx, id)
}
