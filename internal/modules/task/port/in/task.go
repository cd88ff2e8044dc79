package in

import (
	"context"

	"tempo/internal/modules/task/dto"
)

type Usecase interface {
	Create(ctx context.Context, input dto.CreateTaskInput) (dto.TaskOutput, error)
	List(ctx context.Context) ([]dto.TaskOutput, error)
	SetCompleted(ctx context.Context, id int64, completed bool) error
	SetActive(ctx context.Context, id int64) error
	Active(ctx context.Context) (dto.TaskOutput, error)
	// ActiveNameAndCategory reports empty strings when no task is active.
	ActiveNameAndCategory(ctx context.Context) (name, category string, err error)
	Delete(ctx context.Context, id int64) error
}
