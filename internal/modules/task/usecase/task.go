package usecase

import (
	"context"
	"fmt"

	"tempo/internal/modules/task/domain"
	"tempo/internal/modules/task/dto"
	taskin "tempo/internal/modules/task/port/in"
	"tempo/internal/modules/task/service"
	apperrors "tempo/internal/platform/errors"
)

type Interactor struct {
	service *service.TaskService
}

func NewInteractor(svc *service.TaskService) taskin.Usecase {
	return &Interactor{service: svc}
}

func (i *Interactor) Create(ctx context.Context, input dto.CreateTaskInput) (dto.TaskOutput, error) {
	task, err := i.service.Create(ctx, domain.Task{
		Name:           input.Name,
		Tag:            input.Tag,
		PlannedMinutes: input.PlannedMinutes,
		ParentID:       input.ParentID,
		Color:          input.Color,
	})
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return mapTask(task), nil
}

func (i *Interactor) List(ctx context.Context) ([]dto.TaskOutput, error) {
	tasks, err := i.service.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TaskOutput, 0, len(tasks))
	for _, task := range tasks {
		out = append(out, mapTask(task))
	}
	return out, nil
}

func (i *Interactor) SetCompleted(ctx context.Context, id int64, completed bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: task id must be positive", apperrors.ErrInvalidInput)
	}
	return i.service.SetCompleted(ctx, id, completed)
}

func (i *Interactor) SetActive(ctx context.Context, id int64) error {
	if id < 0 {
		return fmt.Errorf("%w: task id must be non-negative", apperrors.ErrInvalidInput)
	}
	return i.service.SetActive(ctx, id)
}

func (i *Interactor) Active(ctx context.Context) (dto.TaskOutput, error) {
	task, err := i.service.Active(ctx)
	if err != nil {
		return dto.TaskOutput{}, err
	}
	return mapTask(task), nil
}

func (i *Interactor) ActiveNameAndCategory(ctx context.Context) (string, string, error) {
	return i.service.ActiveNameAndCategory(ctx)
}

func (i *Interactor) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: task id must be positive", apperrors.ErrInvalidInput)
	}
	return i.service.Delete(ctx, id)
}

func mapTask(task domain.Task) dto.TaskOutput {
	return dto.TaskOutput{
		ID:             task.ID,
		Name:           task.Name,
		Tag:            task.Tag,
		PlannedMinutes: task.PlannedMinutes,
		CreatedAt:      task.CreatedAt,
		IsActive:       task.IsActive,
		Color:          task.Color,
		ParentID:       task.ParentID,
		IsCompleted:    task.IsCompleted,
	}
}
