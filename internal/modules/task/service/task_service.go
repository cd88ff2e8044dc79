package service

import (
	"context"
	"errors"
	"fmt"

	"tempo/internal/modules/task/domain"
	taskout "tempo/internal/modules/task/port/out"
	apperrors "tempo/internal/platform/errors"
)

// TaskService owns the task tree's mutation rules: palette assignment on
// create, single-active-task exclusivity, and completion propagation.
type TaskService struct {
	store taskout.TaskStore
}

func NewTaskService(store taskout.TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) Create(ctx context.Context, task domain.Task) (domain.Task, error) {
	if err := task.Validate(); err != nil {
		return domain.Task{}, fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	if task.ParentID != nil {
		if _, err := s.store.ByID(ctx, *task.ParentID); err != nil {
			return domain.Task{}, fmt.Errorf("resolving parent: %w", err)
		}
	}
	if task.Color == "" {
		existing, err := s.store.All(ctx)
		if err != nil {
			return domain.Task{}, fmt.Errorf("counting tasks for palette: %w", err)
		}
		task.Color = domain.ColorFor(len(existing))
	}
	id, err := s.store.Create(ctx, task)
	if err != nil {
		return domain.Task{}, err
	}
	task.ID = id
	return task, nil
}

func (s *TaskService) List(ctx context.Context) ([]domain.Task, error) {
	return s.store.All(ctx)
}

// SetCompleted toggles one task and applies the full propagation result in a
// single transaction.
func (s *TaskService) SetCompleted(ctx context.Context, id int64, completed bool) error {
	tasks, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("loading task tree: %w", err)
	}
	changes, err := domain.PropagateCompletion(tasks, id, completed)
	if err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrNotFound, err)
	}
	if len(changes) == 0 {
		return nil
	}
	return s.store.ApplyCompletion(ctx, changes)
}

// SetActive makes one task the session association target. Activating a task
// deactivates every other.
func (s *TaskService) SetActive(ctx context.Context, id int64) error {
	if id != 0 {
		if _, err := s.store.ByID(ctx, id); err != nil {
			return err
		}
	}
	return s.store.SetActive(ctx, id)
}

// Active returns the current association target; a missing one is a valid
// state reported as ErrNotFound.
func (s *TaskService) Active(ctx context.Context) (domain.Task, error) {
	return s.store.Active(ctx)
}

// ActiveNameAndCategory resolves the association the session engine stamps
// into records. No active task yields empty strings, not an error.
func (s *TaskService) ActiveNameAndCategory(ctx context.Context) (string, string, error) {
	task, err := s.store.Active(ctx)
	if errors.Is(err, apperrors.ErrNotFound) {
		return "", "", nil
	}
	if err != nil {
		return "", "", err
	}
	return task.Name, task.Tag, nil
}

// Delete removes a task together with its whole subtree.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.store.ByID(ctx, id); err != nil {
		return err
	}
	tasks, err := s.store.All(ctx)
	if err != nil {
		return fmt.Errorf("loading task tree: %w", err)
	}
	return s.store.Delete(ctx, domain.Subtree(tasks, id))
}
