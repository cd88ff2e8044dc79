package out

import (
	"context"

	"tempo/internal/modules/task/domain"
)

// TaskStore persists the task tree.
type TaskStore interface {
	Create(ctx context.Context, task domain.Task) (int64, error)
	ByID(ctx context.Context, id int64) (domain.Task, error)
	ByName(ctx context.Context, name string) (domain.Task, error)
	All(ctx context.Context) ([]domain.Task, error)
	Active(ctx context.Context) (domain.Task, error)
	// SetActive activates one task and deactivates the rest in a single
	// transaction; id zero clears the active task entirely.
	SetActive(ctx context.Context, id int64) error
	// ApplyCompletion writes a batch of completion flags in one transaction.
	ApplyCompletion(ctx context.Context, changes map[int64]bool) error
	// Delete removes all listed tasks in one transaction.
	Delete(ctx context.Context, ids []int64) error
}
