package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tempo/internal/modules/task/domain"
	taskout "tempo/internal/modules/task/port/out"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/storage"
)

const timeLayout = "2006-01-02 15:04:05"

type SQLiteTaskStore struct {
	gateway *storage.Gateway
}

func NewSQLiteTaskStore(gateway *storage.Gateway) (taskout.TaskStore, error) {
	s := &SQLiteTaskStore{gateway: gateway}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteTaskStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tasks (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL UNIQUE,
  tag TEXT,
  planned_duration_minutes INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  is_active INTEGER NOT NULL DEFAULT 0,
  color TEXT,
  parent_id INTEGER REFERENCES tasks(id),
  is_completed INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_tasks_parent_id ON tasks (parent_id);
CREATE INDEX IF NOT EXISTS idx_tasks_is_active ON tasks (is_active);
`
	if _, err := s.gateway.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create tasks table: %w", err)
	}
	return nil
}

func (s *SQLiteTaskStore) Create(ctx context.Context, task domain.Task) (int64, error) {
	result, err := s.gateway.DB().ExecContext(ctx, `
INSERT INTO tasks (name, tag, planned_duration_minutes, is_active, color, parent_id, is_completed)
VALUES (?, ?, ?, ?, ?, ?, ?);
`,
		task.Name,
		nullable(task.Tag),
		task.PlannedMinutes,
		boolToInt(task.IsActive),
		nullable(task.Color),
		nullableID(task.ParentID),
		boolToInt(task.IsCompleted),
	)
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert task: %w", err)
	}
	return id, nil
}

const taskColumns = `id, name, tag, planned_duration_minutes, created_at, is_active, color, parent_id, is_completed`

func (s *SQLiteTaskStore) ByID(ctx context.Context, id int64) (domain.Task, error) {
	row := s.gateway.DB().QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE id = ?;`, id)
	task, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, fmt.Errorf("%w: task %d", apperrors.ErrNotFound, id)
	}
	return task, err
}

func (s *SQLiteTaskStore) ByName(ctx context.Context, name string) (domain.Task, error) {
	row := s.gateway.DB().QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE name = ?;`, name)
	task, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, fmt.Errorf("%w: task %q", apperrors.ErrNotFound, name)
	}
	return task, err
}

func (s *SQLiteTaskStore) All(ctx context.Context) ([]domain.Task, error) {
	rows, err := s.gateway.DB().QueryContext(ctx,
		`SELECT `+taskColumns+` FROM tasks ORDER BY id ASC;`)
	if err != nil {
		return nil, fmt.Errorf("query tasks: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tasks: %w", err)
	}
	return out, nil
}

func (s *SQLiteTaskStore) Active(ctx context.Context) (domain.Task, error) {
	row := s.gateway.DB().QueryRowContext(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE is_active = 1 LIMIT 1;`)
	task, err := scanTask(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Task{}, fmt.Errorf("%w: no active task", apperrors.ErrNotFound)
	}
	return task, err
}

func (s *SQLiteTaskStore) SetActive(ctx context.Context, id int64) error {
	return s.gateway.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `UPDATE tasks SET is_active = 0 WHERE is_active = 1;`); err != nil {
			return fmt.Errorf("deactivate tasks: %w", err)
		}
		if id == 0 {
			return nil
		}
		result, err := tx.ExecContext(ctx, `UPDATE tasks SET is_active = 1 WHERE id = ?;`, id)
		if err != nil {
			return fmt.Errorf("activate task: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("activate task: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: task %d", apperrors.ErrNotFound, id)
		}
		return nil
	})
}

func (s *SQLiteTaskStore) ApplyCompletion(ctx context.Context, changes map[int64]bool) error {
	if len(changes) == 0 {
		return nil
	}
	return s.gateway.WithTx(ctx, func(tx *sql.Tx) error {
		for id, completed := range changes {
			if _, err := tx.ExecContext(ctx,
				`UPDATE tasks SET is_completed = ? WHERE id = ?;`, boolToInt(completed), id); err != nil {
				return fmt.Errorf("update task completion: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLiteTaskStore) Delete(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	return s.gateway.WithTx(ctx, func(tx *sql.Tx) error {
		for _, id := range ids {
			if _, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?;`, id); err != nil {
				return fmt.Errorf("delete task: %w", err)
			}
		}
		return nil
	})
}

func scanTask(scan func(dest ...any) error) (domain.Task, error) {
	var (
		task      domain.Task
		tag       sql.NullString
		createdAt sql.NullString
		isActive  int
		color     sql.NullString
		parentID  sql.NullInt64
		completed int
	)
	if err := scan(&task.ID, &task.Name, &tag, &task.PlannedMinutes, &createdAt,
		&isActive, &color, &parentID, &completed); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, err
		}
		return domain.Task{}, fmt.Errorf("scan task: %w", err)
	}
	task.Tag = tag.String
	task.Color = color.String
	task.IsActive = isActive != 0
	task.IsCompleted = completed != 0
	if parentID.Valid {
		task.ParentID = &parentID.Int64
	}
	if createdAt.Valid {
		if parsed, err := time.ParseInLocation(timeLayout, createdAt.String, time.UTC); err == nil {
			task.CreatedAt = parsed
		}
	}
	return task, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
