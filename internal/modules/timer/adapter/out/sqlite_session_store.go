package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"tempo/internal/modules/timer/domain"
	timerout "tempo/internal/modules/timer/port/out"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/storage"
)

const timeLayout = "2006-01-02 15:04:05"

// SQLiteSessionStore persists finalized session records. Deleting a session
// removes its atomic events in the same transaction; the schema declares the
// cascade but the pragma is never enabled, so the delete is explicit.
type SQLiteSessionStore struct {
	gateway *storage.Gateway
}

func NewSQLiteSessionStore(gateway *storage.Gateway) (timerout.SessionLedger, error) {
	s := &SQLiteSessionStore{gateway: gateway}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSessionStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS sessions (
  id TEXT PRIMARY KEY,
  start_time TEXT NOT NULL,
  end_time TEXT,
  duration_seconds INTEGER NOT NULL,
  planned_duration_minutes INTEGER NOT NULL,
  mode TEXT NOT NULL,
  completed INTEGER NOT NULL DEFAULT 0,
  task_name TEXT,
  category TEXT,
  interruption_count INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_sessions_start_time ON sessions (start_time);
CREATE INDEX IF NOT EXISTS idx_sessions_mode ON sessions (mode);
CREATE INDEX IF NOT EXISTS idx_sessions_completed ON sessions (completed);
`
	if _, err := s.gateway.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create sessions table: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) SaveSession(ctx context.Context, record domain.Record) error {
	if record.ID == "" {
		return fmt.Errorf("%w: session record id is required", apperrors.ErrInvalidInput)
	}
	if err := record.Mode.Validate(); err != nil {
		return fmt.Errorf("%w: %s", apperrors.ErrInvalidInput, err)
	}
	const stmt = `
INSERT INTO sessions (id, start_time, end_time, duration_seconds, planned_duration_minutes,
                      mode, completed, task_name, category, interruption_count)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.gateway.DB().ExecContext(ctx, stmt,
		record.ID,
		record.StartTime.Format(timeLayout),
		record.EndTime.Format(timeLayout),
		record.DurationSeconds,
		record.PlannedDurationMinutes,
		string(record.Mode),
		boolToInt(record.Completed),
		nullable(record.TaskName),
		nullable(record.Category),
		record.InterruptionCount,
	)
	if err != nil {
		return fmt.Errorf("insert session record: %w", err)
	}
	return nil
}

func (s *SQLiteSessionStore) GetSession(ctx context.Context, id string) (domain.Record, error) {
	row := s.gateway.DB().QueryRowContext(ctx, `
SELECT id, start_time, end_time, duration_seconds, planned_duration_minutes,
       mode, completed, task_name, category, interruption_count
FROM sessions
WHERE id = ?;
`, id)
	record, err := scanRecord(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Record{}, fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
	}
	return record, err
}

func (s *SQLiteSessionStore) ListSessions(ctx context.Context, limit int) ([]domain.Record, error) {
	query := `
SELECT id, start_time, end_time, duration_seconds, planned_duration_minutes,
       mode, completed, task_name, category, interruption_count
FROM sessions
ORDER BY start_time DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.gateway.DB().QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Record, 0)
	for rows.Next() {
		record, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return out, nil
}

func (s *SQLiteSessionStore) DeleteSession(ctx context.Context, id string) error {
	return s.gateway.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM atomic_events WHERE session_id = ?`, id); err != nil {
			return fmt.Errorf("delete session events: %w", err)
		}
		result, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		if affected == 0 {
			return fmt.Errorf("%w: session %s", apperrors.ErrNotFound, id)
		}
		return nil
	})
}

func scanRecord(scan func(dest ...any) error) (domain.Record, error) {
	var (
		record    domain.Record
		startTime string
		endTime   sql.NullString
		mode      string
		completed int
		taskName  sql.NullString
		category  sql.NullString
	)
	if err := scan(&record.ID, &startTime, &endTime, &record.DurationSeconds,
		&record.PlannedDurationMinutes, &mode, &completed, &taskName, &category,
		&record.InterruptionCount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Record{}, err
		}
		return domain.Record{}, fmt.Errorf("scan session record: %w", err)
	}
	var err error
	if record.StartTime, err = time.ParseInLocation(timeLayout, startTime, time.Local); err != nil {
		return domain.Record{}, fmt.Errorf("parse session start time: %w", err)
	}
	if endTime.Valid {
		if record.EndTime, err = time.ParseInLocation(timeLayout, endTime.String, time.Local); err != nil {
			return domain.Record{}, fmt.Errorf("parse session end time: %w", err)
		}
	}
	record.Mode = domain.Mode(mode)
	record.Completed = completed != 0
	record.TaskName = taskName.String
	record.Category = category.String
	return record, nil
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
