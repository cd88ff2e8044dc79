package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"tempo/internal/modules/events/domain"
	eventsout "tempo/internal/modules/events/port/out"
	"tempo/internal/platform/storage"
)

const timeLayout = "2006-01-02 15:04:05"

// SQLiteEventStore is the durable atomic event log. Events are append-only;
// the only deletes are the session cascade and the explicit range purge.
type SQLiteEventStore struct {
	gateway *storage.Gateway
}

func NewSQLiteEventStore(gateway *storage.Gateway) (eventsout.EventStore, error) {
	s := &SQLiteEventStore{gateway: gateway}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteEventStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS atomic_events (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
  event_type TEXT NOT NULL,
  timestamp TEXT NOT NULL,
  elapsed_seconds INTEGER NOT NULL,
  metadata TEXT,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS idx_atomic_events_session_id ON atomic_events (session_id);
CREATE INDEX IF NOT EXISTS idx_atomic_events_event_type ON atomic_events (event_type);
CREATE INDEX IF NOT EXISTS idx_atomic_events_timestamp ON atomic_events (timestamp);
CREATE INDEX IF NOT EXISTS idx_atomic_events_elapsed_seconds ON atomic_events (elapsed_seconds);
`
	if _, err := s.gateway.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create atomic_events table: %w", err)
	}
	return nil
}

func (s *SQLiteEventStore) InsertBatch(ctx context.Context, events []domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	return s.gateway.WithTx(ctx, func(tx *sql.Tx) error {
		const stmt = `
INSERT INTO atomic_events (session_id, event_type, timestamp, elapsed_seconds, metadata)
VALUES (?, ?, ?, ?, ?);
`
		for _, event := range events {
			if err := event.Validate(); err != nil {
				return err
			}
			metadata, err := encodeMetadata(event.Metadata)
			if err != nil {
				return err
			}
			if _, err := tx.ExecContext(ctx, stmt,
				event.SessionID,
				string(event.Kind),
				event.Timestamp.Format(timeLayout),
				event.ElapsedSeconds,
				metadata,
			); err != nil {
				return fmt.Errorf("insert atomic event: %w", err)
			}
		}
		return nil
	})
}

func (s *SQLiteEventStore) BySession(ctx context.Context, sessionID string) ([]domain.Event, error) {
	return s.query(ctx, `
SELECT id, session_id, event_type, timestamp, elapsed_seconds, metadata, created_at
FROM atomic_events
WHERE session_id = ?
ORDER BY elapsed_seconds ASC, id ASC;
`, sessionID)
}

func (s *SQLiteEventStore) BySessionAndKind(ctx context.Context, sessionID string, kind domain.Kind) ([]domain.Event, error) {
	return s.query(ctx, `
SELECT id, session_id, event_type, timestamp, elapsed_seconds, metadata, created_at
FROM atomic_events
WHERE session_id = ? AND event_type = ?
ORDER BY elapsed_seconds ASC, id ASC;
`, sessionID, string(kind))
}

func (s *SQLiteEventStore) ByRange(ctx context.Context, from, to time.Time) ([]domain.Event, error) {
	return s.query(ctx, `
SELECT id, session_id, event_type, timestamp, elapsed_seconds, metadata, created_at
FROM atomic_events
WHERE timestamp >= ? AND timestamp <= ?
ORDER BY timestamp ASC, id ASC;
`, from.Format(timeLayout), to.Format(timeLayout))
}

func (s *SQLiteEventStore) HeatmapCells(ctx context.Context, since time.Time, kinds []domain.Kind) ([]domain.HeatmapCell, error) {
	query := `
SELECT strftime('%Y-%m-%d', timestamp) AS day,
       CAST(strftime('%H', timestamp) AS INTEGER) AS hour,
       COUNT(*) AS cnt
FROM atomic_events
WHERE timestamp >= ?`
	args := []any{since.Format(timeLayout)}
	if len(kinds) > 0 {
		placeholders := make([]string, 0, len(kinds))
		for _, kind := range kinds {
			placeholders = append(placeholders, "?")
			args = append(args, string(kind))
		}
		query += fmt.Sprintf(" AND event_type IN (%s)", strings.Join(placeholders, ","))
	}
	query += `
GROUP BY day, hour
ORDER BY day ASC, hour ASC;`

	rows, err := s.gateway.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("heatmap cells: %w", err)
	}
	defer rows.Close()

	out := make([]domain.HeatmapCell, 0)
	for rows.Next() {
		cell := domain.HeatmapCell{}
		if err := rows.Scan(&cell.Day, &cell.Hour, &cell.Count); err != nil {
			return nil, fmt.Errorf("scan heatmap cell: %w", err)
		}
		out = append(out, cell)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate heatmap cells: %w", err)
	}
	return out, nil
}

func (s *SQLiteEventStore) DeleteBySession(ctx context.Context, sessionID string) error {
	if _, err := s.gateway.DB().ExecContext(ctx, `DELETE FROM atomic_events WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("delete events for session: %w", err)
	}
	return nil
}

func (s *SQLiteEventStore) DeleteByRange(ctx context.Context, from, to time.Time) error {
	if _, err := s.gateway.DB().ExecContext(ctx, `DELETE FROM atomic_events WHERE timestamp >= ? AND timestamp <= ?`,
		from.Format(timeLayout), to.Format(timeLayout)); err != nil {
		return fmt.Errorf("delete events by range: %w", err)
	}
	return nil
}

func (s *SQLiteEventStore) query(ctx context.Context, query string, args ...any) ([]domain.Event, error) {
	rows, err := s.gateway.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query atomic events: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Event, 0)
	for rows.Next() {
		var (
			event     domain.Event
			kind      string
			timestamp string
			metadata  sql.NullString
			createdAt sql.NullString
		)
		if err := rows.Scan(&event.ID, &event.SessionID, &kind, &timestamp, &event.ElapsedSeconds, &metadata, &createdAt); err != nil {
			return nil, fmt.Errorf("scan atomic event: %w", err)
		}
		event.Kind = domain.Kind(kind)
		if event.Timestamp, err = time.ParseInLocation(timeLayout, timestamp, time.Local); err != nil {
			return nil, fmt.Errorf("parse event timestamp: %w", err)
		}
		if event.Metadata, err = decodeMetadata(metadata); err != nil {
			return nil, err
		}
		if createdAt.Valid {
			// created_at comes from CURRENT_TIMESTAMP and is informational only.
			if parsed, parseErr := time.ParseInLocation(timeLayout, createdAt.String, time.UTC); parseErr == nil {
				event.CreatedAt = parsed
			}
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate atomic events: %w", err)
	}
	return out, nil
}

func encodeMetadata(metadata map[string]any) (sql.NullString, error) {
	if len(metadata) == 0 {
		return sql.NullString{}, nil
	}
	b, err := json.Marshal(metadata)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("encode event metadata: %w", err)
	}
	return sql.NullString{String: string(b), Valid: true}, nil
}

func decodeMetadata(raw sql.NullString) (map[string]any, error) {
	if !raw.Valid || raw.String == "" {
		return map[string]any{}, nil
	}
	out := map[string]any{}
	if err := json.Unmarshal([]byte(raw.String), &out); err != nil {
		return nil, fmt.Errorf("decode event metadata: %w", err)
	}
	return out, nil
}
