package out

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"tempo/internal/modules/analytics/domain"
	analyticsout "tempo/internal/modules/analytics/port/out"
	eventsdomain "tempo/internal/modules/events/domain"
	"tempo/internal/platform/storage"
)

const timeLayout = "2006-01-02 15:04:05"

// SQLiteReader runs the aggregate queries behind the analytics engine. It
// assumes the sessions and atomic_events schemas already exist; the write-side
// adapters own the DDL.
type SQLiteReader struct {
	gateway *storage.Gateway
}

func NewSQLiteReader(gateway *storage.Gateway) analyticsout.Reader {
	return &SQLiteReader{gateway: gateway}
}

func (r *SQLiteReader) InterruptionEvents(ctx context.Context, sessionID string) ([]eventsdomain.Event, error) {
	rows, err := r.gateway.DB().QueryContext(ctx, `
SELECT id, session_id, elapsed_seconds, timestamp, metadata
FROM atomic_events
WHERE session_id = ? AND event_type = ?
ORDER BY elapsed_seconds ASC, id ASC;
`, sessionID, string(eventsdomain.KindInterruptionDetected))
	if err != nil {
		return nil, fmt.Errorf("query interruption events: %w", err)
	}
	defer rows.Close()

	out := make([]eventsdomain.Event, 0)
	for rows.Next() {
		var (
			event     eventsdomain.Event
			timestamp string
			metadata  sql.NullString
		)
		if err := rows.Scan(&event.ID, &event.SessionID, &event.ElapsedSeconds, &timestamp, &metadata); err != nil {
			return nil, fmt.Errorf("scan interruption event: %w", err)
		}
		event.Kind = eventsdomain.KindInterruptionDetected
		if event.Timestamp, err = time.ParseInLocation(timeLayout, timestamp, time.Local); err != nil {
			return nil, fmt.Errorf("parse interruption timestamp: %w", err)
		}
		event.Metadata = map[string]any{}
		if metadata.Valid && metadata.String != "" {
			if err := json.Unmarshal([]byte(metadata.String), &event.Metadata); err != nil {
				return nil, fmt.Errorf("decode interruption metadata: %w", err)
			}
		}
		out = append(out, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interruption events: %w", err)
	}
	return out, nil
}

func (r *SQLiteReader) SessionPlannedSeconds(ctx context.Context, sessionID string) (int, error) {
	var plannedMinutes int
	err := r.gateway.DB().QueryRowContext(ctx,
		`SELECT planned_duration_minutes FROM sessions WHERE id = ?;`, sessionID,
	).Scan(&plannedMinutes)
	if errors.Is(err, sql.ErrNoRows) {
		// Unknown sessions fall back to the analytics default plan.
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("query session plan: %w", err)
	}
	return plannedMinutes * 60, nil
}

func (r *SQLiteReader) InterruptionCounts(ctx context.Context, modes []string) ([]int, error) {
	query := `SELECT interruption_count FROM sessions`
	args := []any{}
	if len(modes) > 0 {
		placeholders := make([]string, 0, len(modes))
		for _, mode := range modes {
			placeholders = append(placeholders, "?")
			args = append(args, mode)
		}
		query += fmt.Sprintf(` WHERE mode IN (%s)`, strings.Join(placeholders, ","))
	}
	rows, err := r.gateway.DB().QueryContext(ctx, query+";", args...)
	if err != nil {
		return nil, fmt.Errorf("query interruption counts: %w", err)
	}
	defer rows.Close()

	out := make([]int, 0)
	for rows.Next() {
		var count int
		if err := rows.Scan(&count); err != nil {
			return nil, fmt.Errorf("scan interruption count: %w", err)
		}
		out = append(out, count)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate interruption counts: %w", err)
	}
	return out, nil
}

func (r *SQLiteReader) HeatmapCells(ctx context.Context, since time.Time, kinds []eventsdomain.Kind) ([]eventsdomain.HeatmapCell, error) {
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

	rows, err := r.gateway.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query heatmap cells: %w", err)
	}
	defer rows.Close()

	out := make([]eventsdomain.HeatmapCell, 0)
	for rows.Next() {
		cell := eventsdomain.HeatmapCell{}
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

func (r *SQLiteReader) DailyTotals(ctx context.Context, since time.Time) (map[string]domain.DayTotal, error) {
	rows, err := r.gateway.DB().QueryContext(ctx, `
SELECT strftime('%Y-%m-%d', start_time) AS day,
       SUM(duration_seconds) AS seconds,
       COUNT(*) AS sessions
FROM sessions
WHERE start_time >= ? AND mode IN ('Focus', 'FreeRun')
GROUP BY day
ORDER BY day ASC;
`, since.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("query daily totals: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.DayTotal)
	for rows.Next() {
		total := domain.DayTotal{}
		if err := rows.Scan(&total.Day, &total.ActiveSeconds, &total.Sessions); err != nil {
			return nil, fmt.Errorf("scan daily total: %w", err)
		}
		out[total.Day] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate daily totals: %w", err)
	}
	return out, nil
}

func (r *SQLiteReader) HourlyTotals(ctx context.Context, since time.Time) (map[int]domain.HourTotal, error) {
	rows, err := r.gateway.DB().QueryContext(ctx, `
SELECT CAST(strftime('%H', start_time) AS INTEGER) AS hour,
       SUM(duration_seconds) AS seconds,
       COUNT(*) AS sessions
FROM sessions
WHERE start_time >= ? AND mode IN ('Focus', 'FreeRun')
GROUP BY hour
ORDER BY hour ASC;
`, since.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("query hourly totals: %w", err)
	}
	defer rows.Close()

	out := make(map[int]domain.HourTotal)
	for rows.Next() {
		total := domain.HourTotal{}
		if err := rows.Scan(&total.Hour, &total.ActiveSeconds, &total.Sessions); err != nil {
			return nil, fmt.Errorf("scan hourly total: %w", err)
		}
		out[total.Hour] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate hourly totals: %w", err)
	}
	return out, nil
}

func (r *SQLiteReader) CompletionCounts(ctx context.Context, since time.Time) (int, int, error) {
	var completed, total int
	err := r.gateway.DB().QueryRowContext(ctx, `
SELECT COALESCE(SUM(completed), 0), COUNT(*)
FROM sessions
WHERE start_time >= ?;
`, since.Format(timeLayout)).Scan(&completed, &total)
	if err != nil {
		return 0, 0, fmt.Errorf("query completion counts: %w", err)
	}
	return completed, total, nil
}
