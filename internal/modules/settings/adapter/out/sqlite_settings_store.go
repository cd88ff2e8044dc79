package out

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	settingsout "tempo/internal/modules/settings/port/out"
	apperrors "tempo/internal/platform/errors"
	"tempo/internal/platform/storage"
)

type SQLiteSettingsStore struct {
	gateway *storage.Gateway
}

func NewSQLiteSettingsStore(gateway *storage.Gateway) (settingsout.SettingsStore, error) {
	s := &SQLiteSettingsStore{gateway: gateway}
	if err := s.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteSettingsStore) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS settings (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`
	if _, err := s.gateway.DB().ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create settings table: %w", err)
	}
	return nil
}

func (s *SQLiteSettingsStore) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.gateway.DB().QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?;`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("%w: setting %q", apperrors.ErrNotFound, key)
	}
	if err != nil {
		return "", fmt.Errorf("query setting: %w", err)
	}
	return value, nil
}

func (s *SQLiteSettingsStore) Set(ctx context.Context, key, value string) error {
	if _, err := s.gateway.DB().ExecContext(ctx, `
INSERT INTO settings (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value;
`, key, value); err != nil {
		return fmt.Errorf("upsert setting: %w", err)
	}
	return nil
}

func (s *SQLiteSettingsStore) All(ctx context.Context) (map[string]string, error) {
	rows, err := s.gateway.DB().QueryContext(ctx, `SELECT key, value FROM settings;`)
	if err != nil {
		return nil, fmt.Errorf("query settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan setting: %w", err)
		}
		out[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate settings: %w", err)
	}
	return out, nil
}
