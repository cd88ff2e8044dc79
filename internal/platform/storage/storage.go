package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Gateway owns the shared sqlite handle. database/sql provides the pooled
// connection abstraction; every write runs inside its own transaction via
// WithTx, and no connection is held across timer tick boundaries.
type Gateway struct {
	db *sql.DB
}

func Open(dbPath string) (*Gateway, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Flushes and analytics queries arrive from independent call sites.
	// WAL lets readers proceed while a flush transaction commits.
	for _, pragma := range []string{
		`PRAGMA journal_mode = WAL`,
		`PRAGMA busy_timeout = 5000`,
	} {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma: %w", err)
		}
	}
	return &Gateway{db: db}, nil
}

func (g *Gateway) DB() *sql.DB {
	return g.db
}

func (g *Gateway) Close() error {
	return g.db.Close()
}

// WithTx scopes a transaction to a single operation: acquire, use, release,
// rolling back on error or panic.
func (g *Gateway) WithTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := g.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
