package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// snapshotSlot names the single storage slot that holds the serialized
// transaction sequence. Absence of the row is a valid initial state.
const snapshotSlot = "transactions"

// SQLiteRepository keeps the ledger snapshot in a single keyed row of a
// local SQLite database. It implements ledger.Repository.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Load reads the snapshot payload. ok is false when the slot has never
// been written or was cleared.
func (r *SQLiteRepository) Load(ctx context.Context) ([]byte, bool, error) {
	var payload []byte
	err := r.db.QueryRowContext(ctx,
		`SELECT payload FROM snapshots WHERE slot = ?`, snapshotSlot,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	return payload, true, nil
}

// Save rewrites the slot with the full serialized sequence.
func (r *SQLiteRepository) Save(ctx context.Context, payload []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (slot, payload, updated_at)
		 VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT (slot) DO UPDATE SET
		   payload = excluded.payload,
		   updated_at = CURRENT_TIMESTAMP`,
		snapshotSlot, payload)
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.DebugContext(ctx, "Snapshot saved to SQLite", "slot", snapshotSlot, "bytes", len(payload))
	return nil
}

// Delete removes the slot row entirely.
func (r *SQLiteRepository) Delete(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM snapshots WHERE slot = ?`, snapshotSlot)
	if err != nil {
		return fmt.Errorf("delete snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Snapshot slot removed", "slot", snapshotSlot)
	return nil
}
