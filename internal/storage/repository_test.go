package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestRepository(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "ledger.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSnapshotRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	if _, ok, err := repo.Load(ctx); ok || err != nil {
		t.Fatalf("fresh database must report an absent slot (ok=%v err=%v)", ok, err)
	}

	want := `[{"id":"abc","amount":100}]`
	if err := repo.Save(ctx, []byte(want)); err != nil {
		t.Fatalf("save: %v", err)
	}
	payload, ok, err := repo.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load after save: ok=%v err=%v", ok, err)
	}
	if string(payload) != want {
		t.Fatalf("payload mismatch: %s", payload)
	}

	// Save rewrites the single slot, never appends.
	if err := repo.Save(ctx, []byte("[]")); err != nil {
		t.Fatalf("second save: %v", err)
	}
	payload, _, _ = repo.Load(ctx)
	if string(payload) != "[]" {
		t.Fatalf("expected rewritten payload, got %s", payload)
	}
}

func TestSnapshotDelete(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepository(t)

	if err := repo.Save(ctx, []byte("[]")); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok, _ := repo.Load(ctx); ok {
		t.Fatalf("slot must be absent after delete")
	}

	// Deleting an absent slot is fine.
	if err := repo.Delete(ctx); err != nil {
		t.Fatalf("delete absent slot: %v", err)
	}
}

func TestReopenKeepsSnapshot(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "ledger.db")

	repo, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	if err := repo.Save(ctx, []byte(`["kept"]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewSQLiteRepository(dbPath)
	if err != nil {
		t.Fatalf("reopen repository: %v", err)
	}
	defer reopened.Close()

	payload, ok, err := reopened.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("load after reopen: ok=%v err=%v", ok, err)
	}
	if string(payload) != `["kept"]` {
		t.Fatalf("payload mismatch after reopen: %s", payload)
	}
}
