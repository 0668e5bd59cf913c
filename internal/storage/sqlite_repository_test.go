package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"
)

func setupKV(t *testing.T, namespace string) *SQLiteKV {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "enjaz-test.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err := MigrateUp(context.Background(), db); err != nil {
		t.Fatalf("migrate up: %v", err)
	}

	kv, err := NewSQLiteKV(db, namespace)
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	kv.now = func() time.Time { return time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC) }
	return kv
}

func TestSQLiteKVPutGetDelete(t *testing.T) {
	kv := setupKV(t, "enjaz")
	ctx := context.Background()

	if _, err := kv.Get(ctx, KeyGoals); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound before put, got: %v", err)
	}
	if err := kv.Put(ctx, KeyGoals, []byte(`[]`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := kv.Put(ctx, KeyGoals, []byte(`[{"id":"g-1"}]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := kv.Get(ctx, KeyGoals)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if string(got) != `[{"id":"g-1"}]` {
		t.Fatalf("unexpected value: %s", got)
	}

	keys, err := kv.Keys(ctx)
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 1 || keys[0] != KeyGoals {
		t.Fatalf("unexpected keys: %v", keys)
	}

	if err := kv.Delete(ctx, KeyGoals); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := kv.Delete(ctx, KeyGoals); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound on second delete, got: %v", err)
	}
}

func TestSQLiteKVNamespacesAreIsolated(t *testing.T) {
	first := setupKV(t, "install-a")
	second, err := NewSQLiteKV(first.db, "install-b")
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	ctx := context.Background()

	if err := first.Put(ctx, KeyStats, []byte(`{"totalPoints":5}`)); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := second.Get(ctx, KeyStats); err != ErrNotFound {
		t.Fatalf("expected other namespace to miss, got: %v", err)
	}
}

func TestOpenSQLiteCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.db")
	kv, err := OpenSQLite(context.Background(), path, "enjaz")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer kv.Close()
	if err := kv.Put(context.Background(), KeyLastReset, []byte(`"2026-02-09"`)); err != nil {
		t.Fatalf("put: %v", err)
	}
}
