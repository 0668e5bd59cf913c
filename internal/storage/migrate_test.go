package storage

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
)

func TestMigrateRoundTripCompatibility(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "migrate-roundtrip.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer db.Close()
	ctx := context.Background()

	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("first migrate up failed: %v", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("repeated migrate up failed: %v", err)
	}
	if err := MigrateDown(ctx, db); err != nil {
		t.Fatalf("migrate down failed: %v", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		t.Fatalf("second migrate up failed: %v", err)
	}

	kv, err := NewSQLiteKV(db, "enjaz")
	if err != nil {
		t.Fatalf("new kv: %v", err)
	}
	if err := kv.Put(ctx, KeyBudget, []byte(`{"dailyLimit":"45"}`)); err != nil {
		t.Fatalf("insert after roundtrip failed: %v", err)
	}
	got, err := kv.Get(ctx, KeyBudget)
	if err != nil {
		t.Fatalf("get after roundtrip failed: %v", err)
	}
	if string(got) != `{"dailyLimit":"45"}` {
		t.Fatalf("unexpected value after roundtrip: %s", got)
	}
}
