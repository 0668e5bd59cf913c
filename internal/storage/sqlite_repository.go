package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const sqliteTimeLayout = time.RFC3339Nano

// SQLiteKV stores one namespace of keys in the kv_entries table.
type SQLiteKV struct {
	db        *sql.DB
	namespace string
	now       func() time.Time
}

func NewSQLiteKV(db *sql.DB, namespace string) (*SQLiteKV, error) {
	if db == nil {
		return nil, errors.New("storage: nil db")
	}
	if namespace == "" {
		return nil, errors.New("storage: namespace is required")
	}
	return &SQLiteKV{db: db, namespace: namespace, now: time.Now}, nil
}

// OpenSQLite opens (creating if needed) the database at path and migrates it.
func OpenSQLite(ctx context.Context, path, namespace string) (*SQLiteKV, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := MigrateUp(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	kv, err := NewSQLiteKV(db, namespace)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return kv, nil
}

func (s *SQLiteKV) Close() error {
	return s.db.Close()
}

func (s *SQLiteKV) Get(ctx context.Context, key string) ([]byte, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT value FROM kv_entries WHERE namespace = ? AND key = ?`, s.namespace, key)
	var value []byte
	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return value, nil
}

func (s *SQLiteKV) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv_entries (namespace, key, value, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(namespace, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.namespace, key, value, s.now().UTC().Format(sqliteTimeLayout),
	)
	return err
}

func (s *SQLiteKV) Delete(ctx context.Context, key string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM kv_entries WHERE namespace = ? AND key = ?`, s.namespace, key)
	if err != nil {
		return err
	}
	return checkRowsAffected(res)
}

// Keys lists the keys stored in this namespace, sorted.
func (s *SQLiteKV) Keys(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT key FROM kv_entries WHERE namespace = ? ORDER BY key ASC`, s.namespace)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]string, 0)
	for rows.Next() {
		var key string
		if scanErr := rows.Scan(&key); scanErr != nil {
			return nil, scanErr
		}
		out = append(out, key)
	}
	return out, rows.Err()
}

func checkRowsAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
