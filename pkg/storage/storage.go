package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when a kv key has never been written.
var ErrNotFound = errors.New("not found")

// QuotaError reports a durable write the database rejected (disk full,
// read-only database). Callers that treat the store as a best-effort backup
// log it and carry on.
type QuotaError struct {
	Key string
	Err error
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("durable store rejected write of %q: %v", e.Key, e.Err)
}

func (e *QuotaError) Unwrap() error { return e.Err }

type DB struct {
	sql *sql.DB
}

func Open(path string) (*DB, error) {
	dsn := "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		return nil, err
	}
	// Ensure schema exists for convenience.
	if _, err := db.Exec(`
CREATE TABLE IF NOT EXISTS records (
  ref         TEXT PRIMARY KEY,
  designation TEXT NOT NULL DEFAULT '',
  qty         INTEGER NOT NULL DEFAULT 0,
  price       REAL NOT NULL DEFAULT 0,
  note        TEXT NOT NULL DEFAULT '',
  image       TEXT NOT NULL DEFAULT '',
  updated_at  TEXT NOT NULL DEFAULT '',
  position    INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_records_position ON records(position);
CREATE TABLE IF NOT EXISTS kv (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
    `); err != nil {
		return nil, err
	}
	return &DB{sql: db}, nil
}

func (d *DB) Close() error {
	if d == nil || d.sql == nil {
		return nil
	}
	return d.sql.Close()
}

// GetValue reads one kv entry, returning ErrNotFound for keys never written.
func (d *DB) GetValue(ctx context.Context, key string) (string, error) {
	var value string
	err := d.sql.QueryRowContext(ctx, "SELECT value FROM kv WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return value, nil
}

// SetValue writes one kv entry, replacing any prior value.
func (d *DB) SetValue(ctx context.Context, key, value string) error {
	_, err := d.sql.ExecContext(ctx, "INSERT INTO kv(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value)
	return wrapWriteErr(key, err)
}

// SetValues writes several kv entries in one transaction, so a backup
// replaces its predecessor atomically from the caller's perspective.
func (d *DB) SetValues(ctx context.Context, values map[string]string) error {
	tx, err := d.sql.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for key, value := range values {
		if _, err = tx.ExecContext(ctx, "INSERT INTO kv(key, value) VALUES(?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value", key, value); err != nil {
			return wrapWriteErr(key, err)
		}
	}
	if err = tx.Commit(); err != nil {
		return wrapWriteErr("kv batch", err)
	}
	return nil
}

// DeleteValue removes one kv entry. Deleting a missing key is not an error.
func (d *DB) DeleteValue(ctx context.Context, key string) error {
	_, err := d.sql.ExecContext(ctx, "DELETE FROM kv WHERE key = ?", key)
	return err
}

// ListKeys returns kv keys starting with prefix, sorted.
func (d *DB) ListKeys(ctx context.Context, prefix string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx, "SELECT key FROM kv WHERE key LIKE ? ORDER BY key", prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

func wrapWriteErr(key string, err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "full") || strings.Contains(msg, "readonly") || strings.Contains(msg, "read-only") {
		return &QuotaError{Key: key, Err: err}
	}
	return err
}
