package kvstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const (
	sqliteCreateTable = `CREATE TABLE IF NOT EXISTS kv_entries (
	entry_key  TEXT PRIMARY KEY,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`
	sqliteGet    = `SELECT value FROM kv_entries WHERE entry_key = ?`
	sqliteUpsert = `INSERT INTO kv_entries (entry_key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(entry_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`
	sqliteDelete = `DELETE FROM kv_entries WHERE entry_key = ?`
)

// SQLite stores entries in a single table of a database opened with the modernc driver
// (see connection.OpenSQLite).
type SQLite struct {
	db *sql.DB
}

func NewSQLite(ctx context.Context, db *sql.DB) (*SQLite, error) {
	if _, err := db.ExecContext(ctx, sqliteCreateTable); err != nil {
		return nil, fmt.Errorf("kvstore sqlite: create table: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Get(ctx context.Context, key string) (string, bool, error) {
	if err := validKey(key); err != nil {
		return "", false, err
	}
	var v string
	err := s.db.QueryRowContext(ctx, sqliteGet, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("kvstore sqlite: get %s: %w", key, err)
	}
	return v, true, nil
}

func (s *SQLite) Set(ctx context.Context, key, value string) error {
	if err := validKey(key); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := s.db.ExecContext(ctx, sqliteUpsert, key, value, now); err != nil {
		return fmt.Errorf("kvstore sqlite: set %s: %w", key, err)
	}
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if err := validKey(key); err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx, sqliteDelete, key); err != nil {
		return fmt.Errorf("kvstore sqlite: delete %s: %w", key, err)
	}
	return nil
}
