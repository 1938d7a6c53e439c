package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // register sqlite as a database/sql driver
)

var _ Backend = (*SQLBackend)(nil)

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

const queryTimeout = 5 * time.Second

type dialect struct {
	driver string
	ddl    string
	get    string
	upsert string
	delete string
	keys   string
}

var sqliteDialect = dialect{
	driver: "sqlite",
	ddl: `CREATE TABLE IF NOT EXISTS records (
		record_key TEXT PRIMARY KEY,
		value      BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	)`,
	get: `SELECT value FROM records WHERE record_key = ?`,
	upsert: `INSERT INTO records (record_key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
	delete: `DELETE FROM records WHERE record_key = ?`,
	keys:   `SELECT record_key FROM records ORDER BY record_key`,
}

var postgresDialect = dialect{
	driver: "pgx",
	ddl: `CREATE TABLE IF NOT EXISTS records (
		record_key TEXT PRIMARY KEY,
		value      BYTEA NOT NULL,
		updated_at BIGINT NOT NULL
	)`,
	get: `SELECT value FROM records WHERE record_key = $1`,
	upsert: `INSERT INTO records (record_key, value, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (record_key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
	delete: `DELETE FROM records WHERE record_key = $1`,
	keys:   `SELECT record_key FROM records ORDER BY record_key`,
}

// SQLBackend keeps one row per collection key. Several processes may share
// the same database, which is what makes multi-context deployments possible.
type SQLBackend struct {
	db      *sql.DB
	dialect dialect
}

func NewSQLiteBackend(path string) (*SQLBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}
	b, err := openSQLBackend(sqliteDialect, path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	b.db.SetMaxOpenConns(1)
	return b, nil
}

func NewPostgresBackend(dsn string) (*SQLBackend, error) {
	return openSQLBackend(postgresDialect, dsn)
}

func openSQLBackend(d dialect, dsn string) (*SQLBackend, error) {
	openMu.Lock()
	db, err := sqlOpen(d.driver, dsn)
	openMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", d.driver, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", d.driver, err)
	}
	if _, err := db.ExecContext(ctx, d.ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure records table: %w", err)
	}
	return &SQLBackend{db: db, dialect: d}, nil
}

func (s *SQLBackend) Get(key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	var value []byte
	err := s.db.QueryRowContext(ctx, s.dialect.get, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return value, true, nil
}

func (s *SQLBackend) Set(key string, value []byte) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, s.dialect.upsert, key, value, time.Now().UnixMilli())
	return err
}

func (s *SQLBackend) Delete(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()
	_, err := s.db.ExecContext(ctx, s.dialect.delete, key)
	return err
}

func (s *SQLBackend) Keys() ([]string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), queryTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, s.dialect.keys)
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

func (s *SQLBackend) Close() error {
	return s.db.Close()
}
