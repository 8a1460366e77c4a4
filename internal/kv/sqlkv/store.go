// Package sqlkv implements kv.Store on a single SQL table through
// database/sql. Versions are an integer column; compare-and-swap is a
// conditional UPDATE (or an INSERT that does nothing on conflict when the key
// must be absent), so the database provides the atomicity.
package sqlkv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/doublemarked/unload-test/internal/kv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Store is a SQL-backed kv.Store.
type Store struct {
	db      *sql.DB
	dialect Dialect
	q       queries
}

// New wraps an open database handle. The schema is not created; call Migrate.
func New(db *sql.DB, d Dialect) *Store {
	return &Store{db: db, dialect: d, q: d.queries()}
}

// OpenSQLite opens (creating if needed) a SQLite database file and applies the schema.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlkv: sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(filepath.Clean(path)), 0o755); err != nil {
		return nil, kv.Unavailable("open", err)
	}
	dsn := "file:" + filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	db, err := sql.Open(SQLite.DriverName, dsn)
	if err != nil {
		return nil, kv.Unavailable("open", err)
	}
	// One writer connection keeps SQLite from returning SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)
	return open(ctx, db, SQLite)
}

// OpenPostgres connects with a lib/pq DSN and applies the schema.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("sqlkv: postgres dsn is required")
	}
	db, err := sql.Open(Postgres.DriverName, dsn)
	if err != nil {
		return nil, kv.Unavailable("open", err)
	}
	return open(ctx, db, Postgres)
}

func open(ctx context.Context, db *sql.DB, d Dialect) (*Store, error) {
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, kv.Unavailable("ping", err)
	}
	s := New(db, d)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates the kv_entries table if it does not exist.
func (s *Store) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.schema()); err != nil {
		return kv.Unavailable("migrate", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key kv.Key) (kv.Entry, error) {
	var (
		value   []byte
		version int64
	)
	err := s.db.QueryRowContext(ctx, s.q.get, key.String()).Scan(&value, &version)
	if errors.Is(err, sql.ErrNoRows) {
		return kv.Entry{Key: key}, nil
	}
	if err != nil {
		return kv.Entry{}, kv.Unavailable("get", err)
	}
	return kv.Entry{Key: key, Value: value, Versionstamp: kv.CounterStamp(version)}, nil
}

func (s *Store) CompareAndSwap(ctx context.Context, key kv.Key, expect kv.Versionstamp, value []byte) (kv.Versionstamp, bool, error) {
	value = nonNil(value)
	if expect.IsZero() {
		res, err := s.db.ExecContext(ctx, s.q.insert, key.String(), value)
		if err != nil {
			return "", false, kv.Unavailable("cas", err)
		}
		return affected(res, 1)
	}
	n, err := kv.ParseCounterStamp(expect)
	if err != nil {
		return "", false, nil
	}
	res, err := s.db.ExecContext(ctx, s.q.update, value, key.String(), n)
	if err != nil {
		return "", false, kv.Unavailable("cas", err)
	}
	return affected(res, n+1)
}

func affected(res sql.Result, next int64) (kv.Versionstamp, bool, error) {
	rows, err := res.RowsAffected()
	if err != nil {
		return "", false, kv.Unavailable("cas", err)
	}
	if rows != 1 {
		return "", false, nil
	}
	return kv.CounterStamp(next), true, nil
}

func (s *Store) Set(ctx context.Context, key kv.Key, value []byte) (kv.Versionstamp, error) {
	var version int64
	if err := s.db.QueryRowContext(ctx, s.q.upsert, key.String(), nonNil(value)).Scan(&version); err != nil {
		return "", kv.Unavailable("set", err)
	}
	return kv.CounterStamp(version), nil
}

// v is NOT NULL; drivers send a nil slice as NULL.
func nonNil(b []byte) []byte {
	if b == nil {
		return []byte{}
	}
	return b
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
