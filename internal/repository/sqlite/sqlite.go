// Package sqlite implements the repository interfaces on top of SQLite.
//
// modernc.org/sqlite is a pure-Go translation of SQLite: no CGo, no C
// toolchain, cross-compiles like any other Go package. The database is a
// single file (or ":memory:" in tests).
//
// Schema changes are versioned SQL files under migrations/, embedded into
// the binary and applied with golang-migrate on start-up. cmd/migrate runs
// the same files by hand.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	// registers the "sqlite" database/sql driver
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and implements every repository
// interface in internal/repository.
type DB struct {
	conn *sql.DB
}

// New opens the database at dbPath and applies all pending migrations.
//
// dbPath examples:
//   - "data/healthtrack.db" → file-based database
//   - ":memory:"            → in-memory database, gone when closed
func New(dbPath string) (*DB, error) {
	db, err := Open(dbPath)
	if err != nil {
		return nil, err
	}

	if err := db.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Open connects to dbPath without touching the schema. Most callers want
// New; cmd/migrate uses Open so it can drive migrations itself.
func Open(dbPath string) (*DB, error) {
	// Foreign keys are a per-connection setting in SQLite, so they go in the
	// DSN where the driver applies them to every connection in the pool.
	conn, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// Every connection to ":memory:" is its own empty database. One
	// connection keeps the whole pool looking at the same data.
	if isMemory(dbPath) {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL lets readers proceed while a write is in progress.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the connection pool.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping reports whether the database is reachable.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.conn.PingContext(ctx); err != nil {
		return fmt.Errorf("sqlite: ping: %w", err)
	}
	return nil
}

func dsn(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

func isMemory(dbPath string) bool {
	return dbPath == ":memory:" || strings.Contains(dbPath, "mode=memory")
}
