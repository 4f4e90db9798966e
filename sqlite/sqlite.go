// Package sqlite provides SQLite-based storage implementations for unibot services.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/MuhammadAbbas01/unibot"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Path returns the database path.
func (db *DB) Path() string {
	return db.path
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	if err := db.connect(); err != nil {
		return err
	}
	if err := db.createSchema(); err != nil {
		db.db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// OpenExisting opens a database that a crawl has already populated.
// Returns an error wrapping unibot.ErrStoreAbsent if the file does not exist
// or holds no pages table.
func (db *DB) OpenExisting() error {
	if db.path != ":memory:" {
		if _, err := os.Stat(db.path); errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", db.path, unibot.ErrStoreAbsent)
		}
	}

	if err := db.connect(); err != nil {
		return err
	}

	var n int
	err := db.db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'pages'`).Scan(&n)
	if err != nil {
		db.db.Close()
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if n == 0 {
		db.db.Close()
		return fmt.Errorf("%s: %w", db.path, unibot.ErrStoreAbsent)
	}

	if err := db.createSchema(); err != nil {
		db.db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (db *DB) connect() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Wait 5 seconds before failing on lock contention.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	db.db = conn
	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// BeginTx starts a transaction.
func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, opts)
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS pages (
			id TEXT PRIMARY KEY,
			url TEXT NOT NULL UNIQUE,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT '',
			category TEXT NOT NULL DEFAULT 'general',
			content_hash TEXT NOT NULL DEFAULT '',
			fetched_at TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_pages_category ON pages(category);

		CREATE TABLE IF NOT EXISTS faculty (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			designation TEXT NOT NULL DEFAULT '',
			department TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			research_interests TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS departments (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			head TEXT NOT NULL DEFAULT '',
			faculty_count INTEGER NOT NULL DEFAULT 0,
			programs TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS notifications (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			date TEXT NOT NULL DEFAULT '',
			content TEXT NOT NULL DEFAULT ''
		);

		CREATE TABLE IF NOT EXISTS documents (
			url TEXT PRIMARY KEY,
			source_url TEXT NOT NULL DEFAULT '',
			discovered_at TEXT NOT NULL
		);
	`

	_, err := db.db.Exec(schema)
	return err
}
