package db

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// ErrNoDatabase is returned by a read-only open when nothing has been saved yet
var ErrNoDatabase = errors.New("no timer database yet")

// DB wraps the SQL database connection
type DB struct {
	*sql.DB
	readOnly bool
}

// Options control how a database is opened
type Options struct {
	// ReadOnly opens an existing database without migrating it
	ReadOnly bool
}

// Open opens the timer database read-write, creating and migrating it as
// needed
func Open(dbPath string) (*DB, error) {
	return OpenWith(dbPath, Options{})
}

// OpenWith opens the timer database with opts
func OpenWith(dbPath string, opts Options) (*DB, error) {
	if opts.ReadOnly {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDatabase
		}
	} else if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite3", dsn(dbPath, opts))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer; a second connection would also
	// deadlock nested queries
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)

	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := &DB{DB: sqlDB, readOnly: opts.ReadOnly}
	if opts.ReadOnly {
		return db, nil
	}

	if err := db.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}

// WAL lets `desktimer list` read while the TUI holds the database
func dsn(path string, opts Options) string {
	if opts.ReadOnly {
		return fmt.Sprintf("file:%s?_busy_timeout=5000&_query_only=true", path)
	}
	return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=ON", path)
}

// migrate applies the embedded goose migrations
func (db *DB) migrate() error {
	// goose logs to stdout, which would tear the TUI
	goose.SetLogger(log.New(io.Discard, "", 0))
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// ReadOnly reports whether writes will be refused
func (db *DB) ReadOnly() bool {
	return db.readOnly
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Transaction runs fn inside a transaction, rolling back when fn fails
func (db *DB) Transaction(fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return errors.Join(err, rbErr)
		}
		return err
	}
	return tx.Commit()
}
