// Package db provides the SQLite record store for userstore.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/mattn/go-sqlite3"
	"github.com/nsqlite/userstore/internal/log"
)

var (
	// ErrStorageUnavailable is returned when the database file cannot be
	// opened, read, or written.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrSchema is returned when the existing users table does not match
	// the expected shape.
	ErrSchema = errors.New("schema error")
)

// Config represents the configuration for the Open function.
type Config struct {
	// Logger is the shared userstore logger.
	Logger log.Logger
	// Path is the database file, created if it does not exist.
	Path string
}

// DB is a single connection to the users database.
//
// Writes are collected in a transaction that is opened on the first
// Insert and only persisted by Commit.
type DB struct {
	Config
	conn *sql.DB
	tx   *sql.Tx
}

// querier is implemented by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// User is a row of the users table.
type User struct {
	ID   int64
	Name string
	Age  int64
}

// dsnPathEscaper makes sure "?" and "#" never reach SQLite URI parsing
// raw, where they would start the query or the fragment.
var dsnPathEscaper = strings.NewReplacer("?", "%3F", "#", "%23")

func createDSN(dbPath string) string {
	qp := url.Values{}
	qp.Add("_foreign_keys", "true")
	qp.Add("_busy_timeout", "5000")

	escaped := dsnPathEscaper.Replace((&url.URL{Path: dbPath}).EscapedPath())
	return fmt.Sprintf("file:%s?%s", escaped, qp.Encode())
}

// Open opens the database at config.Path, creating the file if needed.
func Open(ctx context.Context, config Config) (*DB, error) {
	if !config.Logger.IsInitialized() {
		return nil, errors.New("logger is required")
	}
	if config.Path == "" {
		return nil, errors.New("database path is required")
	}
	if err := os.MkdirAll(filepath.Dir(config.Path), 0755); err != nil {
		return nil, fmt.Errorf("%w: failed to create database directory: %w", ErrStorageUnavailable, err)
	}

	conn, err := sql.Open("sqlite3", createDSN(config.Path))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}
	conn.SetConnMaxIdleTime(0)
	conn.SetConnMaxLifetime(0)
	conn.SetMaxIdleConns(1)
	conn.SetMaxOpenConns(1)

	// sqlite3 opens the file lazily, so force it here.
	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: failed to open database: %w", ErrStorageUnavailable, err)
	}

	config.Logger.InfoNs(log.NsStore, "database opened", log.KV{"path": config.Path})
	return &DB{
		Config: config,
		conn:   conn,
	}, nil
}

// handle returns the pending transaction if there is one. With a single
// pooled connection, going around an open transaction would block forever.
func (db *DB) handle() (querier, error) {
	if db.conn == nil {
		return nil, errors.New("database is closed")
	}
	if db.tx != nil {
		return db.tx, nil
	}
	return db.conn, nil
}

// Insert adds a user and returns the id assigned by SQLite. The row is
// not persisted until Commit.
func (db *DB) Insert(ctx context.Context, name string, age int64) (int64, error) {
	if db.conn == nil {
		return 0, errors.New("database is closed")
	}
	if db.tx == nil {
		tx, err := db.conn.BeginTx(ctx, nil)
		if err != nil {
			return 0, fmt.Errorf("%w: failed to begin transaction: %w", ErrStorageUnavailable, err)
		}
		db.tx = tx
	}

	res, err := db.tx.ExecContext(ctx, "INSERT INTO users (name, age) VALUES (?, ?)", name, age)
	if err != nil {
		return 0, fmt.Errorf("%w: failed to insert user: %w", ErrStorageUnavailable, err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: failed to get last insert id: %w", ErrStorageUnavailable, err)
	}

	db.Logger.DebugNs(log.NsStore, "user inserted", log.KV{"id": id})
	return id, nil
}

// FetchAll returns every user ordered by id. Uncommitted inserts made
// through this DB are included.
func (db *DB) FetchAll(ctx context.Context) ([]User, error) {
	const query = "SELECT id, name, age FROM users ORDER BY id"

	q, err := db.handle()
	if err != nil {
		return nil, err
	}

	rows, err := q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to query users: %w", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Name, &u.Age); err != nil {
			return nil, fmt.Errorf("%w: failed to scan user: %w", ErrStorageUnavailable, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read users: %w", ErrStorageUnavailable, err)
	}

	return users, nil
}

// Commit persists every change made since the last commit. It does
// nothing when there are no pending changes.
func (db *DB) Commit() error {
	if db.tx == nil {
		return nil
	}

	tx := db.tx
	db.tx = nil
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: failed to commit transaction: %w", ErrStorageUnavailable, err)
	}

	db.Logger.DebugNs(log.NsStore, "transaction committed")
	return nil
}

// Close discards uncommitted changes and closes the connection. It is
// safe to call more than once.
func (db *DB) Close() error {
	if db.tx != nil {
		_ = db.tx.Rollback()
		db.tx = nil
		db.Logger.WarnNs(log.NsStore, "uncommitted changes rolled back")
	}

	if db.conn == nil {
		return nil
	}
	conn := db.conn
	db.conn = nil
	if err := conn.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}

	db.Logger.DebugNs(log.NsStore, "database closed", log.KV{"path": db.Path})
	return nil
}
