package db

import (
	"context"
	"fmt"
	"strings"
)

const createUsersTable = `
	CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT,
		age INTEGER
	)
`

// column is a row of PRAGMA table_info.
type column struct {
	name       string
	typ        string
	primaryKey bool
}

var usersColumns = []column{
	{name: "id", typ: "INTEGER", primaryKey: true},
	{name: "name", typ: "TEXT"},
	{name: "age", typ: "INTEGER"},
}

// EnsureSchema creates the users table if it does not exist and checks
// that an existing one has the expected columns. Existing rows are never
// touched, so it can run on every start.
func (db *DB) EnsureSchema(ctx context.Context) error {
	q, err := db.handle()
	if err != nil {
		return err
	}

	if _, err := q.ExecContext(ctx, createUsersTable); err != nil {
		return fmt.Errorf("%w: failed to create users table: %w", ErrStorageUnavailable, err)
	}

	cols, err := tableColumns(ctx, q, "users")
	if err != nil {
		return err
	}
	if err := checkColumns(cols, usersColumns); err != nil {
		return fmt.Errorf("%w: users table: %w", ErrSchema, err)
	}

	return nil
}

func tableColumns(ctx context.Context, q querier, table string) ([]column, error) {
	rows, err := q.QueryContext(ctx, fmt.Sprintf("PRAGMA table_info(%s)", table))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read table info: %w", ErrStorageUnavailable, err)
	}
	defer rows.Close()

	cols := []column{}
	for rows.Next() {
		var (
			cid       int
			name, typ string
			notNull   int
			dfltValue any
			pk        int
		)
		if err := rows.Scan(&cid, &name, &typ, &notNull, &dfltValue, &pk); err != nil {
			return nil, fmt.Errorf("%w: failed to scan table info: %w", ErrStorageUnavailable, err)
		}
		cols = append(cols, column{name: name, typ: strings.ToUpper(typ), primaryKey: pk > 0})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to read table info: %w", ErrStorageUnavailable, err)
	}

	return cols, nil
}

// checkColumns compares the live columns with the expected ones, in order.
func checkColumns(got, want []column) error {
	if len(got) != len(want) {
		return fmt.Errorf("expected %d columns, found %d", len(want), len(got))
	}

	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf(
				"column %d: expected %s %s (pk=%t), found %s %s (pk=%t)",
				i, want[i].name, want[i].typ, want[i].primaryKey,
				got[i].name, got[i].typ, got[i].primaryKey,
			)
		}
	}

	return nil
}
