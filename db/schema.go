// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Supported DATABASE_TYPE values and their database/sql driver names.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
)

// Open connects to the configured database and verifies the connection.
func Open(databaseType, databaseURL string) (*sql.DB, error) {
	switch databaseType {
	case TypeSQLite, TypePostgres:
	default:
		return nil, fmt.Errorf("unsupported database type %q", databaseType)
	}

	conn, err := sql.Open(databaseType, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", databaseType, err)
	}

	// SQLite allows a single writer; serialize through one connection
	if databaseType == TypeSQLite {
		conn.SetMaxOpenConns(1)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping %s database: %w", databaseType, err)
	}

	return conn, nil
}

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// The DDL is shared by SQLite and PostgreSQL, so JSON columns are TEXT and
// times are RFC 3339 strings.
const schema = `
-- Classified submissions
CREATE TABLE IF NOT EXISTS phase_result (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    submission_ts TEXT NOT NULL,
    submitted_at TEXT NOT NULL,
    time_elapsed DOUBLE PRECISION NOT NULL,
    responses TEXT NOT NULL,
    phase TEXT NOT NULL CHECK (phase IN ('Menstruation', 'Follicular', 'Ovulation', 'Luteal', 'Unknown')),
    scores TEXT NOT NULL,
    degenerate BOOLEAN NOT NULL DEFAULT FALSE,
    recommendations TEXT NOT NULL,
    delivery_channel TEXT,
    delivery_status TEXT NOT NULL CHECK (delivery_status IN ('sent', 'skipped', 'failed')),
    delivery_detail TEXT,
    created_at TEXT NOT NULL,
    UNIQUE (user_id, submission_ts)
);

CREATE INDEX IF NOT EXISTS idx_phase_result_user_id ON phase_result(user_id);
CREATE INDEX IF NOT EXISTS idx_phase_result_phase ON phase_result(phase);
`
