package db

import (
	"context"
	"database/sql"
	"fmt"
)

var postgresSchema = []string{
	`CREATE TABLE IF NOT EXISTS line_messages (
    id                 TEXT PRIMARY KEY,
    message_id         TEXT NOT NULL DEFAULT '',
    type               VARCHAR(20) NOT NULL,
    content            JSONB NOT NULL,
    recipients         JSONB NOT NULL,
    status             VARCHAR(20) NOT NULL DEFAULT 'pending',
    sent_at            TIMESTAMPTZ,
    delivered_at       TIMESTAMPTZ,
    error              TEXT,
    recipient_statuses JSONB,
    sender             TEXT NOT NULL DEFAULT '',
    created_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    updated_at         TIMESTAMPTZ NOT NULL DEFAULT now(),
    CONSTRAINT chk_line_messages_status CHECK (status IN ('pending', 'sent', 'delivered', 'failed'))
)`,
	`CREATE INDEX IF NOT EXISTS idx_line_messages_created_at ON line_messages(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_line_messages_message_id ON line_messages(message_id)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS line_messages (
    id                 TEXT PRIMARY KEY,
    message_id         TEXT NOT NULL DEFAULT '',
    type               TEXT NOT NULL,
    content            TEXT NOT NULL,
    recipients         TEXT NOT NULL,
    status             TEXT NOT NULL DEFAULT 'pending'
                       CHECK (status IN ('pending', 'sent', 'delivered', 'failed')),
    sent_at            DATETIME,
    delivered_at       DATETIME,
    error              TEXT,
    recipient_statuses TEXT,
    sender             TEXT NOT NULL DEFAULT '',
    created_at         DATETIME NOT NULL,
    updated_at         DATETIME NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_line_messages_created_at ON line_messages(created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_line_messages_message_id ON line_messages(message_id)`,
}

// MigrateUp creates the message history schema. It is idempotent.
func MigrateUp(ctx context.Context, db *sql.DB, dialect Dialect) error {
	stmts := postgresSchema
	if dialect == DialectSQLite {
		stmts = sqliteSchema
	}
	for i, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("MigrateUp: statement %d: %w", i, err)
		}
	}
	return nil
}

// MigrateDown drops the message history table and its indexes.
// Use with caution: this deletes all recorded history.
func MigrateDown(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS line_messages`); err != nil {
		return fmt.Errorf("MigrateDown: %w", err)
	}
	return nil
}
