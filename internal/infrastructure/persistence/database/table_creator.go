// Package database provides schema instantiation
package database

import (
	"database/sql"
	"fmt"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS leads (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		email TEXT NOT NULL,
		session_id TEXT,
		fingerprint_id TEXT,
		source TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS consents (
		fingerprint_id TEXT PRIMARY KEY,
		essential TEXT NOT NULL DEFAULT 'true',
		analytics TEXT NOT NULL DEFAULT 'false',
		marketing TEXT NOT NULL DEFAULT 'false',
		decided_at TIMESTAMP NOT NULL,
		expires_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS analytics_events (
		id TEXT PRIMARY KEY,
		session_id TEXT,
		fingerprint_id TEXT,
		kind TEXT NOT NULL,
		key TEXT,
		action TEXT,
		target TEXT,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
}

var indexes = []string{
	`CREATE INDEX IF NOT EXISTS idx_leads_email ON leads(email)`,
	`CREATE INDEX IF NOT EXISTS idx_leads_fingerprint ON leads(fingerprint_id)`,
	`CREATE INDEX IF NOT EXISTS idx_consents_expires ON consents(expires_at)`,
	`CREATE INDEX IF NOT EXISTS idx_events_session ON analytics_events(session_id)`,
	`CREATE INDEX IF NOT EXISTS idx_events_kind ON analytics_events(kind)`,
}

// TableCreator handles the creation of the database schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the database tables and indexes.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}

	for _, indexSQL := range indexes {
		if _, err := db.Exec(indexSQL); err != nil {
			return fmt.Errorf("failed to create index for query [%s]: %w", indexSQL, err)
		}
	}
	return nil
}
