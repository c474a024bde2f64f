package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order; each entry's index + 1 is its version.
var migrations = []string{
	`CREATE TABLE plan_runs (
		id TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		strategy TEXT NOT NULL,
		heuristic TEXT NOT NULL DEFAULT '',
		seed INTEGER,
		today TEXT NOT NULL,
		total_submissions INTEGER NOT NULL,
		duration_days INTEGER NOT NULL,
		complete INTEGER NOT NULL,
		unplaced TEXT NOT NULL,
		intervals TEXT NOT NULL,
		quality REAL,
		efficiency REAL
	)`,
	`CREATE INDEX idx_plan_runs_created_at ON plan_runs(created_at)`,
}

// Migrate applies any pending schema migrations.
func Migrate(database *sql.DB) error {
	if _, err := database.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (datetime('now'))
	)`); err != nil {
		return fmt.Errorf("creating schema_migrations: %w", err)
	}

	var current int
	if err := database.QueryRow(`SELECT COALESCE(MAX(version), 0) FROM schema_migrations`).Scan(&current); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		tx, err := database.Begin()
		if err != nil {
			return fmt.Errorf("beginning migration %d: %w", version, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", version, err)
		}
		if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", version, err)
		}
	}
	return nil
}
