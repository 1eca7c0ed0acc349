package db

import (
	"database/sql"
	"fmt"
)

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		plan_label  TEXT NOT NULL,
		source_file TEXT NOT NULL,
		created_at  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS plan_metrics (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		metric TEXT NOT NULL,
		unit   TEXT NOT NULL,
		value  REAL NOT NULL,
		PRIMARY KEY (run_id, metric)
	)`,
	`CREATE TABLE IF NOT EXISTS beam_metrics (
		run_id        TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		beam_name     TEXT NOT NULL,
		delivery_type TEXT NOT NULL,
		beam_mu       REAL NOT NULL,
		metric        TEXT NOT NULL,
		value         REAL NOT NULL,
		PRIMARY KEY (run_id, beam_name, metric)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_plan_label ON runs(plan_label)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
