package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations in order.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS team_members (
		team_id   TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		user_id   TEXT NOT NULL,
		role      TEXT NOT NULL DEFAULT 'member'
		          CHECK(role IN ('owner','admin','member')),
		joined_at TEXT NOT NULL,
		PRIMARY KEY (team_id, user_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_team_members_user ON team_members(user_id)`,

	`CREATE TABLE IF NOT EXISTS invites (
		code       TEXT PRIMARY KEY,
		team_id    TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		created_by TEXT NOT NULL,
		created_at TEXT NOT NULL,
		expires_at TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS sessions (
		token      TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		created_at TEXT NOT NULL,
		expires_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS routines (
		id                  TEXT PRIMARY KEY,
		team_id             TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		client_id           TEXT,
		title               TEXT NOT NULL,
		rule                TEXT NOT NULL DEFAULT '{}',
		default_assignee_id TEXT,
		active              INTEGER NOT NULL DEFAULT 1,
		created_by          TEXT NOT NULL,
		created_at          TEXT NOT NULL,
		updated_at          TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_routines_team ON routines(team_id)`,

	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		team_id     TEXT NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
		client_id   TEXT,
		routine_id  TEXT REFERENCES routines(id) ON DELETE SET NULL,
		parent_id   TEXT REFERENCES tasks(id) ON DELETE CASCADE,
		title       TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending'
		            CHECK(status IN ('pending','in_progress','completed','cancelled')),
		due_date    TEXT,
		assigned_to TEXT,
		created_by  TEXT NOT NULL,
		source_type TEXT NOT NULL DEFAULT 'manual'
		            CHECK(source_type IN ('routine','manual')),
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_team ON tasks(team_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_parent ON tasks(parent_id)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_assignee ON tasks(assigned_to)`,

	// A routine never produces two tasks for the same calendar day. The
	// generation engine relies on this index plus INSERT OR IGNORE for
	// idempotent re-runs over overlapping ranges.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_tasks_routine_due
		ON tasks(routine_id, due_date) WHERE routine_id IS NOT NULL`,
}
