package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
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
	`CREATE TABLE IF NOT EXISTS session_records (
		id              TEXT PRIMARY KEY,
		created_at      TEXT NOT NULL,
		participant_id  TEXT NOT NULL DEFAULT '',
		assignment_id   TEXT NOT NULL DEFAULT '',
		project_id      TEXT NOT NULL DEFAULT '',
		prestudy        TEXT NOT NULL,
		poststudy       TEXT NOT NULL,
		essay_text      TEXT NOT NULL DEFAULT '',
		reference_doc   TEXT NOT NULL DEFAULT '',
		has_conversation INTEGER NOT NULL DEFAULT 0
	)`,
	`CREATE TABLE IF NOT EXISTS conversation_turns (
		record_id TEXT NOT NULL REFERENCES session_records(id) ON DELETE CASCADE,
		seq       INTEGER NOT NULL,
		role      TEXT NOT NULL CHECK(role IN ('user','assistant')),
		text      TEXT NOT NULL,
		PRIMARY KEY (record_id, seq)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_session_records_created ON session_records(created_at)`,
	`CREATE INDEX IF NOT EXISTS idx_session_records_participant ON session_records(participant_id)`,
}
