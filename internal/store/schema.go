// Package store persists simulation runs to SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
)

// SchemaVersion is the current schema version.
const SchemaVersion = 1

// schemaV1 is the initial schema for the results store.
const schemaV1 = `
-- One row per simulation run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    created_at TEXT NOT NULL,
    seed INTEGER NOT NULL,
    required_credits INTEGER NOT NULL,
    max_semesters INTEGER NOT NULL,
    semesters_run INTEGER NOT NULL,
    students INTEGER NOT NULL,
    graduated INTEGER NOT NULL,
    dropped INTEGER NOT NULL,
    enrolled INTEGER NOT NULL,
    avg_gpa REAL NOT NULL
);

-- Per-semester aggregate trajectory
CREATE TABLE IF NOT EXISTS semester_stats (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    semester INTEGER NOT NULL,
    term TEXT NOT NULL,
    graduated INTEGER NOT NULL,
    dropped INTEGER NOT NULL,
    enrolled INTEGER NOT NULL,
    avg_gpa REAL NOT NULL,
    blocked INTEGER NOT NULL,
    PRIMARY KEY (run_id, semester)
);

-- Terminal per-student outcomes
CREATE TABLE IF NOT EXISTS student_outcomes (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    student_id INTEGER NOT NULL,
    admission_term TEXT,
    academic_ability REAL NOT NULL,
    credits_completed INTEGER NOT NULL,
    gpa REAL NOT NULL,
    graduated INTEGER NOT NULL,
    dropped_out INTEGER NOT NULL,
    drop_rule TEXT,
    semesters_enrolled INTEGER NOT NULL,
    graduation_semester INTEGER,  -- NULL unless graduated
    times_blocked INTEGER NOT NULL,
    distinct_courses_blocked INTEGER NOT NULL,
    PRIMARY KEY (run_id, student_id)
);

-- Every prerequisite blockage observed during a run
CREATE TABLE IF NOT EXISTS blocked_courses (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    student_id INTEGER NOT NULL,
    semester INTEGER NOT NULL,
    term TEXT NOT NULL,
    course TEXT NOT NULL,
    missing_prereqs TEXT NOT NULL  -- JSON array
);
CREATE INDEX IF NOT EXISTS idx_blocked_run_course ON blocked_courses(run_id, course);

-- Schema version
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TEXT NOT NULL
);
`

// InitSchema initializes the database schema, creating all tables and
// applying migrations as needed.
func InitSchema(ctx context.Context, db *sql.DB) error {
	currentVersion, err := getSchemaVersion(ctx, db)
	if err != nil {
		// Schema version table doesn't exist yet, create fresh schema
		if err := createSchema(ctx, db); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
		return nil
	}

	if currentVersion < SchemaVersion {
		if err := migrateSchema(ctx, db, currentVersion); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}

	return nil
}

// getSchemaVersion returns the current schema version from the database.
// Returns 0 and an error if the schema_version table doesn't exist.
func getSchemaVersion(ctx context.Context, db *sql.DB) (int, error) {
	var version int
	err := db.QueryRowContext(ctx, `SELECT MAX(version) FROM schema_version`).Scan(&version)
	if err != nil {
		return 0, err
	}
	return version, nil
}

// createSchema creates the initial database schema.
func createSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, schemaV1); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_version (version, applied_at) VALUES (?, datetime('now'))`,
		SchemaVersion); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}

	return tx.Commit()
}

// migrateSchema applies migrations from currentVersion to SchemaVersion.
func migrateSchema(ctx context.Context, db *sql.DB, currentVersion int) error {
	// Only one version so far; migrations land here when v2 exists.
	_ = currentVersion
	return nil
}
