package store

import "fmt"

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// Migrate runs forward migrations to bring the database schema up to date.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER NOT NULL
		)
	`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	version := 0
	row := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1")
	if err := row.Scan(&version); err != nil {
		// No rows means a fresh database.
		version = 0
	}

	if version < 1 {
		if err := db.migrateV1(); err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
	}

	return nil
}

// SchemaVersion returns the schema version recorded in the database.
func (db *DB) SchemaVersion() (int, error) {
	var v int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&v)
	return v, err
}

// migrateV1 creates all initial tables and indexes. Timestamps are stored as
// UTC RFC 3339 text so that lexical order matches chronological order.
func (db *DB) migrateV1() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id               TEXT PRIMARY KEY,
			task             TEXT NOT NULL,
			category         TEXT NOT NULL,
			start_time       TEXT NOT NULL,
			end_time         TEXT NOT NULL,
			duration_seconds INTEGER NOT NULL
		)`,

		// A single-row table: the CHECK constraint is what guarantees at most
		// one running timer.
		`CREATE TABLE IF NOT EXISTS active_timer (
			id         INTEGER PRIMARY KEY CHECK (id = 1),
			task       TEXT NOT NULL,
			category   TEXT NOT NULL,
			start_time TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS categories (
			name     TEXT PRIMARY KEY,
			added_at TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS insight_snapshots (
			id                 INTEGER PRIMARY KEY AUTOINCREMENT,
			taken_at           TEXT NOT NULL,
			period_days        INTEGER NOT NULL,
			score              INTEGER NOT NULL,
			rating             TEXT NOT NULL,
			total_duration     INTEGER NOT NULL,
			session_count      INTEGER NOT NULL,
			avg_daily_duration INTEGER NOT NULL,
			volume             REAL NOT NULL,
			consistency        REAL NOT NULL,
			diversity          REAL NOT NULL,
			work_blocks        INTEGER NOT NULL,
			top_category       TEXT,
			skipped_count      INTEGER NOT NULL DEFAULT 0
		)`,

		`CREATE TABLE IF NOT EXISTS snapshot_suggestions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			snapshot_id INTEGER NOT NULL REFERENCES insight_snapshots(id) ON DELETE CASCADE,
			position    INTEGER NOT NULL,
			rule        TEXT NOT NULL,
			message     TEXT NOT NULL
		)`,

		// Indexes.
		`CREATE INDEX IF NOT EXISTS idx_sessions_start ON sessions(start_time)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_category ON sessions(category)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshot_suggestions_snapshot ON snapshot_suggestions(snapshot_id)`,
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %q: %w", stmt[:40], err)
		}
	}

	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", currentSchemaVersion); err != nil {
		return err
	}

	return tx.Commit()
}
