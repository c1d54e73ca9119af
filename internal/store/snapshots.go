package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

const snapshotColumns = `id, taken_at, period_days, score, rating, total_duration, session_count,
	avg_daily_duration, volume, consistency, diversity, work_blocks, top_category, skipped_count`

// CreateSnapshot inserts s and its suggestions in one transaction and returns
// the new snapshot ID. A zero TakenAt is set to the current time.
func (db *DB) CreateSnapshot(s *Snapshot) (int64, error) {
	if s.TakenAt.IsZero() {
		s.TakenAt = time.Now()
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(
		`INSERT INTO insight_snapshots
		(taken_at, period_days, score, rating, total_duration, session_count,
		 avg_daily_duration, volume, consistency, diversity, work_blocks, top_category, skipped_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		formatTime(s.TakenAt), s.PeriodDays, s.Score, s.Rating, s.TotalDuration, s.SessionCount,
		s.AvgDailyDuration, s.Volume, s.Consistency, s.Diversity, s.WorkBlocks, s.TopCategory, s.SkippedCount,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting snapshot: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	for i, sg := range s.Suggestions {
		if _, err := tx.Exec(
			"INSERT INTO snapshot_suggestions (snapshot_id, position, rule, message) VALUES (?, ?, ?, ?)",
			id, i, sg.Rule, sg.Message,
		); err != nil {
			return 0, fmt.Errorf("inserting snapshot suggestion: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	s.ID = id
	return id, nil
}

// GetLatestSnapshot returns the most recent snapshot, or nil if none exist.
func (db *DB) GetLatestSnapshot() (*Snapshot, error) {
	return db.GetSnapshotN(1)
}

// GetSnapshot returns a snapshot by ID, or nil if it does not exist.
func (db *DB) GetSnapshot(id int64) (*Snapshot, error) {
	row := db.conn.QueryRow("SELECT "+snapshotColumns+" FROM insight_snapshots WHERE id = ?", id)
	return db.loadSnapshot(row)
}

// GetSnapshotN returns the Nth most recent snapshot (1 = latest, 2 = previous, etc.).
func (db *DB) GetSnapshotN(n int) (*Snapshot, error) {
	if n < 1 {
		return nil, nil
	}
	row := db.conn.QueryRow(
		"SELECT "+snapshotColumns+" FROM insight_snapshots ORDER BY id DESC LIMIT 1 OFFSET ?",
		n-1,
	)
	return db.loadSnapshot(row)
}

// GetRecentSnapshots returns up to n snapshots, newest first.
func (db *DB) GetRecentSnapshots(n int) ([]Snapshot, error) {
	rows, err := db.conn.Query(
		"SELECT "+snapshotColumns+" FROM insight_snapshots ORDER BY id DESC LIMIT ?", n,
	)
	if err != nil {
		return nil, err
	}

	var snapshots []Snapshot
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		snapshots = append(snapshots, *s)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// Close before loading suggestions; in-memory databases hold one connection.
	_ = rows.Close()

	for i := range snapshots {
		if snapshots[i].Suggestions, err = db.snapshotSuggestions(snapshots[i].ID); err != nil {
			return nil, err
		}
	}
	return snapshots, nil
}

func (db *DB) loadSnapshot(row *sql.Row) (*Snapshot, error) {
	s, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if s.Suggestions, err = db.snapshotSuggestions(s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

func (db *DB) snapshotSuggestions(snapshotID int64) ([]SnapshotSuggestion, error) {
	rows, err := db.conn.Query(
		"SELECT rule, message FROM snapshot_suggestions WHERE snapshot_id = ? ORDER BY position",
		snapshotID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	suggestions := []SnapshotSuggestion{}
	for rows.Next() {
		var sg SnapshotSuggestion
		if err := rows.Scan(&sg.Rule, &sg.Message); err != nil {
			return nil, err
		}
		suggestions = append(suggestions, sg)
	}
	return suggestions, rows.Err()
}

func scanSnapshot(row scanner) (*Snapshot, error) {
	var s Snapshot
	var takenAt string
	var top sql.NullString
	err := row.Scan(
		&s.ID, &takenAt, &s.PeriodDays, &s.Score, &s.Rating, &s.TotalDuration, &s.SessionCount,
		&s.AvgDailyDuration, &s.Volume, &s.Consistency, &s.Diversity, &s.WorkBlocks, &top, &s.SkippedCount,
	)
	if err != nil {
		return nil, err
	}
	s.TakenAt = parseTime(takenAt)
	s.TopCategory = top.String
	return &s, nil
}
