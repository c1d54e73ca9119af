package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

const sessionColumns = "id, task, category, start_time, end_time, duration_seconds"

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// InsertSession stores a completed session. Records are stored as given,
// even when they would fail validation; the analyzer skips those.
func (db *DB) InsertSession(s session.Session) error {
	return insertSession(db.conn, s)
}

// InsertSessions stores sessions in one transaction and returns how many were
// new. Sessions whose ID already exists are left untouched.
func (db *DB) InsertSessions(sessions []session.Session) (int, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	added := 0
	for _, s := range sessions {
		res, err := tx.Exec(
			"INSERT OR IGNORE INTO sessions ("+sessionColumns+") VALUES (?, ?, ?, ?, ?, ?)",
			sessionArgs(s)...,
		)
		if err != nil {
			return 0, fmt.Errorf("inserting session %s: %w", s.ID, err)
		}
		if n, _ := res.RowsAffected(); n > 0 {
			added++
		}
	}
	return added, tx.Commit()
}

func insertSession(ex execer, s session.Session) error {
	_, err := ex.Exec(
		"INSERT INTO sessions ("+sessionColumns+") VALUES (?, ?, ?, ?, ?, ?)",
		sessionArgs(s)...,
	)
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", s.ID, err)
	}
	return nil
}

func sessionArgs(s session.Session) []any {
	return []any{
		s.ID, s.Task, s.Category,
		formatTime(s.StartTime), formatTime(s.EndTime),
		s.DurationSeconds,
	}
}

// GetSession returns a session by ID, or ErrNotFound.
func (db *DB) GetSession(id string) (session.Session, error) {
	row := db.conn.QueryRow("SELECT "+sessionColumns+" FROM sessions WHERE id = ?", id)
	s, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return session.Session{}, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return s, err
}

// ListSessions returns the sessions matching f ordered by start time, then
// ID. Sessions are selected by start time only; one that began before
// f.End is included even when it ends after it.
func (db *DB) ListSessions(f SessionFilter) ([]session.Session, error) {
	var (
		where []string
		args  []any
	)
	if !f.Start.IsZero() {
		where = append(where, "start_time >= ?")
		args = append(args, formatTime(f.Start))
	}
	if !f.End.IsZero() {
		where = append(where, "start_time < ?")
		args = append(args, formatTime(f.End))
	}
	if len(f.Categories) > 0 {
		where = append(where, "category IN (?"+strings.Repeat(", ?", len(f.Categories)-1)+")")
		for _, c := range f.Categories {
			args = append(args, c)
		}
	}

	query := "SELECT " + sessionColumns + " FROM sessions"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	if f.Newest {
		query += " ORDER BY start_time DESC, id DESC"
	} else {
		query += " ORDER BY start_time, id"
	}
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	sessions := []session.Session{}
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, rows.Err()
}

// CountSessions returns the number of stored sessions.
func (db *DB) CountSessions() (int, error) {
	var n int
	err := db.conn.QueryRow("SELECT COUNT(*) FROM sessions").Scan(&n)
	return n, err
}

// DeleteSession removes a session by ID, or returns ErrNotFound.
func (db *DB) DeleteSession(id string) error {
	res, err := db.conn.Exec("DELETE FROM sessions WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting session %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("session %s: %w", id, ErrNotFound)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (session.Session, error) {
	var s session.Session
	var start, end string
	if err := row.Scan(&s.ID, &s.Task, &s.Category, &start, &end, &s.DurationSeconds); err != nil {
		return session.Session{}, err
	}
	// Unparseable timestamps load as zero times; validation rejects them later.
	s.StartTime = parseTime(start)
	s.EndTime = parseTime(end)
	return s, nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
