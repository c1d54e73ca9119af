package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/blackwell-systems/tasktimer/internal/session"
)

// StartTimer records t as the running timer. It returns ErrTimerRunning when
// another timer is already active.
func (db *DB) StartTimer(t ActiveTimer) error {
	_, err := db.conn.Exec(
		"INSERT INTO active_timer (id, task, category, start_time) VALUES (1, ?, ?, ?)",
		t.Task, t.Category, formatTime(t.StartTime),
	)
	if err != nil {
		if isConstraintError(err) {
			return ErrTimerRunning
		}
		return fmt.Errorf("starting timer: %w", err)
	}
	return nil
}

// ActiveTimer returns the running timer, or nil when none is active.
func (db *DB) ActiveTimer() (*ActiveTimer, error) {
	var t ActiveTimer
	var start string
	err := db.conn.QueryRow("SELECT task, category, start_time FROM active_timer WHERE id = 1").
		Scan(&t.Task, &t.Category, &start)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading active timer: %w", err)
	}
	t.StartTime = parseTime(start)
	return &t, nil
}

// StopTimer clears the running timer and stores s as the completed session,
// atomically. It returns ErrNoActiveTimer when no timer is running.
func (db *DB) StopTimer(s session.Session) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.Exec("DELETE FROM active_timer WHERE id = 1")
	if err != nil {
		return fmt.Errorf("clearing active timer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoActiveTimer
	}
	if err := insertSession(tx, s); err != nil {
		return err
	}
	return tx.Commit()
}

// CancelTimer discards the running timer without recording a session.
func (db *DB) CancelTimer() error {
	res, err := db.conn.Exec("DELETE FROM active_timer WHERE id = 1")
	if err != nil {
		return fmt.Errorf("cancelling timer: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNoActiveTimer
	}
	return nil
}

// isConstraintError reports whether err is a SQLite constraint violation.
func isConstraintError(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return strings.Contains(err.Error(), "constraint failed")
}
