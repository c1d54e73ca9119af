package store

import (
	"fmt"
	"time"
)

// AddCategory stores a custom category. It reports false when the category
// already existed.
func (db *DB) AddCategory(name string) (bool, error) {
	res, err := db.conn.Exec(
		"INSERT OR IGNORE INTO categories (name, added_at) VALUES (?, ?)",
		name, formatTime(time.Now()),
	)
	if err != nil {
		return false, fmt.Errorf("adding category %q: %w", name, err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// RemoveCategory deletes a custom category, or returns ErrNotFound. Sessions
// recorded under it are kept.
func (db *DB) RemoveCategory(name string) error {
	res, err := db.conn.Exec("DELETE FROM categories WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("removing category %q: %w", name, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("category %q: %w", name, ErrNotFound)
	}
	return nil
}

// ListCategories returns the custom categories ordered by when they were
// added, then by name.
func (db *DB) ListCategories() ([]string, error) {
	rows, err := db.conn.Query("SELECT name FROM categories ORDER BY added_at, name")
	if err != nil {
		return nil, fmt.Errorf("listing categories: %w", err)
	}
	defer func() { _ = rows.Close() }()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// ResetCategories removes every custom category and returns how many were
// removed.
func (db *DB) ResetCategories() (int64, error) {
	res, err := db.conn.Exec("DELETE FROM categories")
	if err != nil {
		return 0, fmt.Errorf("resetting categories: %w", err)
	}
	return res.RowsAffected()
}
