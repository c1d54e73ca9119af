package store

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// pragmas are applied by the driver to every pooled connection.
var pragmas = []string{
	"foreign_keys(1)",
	"busy_timeout(5000)",
}

// DB is the tasktimer session store.
type DB struct {
	conn *sql.DB
	path string
}

// Open opens or creates the database at dbPath, creating its directory,
// and migrates it to the current schema.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	conn, err := sql.Open("sqlite", dsn("file:"+dbPath, append(pragmas, "journal_mode(WAL)")))
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}
	return open(conn, dbPath)
}

// OpenInMemory opens a private in-memory store.
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(":memory:", pragmas))
	if err != nil {
		return nil, err
	}
	// each connection would see its own empty database
	conn.SetMaxOpenConns(1)
	return open(conn, ":memory:")
}

func dsn(name string, pragmas []string) string {
	q := url.Values{"_pragma": pragmas}
	return name + "?" + q.Encode()
}

func open(conn *sql.DB, path string) (*DB, error) {
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to %s: %w", path, err)
	}
	db := &DB{conn: conn, path: path}
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// Path returns the database file, or ":memory:".
func (db *DB) Path() string {
	return db.path
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
