package storage

import (
	"database/sql"
	"errors"
	"fmt"

	// use the sqlite db driver.
	_ "github.com/mattn/go-sqlite3"
)

const baseSQL = `
CREATE TABLE IF NOT EXISTS snapshot (
	namespace TEXT PRIMARY KEY,
	data BLOB NOT NULL
);`

// SQLiteStore keeps every namespace's snapshot as a row in a single
// sqlite table. It exists for users who want one portable data file
// instead of a directory of JSON documents.
type SQLiteStore struct {
	conn *sql.DB
}

// NewSQLiteStore connects to the sqlite database at the given filename
// and initializes the schema if not present.
func NewSQLiteStore(filename string) (*SQLiteStore, error) {
	conn, err := sql.Open("sqlite3", filename)
	if err != nil {
		return nil, fmt.Errorf("error connecting to sqlite db at %s: %w", filename, err)
	}

	if _, err := conn.Exec(baseSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("error running base sql: %w", err)
	}

	return &SQLiteStore{conn: conn}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.conn.Close()
}

// Load reads the snapshot for a namespace. A namespace that has never
// been saved yields nil data and no error.
func (s *SQLiteStore) Load(namespace string) ([]byte, error) {
	var data []byte
	err := s.conn.QueryRow(
		`SELECT data FROM snapshot WHERE namespace = $1`, namespace,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error loading snapshot %s: %w", namespace, err)
	}
	return data, nil
}

// Save upserts the snapshot for a namespace.
func (s *SQLiteStore) Save(namespace string, data []byte) error {
	_, err := s.conn.Exec(
		`INSERT INTO snapshot (namespace, data) VALUES ($1, $2)
		     ON CONFLICT(namespace) DO UPDATE SET data = excluded.data`,
		namespace, data,
	)
	if err != nil {
		return fmt.Errorf("error saving snapshot %s: %w", namespace, err)
	}
	return nil
}
