package archive

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the archive's SQLite query mirror. OpenDB only opens it and
// creates the schema; callers fill it from the JSONL log with
// RebuildFromJSONL. SQLite is a queryable index over the log, never the
// source of truth.
type DB struct {
	db *sql.DB
}

const archiveSchema = `
CREATE TABLE IF NOT EXISTS archive (
	url TEXT PRIMARY KEY,
	state TEXT NOT NULL,
	local_path TEXT,
	last_attempt TEXT
);
CREATE INDEX IF NOT EXISTS idx_archive_state ON archive(state);
`

// OpenDB opens (creating if needed) the SQLite mirror at path.
func OpenDB(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive db: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite has no concurrent-writer support

	if _, err := db.Exec(archiveSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}
	return &DB{db: db}, nil
}

// Close closes the underlying database connection.
func (d *DB) Close() error { return d.db.Close() }

// RebuildFromJSONL clears and repopulates the SQLite mirror from records
// read from the authoritative JSONL log.
func (d *DB) RebuildFromJSONL(records []Record) error {
	tx, err := d.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM archive"); err != nil {
		return fmt.Errorf("clearing archive table: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO archive (url, state, local_path, last_attempt) VALUES (?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET state=excluded.state, local_path=excluded.local_path, last_attempt=excluded.last_attempt`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range records {
		if _, err := stmt.Exec(r.URL, string(r.State), r.LocalPath, r.LastAttempt); err != nil {
			return fmt.Errorf("inserting %s: %w", r.URL, err)
		}
	}

	return tx.Commit()
}

// CountByState returns the number of records in each archive state, for
// the `ssgen archive status` subcommand.
func (d *DB) CountByState() (map[State]int, error) {
	rows, err := d.db.Query("SELECT state, COUNT(*) FROM archive GROUP BY state")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[State]int{}
	for rows.Next() {
		var state string
		var count int
		if err := rows.Scan(&state, &count); err != nil {
			return nil, err
		}
		out[State(state)] = count
	}
	return out, rows.Err()
}
