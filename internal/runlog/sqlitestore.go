package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gkirito/coinassets/internal/paths"
	"github.com/gkirito/coinassets/internal/qrcode"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path and creates
// tables and indexes.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS batches (
    id          TEXT    PRIMARY KEY,
    started     TEXT    NOT NULL,
    finished    TEXT    NOT NULL,
    source      TEXT    NOT NULL DEFAULT '',
    output_dir  TEXT    NOT NULL DEFAULT '',
    encoder     TEXT    NOT NULL DEFAULT '',
    total       INTEGER NOT NULL,
    succeeded   INTEGER NOT NULL,
    failed      INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS jobs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    batch_id    TEXT    NOT NULL,
    timestamp   TEXT    NOT NULL,
    job_id      TEXT    NOT NULL,
    url         TEXT    NOT NULL,
    path        TEXT    NOT NULL DEFAULT '',
    error       TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_batches_started ON batches(started DESC);
CREATE INDEX IF NOT EXISTS idx_jobs_batch      ON jobs(batch_id, id);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	return &SQLiteStore{db: db, path: path}, nil
}

func (s *SQLiteStore) Path() string { return s.path }

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) RecordResult(batchID string, r qrcode.Result) error {
	j := jobFromResult(batchID, r, time.Now())
	_, err := s.db.Exec(
		`INSERT INTO jobs (batch_id, timestamp, job_id, url, path, error) VALUES (?, ?, ?, ?, ?, ?)`,
		j.BatchID, j.Time.Format(time.RFC3339), j.ID, j.URL, j.Path, j.Error,
	)
	return err
}

func (s *SQLiteStore) RecordBatch(sum qrcode.Summary) error {
	b := batchFromSummary(sum)
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO batches (id, started, finished, source, output_dir, encoder, total, succeeded, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Started.Format(time.RFC3339), b.Finished.Format(time.RFC3339),
		b.Source, b.OutputDir, b.Encoder, b.Total, b.Succeeded, b.Failed,
	)
	return err
}

func (s *SQLiteStore) Batches(limit int) ([]Batch, error) {
	q := `SELECT id, started, finished, source, output_dir, encoder, total, succeeded, failed
	      FROM batches ORDER BY started DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Batch
	for rows.Next() {
		var b Batch
		var started, finished string
		if err := rows.Scan(&b.ID, &started, &finished, &b.Source, &b.OutputDir, &b.Encoder,
			&b.Total, &b.Succeeded, &b.Failed); err != nil {
			return nil, err
		}
		b.Started, _ = time.Parse(time.RFC3339, started)
		b.Finished, _ = time.Parse(time.RFC3339, finished)
		out = append(out, b)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Jobs(batchID string) ([]Job, error) {
	rows, err := s.db.Query(
		`SELECT timestamp, job_id, url, path, error FROM jobs WHERE batch_id = ? ORDER BY id`,
		batchID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		j := Job{BatchID: batchID}
		var ts string
		if err := rows.Scan(&ts, &j.ID, &j.URL, &j.Path, &j.Error); err != nil {
			return nil, err
		}
		j.Time, _ = time.Parse(time.RFC3339, ts)
		out = append(out, j)
	}
	return out, rows.Err()
}
