// Package runlog keeps an optional history of mkqr batches.
package runlog

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/gkirito/coinassets/internal/qrcode"
)

// Store abstracts history storage: a flat text log or a SQLite database.
// Both satisfy qrcode.Recorder.
type Store interface {
	// Write
	RecordResult(batchID string, r qrcode.Result) error
	RecordBatch(s qrcode.Summary) error

	// Read
	Batches(limit int) ([]Batch, error) // newest first, 0 = all
	Jobs(batchID string) ([]Job, error) // in generation order

	// Metadata
	Path() string
	Close() error
}

// Batch is one recorded batch summary.
type Batch struct {
	ID        string
	Started   time.Time
	Finished  time.Time
	Source    string
	OutputDir string
	Encoder   string
	Total     int
	Succeeded int
	Failed    int
}

// Job is one recorded job outcome. Error is empty on success.
type Job struct {
	BatchID string
	ID      string
	URL     string
	Path    string
	Error   string
	Time    time.Time
}

// OK reports whether the job succeeded.
func (j Job) OK() bool { return j.Error == "" }

// Open picks the store by extension: .db, .sqlite and .sqlite3 open a
// SQLite database, anything else a flat log file.
func Open(path string) (Store, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return NewSQLiteStore(path)
	}
	return NewFileStore(path), nil
}

var _ qrcode.Recorder = Store(nil)

func jobFromResult(batchID string, r qrcode.Result, ts time.Time) Job {
	j := Job{BatchID: batchID, ID: r.Job.ID, URL: r.Job.URL, Path: r.Path, Time: ts}
	if r.Err != nil {
		j.Error = r.Err.Error()
	}
	return j
}

func batchFromSummary(s qrcode.Summary) Batch {
	return Batch{
		ID:        s.BatchID,
		Started:   s.Started,
		Finished:  s.Finished,
		Source:    s.Source,
		OutputDir: s.OutputDir,
		Encoder:   s.Encoder,
		Total:     s.Total,
		Succeeded: s.Succeeded,
		Failed:    s.Failed,
	}
}
