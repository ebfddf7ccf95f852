package runlog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkirito/coinassets/internal/qrcode"
)

func openStores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	fs, err := Open(filepath.Join(dir, "history.log"))
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, fs)

	db, err := Open(filepath.Join(dir, "sub", "history.db"))
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, db)
	t.Cleanup(func() { db.Close() })

	return map[string]Store{"file": fs, "sqlite": db}
}

func record(t *testing.T, s Store, id string, start time.Time, results ...qrcode.Result) qrcode.Summary {
	t.Helper()
	ok, failed := qrcode.Summarize(results)
	sum := qrcode.Summary{
		BatchID:   id,
		Source:    "src/data/map with space.json",
		OutputDir: "output",
		Encoder:   qrcode.EncoderSkip2,
		Total:     len(results),
		Succeeded: ok,
		Failed:    failed,
		Started:   start,
		Finished:  start.Add(2 * time.Second),
		Results:   results,
	}
	for _, r := range results {
		require.NoError(t, s.RecordResult(id, r))
	}
	require.NoError(t, s.RecordBatch(sum))
	return sum
}

func TestStoresRoundTrip(t *testing.T) {
	start := time.Date(2026, 10, 16, 9, 0, 0, 0, time.UTC)

	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			record(t, s, "batch1", start,
				qrcode.Result{Job: qrcode.Job{ID: "000001", URL: "https://x/?key=xxxh"}, Path: "output/000001.png"},
				qrcode.Result{Job: qrcode.Job{ID: "000002", URL: "https://x/?key=xxxa"}, Err: errors.New(`bad "thing"`)},
			)
			record(t, s, "batch2", start.Add(time.Hour),
				qrcode.Result{Job: qrcode.Job{ID: "000003", URL: "u"}, Path: "output/000003.png"},
			)

			batches, err := s.Batches(0)
			require.NoError(t, err)
			require.Len(t, batches, 2)
			assert.Equal(t, "batch2", batches[0].ID, "newest first")
			assert.Equal(t, "batch1", batches[1].ID)

			b := batches[1]
			assert.Equal(t, "src/data/map with space.json", b.Source)
			assert.Equal(t, "output", b.OutputDir)
			assert.Equal(t, qrcode.EncoderSkip2, b.Encoder)
			assert.Equal(t, 2, b.Total)
			assert.Equal(t, 1, b.Succeeded)
			assert.Equal(t, 1, b.Failed)
			assert.True(t, b.Started.Equal(start), "started %v", b.Started)
			assert.True(t, b.Finished.Equal(start.Add(2*time.Second)), "finished %v", b.Finished)

			limited, err := s.Batches(1)
			require.NoError(t, err)
			require.Len(t, limited, 1)
			assert.Equal(t, "batch2", limited[0].ID)

			jobs, err := s.Jobs("batch1")
			require.NoError(t, err)
			require.Len(t, jobs, 2)
			assert.Equal(t, "000001", jobs[0].ID)
			assert.True(t, jobs[0].OK())
			assert.Equal(t, "output/000001.png", jobs[0].Path)
			assert.Equal(t, "000002", jobs[1].ID)
			assert.False(t, jobs[1].OK())
			assert.Equal(t, `bad "thing"`, jobs[1].Error)
			assert.Equal(t, "https://x/?key=xxxa", jobs[1].URL)
		})
	}
}

func TestStoresEmpty(t *testing.T) {
	for name, s := range openStores(t) {
		t.Run(name, func(t *testing.T) {
			batches, err := s.Batches(0)
			require.NoError(t, err)
			assert.Empty(t, batches)

			jobs, err := s.Jobs("nope")
			require.NoError(t, err)
			assert.Empty(t, jobs)
		})
	}
}

func TestFileStoreSkipsGarbage(t *testing.T) {
	p := filepath.Join(t.TempDir(), "history.log")
	require.NoError(t, os.WriteFile(p, []byte("not a log line\n\n2026-13-99  batch=x  total=1\n"), 0644))

	batches, err := NewFileStore(p).Batches(0)
	require.NoError(t, err)
	assert.Empty(t, batches)
}

func TestParseLine(t *testing.T) {
	ts, fields, ok := parseLine(`2026-10-16T09:00:00Z  batch=abc  job="0 1"  error="x=\"y\""  total=3`)
	require.True(t, ok)
	assert.Equal(t, 2026, ts.Year())
	assert.Equal(t, map[string]string{
		"batch": "abc",
		"job":   "0 1",
		"error": `x="y"`,
		"total": "3",
	}, fields)
}
