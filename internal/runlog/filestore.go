package runlog

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gkirito/coinassets/internal/paths"
	"github.com/gkirito/coinassets/internal/qrcode"
)

// FileStore implements Store using a flat log file, one line per job and
// one summary line per batch:
//
//	<ts>  batch=<id>  job=<id>  url="..."  path="..."
//	<ts>  batch=<id>  job=<id>  url="..."  error="..."
//	<ts>  batch=<id>  started=<ts>  source="..."  out="..."  encoder=skip2  total=2  succeeded=1  failed=1
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore that reads and writes the given log file.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Close() error { return nil }

// writeLog opens the log for appending, creating the parent directory if
// needed, and writes one line.
func (f *FileStore) writeLog(line string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), paths.DirPerm); err != nil {
		return err
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, paths.FilePerm)
	if err != nil {
		return err
	}
	defer file.Close()
	_, err = fmt.Fprintln(file, line)
	return err
}

func (f *FileStore) RecordResult(batchID string, r qrcode.Result) error {
	ts := time.Now().Format(time.RFC3339)
	line := fmt.Sprintf("%s  batch=%s  job=%q  url=%q", ts, batchID, r.Job.ID, r.Job.URL)
	if r.Err != nil {
		line += fmt.Sprintf("  error=%q", r.Err.Error())
	} else {
		line += fmt.Sprintf("  path=%q", r.Path)
	}
	return f.writeLog(line)
}

func (f *FileStore) RecordBatch(s qrcode.Summary) error {
	line := fmt.Sprintf("%s  batch=%s  started=%s  source=%q  out=%q  encoder=%s  total=%d  succeeded=%d  failed=%d",
		s.Finished.Format(time.RFC3339), s.BatchID, s.Started.Format(time.RFC3339),
		s.Source, s.OutputDir, s.Encoder, s.Total, s.Succeeded, s.Failed)
	return f.writeLog(line)
}

func (f *FileStore) Batches(limit int) ([]Batch, error) {
	lines, err := f.lines()
	if err != nil {
		return nil, err
	}
	var out []Batch
	for i := len(lines) - 1; i >= 0; i-- {
		ts, fields, ok := parseLine(lines[i])
		if !ok {
			continue
		}
		if _, isSummary := fields["total"]; !isSummary {
			continue
		}
		b := Batch{
			ID:        fields["batch"],
			Finished:  ts,
			Source:    fields["source"],
			OutputDir: fields["out"],
			Encoder:   fields["encoder"],
			Total:     atoi(fields["total"]),
			Succeeded: atoi(fields["succeeded"]),
			Failed:    atoi(fields["failed"]),
		}
		b.Started, _ = time.Parse(time.RFC3339, fields["started"])
		out = append(out, b)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *FileStore) Jobs(batchID string) ([]Job, error) {
	lines, err := f.lines()
	if err != nil {
		return nil, err
	}
	var out []Job
	for _, line := range lines {
		ts, fields, ok := parseLine(line)
		if !ok || fields["batch"] != batchID {
			continue
		}
		id, isJob := fields["job"]
		if !isJob {
			continue
		}
		out = append(out, Job{
			BatchID: batchID,
			ID:      id,
			URL:     fields["url"],
			Path:    fields["path"],
			Error:   fields["error"],
			Time:    ts,
		})
	}
	return out, nil
}

func (f *FileStore) lines() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var lines []string
	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, sc.Err()
}

// parseLine splits "<ts>  k=v  k="quoted v" ..." into the timestamp and a
// field map. Quoted values use Go string syntax.
func parseLine(line string) (time.Time, map[string]string, bool) {
	tsText, rest, found := strings.Cut(line, "  ")
	if !found {
		return time.Time{}, nil, false
	}
	ts, err := time.Parse(time.RFC3339, tsText)
	if err != nil {
		return time.Time{}, nil, false
	}

	fields := make(map[string]string)
	for rest != "" {
		rest = strings.TrimLeft(rest, " ")
		key, after, ok := strings.Cut(rest, "=")
		if !ok {
			break
		}
		var val string
		if strings.HasPrefix(after, `"`) {
			quoted, err := strconv.QuotedPrefix(after)
			if err != nil {
				return time.Time{}, nil, false
			}
			val, _ = strconv.Unquote(quoted)
			rest = after[len(quoted):]
		} else {
			val, rest, _ = strings.Cut(after, " ")
		}
		fields[key] = val
	}
	return ts, fields, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
