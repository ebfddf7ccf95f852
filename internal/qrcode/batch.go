package qrcode

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/xid"

	"github.com/gkirito/coinassets/internal/logging"
	"github.com/gkirito/coinassets/internal/mapping"
)

// DefaultProgressEvery is how many successes pass between progress reports.
const DefaultProgressEvery = 50

// Job is one mapping entry turned into a URL.
type Job struct {
	ID     string
	Secret string
	URL    string
}

// Result is the outcome of one Job. Exactly one of Path and Err is set.
type Result struct {
	Job  Job
	Path string
	Err  error
}

// Summary tallies one batch. Succeeded+Failed == Total.
type Summary struct {
	BatchID   string
	Source    string
	OutputDir string
	Encoder   string
	Total     int
	Succeeded int
	Failed    int
	Started   time.Time
	Finished  time.Time
	Results   []Result
}

// Recorder receives every result and the final summary, e.g. to keep a run
// history. Errors are logged and otherwise ignored.
type Recorder interface {
	RecordResult(batchID string, r Result) error
	RecordBatch(s Summary) error
}

// Jobs builds baseURL+secret for every entry, keeping entry order.
func Jobs(entries []mapping.Entry, baseURL string) []Job {
	jobs := make([]Job, len(entries))
	for i, e := range entries {
		jobs[i] = Job{ID: e.ID, Secret: e.Secret, URL: baseURL + e.Secret}
	}
	return jobs
}

// Summarize reduces per-item results to counts.
func Summarize(results []Result) (succeeded, failed int) {
	for _, r := range results {
		if r.Err != nil {
			failed++
		} else {
			succeeded++
		}
	}
	return succeeded, failed
}

// Batch drives Generator over a mapping file.
type Batch struct {
	Gen           Generator
	Out           io.Writer
	ProgressEvery int
	// Progress replaces the default "n/total" line when set.
	Progress func(done, total int)
	Recorder Recorder
}

// Run loads jsonPath and generates one QR code per entry into outputDir.
//
// A missing or unparsable file, or one without mappings, is reported on Out
// and returned as an error wrapping the mapping sentinel; nothing is written
// in that case. Per-item failures are reported, counted and skipped.
func (b *Batch) Run(jsonPath, baseURL, outputDir string) (Summary, error) {
	entries, err := mapping.Load(jsonPath)
	if err != nil {
		b.printf("%s\n", describeLoadError(jsonPath, err))
		logging.Error("mapping load failed", "path", jsonPath, "err", err)
		return Summary{}, err
	}

	jobs := Jobs(entries, baseURL)
	s := Summary{
		BatchID:   xid.New().String(),
		Source:    jsonPath,
		OutputDir: outputDir,
		Encoder:   b.Gen.Encoder.Name(),
		Total:     len(jobs),
		Started:   time.Now(),
		Results:   make([]Result, 0, len(jobs)),
	}
	logging.Info("batch started", "batch", s.BatchID, "total", s.Total, "encoder", s.Encoder)
	b.printf("Generating %d QR codes...\n", s.Total)

	every := b.ProgressEvery
	if every <= 0 {
		every = DefaultProgressEvery
	}

	for _, job := range jobs {
		r := b.runOne(job, outputDir)
		s.Results = append(s.Results, r)

		if r.Err != nil {
			s.Failed++
			b.printf("Error generating QR code %s: %v\n", job.ID, r.Err)
			logging.Error("qr generation failed", "batch", s.BatchID, "id", job.ID, "err", r.Err)
		} else {
			s.Succeeded++
			logging.Debug("qr generated", "batch", s.BatchID, "id", job.ID, "path", r.Path)
			if s.Succeeded%every == 0 {
				b.progress(s.Succeeded, s.Total)
			}
		}

		if b.Recorder != nil {
			if err := b.Recorder.RecordResult(s.BatchID, r); err != nil {
				logging.Warn("history write failed", "batch", s.BatchID, "id", job.ID, "err", err)
			}
		}
	}
	s.Finished = time.Now()

	if b.Recorder != nil {
		if err := b.Recorder.RecordBatch(s); err != nil {
			logging.Warn("history write failed", "batch", s.BatchID, "err", err)
		}
	}

	b.printf("\nBatch complete!\n")
	b.printf("Succeeded: %d\n", s.Succeeded)
	b.printf("Failed: %d\n", s.Failed)
	b.printf("Output directory: %s\n", s.OutputDir)
	logging.Info("batch finished", "batch", s.BatchID, "succeeded", s.Succeeded, "failed", s.Failed,
		"elapsed", s.Finished.Sub(s.Started).String())
	return s, nil
}

// runOne isolates a single job, turning a panic inside an encoder into
// that job's error.
func (b *Batch) runOne(job Job, outputDir string) (r Result) {
	r.Job = job
	defer func() {
		if p := recover(); p != nil {
			r.Path = ""
			r.Err = fmt.Errorf("panic: %v", p)
		}
	}()
	r.Path, r.Err = b.Gen.Generate(job.URL, job.ID, outputDir)
	return r
}

func (b *Batch) progress(done, total int) {
	if b.Progress != nil {
		b.Progress(done, total)
		return
	}
	b.printf("Generated %d/%d QR codes...\n", done, total)
}

func (b *Batch) printf(format string, args ...any) {
	if b.Out == nil {
		return
	}
	fmt.Fprintf(b.Out, format, args...)
}

func describeLoadError(path string, err error) string {
	switch {
	case errors.Is(err, mapping.ErrNotFound):
		return fmt.Sprintf("Error: mapping file not found: %s", path)
	case errors.Is(err, mapping.ErrParse):
		return fmt.Sprintf("Error: cannot parse JSON file %s: %v", path, err)
	case errors.Is(err, mapping.ErrNoMappings):
		return fmt.Sprintf("Error: no %q entries found in %s", mapping.Field, path)
	}
	return fmt.Sprintf("Error: %v", err)
}
