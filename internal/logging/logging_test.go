package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStructuredFields(t *testing.T) {
	var buf bytes.Buffer
	SetLoggerForTest(zerolog.New(&buf))

	Info("generated", "id", "000001", "count", 3, "dangling")

	out := buf.String()
	assert.Contains(t, out, `"message":"generated"`)
	assert.Contains(t, out, `"id":"000001"`)
	assert.Contains(t, out, `"count":3`)
	assert.NotContains(t, out, "dangling")
}

func TestErrorValuesAreStrings(t *testing.T) {
	var buf bytes.Buffer
	SetLoggerForTest(zerolog.New(&buf))

	Error("qr failed", "err", errors.New("boom"))

	assert.Contains(t, buf.String(), `"err":"boom"`)
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	SetLoggerForTest(zerolog.New(&buf).Level(zerolog.WarnLevel))

	Info("hidden")
	Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetLogLevelInvalidFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	SetLoggerForTest(zerolog.New(&buf).Level(zerolog.ErrorLevel))

	SetLogLevel("nonsense")
	Info("visible after fallback")
	Debug("still hidden")

	assert.Contains(t, buf.String(), "visible after fallback")
	assert.NotContains(t, buf.String(), "still hidden")
}

func TestInitWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "coinassets.log")
	Init("debug", FileOptions{Path: path, MaxSizeMB: 1})
	t.Cleanup(func() { Init("info", FileOptions{}) })

	Debug("to file", "k", "v")
	assert.FileExists(t, path)
}
