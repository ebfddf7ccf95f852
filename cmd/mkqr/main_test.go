package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gkirito/coinassets/internal/mapping"
)

// execute runs mkqr inside a fresh working directory so no stray
// coinassets.yaml is picked up.
func execute(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	chdir(t, dir)
	t.Setenv("APPDATA", filepath.Join(dir, "appdata"))

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func TestMkqrDefaultsRelativeToWorkingDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, mapping.Save(filepath.Join(dir, "src", "data", "encryption-map-001-500.json"),
		[]mapping.Entry{{ID: "000001", Secret: "xxxh"}, {ID: "000002", Secret: "xxxa"}}))

	text, err := execute(t, dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, "output", "000001.png"))
	assert.FileExists(t, filepath.Join(dir, "output", "000002.png"))
	assert.Contains(t, text, "Succeeded: 2")
	assert.Contains(t, text, "Failed: 0")
}

func TestMkqrFlagsOverride(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "keys.json")
	require.NoError(t, mapping.Save(src, []mapping.Entry{{ID: "A", Secret: "1"}}))
	out := filepath.Join(dir, "codes")

	_, err := execute(t, dir, "--map", src, "--out", out, "--encoder", "barcode", "--base-url", "https://x/?key=")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(out, "A.png"))
}

func TestMkqrMissingMappingIsNotFatal(t *testing.T) {
	dir := t.TempDir()

	text, err := execute(t, dir, "--map", "nope.json")
	require.NoError(t, err)
	assert.Contains(t, text, "nope.json")
	assert.NoDirExists(t, filepath.Join(dir, "output"))
}

func TestMkqrUnknownEncoder(t *testing.T) {
	_, err := execute(t, t.TempDir(), "--encoder", "zxing")
	assert.Error(t, err)
}

func TestMkqrRecordsHistory(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "keys.json")
	require.NoError(t, mapping.Save(src, []mapping.Entry{{ID: "A", Secret: "1"}, {ID: "B", Secret: "2"}}))
	hist := filepath.Join(dir, "history.db")

	_, err := execute(t, dir, "--map", src, "--history", hist)
	require.NoError(t, err)

	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"history", "--history", hist, "--log-level", "error"})
	require.NoError(t, cmd.Execute())

	text := out.String()
	assert.Contains(t, text, "BATCH")
	assert.Contains(t, text, "skip2")
	assert.Contains(t, text, "output")
}

func TestMkqrHistoryEmpty(t *testing.T) {
	dir := t.TempDir()
	hist := filepath.Join(dir, "history.log")

	text, err := execute(t, dir, "history", "--history", hist)
	require.NoError(t, err)
	assert.Contains(t, text, "No batches recorded")

	_, statErr := os.Stat(hist)
	assert.True(t, os.IsNotExist(statErr), "listing must not create the log")
}

func TestProgressFuncNonTerminal(t *testing.T) {
	assert.Nil(t, progressFunc(&bytes.Buffer{}))
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
