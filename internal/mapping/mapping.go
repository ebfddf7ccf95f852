// Package mapping reads and writes the key mapping file consumed by mkqr:
//
//	{"mappings": {"000001": "xxxh", "000002": "xxxa", ...}}
//
// Entry order follows the file, which encoding/json maps would lose, so the
// reader walks the token stream instead.
package mapping

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gkirito/coinassets/internal/paths"
)

// Field is the only top-level key the reader interprets.
const Field = "mappings"

var (
	ErrNotFound   = errors.New("mapping file not found")
	ErrParse      = errors.New("mapping file is not valid JSON")
	ErrNoMappings = errors.New(`mapping file has no "mappings" entries`)
)

// Entry is one identifier/secret pair.
type Entry struct {
	ID     string
	Secret string
}

// Load reads path and returns its mappings in file order. Errors wrap
// ErrNotFound, ErrParse or ErrNoMappings so callers can tell recognized
// input problems apart from other I/O failures.
func Load(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading mapping file %s: %w", path, err)
	}
	entries, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// Parse decodes a mapping document. Duplicate ids keep their first position
// and their last value.
func Parse(data []byte) ([]Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return nil, err
	}

	var entries []Entry
	found := false
	for dec.More() {
		key, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		if key != Field {
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return nil, parseErr(err)
			}
			continue
		}
		found = true
		entries, err = parseMappings(dec)
		if err != nil {
			return nil, err
		}
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: trailing data after document", ErrParse)
	}

	if !found || len(entries) == 0 {
		return nil, ErrNoMappings
	}
	return entries, nil
}

func parseMappings(dec *json.Decoder) ([]Entry, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, parseErr(err)
	}
	if tok == nil {
		return nil, nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("%w: %q must be an object", ErrParse, Field)
	}

	var entries []Entry
	index := make(map[string]int)
	for dec.More() {
		id, err := stringToken(dec)
		if err != nil {
			return nil, err
		}
		secret, err := stringToken(dec)
		if err != nil {
			return nil, fmt.Errorf("%w: value for %q must be a string", ErrParse, id)
		}
		if i, dup := index[id]; dup {
			entries[i].Secret = secret
			continue
		}
		index[id] = len(entries)
		entries = append(entries, Entry{ID: id, Secret: secret})
	}
	if err := expectDelim(dec, '}'); err != nil {
		return nil, err
	}
	return entries, nil
}

func stringToken(dec *json.Decoder) (string, error) {
	tok, err := dec.Token()
	if err != nil {
		return "", parseErr(err)
	}
	s, ok := tok.(string)
	if !ok {
		return "", fmt.Errorf("%w: expected string, got %v", ErrParse, tok)
	}
	return s, nil
}

func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return parseErr(err)
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("%w: expected %q, got %v", ErrParse, want, tok)
	}
	return nil
}

func parseErr(err error) error {
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return fmt.Errorf("%w: %v", ErrParse, err)
}

// Marshal renders entries as an indented mapping document, preserving order.
func Marshal(entries []Entry) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{\n  \"" + Field + "\": {")
	for i, e := range entries {
		id, err := json.Marshal(e.ID)
		if err != nil {
			return nil, err
		}
		secret, err := json.Marshal(e.Secret)
		if err != nil {
			return nil, err
		}
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString("\n    ")
		buf.Write(id)
		buf.WriteString(": ")
		buf.Write(secret)
	}
	if len(entries) > 0 {
		buf.WriteString("\n  ")
	}
	buf.WriteString("}\n}\n")
	return buf.Bytes(), nil
}

// Save writes entries to path, creating the parent directory if needed.
func Save(path string, entries []Entry) error {
	data, err := Marshal(entries)
	if err != nil {
		return err
	}
	if err := paths.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}
	return paths.AtomicWrite(path, data)
}
