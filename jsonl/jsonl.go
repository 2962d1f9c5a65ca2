// Package jsonl reads and writes line-delimited JSON artifact files. Reads
// tolerate malformed lines (skipped with a logged warning) so that one bad
// record cannot abort a whole report; writes are line-atomic and append-only
// per record.
package jsonl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// maxLineBytes bounds a single record; chunk contents can be large.
const maxLineBytes = 16 * 1024 * 1024

// ReadFile decodes every well-formed line of the file at path into a T.
// Malformed lines are skipped with a warning.
func ReadFile[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var out []T
	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var v T
		if err := json.Unmarshal([]byte(line), &v); err != nil {
			slog.Warn("jsonl: skipping malformed record", "path", path, "line", lineNo, "error", err)
			continue
		}
		out = append(out, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return out, nil
}

// WriteFile writes one JSON line per record to path, creating parent
// directories as needed. Each line is encoded before being written so a
// marshal failure cannot leave a partial line behind. Returns the number of
// records written.
func WriteFile[T any](path string, records []T) (int, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return 0, fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	n := 0
	for _, rec := range records {
		b, err := json.Marshal(rec)
		if err != nil {
			return n, fmt.Errorf("encoding record %d: %w", n, err)
		}
		b = append(b, '\n')
		if _, err := w.Write(b); err != nil {
			return n, fmt.Errorf("writing %s: %w", path, err)
		}
		n++
	}
	if err := w.Flush(); err != nil {
		return n, fmt.Errorf("flushing %s: %w", path, err)
	}
	return n, nil
}

// WriteJSON writes a single pretty-printed JSON document, used for the
// validation, metrics, and report artifacts.
func WriteJSON(path string, v any) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s: %w", path, err)
	}
	b = append(b, '\n')
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// ReadJSON decodes a single JSON document from path into v.
func ReadJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
