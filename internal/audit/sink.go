package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// defaultMaxLogBytes is the rotation threshold used when the
// configuration does not set one.
const defaultMaxLogBytes int64 = 10 * 1024 * 1024

// Sink accepts audit records. A Sink must not block beyond an
// in-process mutex: it is called inline with a dispatch, so a remote
// destination needs a buffering implementation in front of it.
type Sink interface {
	Write(Event) error
}

// JSONLSink appends newline-delimited JSON records to a file. The
// file's size is accounted in memory as records are written; a write
// that would push it past the limit first renames the current log
// aside under a timestamped name and starts a fresh one. Old
// generations are kept for the operator to prune.
type JSONLSink struct {
	path     string
	maxBytes int64

	mu   sync.Mutex
	file *os.File
	size int64
}

// NewJSONLSink opens (creating if needed) the audit log at path with
// the default rotation threshold.
func NewJSONLSink(path string) (*JSONLSink, error) {
	return NewJSONLSinkWithLimit(path, 0)
}

// NewJSONLSinkWithLimit opens the audit log at path, rotating once a
// write would push the file past maxBytes. maxBytes <= 0 selects the
// default threshold.
func NewJSONLSinkWithLimit(path string, maxBytes int64) (*JSONLSink, error) {
	if maxBytes <= 0 {
		maxBytes = defaultMaxLogBytes
	}
	f, err := openAuditLog(path)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("stat audit log: %w", err)
	}
	return &JSONLSink{path: path, maxBytes: maxBytes, file: f, size: info.Size()}, nil
}

func openAuditLog(path string) (*os.File, error) {
	return os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
}

// Write appends one record. The record reaches here already redacted
// (NewEvent scrubs dataString), so no further processing happens on
// the dispatch path beyond encoding and the size check.
func (s *JSONLSink) Write(e Event) error {
	line, err := json.Marshal(e)
	if err != nil {
		return err
	}
	line = append(line, '\n')

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.size > 0 && s.size+int64(len(line)) > s.maxBytes {
		if err := s.rotate(e.Timestamp); err != nil {
			fmt.Fprintf(os.Stderr, "ifw: warning: audit log rotation failed: %v\n", err)
		}
	}
	n, err := s.file.Write(line)
	s.size += int64(n)
	return err
}

// rotate moves the current log to <path>.<UTC timestamp> and opens a
// fresh file. If the rename fails the oversized log is reopened and
// appending continues — losing records is worse than an oversized
// file.
func (s *JSONLSink) rotate(ts time.Time) error {
	if ts.IsZero() {
		ts = time.Now()
	}
	s.file.Close()

	rotated := s.path + "." + ts.UTC().Format("20060102T150405")
	renameErr := os.Rename(s.path, rotated)

	f, err := openAuditLog(s.path)
	if err != nil {
		return fmt.Errorf("reopen audit log: %w", err)
	}
	s.file = f
	if renameErr != nil {
		return fmt.Errorf("rotate audit log: %w", renameErr)
	}
	s.size = 0
	return nil
}

func (s *JSONLSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.file != nil {
		return s.file.Close()
	}
	return nil
}

// NopSink discards every record; used when no audit path is configured.
type NopSink struct{}

func (NopSink) Write(Event) error { return nil }
