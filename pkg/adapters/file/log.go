// Package file provides filesystem-backed adapters: a durable append-only
// event log (one JSONL file per key) and an artifact sink writing plain
// documents to a directory.
package file

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/okapen/inkwell/pkg/domain"
)

const logExt = ".jsonl"

// Log implements ports.EventLog on the local filesystem. Each key maps to
// one JSON-lines file; Append only ever adds a line at the end, matching
// the write-once contract of the external log it stands in for.
type Log struct {
	BasePath string
}

// NewLog creates a Log rooted at basePath.
// If basePath is empty, it defaults to ".inkwell/sessions".
func NewLog(basePath string) *Log {
	if basePath == "" {
		basePath = filepath.Join(".inkwell", "sessions")
	}
	return &Log{BasePath: basePath}
}

func (l *Log) path(key string) string {
	return filepath.Join(l.BasePath, key+logExt)
}

// Append marshals the record and appends it as one line, fsynced before
// close so a crash can't lose an acknowledged append.
func (l *Log) Append(ctx context.Context, key string, rec domain.Record) error {
	if key == "" {
		return fmt.Errorf("key cannot be empty")
	}
	if err := os.MkdirAll(l.BasePath, 0o755); err != nil {
		return fmt.Errorf("failed to ensure log directory: %w", err)
	}

	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	f, err := os.OpenFile(l.path(key), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		f.Close()
		return fmt.Errorf("failed to append record: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("failed to fsync log file: %w", err)
	}
	return f.Close()
}

// ReadAll returns the records for key in append order. A missing file
// means no records, not an error.
func (l *Log) ReadAll(ctx context.Context, key string) ([]domain.Record, error) {
	f, err := os.Open(l.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer f.Close()

	var records []domain.Record
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal(line, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse record %d for key %q: %w", len(records), key, err)
		}
		rec.Seq = int64(len(records))
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan log file: %w", err)
	}
	return records, nil
}

// ListKeys enumerates keys from the log files on disk.
func (l *Log) ListKeys(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(l.BasePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read log directory: %w", err)
	}

	var keys []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, logExt) {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, logExt))
	}
	return keys, nil
}
