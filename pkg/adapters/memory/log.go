// Package memory provides in-memory implementations of the event log and
// artifact sink, for tests and demos.
package memory

import (
	"context"
	"sync"

	"github.com/okapen/inkwell/pkg/domain"
)

// Log implements ports.EventLog in memory. Safe for concurrent use.
type Log struct {
	mu   sync.RWMutex
	data map[string][]domain.Record
}

// NewLog creates an empty in-memory event log.
func NewLog() *Log {
	return &Log{data: make(map[string][]domain.Record)}
}

// Append adds a record under key. The record is deep-copied so callers
// can't mutate the log through retained pointers.
func (l *Log) Append(ctx context.Context, key string, rec domain.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data[key] = append(l.data[key], rec.Clone())
	return nil
}

// ReadAll returns the records for key in append order, Seq stamped with
// the append position.
func (l *Log) ReadAll(ctx context.Context, key string) ([]domain.Record, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]domain.Record, 0, len(l.data[key]))
	for i, rec := range l.data[key] {
		copied := rec.Clone()
		copied.Seq = int64(i)
		records = append(records, copied)
	}
	return records, nil
}

// ListKeys returns every key that has received an append.
func (l *Log) ListKeys(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.data))
	for key := range l.data {
		keys = append(keys, key)
	}
	return keys, nil
}
