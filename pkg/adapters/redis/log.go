// Package redis implements the event log on Redis, using only append-only
// primitives: RPUSH onto a per-key list plus SADD into a key index. No
// record is ever rewritten or removed.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	backend "github.com/redis/go-redis/v9"

	"github.com/okapen/inkwell/pkg/domain"
)

// Log implements ports.EventLog using Redis lists.
type Log struct {
	client *backend.Client
	prefix string
}

// Option configures the Log.
type Option func(*Log)

// WithPrefix sets the key prefix for log entries.
func WithPrefix(prefix string) Option {
	return func(l *Log) {
		l.prefix = prefix
	}
}

// New creates a new Redis log with options.
func New(address, password string, db int, opts ...Option) *Log {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis log from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Log {
	log := &Log{
		client: client,
		prefix: "inkwell:log:",
	}
	for _, opt := range opts {
		opt(log)
	}
	return log
}

func (l *Log) key(k string) string {
	return l.prefix + k
}

func (l *Log) indexKey() string {
	return l.prefix + "keys"
}

// Append pushes the record onto the key's list and registers the key in
// the index, in one pipeline.
func (l *Log) Append(ctx context.Context, key string, rec domain.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := l.client.Pipeline()
	pipe.RPush(ctx, l.key(key), data)
	pipe.SAdd(ctx, l.indexKey(), key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append to redis: %w", err)
	}
	return nil
}

// ReadAll returns the key's records in append order, Seq stamped from the
// list position.
func (l *Log) ReadAll(ctx context.Context, key string) ([]domain.Record, error) {
	entries, err := l.client.LRange(ctx, l.key(key), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read from redis: %w", err)
	}

	records := make([]domain.Record, 0, len(entries))
	for i, entry := range entries {
		var rec domain.Record
		if err := json.Unmarshal([]byte(entry), &rec); err != nil {
			return nil, fmt.Errorf("failed to unmarshal record %d for key %q: %w", i, key, err)
		}
		rec.Seq = int64(i)
		records = append(records, rec)
	}
	return records, nil
}

// ListKeys returns the indexed keys, sorted for reproducible enumeration.
func (l *Log) ListKeys(ctx context.Context) ([]string, error) {
	keys, err := l.client.SMembers(ctx, l.indexKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Close closes the redis client.
func (l *Log) Close() error {
	return l.client.Close()
}
