package ports

import (
	"context"

	"github.com/okapen/inkwell/pkg/domain"
)

// EventLog is the narrow contract of the external append-only log. It
// supports appending and reading, never update or delete; CRUD semantics
// are synthesized above it by the session store.
//
// Implementations must preserve append order per key. ReadAll stamps each
// record's Seq with its append position. No ordering guarantee holds
// across keys, and the only read-after-write guarantee required is that a
// caller sees its own prior appends.
type EventLog interface {
	// Append adds a record under key. Records are immutable once written.
	Append(ctx context.Context, key string, rec domain.Record) error

	// ReadAll returns every record for key in append order. A key with no
	// records yields an empty slice, not an error.
	ReadAll(ctx context.Context, key string) ([]domain.Record, error)

	// ListKeys enumerates every key that has ever received an append
	// within this log's scope.
	ListKeys(ctx context.Context) ([]string, error)
}
