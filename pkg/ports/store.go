package ports

import (
	"context"

	"github.com/okapen/inkwell/pkg/domain"
)

// SessionStore provides session CRUD semantics on top of an append-only
// EventLog: every write is a full snapshot append, deletion is a tombstone
// append, and reads resolve to the most recent non-tombstoned snapshot.
type SessionStore interface {
	// Create appends the first snapshot for a new session. Returns
	// domain.ErrDuplicateSession if the id already resolves to a live
	// snapshot. The duplicate check is read-then-append and therefore
	// racy under concurrent creators; the log offers no conditional
	// append to close that window.
	Create(ctx context.Context, s *domain.Session) error

	// Get resolves the current state of a session. Returns
	// domain.ErrSessionNotFound if the id was never created or a
	// tombstone outranks every snapshot.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// Update appends a new full snapshot for a live session, advancing
	// LastUpdated past the previously resolved state.
	Update(ctx context.Context, s *domain.Session) (*domain.Session, error)

	// Delete appends a tombstone newer than every existing record.
	Delete(ctx context.Context, sessionID string) error

	// List resolves every known key and returns the live sessions,
	// ordered by session id.
	List(ctx context.Context) ([]*domain.Session, error)

	// Latest returns the live session with the greatest LastUpdated.
	Latest(ctx context.Context) (*domain.Session, error)
}
