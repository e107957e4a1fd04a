// Package store synthesizes session CRUD semantics on top of an
// append-only event log. Every write is a full snapshot append; deletion
// appends a tombstone; reads resolve the latest non-tombstoned snapshot.
package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/okapen/inkwell/internal/logging"
	"github.com/okapen/inkwell/pkg/domain"
	"github.com/okapen/inkwell/pkg/ports"
)

// minTick is the smallest amount a new snapshot's LastUpdated must advance
// past the previously resolved state, so consecutive updates never tie.
const minTick = time.Millisecond

// Store implements ports.SessionStore over a ports.EventLog.
type Store struct {
	log    ports.EventLog
	clock  func() time.Time
	logger *slog.Logger

	// Resolution cache, enabled via WithCache. Correct only while this
	// store is the sole writer for its scope: a hit skips the log read,
	// so appends by other writers stay invisible until invalidation.
	mu      sync.Mutex
	cache   map[string]*domain.Session
	caching bool
}

// Option configures the Store.
type Option func(*Store)

// WithClock overrides the wall clock (used by tests).
func WithClock(clock func() time.Time) Option {
	return func(s *Store) {
		s.clock = clock
	}
}

// WithLogger configures a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// WithCache enables the in-memory resolved-session cache, invalidated on
// every own append.
func WithCache() Option {
	return func(s *Store) {
		s.caching = true
	}
}

// New creates a Store over the given event log.
func New(log ports.EventLog, opts ...Option) *Store {
	s := &Store{
		log:    log,
		clock:  time.Now,
		logger: logging.NewNop(),
		cache:  make(map[string]*domain.Session),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// resolve reconstructs the current state from a record history: the
// snapshot with the greatest (LastUpdated, Seq) wins, unless a tombstone
// carries a LastUpdated >= that snapshot's, in which case the session is
// deleted. Returns nil for deleted or empty histories.
func resolve(records []domain.Record) *domain.Session {
	var best *domain.Record
	var tombstoneAt *time.Time

	for i := range records {
		rec := &records[i]
		if rec.Tombstone {
			if tombstoneAt == nil || rec.LastUpdated.After(*tombstoneAt) {
				t := rec.LastUpdated
				tombstoneAt = &t
			}
			continue
		}
		if rec.Session == nil {
			continue // malformed snapshot, skip
		}
		if best == nil || rec.Newer(*best) {
			best = rec
		}
	}

	if best == nil {
		return nil
	}
	if tombstoneAt != nil && !tombstoneAt.Before(best.LastUpdated) {
		return nil
	}
	return best.Session.Clone()
}

func (s *Store) cached(sessionID string) (*domain.Session, bool) {
	if !s.caching {
		return nil, false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.cache[sessionID]
	return sess.Clone(), ok
}

func (s *Store) fill(sessionID string, sess *domain.Session) {
	if !s.caching {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[sessionID] = sess.Clone()
}

func (s *Store) invalidate(sessionID string) {
	if !s.caching {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cache, sessionID)
}

// Create appends the first snapshot for a new session.
//
// The duplicate check below is a fresh read followed by an append. Two
// concurrent creators can both pass it; the log has no conditional append,
// so this window is accepted rather than papered over.
func (s *Store) Create(ctx context.Context, sess *domain.Session) error {
	records, err := s.log.ReadAll(ctx, sess.ID)
	if err != nil {
		return fmt.Errorf("failed to check for existing session: %w", err)
	}
	if resolve(records) != nil {
		return fmt.Errorf("session %q: %w", sess.ID, domain.ErrDuplicateSession)
	}

	if err := s.log.Append(ctx, sess.ID, domain.NewSnapshot(sess)); err != nil {
		return fmt.Errorf("failed to append initial snapshot: %w", err)
	}
	s.invalidate(sess.ID)
	s.logger.Debug("session created", "session_id", sess.ID, "kind", sess.Kind)
	return nil
}

// Get resolves the current state of a session.
func (s *Store) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	if sess, ok := s.cached(sessionID); ok {
		return sess, nil
	}

	records, err := s.log.ReadAll(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read session history: %w", err)
	}
	sess := resolve(records)
	if sess == nil {
		return nil, fmt.Errorf("session %q: %w", sessionID, domain.ErrSessionNotFound)
	}
	s.fill(sessionID, sess)
	return sess, nil
}

// Update appends a new full snapshot for a live session. LastUpdated is
// advanced to at least the previously resolved timestamp plus one tick, so
// the new snapshot always wins resolution against its predecessor.
func (s *Store) Update(ctx context.Context, sess *domain.Session) (*domain.Session, error) {
	prev, err := s.Get(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	next := sess.Clone()
	next.LastUpdated = s.clock()
	if floor := prev.LastUpdated.Add(minTick); next.LastUpdated.Before(floor) {
		next.LastUpdated = floor
	}

	if err := s.log.Append(ctx, next.ID, domain.NewSnapshot(next)); err != nil {
		return nil, fmt.Errorf("failed to append snapshot: %w", err)
	}
	s.invalidate(next.ID)
	s.fill(next.ID, next)
	s.logger.Debug("session updated", "session_id", next.ID, "last_updated", next.LastUpdated)
	return next, nil
}

// Delete appends a tombstone with a timestamp newer than every existing
// record for the key. Prior records are never touched.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	records, err := s.log.ReadAll(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to read session history: %w", err)
	}
	if resolve(records) == nil {
		return fmt.Errorf("session %q: %w", sessionID, domain.ErrSessionNotFound)
	}

	at := s.clock()
	for _, rec := range records {
		if floor := rec.LastUpdated.Add(minTick); at.Before(floor) {
			at = floor
		}
	}

	if err := s.log.Append(ctx, sessionID, domain.NewTombstone(sessionID, at)); err != nil {
		return fmt.Errorf("failed to append tombstone: %w", err)
	}
	s.invalidate(sessionID)
	s.logger.Debug("session deleted", "session_id", sessionID)
	return nil
}

// List resolves every known key and returns live sessions ordered by id.
func (s *Store) List(ctx context.Context) ([]*domain.Session, error) {
	keys, err := s.log.ListKeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list session keys: %w", err)
	}
	sort.Strings(keys)

	sessions := make([]*domain.Session, 0, len(keys))
	for _, key := range keys {
		sess, err := s.Get(ctx, key)
		if err != nil {
			if errors.Is(err, domain.ErrSessionNotFound) {
				continue // tombstoned
			}
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	return sessions, nil
}

// Latest returns the live session with the greatest LastUpdated. Ties go
// to the lexicographically greater id; stable within one List pass, but
// otherwise implementation-defined.
func (s *Store) Latest(ctx context.Context) (*domain.Session, error) {
	sessions, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	var latest *domain.Session
	for _, sess := range sessions {
		if latest == nil || sess.LastUpdated.After(latest.LastUpdated) ||
			(sess.LastUpdated.Equal(latest.LastUpdated) && sess.ID > latest.ID) {
			latest = sess
		}
	}
	if latest == nil {
		return nil, domain.ErrSessionNotFound
	}
	return latest, nil
}
