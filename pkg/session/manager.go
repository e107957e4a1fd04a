package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/okapen/inkwell/internal/logging"
	"github.com/okapen/inkwell/pkg/domain"
	"github.com/okapen/inkwell/pkg/ports"
	"github.com/okapen/inkwell/pkg/template"
)

// Latest is the session reference that resolves to the most recently
// updated live session.
const Latest = "latest"

// lockEntry holds the mutex and the reference count for one session.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access over the store, renderer, validator,
// sink and deriver. Per-session locks serialize read-modify-append cycles
// within this process; cross-process races against the shared log remain
// (see the store's create semantics).
type Manager struct {
	store    ports.SessionStore
	registry *template.Registry
	sink     ports.ArtifactSink
	deriver  ports.BinaryDeriver

	clock  func() time.Time
	logger *slog.Logger

	mu    sync.Mutex            // Global lock for the map
	locks map[string]*lockEntry // Map of active locks
}

// Option configures the Manager.
type Option func(*Manager)

// WithLogger configures a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithClock overrides the wall clock (used by tests).
func WithClock(clock func() time.Time) Option {
	return func(m *Manager) {
		m.clock = clock
	}
}

// NewManager creates a lifecycle manager over the given collaborators.
func NewManager(store ports.SessionStore, registry *template.Registry, sink ports.ArtifactSink, deriver ports.BinaryDeriver, opts ...Option) *Manager {
	m := &Manager{
		store:    store,
		registry: registry,
		sink:     sink,
		deriver:  deriver,
		clock:    time.Now,
		logger:   logging.NewNop(),
		locks:    make(map[string]*lockEntry),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// acquire gets or creates a lock entry and increments its reference count.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

// release decrements the reference count and deletes the entry at zero.
func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, exists := m.locks[sessionID]
	if !exists {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// withLock executes fn while holding the lock for the session.
func (m *Manager) withLock(sessionID string, fn func() error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()
	return fn()
}

// CompletionStatus summarizes how far a session is from finalization.
type CompletionStatus struct {
	Complete      bool     `json:"complete"`
	RequiredDone  int      `json:"required_done"`
	RequiredTotal int      `json:"required_total"`
	OptionalDone  int      `json:"optional_done"`
	OptionalTotal int      `json:"optional_total"`
	Missing       []string `json:"missing,omitempty"`
}

// Progress renders the status as "2/4 required, 1/5 optional".
func (c CompletionStatus) Progress() string {
	return fmt.Sprintf("%d/%d required, %d/%d optional",
		c.RequiredDone, c.RequiredTotal, c.OptionalDone, c.OptionalTotal)
}

// Status computes the completion status of a session against its template.
func (m *Manager) Status(sess *domain.Session) (CompletionStatus, error) {
	tmpl, err := m.registry.Get(sess.Kind)
	if err != nil {
		return CompletionStatus{}, err
	}
	return status(tmpl, sess), nil
}

func status(tmpl domain.Template, sess *domain.Session) CompletionStatus {
	missing := template.MissingRequired(tmpl, sess.Fields)
	optionalDone := 0
	for _, f := range tmpl.Optional {
		if _, ok := sess.Fields[f]; ok {
			optionalDone++
		}
	}
	return CompletionStatus{
		Complete:      len(missing) == 0,
		RequiredDone:  len(tmpl.Required) - len(missing),
		RequiredTotal: len(tmpl.Required),
		OptionalDone:  optionalDone,
		OptionalTotal: len(tmpl.Optional),
		Missing:       missing,
	}
}

// CreateResult reports a freshly created session and what to collect next.
type CreateResult struct {
	SessionID    string   `json:"session_id"`
	Kind         string   `json:"kind"`
	TextLocation string   `json:"text_location"`
	Required     []string `json:"required"`
	Optional     []string `json:"optional"`
}

// Create starts a new drafting session for the given kind and identity,
// writes the initial placeholder document, and persists the first
// snapshot. The returned field lists tell the caller what to collect.
func (m *Manager) Create(ctx context.Context, kind string, identity domain.Identity) (*CreateResult, error) {
	tmpl, err := m.registry.Get(kind)
	if err != nil {
		return nil, err
	}

	now := m.clock()
	id := sessionID(identity.CourseCode, kind, now)
	sess := domain.NewSession(id, kind, identity, now)
	sess.Artifacts.Text = template.Filename(identity.CourseCode, kind, identity.Title, false)

	var result *CreateResult
	err = m.withLock(id, func() error {
		if err := m.store.Create(ctx, sess); err != nil {
			return err
		}

		content, err := template.Render(tmpl, sess.Identity, sess.Fields)
		if err != nil {
			return err
		}
		if err := m.sink.PutText(ctx, sess.Artifacts.Text, content); err != nil {
			return fmt.Errorf("failed to write initial document: %w", err)
		}

		result = &CreateResult{
			SessionID:    sess.ID,
			Kind:         kind,
			TextLocation: sess.Artifacts.Text,
			Required:     tmpl.Required,
			Optional:     tmpl.Optional,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("session created",
		"session_id", sess.ID,
		"kind", kind,
		"course_code", identity.CourseCode,
	)
	return result, nil
}

// sessionID builds a stable, human-readable session identifier.
func sessionID(courseCode, kind string, now time.Time) string {
	return fmt.Sprintf("%s_%s_%s", courseCode, kind, now.Format("20060102_150405"))
}

// resolveRef maps a session reference (id or "latest") to current state.
func (m *Manager) resolveRef(ctx context.Context, ref string) (*domain.Session, error) {
	if strings.EqualFold(ref, Latest) {
		return m.store.Latest(ctx)
	}
	return m.store.Get(ctx, ref)
}

// Get returns the current state of the referenced session.
func (m *Manager) Get(ctx context.Context, ref string) (*domain.Session, error) {
	return m.resolveRef(ctx, ref)
}

// List returns all live sessions.
func (m *Manager) List(ctx context.Context) ([]*domain.Session, error) {
	return m.store.List(ctx)
}

// FieldResult reports a field update and the resulting completion status.
type FieldResult struct {
	SessionID    string           `json:"session_id"`
	Kind         string           `json:"kind"`
	Field        string           `json:"field"`
	Value        string           `json:"value"`
	TextLocation string           `json:"text_location"`
	Status       CompletionStatus `json:"completion_status"`
}

// SetField sets one field on the referenced session, persists a new
// snapshot, re-renders the draft and rewrites the text artifact. A name
// outside the template's field set yields *domain.UnknownFieldError and
// leaves the session untouched.
func (m *Manager) SetField(ctx context.Context, ref, name, value string) (*FieldResult, error) {
	sess, err := m.resolveRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	tmpl, err := m.registry.Get(sess.Kind)
	if err != nil {
		return nil, err
	}
	if !tmpl.KnownField(name) {
		return nil, &domain.UnknownFieldError{Field: name, Kind: sess.Kind, Valid: tmpl.Fields()}
	}

	var result *FieldResult
	err = m.withLock(sess.ID, func() error {
		// Re-resolve under the lock so concurrent updates in this
		// process don't clobber each other's fields.
		current, err := m.store.Get(ctx, sess.ID)
		if err != nil {
			return err
		}
		current.Fields[name] = value

		updated, err := m.store.Update(ctx, current)
		if err != nil {
			return err
		}

		content, err := template.Render(tmpl, updated.Identity, updated.Fields)
		if err != nil {
			return err
		}
		if err := m.sink.PutText(ctx, updated.Artifacts.Text, content); err != nil {
			return fmt.Errorf("failed to write document: %w", err)
		}

		result = &FieldResult{
			SessionID:    updated.ID,
			Kind:         updated.Kind,
			Field:        name,
			Value:        value,
			TextLocation: updated.Artifacts.Text,
			Status:       status(tmpl, updated),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("field updated",
		"session_id", result.SessionID,
		"field", name,
		"progress", result.Status.Progress(),
	)
	return result, nil
}

// Regenerate re-renders the referenced session's document from current
// fields and rewrites the text artifact, without changing any state.
// Calling it twice in a row produces byte-identical output.
func (m *Manager) Regenerate(ctx context.Context, ref string) (string, error) {
	sess, err := m.resolveRef(ctx, ref)
	if err != nil {
		return "", err
	}

	tmpl, err := m.registry.Get(sess.Kind)
	if err != nil {
		return "", err
	}
	content, err := template.Render(tmpl, sess.Identity, sess.Fields)
	if err != nil {
		return "", err
	}
	if err := m.sink.PutText(ctx, sess.Artifacts.Text, content); err != nil {
		return "", fmt.Errorf("failed to write document: %w", err)
	}

	m.logger.Info("document regenerated", "session_id", sess.ID, "location", sess.Artifacts.Text)
	return sess.Artifacts.Text, nil
}

// FinalizeResult reports where the final artifacts were written.
type FinalizeResult struct {
	SessionID      string `json:"session_id"`
	TextLocation   string `json:"text_location"`
	BinaryLocation string `json:"binary_location"`
}

// Finalize checks completion, renders the final document, writes the text
// artifact, derives the binary artifact, and persists both locations.
//
// If binary derivation fails after the text was written, the session's
// text location is still updated and persisted, but the session is not
// marked finalized; the caller may retry, since finalize is idempotent for
// unchanged fields. Missing required fields yield *domain.IncompleteError
// without appending any snapshot.
func (m *Manager) Finalize(ctx context.Context, ref string) (*FinalizeResult, error) {
	sess, err := m.resolveRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	tmpl, err := m.registry.Get(sess.Kind)
	if err != nil {
		return nil, err
	}

	var result *FinalizeResult
	err = m.withLock(sess.ID, func() error {
		current, err := m.store.Get(ctx, sess.ID)
		if err != nil {
			return err
		}

		if missing := template.MissingRequired(tmpl, current.Fields); len(missing) > 0 {
			return &domain.IncompleteError{SessionID: current.ID, Missing: missing}
		}

		content, err := template.Render(tmpl, current.Identity, current.Fields)
		if err != nil {
			return err
		}

		textLoc := template.Filename(current.Identity.CourseCode, current.Kind, current.Identity.Title, true)
		if err := m.sink.PutText(ctx, textLoc, content); err != nil {
			return fmt.Errorf("failed to write final document: %w", err)
		}
		current.Artifacts.Text = textLoc

		data, derr := m.deriver.DeriveBinary(ctx, content)
		if derr != nil {
			// Text artifact is already in place; record that much and
			// surface the derivation failure without marking success.
			if _, uerr := m.store.Update(ctx, current); uerr != nil {
				return errors.Join(&domain.DerivationError{SessionID: current.ID, Err: derr}, uerr)
			}
			return &domain.DerivationError{SessionID: current.ID, Err: derr}
		}

		binaryLoc := strings.TrimSuffix(textLoc, ".md") + m.deriver.Extension()
		if err := m.sink.PutBinary(ctx, binaryLoc, data); err != nil {
			return fmt.Errorf("failed to write binary artifact: %w", err)
		}

		current.Artifacts.Binary = binaryLoc
		current.Finalized = true
		updated, err := m.store.Update(ctx, current)
		if err != nil {
			return err
		}

		result = &FinalizeResult{
			SessionID:      updated.ID,
			TextLocation:   textLoc,
			BinaryLocation: binaryLoc,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("session finalized",
		"session_id", result.SessionID,
		"text", result.TextLocation,
		"binary", result.BinaryLocation,
	)
	return result, nil
}

// DeleteResult reports the tombstoned session and per-location artifact
// removal outcomes. Removal is best-effort: failures are reported here,
// never fatal.
type DeleteResult struct {
	SessionID string            `json:"session_id"`
	Removed   []string          `json:"removed_artifacts,omitempty"`
	Failed    map[string]string `json:"failed_artifacts,omitempty"`
}

// Delete tombstones the referenced session and, if removeArtifacts is
// set, asks the sink to remove its known artifact locations.
func (m *Manager) Delete(ctx context.Context, ref string, removeArtifacts bool) (*DeleteResult, error) {
	sess, err := m.resolveRef(ctx, ref)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{SessionID: sess.ID}
	err = m.withLock(sess.ID, func() error {
		if err := m.store.Delete(ctx, sess.ID); err != nil {
			return err
		}

		if !removeArtifacts {
			return nil
		}
		for _, loc := range sess.Artifacts.Locations() {
			if rerr := m.sink.Remove(ctx, loc); rerr != nil {
				if result.Failed == nil {
					result.Failed = make(map[string]string)
				}
				result.Failed[loc] = rerr.Error()
				continue
			}
			result.Removed = append(result.Removed, loc)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Info("session deleted",
		"session_id", result.SessionID,
		"removed_artifacts", len(result.Removed),
		"failed_artifacts", len(result.Failed),
	)
	return result, nil
}
