package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSessionNotFound is returned when a session id does not resolve to a
// live snapshot (never created, or tombstoned).
var ErrSessionNotFound = errors.New("session not found")

// ErrTemplateNotFound is returned for an unknown document kind. It is
// distinct from storage failures so callers can tell "unknown template"
// apart from "store unreachable".
var ErrTemplateNotFound = errors.New("template not found")

// ErrDuplicateSession is returned when creating a session whose id already
// resolves to a live snapshot.
var ErrDuplicateSession = errors.New("session already exists")

// ErrArtifactNotFound is returned by sinks for unknown locations.
var ErrArtifactNotFound = errors.New("artifact not found")

// UnknownFieldError reports a field name outside the session's template.
// Valid carries the full set of settable names so a UI can explain the
// rejection.
type UnknownFieldError struct {
	Field string
	Kind  string
	Valid []string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("field %q is not valid for kind %q (valid fields: %s)",
		e.Field, e.Kind, strings.Join(e.Valid, ", "))
}

// IncompleteError reports a finalize attempt with required fields missing.
type IncompleteError struct {
	SessionID string
	Missing   []string
}

func (e *IncompleteError) Error() string {
	return fmt.Sprintf("session %q is missing required fields: %s",
		e.SessionID, strings.Join(e.Missing, ", "))
}

// TemplateMismatchError reports a skeleton placeholder that is neither a
// declared field nor a reserved identity field. This is a template
// definition inconsistency, not a caller error.
type TemplateMismatchError struct {
	Kind        string
	Placeholder string
}

func (e *TemplateMismatchError) Error() string {
	return fmt.Sprintf("template %q references undeclared placeholder %q", e.Kind, e.Placeholder)
}

// DerivationError reports a secondary-format derivation failure during
// finalize. The text artifact may already be written when it occurs.
type DerivationError struct {
	SessionID string
	Err       error
}

func (e *DerivationError) Error() string {
	return fmt.Sprintf("deriving binary artifact for session %q: %v", e.SessionID, e.Err)
}

func (e *DerivationError) Unwrap() error { return e.Err }
