package domain

import "time"

// Identity holds the reserved fields fixed at session creation.
type Identity struct {
	CourseCode string `json:"course_code"`
	Title      string `json:"title"`
}

// Artifacts records where rendered output was last written. The sink owns
// the actual storage; these are informational locations.
type Artifacts struct {
	Text   string `json:"text,omitempty"`
	Binary string `json:"binary,omitempty"`
}

// Locations returns the non-empty artifact locations, text first.
func (a Artifacts) Locations() []string {
	var locs []string
	if a.Text != "" {
		locs = append(locs, a.Text)
	}
	if a.Binary != "" {
		locs = append(locs, a.Binary)
	}
	return locs
}

// Session is the materialized state of one document-drafting session. It is
// never stored directly; the store reconstructs it from snapshot records.
type Session struct {
	ID          string            `json:"session_id"`
	Kind        string            `json:"kind"`
	Identity    Identity          `json:"identity"`
	Fields      map[string]string `json:"fields"`
	Artifacts   Artifacts         `json:"artifacts"`
	Finalized   bool              `json:"finalized"`
	CreatedAt   time.Time         `json:"created_at"`
	LastUpdated time.Time         `json:"last_updated"`
}

// NewSession creates an empty-fields session for the given template kind.
func NewSession(id, kind string, identity Identity, now time.Time) *Session {
	return &Session{
		ID:          id,
		Kind:        kind,
		Identity:    identity,
		Fields:      make(map[string]string),
		CreatedAt:   now,
		LastUpdated: now,
	}
}

// Clone returns a deep copy so callers can't mutate shared state through
// the Fields map.
func (s *Session) Clone() *Session {
	if s == nil {
		return nil
	}
	copied := *s
	copied.Fields = make(map[string]string, len(s.Fields))
	for k, v := range s.Fields {
		copied.Fields[k] = v
	}
	return &copied
}
