package domain

import "time"

// Record is the unit appended to the event log: either a full snapshot of
// a Session at one point in time, or a tombstone marking logical deletion.
// Records are never updated or removed once appended.
type Record struct {
	SessionID   string    `json:"session_id"`
	Tombstone   bool      `json:"tombstone,omitempty"`
	LastUpdated time.Time `json:"last_updated"`

	// Session is the full serialized state. Nil for tombstones.
	Session *Session `json:"session,omitempty"`

	// Seq is the record's append position within its key. It is assigned
	// by the log on read, not serialized, and breaks ties between
	// snapshots carrying the same LastUpdated.
	Seq int64 `json:"-"`
}

// NewSnapshot wraps a session state into an appendable record.
func NewSnapshot(s *Session) Record {
	return Record{
		SessionID:   s.ID,
		LastUpdated: s.LastUpdated,
		Session:     s.Clone(),
	}
}

// NewTombstone builds a deletion marker for the given session id.
func NewTombstone(sessionID string, at time.Time) Record {
	return Record{
		SessionID:   sessionID,
		Tombstone:   true,
		LastUpdated: at,
	}
}

// Clone deep-copies the record, including the embedded session.
func (r Record) Clone() Record {
	copied := r
	copied.Session = r.Session.Clone()
	return copied
}

// Newer reports whether r should win a latest-wins comparison against
// other: later LastUpdated wins, equal timestamps fall back to the
// log-assigned append position.
func (r Record) Newer(other Record) bool {
	if !r.LastUpdated.Equal(other.LastUpdated) {
		return r.LastUpdated.After(other.LastUpdated)
	}
	return r.Seq > other.Seq
}
