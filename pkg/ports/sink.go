package ports

import (
	"context"
	"time"
)

// ArtifactSink receives rendered documents and derived binaries. It is a
// pure side-effecting boundary: Inkwell tracks locations, the sink owns
// storage.
type ArtifactSink interface {
	// PutText writes rendered document text at location, replacing any
	// previous content.
	PutText(ctx context.Context, location, content string) error

	// PutBinary writes a derived binary artifact at location.
	PutBinary(ctx context.Context, location string, data []byte) error

	// AccessURL returns a URL for reading the artifact, valid for at
	// least ttl. Returns domain.ErrArtifactNotFound for unknown locations.
	AccessURL(ctx context.Context, location string, ttl time.Duration) (string, error)

	// Remove deletes the artifact at location. Best-effort: callers
	// report failures per location rather than aborting.
	Remove(ctx context.Context, location string) error
}
