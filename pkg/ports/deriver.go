package ports

import "context"

// BinaryDeriver turns rendered document text into a secondary binary
// format (e.g. a printable HTML or PDF export). It is used only at
// finalization and must be a pure function of its input: same text, same
// bytes. Failures are reported to the caller, never retried internally.
type BinaryDeriver interface {
	DeriveBinary(ctx context.Context, renderedText string) ([]byte, error)

	// Extension returns the file extension of the derived format,
	// including the leading dot.
	Extension() string
}
