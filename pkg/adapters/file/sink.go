package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/okapen/inkwell/pkg/domain"
)

// Sink implements ports.ArtifactSink on the local filesystem. Locations
// are paths relative to the sink's base directory.
type Sink struct {
	BasePath string
}

// NewSink creates a Sink rooted at basePath.
// If basePath is empty, it defaults to "documents".
func NewSink(basePath string) *Sink {
	if basePath == "" {
		basePath = "documents"
	}
	return &Sink{BasePath: basePath}
}

func (s *Sink) path(location string) string {
	return filepath.Join(s.BasePath, location)
}

// PutText writes rendered text at location.
func (s *Sink) PutText(ctx context.Context, location, content string) error {
	return s.write(location, []byte(content))
}

// PutBinary writes a derived binary at location.
func (s *Sink) PutBinary(ctx context.Context, location string, data []byte) error {
	return s.write(location, data)
}

func (s *Sink) write(location string, data []byte) error {
	if location == "" {
		return fmt.Errorf("location cannot be empty")
	}
	dest := s.path(location)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to ensure artifact directory: %w", err)
	}
	if err := os.WriteFile(dest, data, 0o644); err != nil {
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	return nil
}

// AccessURL returns a file:// URL for an existing artifact. ttl is ignored
// for local files.
func (s *Sink) AccessURL(ctx context.Context, location string, ttl time.Duration) (string, error) {
	abs, err := filepath.Abs(s.path(location))
	if err != nil {
		return "", fmt.Errorf("failed to resolve artifact path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("location %q: %w", location, domain.ErrArtifactNotFound)
		}
		return "", fmt.Errorf("failed to stat artifact: %w", err)
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// Remove deletes the artifact at location.
func (s *Sink) Remove(ctx context.Context, location string) error {
	if err := os.Remove(s.path(location)); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("location %q: %w", location, domain.ErrArtifactNotFound)
		}
		return fmt.Errorf("failed to remove artifact: %w", err)
	}
	return nil
}
