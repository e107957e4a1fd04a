package memory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okapen/inkwell/pkg/domain"
)

// Sink implements ports.ArtifactSink in memory. Tests can inspect written
// content and inject removal failures.
type Sink struct {
	mu         sync.RWMutex
	texts      map[string]string
	binaries   map[string][]byte
	failRemove map[string]error
}

// NewSink creates an empty in-memory artifact sink.
func NewSink() *Sink {
	return &Sink{
		texts:      make(map[string]string),
		binaries:   make(map[string][]byte),
		failRemove: make(map[string]error),
	}
}

// PutText stores rendered text at location.
func (s *Sink) PutText(ctx context.Context, location, content string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.texts[location] = content
	return nil
}

// PutBinary stores a derived binary at location.
func (s *Sink) PutBinary(ctx context.Context, location string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.binaries[location] = append([]byte(nil), data...)
	return nil
}

// AccessURL returns a memory:// URL if the location exists.
func (s *Sink) AccessURL(ctx context.Context, location string, ttl time.Duration) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if _, ok := s.texts[location]; ok {
		return "memory://" + location, nil
	}
	if _, ok := s.binaries[location]; ok {
		return "memory://" + location, nil
	}
	return "", fmt.Errorf("location %q: %w", location, domain.ErrArtifactNotFound)
}

// Remove deletes the artifact at location, honoring injected failures.
func (s *Sink) Remove(ctx context.Context, location string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err, ok := s.failRemove[location]; ok {
		return err
	}

	_, hasText := s.texts[location]
	_, hasBinary := s.binaries[location]
	if !hasText && !hasBinary {
		return fmt.Errorf("location %q: %w", location, domain.ErrArtifactNotFound)
	}
	delete(s.texts, location)
	delete(s.binaries, location)
	return nil
}

// Text returns the stored text at location, for test assertions.
func (s *Sink) Text(location string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	content, ok := s.texts[location]
	return content, ok
}

// Binary returns the stored binary at location, for test assertions.
func (s *Sink) Binary(location string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.binaries[location]
	return data, ok
}

// FailRemoveWith makes subsequent Remove calls for location return err.
func (s *Sink) FailRemoveWith(location string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failRemove[location] = err
}
