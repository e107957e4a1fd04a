package inkwell

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/okapen/inkwell/pkg/adapters/file"
	"github.com/okapen/inkwell/pkg/adapters/html"
	"github.com/okapen/inkwell/pkg/domain"
	"github.com/okapen/inkwell/pkg/ports"
	"github.com/okapen/inkwell/pkg/session"
	"github.com/okapen/inkwell/pkg/store"
	"github.com/okapen/inkwell/pkg/template"
)

// Version is the library release version.
const Version = "0.3.0"

// Engine is the high-level entry point for the Inkwell library.
// It wires the event log, template registry, artifact sink and deriver
// into a session.Manager and provides a simplified API for consumers.
type Engine struct {
	manager  *session.Manager
	registry *template.Registry
	log      ports.EventLog
	sink     ports.ArtifactSink
	deriver  ports.BinaryDeriver
	logger   *slog.Logger
	dataDir  string
	docsDir  string
	tmplDir  string
	caching  bool
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithEventLog injects a custom event log, bypassing the default
// file-backed one.
func WithEventLog(log ports.EventLog) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithSink injects a custom artifact sink.
func WithSink(sink ports.ArtifactSink) Option {
	return func(e *Engine) {
		e.sink = sink
	}
}

// WithDeriver injects a custom binary deriver.
func WithDeriver(d ports.BinaryDeriver) Option {
	return func(e *Engine) {
		e.deriver = d
	}
}

// WithDataDir sets the directory for the default file-backed event log.
func WithDataDir(dir string) Option {
	return func(e *Engine) {
		e.dataDir = dir
	}
}

// WithDocsDir sets the directory where documents are written.
func WithDocsDir(dir string) Option {
	return func(e *Engine) {
		e.docsDir = dir
	}
}

// WithTemplateDir loads additional templates from *.yaml files in dir,
// alongside the builtin catalog.
func WithTemplateDir(dir string) Option {
	return func(e *Engine) {
		e.tmplDir = dir
	}
}

// WithResolutionCache enables the in-process resolution cache. Only
// safe when this Engine is the sole writer to the event log.
func WithResolutionCache() Option {
	return func(e *Engine) {
		e.caching = true
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes a new Inkwell Engine.
// By default it uses a JSONL event log under .inkwell/sessions, writes
// documents to ./documents, and derives HTML exports.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		dataDir: filepath.Join(".inkwell", "sessions"),
		docsDir: "documents",
	}

	for _, opt := range opts {
		opt(eng)
	}

	if eng.log == nil {
		eng.log = file.NewLog(eng.dataDir)
	}
	if eng.sink == nil {
		eng.sink = file.NewSink(eng.docsDir)
	}
	if eng.deriver == nil {
		eng.deriver = html.NewDeriver()
	}

	// Ensure logger is initialized (so we don't pass nil downstream,
	// which would overwrite defaults).
	if eng.logger == nil {
		eng.logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	// NewRegistry seeds the builtin catalog; options only add to it.
	var registryOpts []template.RegistryOption
	if eng.tmplDir != "" {
		registryOpts = append(registryOpts, template.WithDir(eng.tmplDir))
	}
	registry, err := template.NewRegistry(registryOpts...)
	if err != nil {
		return nil, err
	}
	eng.registry = registry

	storeOpts := []store.Option{store.WithLogger(eng.logger)}
	if eng.caching {
		storeOpts = append(storeOpts, store.WithCache())
	}

	eng.manager = session.NewManager(
		store.New(eng.log, storeOpts...),
		registry,
		eng.sink,
		eng.deriver,
		session.WithLogger(eng.logger),
	)

	return eng, nil
}

// Create starts a new drafting session for the given kind and identity
// and writes the initial draft document.
func (e *Engine) Create(ctx context.Context, kind string, identity domain.Identity) (*session.CreateResult, error) {
	return e.manager.Create(ctx, kind, identity)
}

// Get resolves a session by ID, or the most recent one for ref "latest".
func (e *Engine) Get(ctx context.Context, ref string) (*domain.Session, error) {
	return e.manager.Get(ctx, ref)
}

// List returns all live sessions ordered by ID.
func (e *Engine) List(ctx context.Context) ([]*domain.Session, error) {
	return e.manager.List(ctx)
}

// SetField records one field value and regenerates the draft document.
func (e *Engine) SetField(ctx context.Context, ref, name, value string) (*session.FieldResult, error) {
	return e.manager.SetField(ctx, ref, name, value)
}

// Status reports completion progress for a session.
func (e *Engine) Status(ctx context.Context, ref string) (session.CompletionStatus, error) {
	sess, err := e.manager.Get(ctx, ref)
	if err != nil {
		return session.CompletionStatus{}, err
	}
	return e.manager.Status(sess)
}

// Regenerate re-renders the draft from current state without changing it.
func (e *Engine) Regenerate(ctx context.Context, ref string) (string, error) {
	return e.manager.Regenerate(ctx, ref)
}

// Finalize renders the final document and derives the binary export.
func (e *Engine) Finalize(ctx context.Context, ref string) (*session.FinalizeResult, error) {
	return e.manager.Finalize(ctx, ref)
}

// Delete removes a session and, optionally, its written artifacts.
func (e *Engine) Delete(ctx context.Context, ref string, removeArtifacts bool) (*session.DeleteResult, error) {
	return e.manager.Delete(ctx, ref, removeArtifacts)
}

// Manager exposes the underlying session manager for advanced wiring
// (HTTP handlers, MCP servers).
func (e *Engine) Manager() *session.Manager {
	return e.manager
}

// Registry exposes the template registry used by the engine.
func (e *Engine) Registry() *template.Registry {
	return e.registry
}
