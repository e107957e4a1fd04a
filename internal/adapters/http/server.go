// Package http exposes the session lifecycle over a JSON REST API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/okapen/inkwell/internal/logging"
	"github.com/okapen/inkwell/internal/metrics"
	"github.com/okapen/inkwell/pkg/domain"
	"github.com/okapen/inkwell/pkg/session"
	"github.com/okapen/inkwell/pkg/template"
)

// Server routes REST calls to the lifecycle manager.
type Server struct {
	manager  *session.Manager
	registry *template.Registry
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger configures a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics attaches a metric set, exposed at /metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// NewHandler creates the HTTP handler for the API.
func NewHandler(manager *session.Manager, registry *template.Registry, opts ...Option) http.Handler {
	s := &Server{
		manager:  manager,
		registry: registry,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}

	r := chi.NewRouter()
	r.Get("/templates", s.listTemplates)
	r.Get("/templates/{kind}", s.describeTemplate)

	r.Post("/sessions", s.createSession)
	r.Get("/sessions", s.listSessions)
	r.Get("/sessions/{ref}", s.getSession)
	r.Put("/sessions/{ref}/fields/{name}", s.setField)
	r.Post("/sessions/{ref}/regenerate", s.regenerate)
	r.Post("/sessions/{ref}/finalize", s.finalize)
	r.Delete("/sessions/{ref}", s.deleteSession)

	r.Method(http.MethodGet, "/metrics",
		promhttp.HandlerFor(s.metrics.Registry, promhttp.HandlerOpts{}))

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) listTemplates(w http.ResponseWriter, r *http.Request) {
	kinds := s.registry.Kinds()
	descriptions := make([]template.Description, 0, len(kinds))
	for _, kind := range kinds {
		desc, err := s.registry.Describe(kind)
		if err != nil {
			s.writeError(w, err)
			return
		}
		descriptions = append(descriptions, desc)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"templates": descriptions})
}

func (s *Server) describeTemplate(w http.ResponseWriter, r *http.Request) {
	desc, err := s.registry.Describe(chi.URLParam(r, "kind"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, desc)
}

type createRequest struct {
	Kind       string `json:"kind"`
	CourseCode string `json:"course_code"`
	Title      string `json:"title"`
}

func (s *Server) createSession(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}
	if body.Kind == "" || body.CourseCode == "" || body.Title == "" {
		s.writeJSON(w, http.StatusBadRequest, errorBody("kind, course_code and title are required"))
		return
	}

	result, err := s.manager.Create(r.Context(), body.Kind, domain.Identity{
		CourseCode: body.CourseCode,
		Title:      body.Title,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.SessionsCreated.WithLabelValues(body.Kind).Inc()
	s.writeJSON(w, http.StatusCreated, result)
}

func (s *Server) listSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.manager.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func (s *Server) getSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.manager.Get(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	stat, err := s.manager.Status(sess)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"session":           sess,
		"completion_status": stat,
	})
}

type setFieldRequest struct {
	Value string `json:"value"`
}

func (s *Server) setField(w http.ResponseWriter, r *http.Request) {
	var body setFieldRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorBody("invalid request body"))
		return
	}

	result, err := s.manager.SetField(r.Context(), chi.URLParam(r, "ref"), chi.URLParam(r, "name"), body.Value)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.FieldUpdates.WithLabelValues(result.Kind).Inc()
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) regenerate(w http.ResponseWriter, r *http.Request) {
	location, err := s.manager.Regenerate(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.Regenerations.Inc()
	s.writeJSON(w, http.StatusOK, map[string]string{"text_location": location})
}

func (s *Server) finalize(w http.ResponseWriter, r *http.Request) {
	result, err := s.manager.Finalize(r.Context(), chi.URLParam(r, "ref"))
	if err != nil {
		s.metrics.Finalizations.WithLabelValues("error").Inc()
		s.writeError(w, err)
		return
	}
	s.metrics.Finalizations.WithLabelValues("ok").Inc()
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) deleteSession(w http.ResponseWriter, r *http.Request) {
	removeArtifacts := r.URL.Query().Get("artifacts") == "true"
	result, err := s.manager.Delete(r.Context(), chi.URLParam(r, "ref"), removeArtifacts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.metrics.SessionsDeleted.Inc()
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func errorBody(msg string) map[string]string {
	return map[string]string{"error": msg}
}

// writeError maps the domain error taxonomy onto HTTP statuses with
// enough structure for a UI to explain what is missing or invalid.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	var unknownField *domain.UnknownFieldError
	var incomplete *domain.IncompleteError
	var mismatch *domain.TemplateMismatchError
	var derivation *domain.DerivationError

	switch {
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrTemplateNotFound):
		s.writeJSON(w, http.StatusNotFound, errorBody(err.Error()))
	case errors.Is(err, domain.ErrDuplicateSession):
		s.writeJSON(w, http.StatusConflict, errorBody(err.Error()))
	case errors.As(err, &unknownField):
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":        unknownField.Error(),
			"field":        unknownField.Field,
			"valid_fields": unknownField.Valid,
		})
	case errors.As(err, &incomplete):
		s.writeJSON(w, http.StatusConflict, map[string]any{
			"error":          incomplete.Error(),
			"missing_fields": incomplete.Missing,
		})
	case errors.As(err, &mismatch):
		s.writeJSON(w, http.StatusInternalServerError, errorBody(mismatch.Error()))
	case errors.As(err, &derivation):
		s.writeJSON(w, http.StatusBadGateway, errorBody(derivation.Error()))
	default:
		s.logger.Error("request failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorBody(err.Error()))
	}
}
