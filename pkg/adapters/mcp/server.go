// Package mcp exposes the session lifecycle as an MCP tool surface, so an
// agent host can drive document drafting over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/okapen/inkwell"
	"github.com/okapen/inkwell/pkg/domain"
	"github.com/okapen/inkwell/pkg/session"
	"github.com/okapen/inkwell/pkg/template"
)

// SessionStateResponse summarizes all live sessions for an agent.
type SessionStateResponse struct {
	Sessions        []*domain.Session `json:"sessions"`
	Count           int               `json:"count"`
	LatestSessionID string            `json:"latest_session_id,omitempty"`
}

// Server wraps the lifecycle manager and exposes it as an MCP Server.
type Server struct {
	manager   *session.Manager
	registry  *template.Registry
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(manager *session.Manager, registry *template.Registry) *Server {
	s := &Server{
		manager:   manager,
		registry:  registry,
		mcpServer: server.NewMCPServer("inkwell-mcp", strings.TrimSpace(inkwell.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: get_session_state
	stateTool := mcp.NewTool("get_session_state",
		mcp.WithDescription("Get the current state of all live document sessions."),
		mcp.WithOutputSchema[SessionStateResponse](),
	)
	s.mcpServer.AddTool(stateTool, mcp.NewStructuredToolHandler(s.handleSessionState))

	// TOOL: create_new_session
	createTool := mcp.NewTool("create_new_session",
		mcp.WithDescription("Create a new document drafting session for a template kind."),
		mcp.WithString("kind", mcp.Required(), mcp.Description("Document kind (e.g. syllabus, exam, assignment)")),
		mcp.WithString("course_code", mcp.Required(), mcp.Description("Course identifier (e.g. CS101)")),
		mcp.WithString("title", mcp.Required(), mcp.Description("Document title")),
		mcp.WithOutputSchema[session.CreateResult](),
	)
	s.mcpServer.AddTool(createTool, mcp.NewStructuredToolHandler(s.handleCreate))

	// TOOL: update_session_field
	updateTool := mcp.NewTool("update_session_field",
		mcp.WithDescription("Set one field on a session and regenerate its draft document."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID, or \"latest\"")),
		mcp.WithString("field_name", mcp.Required(), mcp.Description("Template field name")),
		mcp.WithString("field_value", mcp.Required(), mcp.Description("Value to set")),
		mcp.WithOutputSchema[session.FieldResult](),
	)
	s.mcpServer.AddTool(updateTool, mcp.NewStructuredToolHandler(s.handleUpdateField))

	// TOOL: regenerate_document
	regenTool := mcp.NewTool("regenerate_document",
		mcp.WithDescription("Re-render the document from current session state without changing fields."),
		mcp.WithString("session_id", mcp.Description("Session ID, or \"latest\" (default)")),
	)
	s.mcpServer.AddTool(regenTool, func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ref := request.GetString("session_id", session.Latest)
		location, err := s.manager.Regenerate(ctx, ref)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("regenerate failed: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf(`{"text_location":%q}`, location)), nil
	})

	// TOOL: finalize_session
	finalizeTool := mcp.NewTool("finalize_session",
		mcp.WithDescription("Finalize a complete session: write the final document and derive the binary export."),
		mcp.WithString("session_id", mcp.Description("Session ID, or \"latest\" (default)")),
		mcp.WithOutputSchema[session.FinalizeResult](),
	)
	s.mcpServer.AddTool(finalizeTool, mcp.NewStructuredToolHandler(s.handleFinalize))

	// TOOL: delete_session
	deleteTool := mcp.NewTool("delete_session",
		mcp.WithDescription("Delete a session and optionally its artifacts."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session ID, or \"latest\"")),
		mcp.WithBoolean("delete_artifacts", mcp.Description("Also remove written artifacts (default true)")),
		mcp.WithOutputSchema[session.DeleteResult](),
	)
	s.mcpServer.AddTool(deleteTool, mcp.NewStructuredToolHandler(s.handleDelete))

	// TOOL: get_template_info
	s.mcpServer.AddTool(mcp.NewTool("get_template_info",
		mcp.WithDescription("Get available document kinds with required and optional fields."),
		mcp.WithString("kind", mcp.Description("Specific kind to describe (optional)")),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if kind := request.GetString("kind", ""); kind != "" {
			desc, err := s.registry.Describe(kind)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("describe failed: %v", err)), nil
			}
			jsonBytes, _ := json.Marshal(desc)
			return mcp.NewToolResultText(string(jsonBytes)), nil
		}
		jsonBytes, _ := json.Marshal(s.describeAll())
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})
}

// Handler methods for structured tools

func (s *Server) handleSessionState(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SessionStateResponse, error) {
	sessions, err := s.manager.List(ctx)
	if err != nil {
		return SessionStateResponse{}, fmt.Errorf("list failed: %w", err)
	}

	resp := SessionStateResponse{Sessions: sessions, Count: len(sessions)}
	if latest, err := s.manager.Get(ctx, session.Latest); err == nil {
		resp.LatestSessionID = latest.ID
	}
	return resp, nil
}

func (s *Server) handleCreate(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.CreateResult, error) {
	kind, _ := args["kind"].(string)
	courseCode, _ := args["course_code"].(string)
	title, _ := args["title"].(string)

	result, err := s.manager.Create(ctx, kind, domain.Identity{
		CourseCode: courseCode,
		Title:      title,
	})
	if err != nil {
		return session.CreateResult{}, fmt.Errorf("create failed: %w", err)
	}
	return *result, nil
}

func (s *Server) handleUpdateField(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.FieldResult, error) {
	ref, _ := args["session_id"].(string)
	name, _ := args["field_name"].(string)
	value, _ := args["field_value"].(string)

	result, err := s.manager.SetField(ctx, ref, name, value)
	if err != nil {
		return session.FieldResult{}, fmt.Errorf("update failed: %w", err)
	}
	return *result, nil
}

func (s *Server) handleFinalize(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.FinalizeResult, error) {
	ref, ok := args["session_id"].(string)
	if !ok || ref == "" {
		ref = session.Latest
	}

	result, err := s.manager.Finalize(ctx, ref)
	if err != nil {
		return session.FinalizeResult{}, fmt.Errorf("finalize failed: %w", err)
	}
	return *result, nil
}

func (s *Server) handleDelete(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (session.DeleteResult, error) {
	ref, _ := args["session_id"].(string)
	removeArtifacts := true
	if v, ok := args["delete_artifacts"].(bool); ok {
		removeArtifacts = v
	}

	result, err := s.manager.Delete(ctx, ref, removeArtifacts)
	if err != nil {
		return session.DeleteResult{}, fmt.Errorf("delete failed: %w", err)
	}
	return *result, nil
}

func (s *Server) describeAll() []template.Description {
	kinds := s.registry.Kinds()
	descriptions := make([]template.Description, 0, len(kinds))
	for _, kind := range kinds {
		if desc, err := s.registry.Describe(kind); err == nil {
			descriptions = append(descriptions, desc)
		}
	}
	return descriptions
}

func (s *Server) registerResources() {
	// EXPOSE: inkwell://templates
	s.mcpServer.AddResource(mcp.NewResource("inkwell://templates", "Document Template Catalog",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.describeAll())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal template catalog: %w", err)
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "inkwell://templates",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
