package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/okapen/inkwell/pkg/adapters/html"
	"github.com/okapen/inkwell/pkg/adapters/memory"
	"github.com/okapen/inkwell/pkg/session"
	"github.com/okapen/inkwell/pkg/store"
	"github.com/okapen/inkwell/pkg/template"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	registry, err := template.NewRegistry()
	require.NoError(t, err)

	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	clock := func() time.Time {
		now = now.Add(time.Second)
		return now
	}

	manager := session.NewManager(
		store.New(memory.NewLog(), store.WithClock(clock)),
		registry,
		memory.NewSink(),
		html.NewDeriver(),
		session.WithClock(clock),
	)

	srv := httptest.NewServer(NewHandler(manager, registry))
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var payload map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&payload))
	return resp, payload
}

func createSession(t *testing.T, srv *httptest.Server) string {
	t.Helper()
	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]string{
		"kind":        "syllabus",
		"course_code": "CS101",
		"title":       "Intro",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return payload["session_id"].(string)
}

func TestServer_ListTemplates(t *testing.T) {
	srv := newTestServer(t)

	resp, payload := doJSON(t, http.MethodGet, srv.URL+"/templates", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	templates := payload["templates"].([]any)
	assert.Len(t, templates, 6)
}

func TestServer_DescribeTemplate(t *testing.T) {
	srv := newTestServer(t)

	resp, payload := doJSON(t, http.MethodGet, srv.URL+"/templates/syllabus", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "syllabus", payload["kind"])

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/templates/thesis", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_CreateSession(t *testing.T) {
	srv := newTestServer(t)

	resp, payload := doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]string{
		"kind":        "syllabus",
		"course_code": "CS101",
		"title":       "Intro",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "syllabus", payload["kind"])
	assert.NotEmpty(t, payload["session_id"])
	assert.NotEmpty(t, payload["text_location"])
}

func TestServer_CreateSession_Validation(t *testing.T) {
	srv := newTestServer(t)

	resp, _ := doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]string{"kind": "syllabus"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodPost, srv.URL+"/sessions", map[string]string{
		"kind":        "thesis",
		"course_code": "CS101",
		"title":       "Intro",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_GetSession(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	resp, payload := doJSON(t, http.MethodGet, srv.URL+"/sessions/"+id, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	sess := payload["session"].(map[string]any)
	assert.Equal(t, id, sess["session_id"])

	status := payload["completion_status"].(map[string]any)
	assert.Equal(t, false, status["complete"])
	assert.Equal(t, float64(4), status["required_total"])
}

func TestServer_GetSession_NotFound(t *testing.T) {
	srv := newTestServer(t)
	resp, _ := doJSON(t, http.MethodGet, srv.URL+"/sessions/nope", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_SetField(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	resp, payload := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/sessions/%s/fields/instructor_name", srv.URL, id),
		map[string]string{"value": "Dr. A"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "instructor_name", payload["field"])

	status := payload["completion_status"].(map[string]any)
	assert.Equal(t, float64(1), status["required_done"])
}

func TestServer_SetField_Unknown(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	resp, payload := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/sessions/%s/fields/page_color", srv.URL, id),
		map[string]string{"value": "blue"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "page_color", payload["field"])
	assert.NotEmpty(t, payload["valid_fields"])
}

func TestServer_Finalize_Incomplete(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	resp, payload := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/sessions/%s/finalize", srv.URL, id), nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	missing := payload["missing_fields"].([]any)
	assert.Len(t, missing, 4)
}

func TestServer_FullLifecycle(t *testing.T) {
	srv := newTestServer(t)
	id := createSession(t, srv)

	for field, value := range map[string]string{
		"instructor_name": "Dr. A",
		"semester":        "Fall 2026",
		"credits":         "4",
		"description":     "Programming basics.",
	} {
		resp, _ := doJSON(t, http.MethodPut,
			fmt.Sprintf("%s/sessions/%s/fields/%s", srv.URL, id, field),
			map[string]string{"value": value})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	resp, payload := doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/sessions/%s/regenerate", srv.URL, id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, payload["text_location"])

	resp, payload = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/sessions/%s/finalize", srv.URL, id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, payload["text_location"], "_FINAL.md")
	assert.Contains(t, payload["binary_location"], "_FINAL.html")

	// Finalize is visible via "latest" too.
	resp, payload = doJSON(t, http.MethodGet, srv.URL+"/sessions/latest", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	sess := payload["session"].(map[string]any)
	assert.Equal(t, true, sess["finalized"])

	resp, _ = doJSON(t, http.MethodDelete,
		fmt.Sprintf("%s/sessions/%s?artifacts=true", srv.URL, id), nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = doJSON(t, http.MethodGet, srv.URL+"/sessions/"+id, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ListSessions(t *testing.T) {
	srv := newTestServer(t)
	createSession(t, srv)

	resp, payload := doJSON(t, http.MethodGet, srv.URL+"/sessions", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), payload["count"])
}

func TestServer_Metrics(t *testing.T) {
	srv := newTestServer(t)
	createSession(t, srv)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
