// ABOUTME: Tests for the JSON API handlers and the health endpoint
// ABOUTME: Verifies status codes, payload shapes, and degradation on store failure

package web

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redquill/tidelist/internal/config"
)

// doJSON performs a request with a JSON body and decodes the response into out.
func doJSON(t *testing.T, h http.Handler, method, path string, body, out any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if out != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}

func TestAPIList_Empty(t *testing.T) {
	h, _ := newTestServer(t)

	var todos []TodoResponse
	rec := doJSON(t, h, http.MethodGet, "/api/todos", nil, &todos)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, todos)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestAPICreate(t *testing.T) {
	h, _ := newTestServer(t)

	var created TodoResponse
	rec := doJSON(t, h, http.MethodPost, "/api/todos", CreateTodoRequest{Title: "  Buy milk  "}, &created)

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Buy milk", created.Title, "title should be trimmed")
	assert.False(t, created.Completed)
	assert.NotEmpty(t, created.CreatedAt)
}

func TestAPICreate_EmptyTitle(t *testing.T) {
	h, _ := newTestServer(t)

	var errResp map[string]string
	rec := doJSON(t, h, http.MethodPost, "/api/todos", CreateTodoRequest{Title: "   "}, &errResp)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, errResp["error"])
}

func TestAPICreate_InvalidJSON(t *testing.T) {
	h, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/todos", strings.NewReader("{{{"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAPIToggle(t *testing.T) {
	h, st := newTestServer(t)

	todo, err := st.Add(context.Background(), "task")
	require.NoError(t, err)

	var toggled TodoResponse
	rec := doJSON(t, h, http.MethodPost, "/api/todos/"+todo.ID+"/toggle", nil, &toggled)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, toggled.Completed)
}

func TestAPIToggle_NotFound(t *testing.T) {
	h, _ := newTestServer(t)

	var errResp map[string]string
	rec := doJSON(t, h, http.MethodPost, "/api/todos/nonexistent/toggle", nil, &errResp)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not found", errResp["error"])
}

func TestAPIDelete(t *testing.T) {
	h, st := newTestServer(t)

	todo, err := st.Add(context.Background(), "task")
	require.NoError(t, err)

	var resp map[string]bool
	rec := doJSON(t, h, http.MethodDelete, "/api/todos/"+todo.ID, nil, &resp)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp["ok"])

	// Deleting again reports not found
	rec = doJSON(t, h, http.MethodDelete, "/api/todos/"+todo.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPIClearCompleted(t *testing.T) {
	h, st := newTestServer(t)
	ctx := context.Background()

	done, err := st.Add(ctx, "done")
	require.NoError(t, err)
	_, err = st.Add(ctx, "open")
	require.NoError(t, err)
	_, err = st.Toggle(ctx, done.ID)
	require.NoError(t, err)

	var resp ClearCompletedResponse
	rec := doJSON(t, h, http.MethodPost, "/api/todos/clear-completed", nil, &resp)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, resp.Removed)
}

func TestAPIListOrder(t *testing.T) {
	h, st := newTestServer(t)
	ctx := context.Background()

	milk, err := st.Add(ctx, "Buy milk")
	require.NoError(t, err)
	_, err = st.Add(ctx, "Walk dog")
	require.NoError(t, err)
	_, err = st.Toggle(ctx, milk.ID)
	require.NoError(t, err)

	var todos []TodoResponse
	rec := doJSON(t, h, http.MethodGet, "/api/todos", nil, &todos)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, todos, 2)
	assert.Equal(t, "Buy milk", todos[0].Title)
	assert.True(t, todos[0].Completed)
	assert.Equal(t, "Walk dog", todos[1].Title)
	assert.False(t, todos[1].Completed)
}

func TestHealth(t *testing.T) {
	h, _ := newTestServer(t)

	var resp HealthResponse
	rec := doJSON(t, h, http.MethodGet, "/health", nil, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.True(t, resp.Store)
}

func TestHealth_StoreDown(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(config.Default(), &downStore{}, logger)
	h := srv.Handler()

	var resp HealthResponse
	rec := doJSON(t, h, http.MethodGet, "/health", nil, &resp)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", resp.Status)
	assert.False(t, resp.Store)
}

func TestAPIListUnavailable(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := New(config.Default(), &downStore{}, logger)
	h := srv.Handler()

	var errResp map[string]string
	rec := doJSON(t, h, http.MethodGet, "/api/todos", nil, &errResp)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "store unavailable", errResp["error"])
}
