// ABOUTME: JSON API handlers mirroring the web UI operations
// ABOUTME: Provides /api/todos endpoints and the /health probe

package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/redquill/tidelist/internal/store"
)

// TodoResponse is the JSON representation of a todo.
type TodoResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
}

// CreateTodoRequest is the JSON request body for POST /api/todos.
type CreateTodoRequest struct {
	Title string `json:"title"`
}

// ClearCompletedResponse is the JSON response for POST /api/todos/clear-completed.
type ClearCompletedResponse struct {
	Removed int `json:"removed"`
}

// HealthResponse is the JSON response for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Store  bool   `json:"store"`
}

// toResponse converts a store todo to its API representation.
func toResponse(t *store.Todo) TodoResponse {
	return TodoResponse{
		ID:        t.ID,
		Title:     t.Title,
		Completed: t.Completed,
		CreatedAt: t.CreatedAt.Format(time.RFC3339),
	}
}

// handleAPIList handles GET /api/todos.
func (s *Server) handleAPIList(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.ListAll(r.Context())
	if err != nil {
		s.sendAPIError(w, err)
		return
	}

	response := make([]TodoResponse, 0, len(todos))
	for _, t := range todos {
		response = append(response, toResponse(t))
	}

	s.sendJSON(w, http.StatusOK, response)
}

// handleAPICreate handles POST /api/todos.
func (s *Server) handleAPICreate(w http.ResponseWriter, r *http.Request) {
	var req CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	todo, err := s.store.Add(r.Context(), req.Title)
	if err != nil {
		s.sendAPIError(w, err)
		return
	}

	s.sendJSON(w, http.StatusCreated, toResponse(todo))
}

// handleAPIToggle handles POST /api/todos/{id}/toggle.
func (s *Server) handleAPIToggle(w http.ResponseWriter, r *http.Request) {
	todo, err := s.store.Toggle(r.Context(), r.PathValue("id"))
	if err != nil {
		s.sendAPIError(w, err)
		return
	}

	s.sendJSON(w, http.StatusOK, toResponse(todo))
}

// handleAPIDelete handles DELETE /api/todos/{id}.
func (s *Server) handleAPIDelete(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), r.PathValue("id")); err != nil {
		s.sendAPIError(w, err)
		return
	}

	s.sendJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// handleAPIClear handles POST /api/todos/clear-completed.
func (s *Server) handleAPIClear(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.ClearCompleted(r.Context())
	if err != nil {
		s.sendAPIError(w, err)
		return
	}

	s.sendJSON(w, http.StatusOK, ClearCompletedResponse{Removed: removed})
}

// handleHealth handles GET /health. Store connectivity failure degrades to
// 503 with store:false rather than an error page.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !s.store.HealthCheck(r.Context()) {
		s.sendJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "error", Store: false})
		return
	}
	s.sendJSON(w, http.StatusOK, HealthResponse{Status: "ok", Store: true})
}

// sendJSON writes a JSON response with the given status code.
func (s *Server) sendJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode JSON response", "error", err)
	}
}

// sendJSONError writes a JSON error response in the {"error": msg} shape.
func (s *Server) sendJSONError(w http.ResponseWriter, status int, msg string) {
	s.sendJSON(w, status, map[string]string{"error": msg})
}

// sendAPIError maps store errors to API status codes.
func (s *Server) sendAPIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.sendJSONError(w, http.StatusNotFound, "not found")
	case errors.Is(err, store.ErrEmptyTitle), errors.Is(err, store.ErrTitleTooLong):
		s.sendJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, store.ErrUnavailable):
		s.logger.Error("store unavailable", "error", err)
		s.sendJSONError(w, http.StatusServiceUnavailable, "store unavailable")
	default:
		s.logger.Error("store operation failed", "error", err)
		s.sendJSONError(w, http.StatusInternalServerError, "internal error")
	}
}
