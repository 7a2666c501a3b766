// ABOUTME: HTTP server for the todo web UI, JSON API, and health endpoint
// ABOUTME: Owns routing, flash messages, and graceful shutdown

package web

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/redquill/tidelist/internal/config"
	"github.com/redquill/tidelist/internal/store"
)

const (
	// flashCookieName carries a one-shot status message across a redirect.
	flashCookieName = "tidelist_flash"

	// formCookieName preserves rejected form input for re-display.
	formCookieName = "tidelist_form"

	// shutdownTimeout bounds graceful shutdown on SIGINT/SIGTERM.
	shutdownTimeout = 5 * time.Second
)

// Server serves the todo web UI and JSON API over a Store.
type Server struct {
	cfg        *config.Config
	store      store.Store
	logger     *slog.Logger
	httpServer *http.Server
	hostname   string
}

// New creates a server over the given store. The store handle is injected;
// the server never opens its own connection.
func New(cfg *config.Config, st store.Store, logger *slog.Logger) *Server {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	return &Server{
		cfg:      cfg,
		store:    st,
		logger:   logger.With("component", "web"),
		hostname: hostname,
	}
}

// Handler builds the route table. Split out from Run so tests can drive the
// mux directly with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// Web UI
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /add", s.handleAdd)
	mux.HandleFunc("POST /toggle/{id}", s.handleToggle)
	mux.HandleFunc("POST /delete/{id}", s.handleDelete)
	mux.HandleFunc("POST /clear-completed", s.handleClearCompleted)
	mux.Handle("GET /static/", http.StripPrefix("/static/", staticFileServer()))

	// JSON API
	mux.HandleFunc("GET /api/todos", s.handleAPIList)
	mux.HandleFunc("POST /api/todos", s.handleAPICreate)
	mux.HandleFunc("POST /api/todos/{id}/toggle", s.handleAPIToggle)
	mux.HandleFunc("DELETE /api/todos/{id}", s.handleAPIDelete)
	mux.HandleFunc("POST /api/todos/clear-completed", s.handleAPIClear)

	// Health
	mux.HandleFunc("GET /health", s.handleHealth)

	return mux
}

// Run starts the HTTP server and blocks until the context is canceled or
// the server fails, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.Server.HTTPAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	s.logger.Info("http server listening", "addr", s.cfg.Server.HTTPAddr)

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	// Fresh context: the original is already canceled
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info("shutting down")
	return s.httpServer.Shutdown(shutdownCtx)
}

// handleIndex renders the todo list page.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	todos, err := s.store.ListAll(r.Context())
	if err != nil {
		s.logger.Error("listing todos", "error", err)
		http.Error(w, "todo store unavailable", http.StatusServiceUnavailable)
		return
	}

	items, remaining := toItems(todos)
	s.renderIndex(w, indexData{
		Title:     "Todos",
		Todos:     items,
		Remaining: remaining,
		MaxTitle:  store.MaxTitleLen,
		Hostname:  s.hostname,
		Flash:     s.popCookie(w, r, flashCookieName),
		FormTitle: s.popCookie(w, r, formCookieName),
	})
}

// handleAdd creates a todo from the form and redirects back to the index.
// Validation failures flash the reason and preserve the submitted title.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	title := r.FormValue("title")

	_, err := s.store.Add(r.Context(), title)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrEmptyTitle), errors.Is(err, store.ErrTitleTooLong):
		s.setCookie(w, flashCookieName, "Please enter a todo title: "+err.Error())
		s.setCookie(w, formCookieName, title)
	default:
		s.storeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleToggle flips a todo's completion flag.
func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	_, err := s.store.Toggle(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		s.setCookie(w, flashCookieName, "Todo not found.")
	} else if err != nil {
		s.storeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleDelete removes a todo.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	err := s.store.Delete(r.Context(), r.PathValue("id"))
	if errors.Is(err, store.ErrNotFound) {
		s.setCookie(w, flashCookieName, "Todo not found.")
	} else if err != nil {
		s.storeError(w, err)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// handleClearCompleted bulk-deletes completed todos.
func (s *Server) handleClearCompleted(w http.ResponseWriter, r *http.Request) {
	removed, err := s.store.ClearCompleted(r.Context())
	if err != nil {
		s.storeError(w, err)
		return
	}

	s.setCookie(w, flashCookieName, fmt.Sprintf("Removed %d completed todo(s).", removed))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// storeError reports a non-recoverable store failure on a UI route.
func (s *Server) storeError(w http.ResponseWriter, err error) {
	s.logger.Error("store operation failed", "error", err)
	if errors.Is(err, store.ErrUnavailable) {
		http.Error(w, "todo store unavailable", http.StatusServiceUnavailable)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

// setCookie stores a short-lived, URL-escaped cookie value.
func (s *Server) setCookie(w http.ResponseWriter, name, value string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    url.QueryEscape(value),
		Path:     "/",
		MaxAge:   60,
		HttpOnly: true,
	})
}

// popCookie reads and clears a cookie, returning its unescaped value.
func (s *Server) popCookie(w http.ResponseWriter, r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})

	value, err := url.QueryUnescape(c.Value)
	if err != nil {
		return ""
	}
	return value
}
