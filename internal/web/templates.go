// ABOUTME: Template data types and rendering functions for the todo UI
// ABOUTME: Loads templates from the embedded filesystem and renders them

package web

import (
	"html/template"
	"net/http"
	"time"

	"github.com/redquill/tidelist/internal/store"
)

// todoItem is the view representation of a single todo.
type todoItem struct {
	ID        string
	Title     string
	Completed bool
	CreatedAt string
}

// indexData feeds the index page template.
type indexData struct {
	Title     string
	Todos     []todoItem
	Remaining int
	MaxTitle  int
	Hostname  string
	Flash     string
	FormTitle string
}

// toItems converts store todos to view items, counting the not-yet-completed.
func toItems(todos []*store.Todo) ([]todoItem, int) {
	items := make([]todoItem, 0, len(todos))
	remaining := 0
	for _, t := range todos {
		if !t.Completed {
			remaining++
		}
		items = append(items, todoItem{
			ID:        t.ID,
			Title:     t.Title,
			Completed: t.Completed,
			CreatedAt: t.CreatedAt.Format(time.RFC3339),
		})
	}
	return items, remaining
}

// renderIndex renders the main todo list page.
func (s *Server) renderIndex(w http.ResponseWriter, data indexData) {
	tmpl := template.Must(template.ParseFS(templateFS,
		"templates/base.html",
		"templates/index.html",
		"templates/partials/todo_list.html",
	))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.Execute(w, data); err != nil {
		s.logger.Error("failed to render index page", "error", err)
	}
}
