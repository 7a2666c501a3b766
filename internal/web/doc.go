// Package web serves the todo application over HTTP: a server-rendered
// HTML UI, a parallel JSON API, and a health probe.
//
// # Routes
//
// Web UI (form posts, redirect back to the index):
//
//	GET  /                  todo list page
//	POST /add               create from form field "title"
//	POST /toggle/{id}       flip completion
//	POST /delete/{id}       remove
//	POST /clear-completed   bulk-remove completed
//	GET  /static/           embedded assets
//
// JSON API:
//
//	GET    /api/todos                  list
//	POST   /api/todos                  create {"title": ...}
//	POST   /api/todos/{id}/toggle      flip completion
//	DELETE /api/todos/{id}             remove
//	POST   /api/todos/clear-completed  bulk-remove
//
// Health:
//
//	GET /health   {"status":"ok","store":true} or 503 with store:false
//
// # Error Mapping
//
// Store sentinels map to status codes: ErrNotFound -> 404, validation
// failures -> 400 (UI routes flash the message and preserve the submitted
// title instead), ErrUnavailable -> 503. UI status messages travel in a
// short-lived flash cookie across the post-redirect-get cycle.
//
// Templates and the stylesheet are embedded with go:embed so the binary is
// self-contained.
package web
