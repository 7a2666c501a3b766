// ABOUTME: Embeds HTML templates and static assets into the binary using go:embed
// ABOUTME: Provides templateFS for rendering and a file server for /static/

package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html templates/partials/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// staticFileServer serves the embedded static assets. The handler expects
// paths relative to the static root (strip /static/ before calling).
func staticFileServer() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic("web: failed to create static sub filesystem: " + err.Error())
	}
	fileServer := http.FileServer(http.FS(sub))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Assets are not content-hashed, so never cache them hard
		w.Header().Set("Cache-Control", "no-cache")
		fileServer.ServeHTTP(w, r)
	})
}
