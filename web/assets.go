package web

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
)

//go:embed all:static
var static embed.FS

// mountAssets serves the bundled playground page at the root.
func (s *Server) mountAssets(r chi.Router) {
	staticFS, err := fs.Sub(static, "static")
	if err != nil {
		// The embedded tree is fixed at build time.
		panic(err)
	}
	r.Handle("/*", http.FileServerFS(staticFS))
}
