package vango

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"path/filepath"
)

// registerDefaultRoutes installs the "/" behavior: in dev mode requests are
// redirected to the Vite dev server, which owns the frontend experience; in
// prod mode the built bundle in the public directory is served directly.
func (a *App) registerDefaultRoutes() {
	if a.opts.Prod {
		a.mux.HandleFunc("/", a.serveStatic)
		return
	}
	a.mux.HandleFunc("/", a.redirectToVite)
}

func (a *App) redirectToVite(w http.ResponseWriter, r *http.Request) {
	url := fmt.Sprintf("http://localhost:%d%s", a.cfg.DevServerPort, r.URL.Path)
	http.Redirect(w, r, url, http.StatusFound)
}

// serveStatic serves files out of the public directory with an SPA fallback:
// paths that do not match a file and look like routes (no extension) get
// index.html so client-side routing works on reload.
func (a *App) serveStatic(w http.ResponseWriter, r *http.Request) {
	p := path.Clean("/" + r.URL.Path)
	if p == "/" {
		p = "/index.html"
	}

	full := filepath.Join(a.opts.PublicDir, filepath.FromSlash(p))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		http.ServeFile(w, r, full)
		return
	}

	if path.Ext(p) == "" {
		index := filepath.Join(a.opts.PublicDir, "index.html")
		if _, err := os.Stat(index); err == nil {
			http.ServeFile(w, r, index)
			return
		}
	}

	if p == "/index.html" || path.Ext(p) == "" {
		http.Error(w, "index.html not found in public/", http.StatusNotFound)
		return
	}
	http.NotFound(w, r)
}
