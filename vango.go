// Package vango wires a Vite + React frontend to a Go backend. A backend
// embeds an App; App.Run prepares the frontend (install, build, or dev
// server, depending on mode) and then serves HTTP.
//
// Layout of a vango project:
//
//	main.go       (backend, embeds vango.App)
//	frontend/     (Vite + React app)
//	public/       (Vite build output in production)
package vango

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/vango-sh/vango/internal/orchestrator"
	"github.com/vango-sh/vango/internal/reload"
	"github.com/vango-sh/vango/internal/scaffold"
	"github.com/vango-sh/vango/internal/ui"
)

// Default ports and directories for a freshly created project.
const (
	DefaultBackendPort = 8080
	DefaultFrontendDir = "frontend"
	DefaultPublicDir   = "public"
)

// Options configures an App. The zero value is a usable development setup
// rooted at the current working directory.
type Options struct {
	// Name identifies the application in log output.
	Name string

	// ProjectRoot defaults to the current working directory.
	ProjectRoot string

	// FrontendDir and PublicDir are resolved relative to ProjectRoot unless
	// absolute. They default to "frontend" and "public".
	FrontendDir string
	PublicDir   string

	// Prod selects the production policy: build the bundle and serve it
	// statically instead of starting a Vite dev server.
	Prod bool

	// BackendPort is the HTTP port the backend listens on (default 8080).
	// VitePort is where the dev server runs (default 50000 + BackendPort).
	BackendPort int
	VitePort    int

	// AutoBuild controls whether Run touches the frontend at all. Defaults
	// to true in dev mode and false in prod mode; use Bool to override.
	AutoBuild *bool

	// Watch controls whether dev mode starts the Vite dev server. Defaults
	// to the same value as AutoBuild's dev default; use Bool to override.
	Watch *bool

	// Debug enables the hot-reload supervisor: the process becomes a
	// launcher that rebuilds and restarts the backend on Go source changes.
	Debug bool
}

// Bool returns a pointer to v, for the optional Options fields.
func Bool(v bool) *bool { return &v }

// App is a backend application with an attached frontend toolchain.
type App struct {
	mux   *http.ServeMux
	opts  Options
	cfg   orchestrator.Config
	debug bool
}

// New resolves options, validates the configuration, and scaffolds any
// missing frontend files. Existing files are never overwritten.
func New(opts Options) (*App, error) {
	if opts.ProjectRoot == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("resolve project root: %w", err)
		}
		opts.ProjectRoot = cwd
	}
	if opts.FrontendDir == "" {
		opts.FrontendDir = DefaultFrontendDir
	}
	if opts.PublicDir == "" {
		opts.PublicDir = DefaultPublicDir
	}
	if !filepath.IsAbs(opts.FrontendDir) {
		opts.FrontendDir = filepath.Join(opts.ProjectRoot, opts.FrontendDir)
	}
	if !filepath.IsAbs(opts.PublicDir) {
		opts.PublicDir = filepath.Join(opts.ProjectRoot, opts.PublicDir)
	}
	if opts.BackendPort == 0 {
		opts.BackendPort = DefaultBackendPort
	}
	if opts.VitePort == 0 {
		opts.VitePort = 50000 + opts.BackendPort
	}

	mode := orchestrator.ModeDev
	if opts.Prod {
		mode = orchestrator.ModeProd
	}
	autoBuild := !opts.Prod
	if opts.AutoBuild != nil {
		autoBuild = *opts.AutoBuild
	}
	watch := !opts.Prod
	if opts.Watch != nil {
		watch = *opts.Watch
	}

	cfg := orchestrator.Config{
		ProjectRoot:   opts.ProjectRoot,
		FrontendDir:   opts.FrontendDir,
		OutputDir:     opts.PublicDir,
		Mode:          mode,
		BackendPort:   opts.BackendPort,
		DevServerPort: opts.VitePort,
		AutoBuild:     autoBuild,
		Watch:         watch,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if err := scaffold.Ensure(scaffold.Layout{
		FrontendDir: opts.FrontendDir,
		PublicDir:   opts.PublicDir,
		BackendPort: opts.BackendPort,
		VitePort:    opts.VitePort,
	}); err != nil {
		return nil, err
	}

	app := &App{
		mux:   http.NewServeMux(),
		opts:  opts,
		cfg:   cfg,
		debug: opts.Debug,
	}
	app.registerDefaultRoutes()
	return app, nil
}

// Handle registers a handler on the app's mux.
func (a *App) Handle(pattern string, handler http.Handler) {
	a.mux.Handle(pattern, handler)
}

// HandleFunc registers a handler function on the app's mux.
func (a *App) HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	a.mux.HandleFunc(pattern, handler)
}

// ServeHTTP makes App an http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.mux.ServeHTTP(w, r)
}

// Config exposes the resolved orchestration configuration.
func (a *App) Config() orchestrator.Config { return a.cfg }

// Run starts the application. Exactly one process per logical launch runs
// frontend orchestration:
//
//   - without Debug, this process is the only one, and it orchestrates;
//   - with Debug, the first process becomes a reload launcher that never
//     orchestrates, and the restarted child (marked via VANGO_RELOAD_MAIN)
//     does.
//
// Orchestration is best effort: its failures are reported but never stop the
// backend from serving. The production build, when required, completes
// synchronously before the listener starts.
func (a *App) Run() error {
	identity := reload.Detect(a.debug)

	if identity == reload.TransientLauncher {
		sup := &reload.Supervisor{Root: a.opts.ProjectRoot, Args: os.Args[1:]}
		return sup.Run(context.Background())
	}

	if err := orchestrator.Prepare(context.Background(), a.cfg); err != nil {
		ui.Warn("frontend preparation failed: %v", err)
		ui.Warn("continuing to serve; the frontend may be missing or stale")
	}

	addr := fmt.Sprintf(":%d", a.cfg.BackendPort)
	if a.opts.Name != "" {
		ui.Info("%s listening on http://localhost:%d", a.opts.Name, a.cfg.BackendPort)
	} else {
		ui.Info("listening on http://localhost:%d", a.cfg.BackendPort)
	}
	return http.ListenAndServe(addr, a.mux)
}
