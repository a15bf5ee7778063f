// Package orchestrator holds the frontend build policy: given a mode and a
// pair of flags it decides whether to install dependencies, run a production
// build, or hand off to the dev-server supervisor. It owns no processes and
// no long-lived state; everything is decided per call from the filesystem.
package orchestrator

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vango-sh/vango/internal/devserver"
	"github.com/vango-sh/vango/internal/provisioner"
	"github.com/vango-sh/vango/internal/runner"
	"github.com/vango-sh/vango/internal/staleness"
	"github.com/vango-sh/vango/internal/ui"
)

// Mode selects between the development and production policies.
type Mode string

const (
	ModeDev  Mode = "dev"
	ModeProd Mode = "prod"
)

// EntryBundle is the fixed primary artifact name the generated vite config
// always emits, regardless of internal chunking.
const EntryBundle = "bundle.js"

// Config is the immutable per-run orchestration configuration. Directories
// are absolute paths; it is built once and never mutated afterwards.
type Config struct {
	ProjectRoot   string
	FrontendDir   string
	OutputDir     string
	Mode          Mode
	BackendPort   int
	DevServerPort int
	AutoBuild     bool
	Watch         bool
}

// Validate rejects configurations the orchestrator cannot run with.
func (c Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeProd {
		return fmt.Errorf("invalid mode %q", c.Mode)
	}
	if c.BackendPort <= 0 || c.BackendPort > 65535 {
		return fmt.Errorf("invalid backend port %d", c.BackendPort)
	}
	if c.DevServerPort <= 0 || c.DevServerPort > 65535 {
		return fmt.Errorf("invalid dev server port %d", c.DevServerPort)
	}
	if c.DevServerPort == c.BackendPort {
		return fmt.Errorf("dev server port and backend port are both %d", c.BackendPort)
	}
	return nil
}

// Bundle returns the path of the primary production artifact.
func (c Config) Bundle() string {
	return filepath.Join(c.OutputDir, EntryBundle)
}

// target describes the staleness comparison for this project layout.
func (c Config) target() staleness.Target {
	return staleness.Target{
		SrcDir:          filepath.Join(c.FrontendDir, "src"),
		EntryHTML:       filepath.Join(c.FrontendDir, "index.html"),
		ToolchainConfig: filepath.Join(c.FrontendDir, "vite.config.js"),
		OutputDir:       c.OutputDir,
	}
}

func (c Config) env() map[string]string {
	return devserver.Env(c.BackendPort, c.DevServerPort)
}

// Prepare is the single orchestration entry point, invoked once per
// qualifying process start.
//
//	prod, autoBuild      install if needed, build if stale
//	prod, !autoBuild     only guarantee the entry bundle exists
//	dev,  autoBuild, watch   install if needed, ensure dev server running
//	dev,  autoBuild, !watch  install if needed only
//	dev,  !autoBuild     nothing at all
//
// A frontend without package.json degrades every path to a diagnostic no-op:
// a project may intentionally have no frontend.
func Prepare(ctx context.Context, cfg Config) error {
	// Orchestration fully disabled: no filesystem scans, no processes.
	if cfg.Mode == ModeDev && !cfg.AutoBuild {
		return nil
	}

	if cfg.Mode == ModeProd && !cfg.AutoBuild {
		return ensureBundle(ctx, cfg)
	}

	if !hasManifest(cfg) {
		ui.Info("no package.json in %s, skipping frontend setup", cfg.FrontendDir)
		return nil
	}

	ui.Info("preparing frontend (Vite) in %s", cfg.FrontendDir)

	if err := installIfNeeded(ctx, cfg); err != nil {
		return err
	}

	if cfg.Mode == ModeProd {
		if staleness.Check(cfg.target()) == staleness.NeedsBuild {
			ui.Info("Vite build required, running production build...")
			return build(ctx, cfg)
		}
		ui.Info("existing Vite build is up to date")
		return nil
	}

	if cfg.Watch {
		_, err := devserver.EnsureRunning(cfg.FrontendDir, cfg.BackendPort, cfg.DevServerPort)
		return err
	}
	ui.Info("dev mode with watch disabled; Vite dev server not started")
	return nil
}

// Build runs one unconditional production build, installing dependencies
// first when they are absent. It ignores staleness entirely; this is what
// "vango bundle" does.
func Build(ctx context.Context, cfg Config) error {
	if !hasManifest(cfg) {
		ui.Info("no package.json in %s; cannot build frontend", cfg.FrontendDir)
		return nil
	}
	if err := installIfNeeded(ctx, cfg); err != nil {
		return err
	}
	return build(ctx, cfg)
}

// ensureBundle is the prod/!autoBuild policy: the build only happens when the
// entry bundle is missing outright. An existing but stale bundle is served
// as-is.
func ensureBundle(ctx context.Context, cfg Config) error {
	if _, err := os.Stat(cfg.Bundle()); err == nil {
		return nil
	}
	if !hasManifest(cfg) {
		ui.Info("no package.json in %s; cannot build frontend", cfg.FrontendDir)
		return nil
	}

	ui.Info("%s not found; running a production build once", cfg.Bundle())
	if err := installIfNeeded(ctx, cfg); err != nil {
		return err
	}
	return build(ctx, cfg)
}

// installIfNeeded runs the dependency install when node_modules is absent,
// with the package manager detected from the project's lock file.
func installIfNeeded(ctx context.Context, cfg Config) error {
	if _, err := os.Stat(filepath.Join(cfg.FrontendDir, "node_modules")); err == nil {
		return nil
	}

	pm := provisioner.Detect(cfg.FrontendDir)
	argv := pm.InstallArgs()
	ui.Info("node_modules not found, running %s %s...", argv[0], argv[1])

	if err := runner.Run(ctx, argv, cfg.FrontendDir, cfg.env()); err != nil {
		return reportRunFailure(err)
	}
	return nil
}

func build(ctx context.Context, cfg Config) error {
	pm := provisioner.Detect(cfg.FrontendDir)
	if err := runner.Run(ctx, pm.ScriptArgs("build"), cfg.FrontendDir, cfg.env()); err != nil {
		return reportRunFailure(err)
	}
	ui.Success("production bundle built into %s", cfg.OutputDir)
	return nil
}

func hasManifest(cfg Config) bool {
	_, err := os.Stat(filepath.Join(cfg.FrontendDir, "package.json"))
	return err == nil
}

// reportRunFailure prints an actionable message before propagating the error.
func reportRunFailure(err error) error {
	ui.Error("%v", err)
	return err
}
