// Package devserver starts the frontend dev server at most once per port.
// The dev server is launched detached and deliberately unsupervised: it is
// meant to keep running while the backend restarts around it.
package devserver

import (
	"fmt"
	"strconv"

	"github.com/vango-sh/vango/internal/ports"
	"github.com/vango-sh/vango/internal/provisioner"
	"github.com/vango-sh/vango/internal/runner"
	"github.com/vango-sh/vango/internal/ui"
)

// Environment variables injected into every spawned toolchain process. The
// generated vite.config.js reads both instead of hardcoding ports.
const (
	EnvBackendPort = "VANGO_BACKEND_PORT"
	EnvDevPort     = "VANGO_PORT"
)

// Env builds the port environment overrides for a toolchain process.
func Env(backendPort, devPort int) map[string]string {
	return map[string]string{
		EnvBackendPort: strconv.Itoa(backendPort),
		EnvDevPort:     strconv.Itoa(devPort),
	}
}

// EnsureRunning makes sure a dev server is listening on devPort. If the port
// already accepts connections the existing server is presumed to be it and
// nothing is spawned; this probe-then-spawn sequence is the only duplicate
// prevention and carries an accepted time-of-check race between concurrent
// launchers.
//
// Returns the handle of a newly spawned process, or nil when one was already
// running. A missing toolchain executable is fatal and propagated.
func EnsureRunning(frontendDir string, backendPort, devPort int) (*runner.Handle, error) {
	if ports.InUse(devPort) {
		if l, ok := ports.FindListener(devPort); ok {
			ui.Info("dev server already running on port %d (%s); not starting a new one", devPort, l.Describe())
		} else {
			ui.Info("dev server already running on port %d; not starting a new one", devPort)
		}
		return nil, nil
	}

	pm := provisioner.Detect(frontendDir)
	ui.Info("starting Vite dev server on port %d (%s run dev)...", devPort, pm.Manager)

	// The port is pinned as an argument as well as the environment variable,
	// in case a project's vite config ignores the variable.
	argv := append(pm.ScriptArgs("dev"), "--", "--port", strconv.Itoa(devPort))

	handle, err := runner.SpawnDetached(argv, frontendDir, Env(backendPort, devPort))
	if err != nil {
		return nil, fmt.Errorf("start dev server: %w", err)
	}
	handle.Port = devPort
	return handle, nil
}
