// Package reload implements hot reloading of the backend server: a launcher
// process watches Go sources, rebuilds the server and re-runs it as a child.
// The child is marked with an environment sentinel so orchestration code can
// tell the long-lived worker apart from the transient launcher.
package reload

import "os"

// EnvChildMarker is set on the reloader's child process. Any process where
// it equals MarkerValue is the reloaded worker.
const (
	EnvChildMarker = "VANGO_RELOAD_MAIN"
	MarkerValue    = "true"
)

// Identity classifies the current OS process for the purpose of running
// frontend orchestration exactly once per logical launch.
type Identity int

const (
	// PrimaryWorker is the process that should orchestrate: either a plain
	// single-process run, or the reloader's child.
	PrimaryWorker Identity = iota
	// TransientLauncher is the short-lived parent that only supervises
	// reloads. It must never install, build, or spawn a dev server.
	TransientLauncher
)

func (i Identity) String() string {
	if i == TransientLauncher {
		return "transient launcher"
	}
	return "primary worker"
}

// Detect determines the identity of the current process. Without debug mode
// there is no reloader and every process is the primary worker. Under debug
// mode, only the child carrying the sentinel is.
func Detect(debug bool) Identity {
	if !debug {
		return PrimaryWorker
	}
	if os.Getenv(EnvChildMarker) == MarkerValue {
		return PrimaryWorker
	}
	return TransientLauncher
}
