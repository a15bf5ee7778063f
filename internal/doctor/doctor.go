// Package doctor checks whether a vango project is ready to run: Node
// runtime, package manager, installed dependencies, built bundle, and the
// state of the two ports.
package doctor

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/vango-sh/vango/internal/ports"
	"github.com/vango-sh/vango/internal/provisioner"
)

// RuntimeStatus is the state of the Node runtime on the host.
type RuntimeStatus struct {
	Installed bool
	Version   string
	Path      string
}

// Diagnosis is the full health check result for a project.
type Diagnosis struct {
	Node              RuntimeStatus
	Manager           provisioner.Manager
	ManagerOK         bool
	ManagerVersion    string
	ManagerHint       string
	HasManifest       bool
	HasDeps           bool
	HasBundle         bool
	BackendPortBusy   bool
	DevServerPortBusy bool
	DevServerListener string
	Issues            []string
}

// Healthy reports whether dev mode can start without intervention.
func (d Diagnosis) Healthy() bool {
	return len(d.Issues) == 0
}

// Diagnose inspects the project rooted at the given directories. Ports that
// are busy are reported but are not counted as issues: a busy dev-server
// port usually just means the dev server is already up.
func Diagnose(frontendDir, publicDir string, backendPort, devPort int) Diagnosis {
	var d Diagnosis

	d.Node = checkNode()
	if !d.Node.Installed {
		d.Issues = append(d.Issues, "Node.js is not installed (https://nodejs.org)")
	}

	pm := provisioner.Detect(frontendDir)
	d.Manager = pm.Manager
	d.ManagerOK, d.ManagerVersion = pm.Available()
	if !d.ManagerOK {
		d.ManagerHint = pm.InstallHint()
		d.Issues = append(d.Issues, string(pm.Manager)+" is not installed; "+d.ManagerHint)
	}

	if _, err := os.Stat(filepath.Join(frontendDir, "package.json")); err == nil {
		d.HasManifest = true
	} else {
		d.Issues = append(d.Issues, "no package.json in "+frontendDir+" (run 'vango create')")
	}

	if _, err := os.Stat(filepath.Join(frontendDir, "node_modules")); err == nil {
		d.HasDeps = true
	}
	if _, err := os.Stat(filepath.Join(publicDir, "bundle.js")); err == nil {
		d.HasBundle = true
	}

	d.BackendPortBusy = ports.InUse(backendPort)
	d.DevServerPortBusy = ports.InUse(devPort)
	if d.DevServerPortBusy {
		if l, ok := ports.FindListener(devPort); ok {
			d.DevServerListener = l.Describe()
		}
	}

	return d
}

func checkNode() RuntimeStatus {
	path, err := exec.LookPath("node")
	if err != nil {
		return RuntimeStatus{}
	}
	status := RuntimeStatus{Installed: true, Path: path}
	if out, err := exec.Command("node", "--version").Output(); err == nil {
		status.Version = strings.TrimSpace(string(out))
	}
	return status
}
