// Package provisioner detects which Node package manager a frontend project
// uses and produces the commands the orchestrator runs through it. Detection
// is by lock file, falling back to npm.
package provisioner

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Manager is a Node package manager.
type Manager string

const (
	NPM  Manager = "npm"
	PNPM Manager = "pnpm"
	Yarn Manager = "yarn"
	Bun  Manager = "bun"
)

// Info describes the package manager detected for a project.
type Info struct {
	Manager  Manager
	LockFile string // lock file that triggered detection, "" for the npm fallback
}

// lockFiles maps lock file names to managers, in priority order.
var lockFiles = []struct {
	name    string
	manager Manager
}{
	{"pnpm-lock.yaml", PNPM},
	{"bun.lockb", Bun},
	{"bun.lock", Bun},
	{"yarn.lock", Yarn},
	{"package-lock.json", NPM},
}

// Detect inspects a frontend directory and returns the package manager to
// use. A project with no lock file at all gets npm, which ships with Node.
func Detect(dir string) Info {
	for _, lf := range lockFiles {
		if _, err := os.Stat(filepath.Join(dir, lf.name)); err == nil {
			return Info{Manager: lf.manager, LockFile: lf.name}
		}
	}
	return Info{Manager: NPM}
}

// InstallArgs returns the dependency install command for this manager.
func (i Info) InstallArgs() []string {
	return []string{string(i.Manager), "install"}
}

// ScriptArgs returns the command that runs a package.json script through this
// manager (e.g. "npm run build").
func (i Info) ScriptArgs(script string) []string {
	return []string{string(i.Manager), "run", script}
}

// Available reports whether the manager's executable can be found, and its
// version when it can.
func (i Info) Available() (bool, string) {
	out, err := exec.Command(string(i.Manager), "--version").Output()
	if err != nil {
		return false, ""
	}
	return true, strings.TrimSpace(string(out))
}

// InstallHint returns how to obtain the manager when it is missing.
func (i Info) InstallHint() string {
	switch i.Manager {
	case PNPM:
		return "run 'corepack enable pnpm'"
	case Yarn:
		return "run 'corepack enable yarn'"
	case Bun:
		return "install bun from https://bun.sh"
	default:
		return "install Node.js from https://nodejs.org"
	}
}
