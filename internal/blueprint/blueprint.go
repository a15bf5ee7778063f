// Package blueprint reads and writes .vango.yml, the per-project
// configuration file the CLI commands work from.
package blueprint

import (
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file name in a project root.
const DefaultFile = ".vango.yml"

// Blueprint is the project configuration written by "vango create".
type Blueprint struct {
	Name        string `yaml:"name"`
	FrontendDir string `yaml:"frontend,omitempty"`
	PublicDir   string `yaml:"public,omitempty"`
	BackendPort int    `yaml:"backend_port,omitempty"`
	VitePort    int    `yaml:"vite_port,omitempty"`
}

// Defaults fills unset fields with the standard project layout. The Vite
// port default keeps clear of common backend ranges by offsetting the
// backend port by 50000.
func (bp *Blueprint) Defaults() {
	if bp.FrontendDir == "" {
		bp.FrontendDir = "frontend"
	}
	if bp.PublicDir == "" {
		bp.PublicDir = "public"
	}
	if bp.BackendPort == 0 {
		bp.BackendPort = 8080
	}
	if bp.VitePort == 0 {
		bp.VitePort = 50000 + bp.BackendPort
	}
}

// Write writes the blueprint as a YAML file.
func Write(path string, bp Blueprint) error {
	data, err := yaml.Marshal(&bp)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Read loads and validates a blueprint file, applying defaults for fields
// left unset.
func Read(path string) (Blueprint, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Blueprint{}, err
	}

	var bp Blueprint
	if err := yaml.Unmarshal(data, &bp); err != nil {
		return Blueprint{}, err
	}
	if bp.Name == "" {
		return Blueprint{}, errors.New("invalid configuration: missing name")
	}

	bp.Defaults()
	return bp, nil
}
