// Package scaffold creates the default project layout: the Vite + React
// frontend, the public output directory, and (for vango create) a minimal Go
// backend. Existing files are never overwritten.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vango-sh/vango/internal/ui"
)

// Layout describes where the frontend pieces live and which ports the
// generated vite config should default to.
type Layout struct {
	FrontendDir string
	PublicDir   string
	BackendPort int
	VitePort    int
}

// Ensure creates every missing frontend file and directory for the layout.
// It is idempotent: anything already present is left untouched.
func Ensure(l Layout) error {
	srcDir := filepath.Join(l.FrontendDir, "src")
	for _, dir := range []string{l.FrontendDir, srcDir, l.PublicDir} {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %s: %w", dir, err)
			}
			ui.Info("created directory %s", dir)
		}
	}

	files := []struct {
		path    string
		content string
	}{
		{filepath.Join(srcDir, "App.jsx"), defaultAppJSX},
		{filepath.Join(srcDir, "main.jsx"), defaultMainJSX},
		{filepath.Join(srcDir, "style.css"), defaultStyleCSS},
		{filepath.Join(l.FrontendDir, "index.html"), defaultIndexHTML},
		{filepath.Join(l.FrontendDir, "package.json"), defaultPackageJSON},
		{filepath.Join(l.FrontendDir, "vite.config.js"), viteConfig(l.BackendPort, l.VitePort)},
	}

	for _, f := range files {
		created, err := writeIfMissing(f.path, f.content)
		if err != nil {
			return err
		}
		if created {
			ui.Info("created %s", f.path)
		}
	}
	return nil
}

// ServerStub writes a minimal main.go using vango into the project root,
// unless one already exists.
func ServerStub(root, name string) error {
	path := filepath.Join(root, "main.go")
	created, err := writeIfMissing(path, serverStub(name))
	if err != nil {
		return err
	}
	if created {
		ui.Info("created %s", path)
	} else {
		ui.Info("main.go already exists, skipping")
	}
	return nil
}

func writeIfMissing(path, content string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}
