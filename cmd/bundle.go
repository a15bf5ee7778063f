package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-sh/vango/internal/blueprint"
	"github.com/vango-sh/vango/internal/orchestrator"
	"github.com/vango-sh/vango/internal/ui"
)

// bundleCmd represents the bundle command
var bundleCmd = &cobra.Command{
	Use:   "bundle",
	Short: "Build the production frontend into ./public",
	Long: `The bundle command runs one production build of the frontend,
installing dependencies first if node_modules is missing. The build always
runs, whether or not the existing output is up to date.`,
	RunE: runBundle,
}

func runBundle(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	bp := readProjectConfig(cwd)
	ui.Info("building production bundle in %s", cwd)

	cfg := orchestrator.Config{
		ProjectRoot:   cwd,
		FrontendDir:   filepath.Join(cwd, bp.FrontendDir),
		OutputDir:     filepath.Join(cwd, bp.PublicDir),
		Mode:          orchestrator.ModeProd,
		BackendPort:   bp.BackendPort,
		DevServerPort: bp.VitePort,
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	return orchestrator.Build(context.Background(), cfg)
}

// readProjectConfig loads .vango.yml when present and falls back to the
// default layout when it is not; bundle should work in a project that was
// never "vango create"d.
func readProjectConfig(root string) blueprint.Blueprint {
	bp, err := blueprint.Read(filepath.Join(root, blueprint.DefaultFile))
	if err != nil {
		bp = blueprint.Blueprint{Name: filepath.Base(root)}
		bp.Defaults()
	}
	return bp
}
