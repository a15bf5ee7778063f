package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-sh/vango/internal/blueprint"
	"github.com/vango-sh/vango/internal/scaffold"
	"github.com/vango-sh/vango/internal/ui"
)

// createCmd represents the create command
var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Initialize a vango project in the current directory",
	Long: `The create command scaffolds a full vango project:
- a minimal Go backend (main.go) that embeds vango
- a Vite + React frontend under frontend/
- a public/ directory for production builds
- a .vango.yml configuration file

Existing files are never overwritten.`,
	RunE: runCreate,
}

func init() {
	createCmd.Flags().StringP("name", "n", "", "Project name (defaults to the directory name)")
	createCmd.Flags().IntP("port", "p", 0, "Backend port to configure (default 8080)")
}

func runCreate(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	name, _ := cmd.Flags().GetString("name")
	port, _ := cmd.Flags().GetInt("port")
	if name == "" {
		name = filepath.Base(cwd)
	}

	ui.Info("initializing project %q in %s", name, cwd)

	bp := blueprint.Blueprint{Name: name, BackendPort: port}
	bp.Defaults()

	configPath := filepath.Join(cwd, blueprint.DefaultFile)
	if _, err := os.Stat(configPath); err == nil {
		ui.Info("%s already exists, skipping", blueprint.DefaultFile)
	} else {
		if err := blueprint.Write(configPath, bp); err != nil {
			return fmt.Errorf("failed to write configuration: %w", err)
		}
		ui.Info("created %s", blueprint.DefaultFile)
	}

	if err := scaffold.ServerStub(cwd, name); err != nil {
		return err
	}

	if err := scaffold.Ensure(scaffold.Layout{
		FrontendDir: filepath.Join(cwd, bp.FrontendDir),
		PublicDir:   filepath.Join(cwd, bp.PublicDir),
		BackendPort: bp.BackendPort,
		VitePort:    bp.VitePort,
	}); err != nil {
		return err
	}

	ui.Success("done. Run 'go run .' to start the backend and the Vite dev server")
	return nil
}
