package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-sh/vango/internal/doctor"
	"github.com/vango-sh/vango/internal/ui"
)

// doctorCmd represents the doctor command
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the frontend toolchain is ready to run",
	Long: `The doctor command inspects the current project and reports on:
- the Node.js runtime
- the detected package manager
- installed dependencies and the production bundle
- the backend and dev-server ports`,
	RunE: runDoctor,
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current directory: %w", err)
	}

	bp := readProjectConfig(cwd)
	d := doctor.Diagnose(
		filepath.Join(cwd, bp.FrontendDir),
		filepath.Join(cwd, bp.PublicDir),
		bp.BackendPort,
		bp.VitePort,
	)

	printCheck("Node.js", d.Node.Installed, d.Node.Version)
	printCheck(string(d.Manager), d.ManagerOK, d.ManagerVersion)
	printCheck("package.json", d.HasManifest, "")
	printCheck("node_modules", d.HasDeps, "")
	printCheck("public/bundle.js", d.HasBundle, "")

	if d.DevServerPortBusy {
		ui.Info("dev server port %d is in use", bp.VitePort)
		if d.DevServerListener != "" {
			ui.Detail("listening process: %s", d.DevServerListener)
		}
	} else {
		ui.Info("dev server port %d is free", bp.VitePort)
	}
	if d.BackendPortBusy {
		ui.Warn("backend port %d is already in use", bp.BackendPort)
	}

	if !d.Healthy() {
		fmt.Println()
		for _, issue := range d.Issues {
			ui.Error("%s", issue)
		}
		return fmt.Errorf("%d issue(s) found", len(d.Issues))
	}

	ui.Success("project is ready")
	return nil
}

func printCheck(name string, ok bool, version string) {
	switch {
	case ok && version != "":
		ui.Success("%s (%s)", name, version)
	case ok:
		ui.Success("%s", name)
	default:
		ui.Warn("%s missing", name)
	}
}
