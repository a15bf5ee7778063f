package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information (can be set at build time)
var (
	version = "0.1.0"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vango",
	Short: "Wire a Vite + React frontend to a Go backend",
	Long: `vango scaffolds and orchestrates a two-process development setup:
a Go backend server and a Vite frontend toolchain.

Usage:
  vango create    Initialize a vango project in the current directory
  vango bundle    Build the production frontend into ./public
  vango doctor    Check that the frontend toolchain is ready to run

A created project is started with 'go run .'; in development the backend
redirects to the Vite dev server, in production (PROD=1) it serves the
built bundle from ./public.`,
	Version: version,
}

func init() {
	rootCmd.AddCommand(createCmd)
	rootCmd.AddCommand(bundleCmd)
	rootCmd.AddCommand(doctorCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
