// Package ui provides the styled console output used by every vango
// component. All user-visible orchestration messages go through here so the
// output has a uniform look whether it comes from the library or the CLI.
package ui

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#34d399")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10b981"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fbbf24"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f87171")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748b"))
)

// tag is the prefix printed before every message.
var tag = tagStyle.Render("[vango]")

// Info prints a plain informational message.
func Info(format string, args ...any) {
	fmt.Println(tag, fmt.Sprintf(format, args...))
}

// Success prints a completed-step message.
func Success(format string, args ...any) {
	fmt.Println(tag, successStyle.Render("✅ "+fmt.Sprintf(format, args...)))
}

// Warn prints a non-fatal problem. Execution continues after a warning.
func Warn(format string, args ...any) {
	fmt.Println(tag, warnStyle.Render("⚠️  "+fmt.Sprintf(format, args...)))
}

// Error prints a fatal problem to stderr. The caller decides whether to abort.
func Error(format string, args ...any) {
	fmt.Fprintln(os.Stderr, tag, errorStyle.Render("❌ "+fmt.Sprintf(format, args...)))
}

// Detail prints supporting context below an earlier message.
func Detail(format string, args ...any) {
	fmt.Println(tag, dimStyle.Render(fmt.Sprintf(format, args...)))
}
