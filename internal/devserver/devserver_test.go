package devserver

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// installFakeNpm puts a stub npm on PATH that records its arguments and the
// two port environment variables, then exits. The recording file path is
// passed down via the environment.
func installFakeNpm(t *testing.T) string {
	t.Helper()
	binDir := t.TempDir()
	logFile := filepath.Join(t.TempDir(), "spawn.log")

	script := `#!/bin/sh
echo "$VANGO_BACKEND_PORT $VANGO_PORT $@" >> "$VANGO_TEST_SPAWN_LOG"
`
	err := os.WriteFile(filepath.Join(binDir, "npm"), []byte(script), 0o755)
	require.NoError(t, err)

	t.Setenv("VANGO_TEST_SPAWN_LOG", logFile)
	t.Setenv("PATH", binDir+string(os.PathListSeparator)+os.Getenv("PATH"))
	return logFile
}

// waitForFile polls for the spawn log since the dev server is launched
// detached.
func waitForFile(t *testing.T, path string) string {
	t.Helper()
	deadline := time.Now().Add(3 * time.Second)
	for time.Now().Before(deadline) {
		if data, err := os.ReadFile(path); err == nil && len(data) > 0 {
			return string(data)
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("spawned process never wrote %s", path)
	return ""
}

func freePort(t *testing.T) int {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()
	return port
}

func TestEnsureRunningSpawnsOnce(t *testing.T) {
	logFile := installFakeNpm(t)
	frontend := t.TempDir()
	devPort := freePort(t)

	handle, err := EnsureRunning(frontend, 8080, devPort)
	require.NoError(t, err)
	require.NotNil(t, handle)
	assert.Equal(t, devPort, handle.Port)
	assert.Greater(t, handle.PID, 0)

	got := waitForFile(t, logFile)
	line := strings.TrimSpace(got)

	// Both port variables are injected, and the port is pinned as a CLI
	// argument as well.
	assert.True(t, strings.HasPrefix(line, fmt.Sprintf("8080 %d ", devPort)), "log line: %q", line)
	assert.Contains(t, line, "run dev")
	assert.Contains(t, line, fmt.Sprintf("--port %d", devPort))
	assert.Equal(t, 1, strings.Count(got, "\n"), "expected exactly one spawn")
}

func TestEnsureRunningSkipsBusyPort(t *testing.T) {
	logFile := installFakeNpm(t)
	frontend := t.TempDir()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	busyPort := ln.Addr().(*net.TCPAddr).Port

	// Two calls in a row while something holds the port: neither spawns.
	for i := 0; i < 2; i++ {
		handle, err := EnsureRunning(frontend, 8080, busyPort)
		require.NoError(t, err)
		assert.Nil(t, handle)
	}

	time.Sleep(100 * time.Millisecond)
	_, statErr := os.Stat(logFile)
	assert.True(t, os.IsNotExist(statErr), "no process should have been spawned")
}

func TestEnsureRunningToolchainMissing(t *testing.T) {
	// A PATH with no npm at all: the failure must surface, not vanish.
	t.Setenv("PATH", t.TempDir())
	devPort := freePort(t)

	handle, err := EnsureRunning(t.TempDir(), 8080, devPort)
	assert.Nil(t, handle)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "npm")
}

func TestEnv(t *testing.T) {
	env := Env(8080, 58080)
	assert.Equal(t, map[string]string{
		"VANGO_BACKEND_PORT": "8080",
		"VANGO_PORT":         "58080",
	}, env)
}
