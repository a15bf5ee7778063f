package scaffold

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLayout(t *testing.T) Layout {
	root := t.TempDir()
	return Layout{
		FrontendDir: filepath.Join(root, "frontend"),
		PublicDir:   filepath.Join(root, "public"),
		BackendPort: 8080,
		VitePort:    58080,
	}
}

func TestEnsureCreatesFullLayout(t *testing.T) {
	l := testLayout(t)
	require.NoError(t, Ensure(l))

	for _, path := range []string{
		filepath.Join(l.FrontendDir, "index.html"),
		filepath.Join(l.FrontendDir, "package.json"),
		filepath.Join(l.FrontendDir, "vite.config.js"),
		filepath.Join(l.FrontendDir, "src", "App.jsx"),
		filepath.Join(l.FrontendDir, "src", "main.jsx"),
		filepath.Join(l.FrontendDir, "src", "style.css"),
	} {
		_, err := os.Stat(path)
		assert.NoError(t, err, path)
	}

	info, err := os.Stat(l.PublicDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnsureKeepsExistingFiles(t *testing.T) {
	l := testLayout(t)
	require.NoError(t, os.MkdirAll(filepath.Join(l.FrontendDir, "src"), 0o755))

	app := filepath.Join(l.FrontendDir, "src", "App.jsx")
	custom := "export default function App() { return null }\n"
	require.NoError(t, os.WriteFile(app, []byte(custom), 0o644))

	require.NoError(t, Ensure(l))

	data, err := os.ReadFile(app)
	require.NoError(t, err)
	assert.Equal(t, custom, string(data))
}

func TestViteConfigUsesPortsAndEnvOverrides(t *testing.T) {
	l := testLayout(t)
	l.BackendPort = 3000
	l.VitePort = 53000
	require.NoError(t, Ensure(l))

	data, err := os.ReadFile(filepath.Join(l.FrontendDir, "vite.config.js"))
	require.NoError(t, err)
	cfg := string(data)

	assert.Contains(t, cfg, "VANGO_BACKEND_PORT")
	assert.Contains(t, cfg, "VANGO_PORT")
	assert.Contains(t, cfg, "3000")
	assert.Contains(t, cfg, "53000")
	assert.Contains(t, cfg, "bundle.js")
	assert.Contains(t, cfg, "../public")
}

func TestServerStub(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, ServerStub(root, "shop"))

	data, err := os.ReadFile(filepath.Join(root, "main.go"))
	require.NoError(t, err)
	stub := string(data)
	assert.Contains(t, stub, `"github.com/vango-sh/vango"`)
	assert.Contains(t, stub, `Name: "shop"`)

	// Re-running must not clobber a hand-edited main.go.
	edited := strings.Replace(stub, "shop", "store", 1)
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte(edited), 0o644))
	require.NoError(t, ServerStub(root, "shop"))

	data, err = os.ReadFile(filepath.Join(root, "main.go"))
	require.NoError(t, err)
	assert.Equal(t, edited, string(data))
}
