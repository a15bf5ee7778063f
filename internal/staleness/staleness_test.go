package staleness

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

// writeFile creates a file with the given mtime.
func writeFile(t *testing.T, path string, mtime time.Time) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.Chtimes(path, mtime, mtime); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
}

func testTarget(root string) Target {
	return Target{
		SrcDir:          filepath.Join(root, "frontend", "src"),
		EntryHTML:       filepath.Join(root, "frontend", "index.html"),
		ToolchainConfig: filepath.Join(root, "frontend", "vite.config.js"),
		OutputDir:       filepath.Join(root, "public"),
	}
}

func TestCheckOutputMissing(t *testing.T) {
	root := t.TempDir()
	tgt := testTarget(root)
	writeFile(t, filepath.Join(tgt.SrcDir, "main.jsx"), time.Now())

	if got := Check(tgt); got != NeedsBuild {
		t.Errorf("Check with missing output dir = %v; want NeedsBuild", got)
	}
}

func TestCheckOutputEmpty(t *testing.T) {
	root := t.TempDir()
	tgt := testTarget(root)
	writeFile(t, filepath.Join(tgt.SrcDir, "main.jsx"), time.Now())
	if err := os.MkdirAll(tgt.OutputDir, 0o755); err != nil {
		t.Fatal(err)
	}

	if got := Check(tgt); got != NeedsBuild {
		t.Errorf("Check with empty output dir = %v; want NeedsBuild", got)
	}
}

func TestCheckUpToDate(t *testing.T) {
	root := t.TempDir()
	tgt := testTarget(root)
	old := time.Now().Add(-2 * time.Hour)
	fresh := time.Now().Add(-time.Hour)

	writeFile(t, filepath.Join(tgt.SrcDir, "main.jsx"), old)
	writeFile(t, filepath.Join(tgt.SrcDir, "nested", "App.jsx"), old)
	writeFile(t, tgt.EntryHTML, old)
	writeFile(t, tgt.ToolchainConfig, old)
	writeFile(t, filepath.Join(tgt.OutputDir, "bundle.js"), fresh)

	if got := Check(tgt); got != UpToDate {
		t.Errorf("Check with fresh output = %v; want UpToDate", got)
	}

	// The verdict is a pure function of filesystem state: calling again
	// without changes gives the same answer.
	if got := Check(tgt); got != UpToDate {
		t.Errorf("second Check = %v; want UpToDate", got)
	}
}

func TestCheckEqualTimestampsAreUpToDate(t *testing.T) {
	root := t.TempDir()
	tgt := testTarget(root)
	ts := time.Now().Add(-time.Hour).Truncate(time.Second)

	writeFile(t, filepath.Join(tgt.SrcDir, "main.jsx"), ts)
	writeFile(t, filepath.Join(tgt.OutputDir, "bundle.js"), ts)

	if got := Check(tgt); got != UpToDate {
		t.Errorf("Check with equal timestamps = %v; want UpToDate (strict comparison)", got)
	}
}

func TestCheckTouchedSourceFlipsVerdict(t *testing.T) {
	root := t.TempDir()
	tgt := testTarget(root)
	old := time.Now().Add(-2 * time.Hour)
	fresh := time.Now().Add(-time.Hour)

	src := filepath.Join(tgt.SrcDir, "nested", "App.jsx")
	writeFile(t, filepath.Join(tgt.SrcDir, "main.jsx"), old)
	writeFile(t, src, old)
	writeFile(t, filepath.Join(tgt.OutputDir, "bundle.js"), fresh)

	if got := Check(tgt); got != UpToDate {
		t.Fatalf("Check before touch = %v; want UpToDate", got)
	}

	touched := time.Now()
	if err := os.Chtimes(src, touched, touched); err != nil {
		t.Fatal(err)
	}

	if got := Check(tgt); got != NeedsBuild {
		t.Errorf("Check after touching one source = %v; want NeedsBuild", got)
	}
}

func TestCheckEntryAndConfigCount(t *testing.T) {
	root := t.TempDir()
	tgt := testTarget(root)
	fresh := time.Now().Add(-time.Hour)

	// No src dir at all; only the config file, newer than output.
	writeFile(t, tgt.ToolchainConfig, time.Now())
	writeFile(t, filepath.Join(tgt.OutputDir, "bundle.js"), fresh)

	if got := Check(tgt); got != NeedsBuild {
		t.Errorf("Check with newer vite.config.js = %v; want NeedsBuild", got)
	}
}

func TestCheckNoSourcesIsUpToDate(t *testing.T) {
	root := t.TempDir()
	tgt := testTarget(root)
	writeFile(t, filepath.Join(tgt.OutputDir, "bundle.js"), time.Now())

	// Output exists, nothing on the source side at all: absent inputs never
	// force a rebuild.
	if got := Check(tgt); got != UpToDate {
		t.Errorf("Check with no sources = %v; want UpToDate", got)
	}
}
