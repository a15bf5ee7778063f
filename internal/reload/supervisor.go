package reload

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/vango-sh/vango/internal/ui"
)

// debounce coalesces the burst of events an editor save produces into one
// rebuild.
const debounce = 300 * time.Millisecond

// skipDirs are never watched: they are either generated, huge, or both.
var skipDirs = map[string]bool{
	".git":         true,
	"node_modules": true,
	"public":       true,
	"frontend":     true,
}

// Supervisor is the launcher side of hot reload. It builds the backend from
// source, runs the binary as a child marked with the reload sentinel, and
// restarts it whenever a Go file under the project root changes.
type Supervisor struct {
	Root string   // project root containing the backend's Go module
	Args []string // arguments passed through to the child, usually os.Args[1:]
}

// Run blocks until ctx is cancelled or the build becomes permanently
// impossible. A failed rebuild keeps the previous child running.
func (s *Supervisor) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.watchTree(watcher); err != nil {
		return err
	}

	binary, err := s.build()
	if err != nil {
		return err
	}
	// binary is reassigned on every rebuild; the closure removes whichever
	// one is current at exit.
	defer func() { os.Remove(binary) }()

	child, err := s.spawn(binary)
	if err != nil {
		return err
	}

	ui.Info("reloader watching %s for changes", s.Root)

	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			s.terminate(child)
			return ctx.Err()

		case ev, ok := <-watcher.Events:
			if !ok {
				s.terminate(child)
				return nil
			}
			if !relevant(ev) {
				continue
			}
			// New directories need to join the watch set.
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = watcher.Add(ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case err, ok := <-watcher.Errors:
			if ok && err != nil {
				ui.Warn("watcher error: %v", err)
			}

		case <-pending:
			ui.Info("change detected, rebuilding backend...")
			newBinary, err := s.build()
			if err != nil {
				ui.Error("rebuild failed, keeping previous server running")
				continue
			}
			s.terminate(child)
			os.Remove(binary)
			binary = newBinary
			child, err = s.spawn(binary)
			if err != nil {
				return err
			}
		}
	}
}

// watchTree registers the project root and its subdirectories, skipping
// generated and frontend trees.
func (s *Supervisor) watchTree(watcher *fsnotify.Watcher) error {
	return filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if skipDirs[d.Name()] && path != s.Root {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

// relevant filters watcher events down to Go source changes.
func relevant(ev fsnotify.Event) bool {
	if !ev.Op.Has(fsnotify.Write) && !ev.Op.Has(fsnotify.Create) && !ev.Op.Has(fsnotify.Rename) {
		return false
	}
	if strings.HasSuffix(ev.Name, ".go") {
		return true
	}
	// Directory creation has no extension but may bring new sources.
	info, err := os.Stat(ev.Name)
	return err == nil && info.IsDir()
}

// build compiles the backend into a temp binary and returns its path.
func (s *Supervisor) build() (string, error) {
	binary := filepath.Join(os.TempDir(), fmt.Sprintf("vango-server-%d", time.Now().UnixNano()))

	cmd := exec.Command("go", "build", "-o", binary, ".")
	cmd.Dir = s.Root
	cmd.Env = os.Environ()

	output, err := cmd.CombinedOutput()
	if err != nil {
		for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
			if line != "" {
				ui.Error("%s", line)
			}
		}
		return "", fmt.Errorf("go build failed: %w", err)
	}
	return binary, nil
}

// spawn starts the freshly built server as the reloaded child.
func (s *Supervisor) spawn(binary string) (*exec.Cmd, error) {
	cmd := exec.Command(binary, s.Args...)
	cmd.Dir = s.Root
	cmd.Env = append(os.Environ(), EnvChildMarker+"="+MarkerValue)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start server: %w", err)
	}
	return cmd, nil
}

// terminate stops a child gracefully, escalating to SIGKILL after a grace
// period.
func (s *Supervisor) terminate(cmd *exec.Cmd) {
	if cmd == nil || cmd.Process == nil {
		return
	}
	_ = cmd.Process.Signal(syscall.SIGTERM)

	done := make(chan struct{})
	go func() {
		_, _ = cmd.Process.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		<-done
	}
}
