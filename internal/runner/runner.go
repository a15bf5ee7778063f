// Package runner executes external toolchain commands. Blocking runs are used
// for installs and production builds; detached spawns are used for the Vite
// dev server, which is deliberately left unsupervised so it can outlive
// backend restarts.
package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// NotFoundError reports that the executable for a command could not be
// located. For frontend commands this almost always means the Node toolchain
// is not installed.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("command not found: %s", e.Name)
}

// ExitError reports that a command ran but exited nonzero. The original
// command line and working directory are kept so failures are actionable.
type ExitError struct {
	Argv []string
	Dir  string
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("command failed with exit code %d: %s (in %s)",
		e.Code, strings.Join(e.Argv, " "), e.Dir)
}

// Handle is the ownership record for a detached process. The process is not
// awaited and not supervised; the handle exists so callers can log the PID
// and, in tests, terminate what they started.
type Handle struct {
	Process *os.Process
	PID     int
	Port    int      // port the process is expected to bind, 0 if none
	Env     []string // full environment the process was given
}

// Terminate kills the detached process. Normal orchestration never calls
// this; it exists for test teardown.
func (h *Handle) Terminate() error {
	if h == nil || h.Process == nil {
		return nil
	}
	return h.Process.Kill()
}

// Run executes argv synchronously in dir, streaming output to this process's
// stdout and stderr. extraEnv is merged over the current environment with
// override semantics. The call blocks until the command exits; no timeout is
// applied here — callers wanting one wrap the context.
func Run(ctx context.Context, argv []string, dir string, extraEnv map[string]string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = mergeEnv(extraEnv)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		return classify(err, argv, dir)
	}
	return nil
}

// SpawnDetached starts argv in dir without waiting for it. The spawned
// process inherits this process's stdout and stderr so its output stays
// visible, but nothing restarts it if it dies.
func SpawnDetached(argv []string, dir string, extraEnv map[string]string) (*Handle, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = mergeEnv(extraEnv)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, classify(err, argv, dir)
	}

	// Reap the child if it ever exits, so it cannot linger as a zombie.
	go func() { _ = cmd.Wait() }()

	return &Handle{
		Process: cmd.Process,
		PID:     cmd.Process.Pid,
		Env:     cmd.Env,
	}, nil
}

// classify maps exec errors onto the runner error taxonomy.
func classify(err error, argv []string, dir string) error {
	var execErr *exec.Error
	if errors.As(err, &execErr) {
		return &NotFoundError{Name: execErr.Name}
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &ExitError{Argv: argv, Dir: dir, Code: exitErr.ExitCode()}
	}
	return err
}

// mergeEnv layers extra over the current process environment. A key present
// in both wins from extra.
func mergeEnv(extra map[string]string) []string {
	if len(extra) == 0 {
		return os.Environ()
	}
	env := os.Environ()
	out := make([]string, 0, len(env)+len(extra))
	for _, kv := range env {
		key, _, ok := strings.Cut(kv, "=")
		if ok {
			if _, overridden := extra[key]; overridden {
				continue
			}
		}
		out = append(out, kv)
	}
	for k, v := range extra {
		out = append(out, k+"="+v)
	}
	return out
}
