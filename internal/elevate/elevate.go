// Package elevate runs a prepared script with superuser privileges through an
// external broker such as pkexec or sudo.
package elevate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/shorts-cli/shorts/internal/shortcut"
)

// DefaultCandidates are tried in order when no broker is configured.
// pkexec shows a graphical password prompt; sudo falls back to the terminal.
var DefaultCandidates = []string{"pkexec", "sudo"}

// Result describes a finished broker invocation.
type Result struct {
	ExitCode int
	Stderr   string
	Duration time.Duration
}

// Broker runs a script with elevated privileges.
type Broker interface {
	// Name returns the broker identifier (e.g. "pkexec").
	Name() string
	// Elevate runs scriptPath and waits at most timeout for it to finish.
	// Cancelling ctx does not stop a started broker; only timeout does.
	Elevate(ctx context.Context, scriptPath string, timeout time.Duration) (*Result, error)
}

// ExecBroker runs an external elevation program as "<Path> [Args...] <script>".
type ExecBroker struct {
	Path string
	Args []string
}

// Compile-time interface check.
var _ Broker = (*ExecBroker)(nil)

// Discover returns a broker for the first candidate found in PATH.
// Extra args are only passed to pkexec, which needs them to skip its
// text-mode agent.
func Discover(args []string, candidates ...string) (*ExecBroker, error) {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}
	for _, name := range candidates {
		if name == "" {
			continue
		}
		path, err := exec.LookPath(name)
		if err != nil {
			continue
		}
		b := &ExecBroker{Path: path}
		if name == "pkexec" || strings.HasSuffix(path, "/pkexec") {
			b.Args = args
		}
		return b, nil
	}
	return nil, fmt.Errorf("%w: tried %s", shortcut.ErrBrokerUnavailable, strings.Join(candidates, ", "))
}

func (b *ExecBroker) Name() string {
	return b.Path
}

func (b *ExecBroker) Elevate(ctx context.Context, scriptPath string, timeout time.Duration) (*Result, error) {
	// Detach from caller cancellation; the deadline is the only way out.
	runCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeout)
	defer cancel()

	args := append(append([]string{}, b.Args...), scriptPath)
	cmd := exec.CommandContext(runCtx, b.Path, args...)
	cmd.WaitDelay = time.Second
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stderr:   strings.TrimSpace(stderr.String()),
		Duration: time.Since(start),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	switch {
	case err == nil:
		return res, nil
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return res, fmt.Errorf("%w after %s", shortcut.ErrTimeout, timeout)
	case errors.Is(err, exec.ErrNotFound), errors.Is(err, os.ErrNotExist):
		return res, fmt.Errorf("%w: %v", shortcut.ErrBrokerUnavailable, err)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		msg := res.Stderr
		if msg == "" {
			msg = fmt.Sprintf("%s exited with code %d", b.Path, res.ExitCode)
		}
		return res, fmt.Errorf("%w: %s", shortcut.ErrPermissionDenied, msg)
	}
	return res, fmt.Errorf("failed to run %s: %w", b.Path, err)
}
