// Package yamllintcli runs the yamllint CLI as a subprocess.
package yamllintcli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os/exec"
	"time"

	"github.com/nathantilsley/hookcheck/internal/check/domain"
)

const (
	// DefaultBinary is the executable looked up on PATH.
	DefaultBinary = "yamllint"
	// DefaultTimeout bounds a single yamllint invocation.
	DefaultTimeout = 60 * time.Second

	// waitDelay caps how long Lint waits for the output pipes to close once
	// yamllint has been killed. Grandchildren of a wrapper script keep them
	// open.
	waitDelay = time.Second
)

// Adapter implements ports.LintRunner by shelling out to the yamllint CLI.
type Adapter struct {
	binary  string
	dir     string // working directory; changeset paths are relative to it
	timeout time.Duration
	logger  *slog.Logger
}

// Option configures an Adapter.
type Option func(*Adapter)

// WithBinary overrides the executable name or path.
func WithBinary(binary string) Option {
	return func(a *Adapter) { a.binary = binary }
}

// WithDir runs yamllint in dir, normally the repository root.
func WithDir(dir string) Option {
	return func(a *Adapter) { a.dir = dir }
}

// WithTimeout overrides DefaultTimeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(a *Adapter) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// New creates a new yamllint CLI adapter. A missing binary is not a
// construction error; the checker reports it to the user via Available.
func New(logger *slog.Logger, opts ...Option) *Adapter {
	a := &Adapter{
		binary:  DefaultBinary,
		timeout: DefaultTimeout,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Available reports whether the yamllint binary can be found on PATH.
func (a *Adapter) Available(_ context.Context) bool {
	path, err := exec.LookPath(a.binary)
	if err != nil {
		a.logger.Debug("yamllint not found", "binary", a.binary, "error", err)
		return false
	}
	a.logger.Debug("yamllint found", "path", path)
	return true
}

// Lint runs `yamllint <paths...>` and returns its combined stdout and stderr.
// A non-zero exit status means yamllint reported problems; its output is
// returned with a nil error. Only a failure to start, a kill or the timeout
// produce an error, always a *domain.SubprocessError.
func (a *Adapter) Lint(ctx context.Context, paths []string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	a.logger.Debug("running yamllint", "files", len(paths), "timeout", a.timeout)

	//nolint:gosec // G204: paths are file names from the git index, passed as argv, not through a shell
	cmd := exec.CommandContext(ctx, a.binary, paths...)
	cmd.Dir = a.dir
	cmd.WaitDelay = waitDelay
	output, err := cmd.CombinedOutput()

	if ctxErr := ctx.Err(); errors.Is(ctxErr, context.DeadlineExceeded) {
		a.logger.Error("yamllint timed out", "timeout", a.timeout)
		return "", domain.NewSubprocessError(a.binary, fmt.Errorf("%w after %s", domain.ErrLintTimeout, a.timeout))
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.Exited() {
			a.logger.Debug("yamllint reported problems", "exitCode", exitErr.ExitCode(), "outputSize", len(output))
			return string(output), nil
		}
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			err = fmt.Errorf("%w: %w", domain.ErrToolUnavailable, err)
		}
		a.logger.Error("yamllint failed to run", "error", err)
		return "", domain.NewSubprocessError(a.binary, err)
	}

	a.logger.Debug("yamllint completed", "outputSize", len(output))
	return string(output), nil
}
