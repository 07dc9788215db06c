package domain

import (
	"errors"
	"fmt"
)

// ErrToolUnavailable marks a linter binary that vanished between the
// availability check and the invocation. It is always wrapped in a
// SubprocessError.
var ErrToolUnavailable = errors.New("lint tool unavailable")

// ErrLintTimeout marks a linter that did not exit within its deadline.
var ErrLintTimeout = errors.New("lint tool timed out")

// SubprocessError is a failure to run the external tool at all, as opposed
// to the tool running and reporting findings.
type SubprocessError struct {
	Tool string
	Err  error
}

// NewSubprocessError creates a SubprocessError for tool.
func NewSubprocessError(tool string, err error) *SubprocessError {
	return &SubprocessError{Tool: tool, Err: err}
}

func (e *SubprocessError) Error() string {
	return fmt.Sprintf("running %s: %v", e.Tool, e.Err)
}

func (e *SubprocessError) Unwrap() error {
	return e.Err
}

// IsSubprocessError reports whether err is (or wraps) a SubprocessError.
func IsSubprocessError(err error) bool {
	var se *SubprocessError
	return errors.As(err, &se)
}
