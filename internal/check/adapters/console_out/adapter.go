// Package consoleout prints failed check results to a terminal.
package consoleout

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/nathantilsley/hookcheck/internal/check/domain"
)

// Adapter implements ports.ReportingPort by writing each failed result under
// a colored header. Passed results are not printed.
type Adapter struct {
	w      io.Writer
	header *color.Color
}

// New creates a console reporter. Colors follow fatih/color's detection
// (NO_COLOR, non-TTY output) unless useColor is false.
func New(w io.Writer, useColor bool) *Adapter {
	header := color.New(color.FgRed, color.Bold)
	if !useColor {
		header.DisableColor()
	}
	return &Adapter{w: w, header: header}
}

// Report writes the failed results. Output is printed as returned by the
// checker, followed by a newline if it does not already end with one.
func (a *Adapter) Report(_ context.Context, results []domain.Result) error {
	for _, r := range domain.Failed(results) {
		if _, err := a.header.Fprintf(a.w, "%s failed:\n", r.Check); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		out := r.Output
		if !strings.HasSuffix(out, "\n") {
			out += "\n"
		}
		if _, err := io.WriteString(a.w, out); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
	}
	return nil
}
