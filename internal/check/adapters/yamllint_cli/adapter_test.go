package yamllintcli

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/nathantilsley/hookcheck/internal/check/domain"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// writeFakeYamllint writes an executable shell script named yamllint into a
// temp dir and returns its path.
func writeFakeYamllint(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake yamllint requires a POSIX shell")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "yamllint")
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAdapter_Available(t *testing.T) {
	fake := writeFakeYamllint(t, "exit 0")

	t.Run("found on PATH", func(t *testing.T) {
		t.Setenv("PATH", filepath.Dir(fake))
		if !New(discardLogger()).Available(context.Background()) {
			t.Error("Available() = false, want true")
		}
	})

	t.Run("missing from PATH", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		if New(discardLogger()).Available(context.Background()) {
			t.Error("Available() = true, want false")
		}
	})
}

func TestAdapter_Lint_PassesPathsInOrder(t *testing.T) {
	fake := writeFakeYamllint(t, `printf '%s|' "$@"`)
	a := New(discardLogger(), WithBinary(fake))

	got, err := a.Lint(context.Background(), []string{"b.yaml", "a.yaml", "dir with space/c.yaml"})
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	want := "b.yaml|a.yaml|dir with space/c.yaml|"
	if got != want {
		t.Errorf("Lint() = %q, want %q", got, want)
	}
}

func TestAdapter_Lint_CleanRunReturnsEmpty(t *testing.T) {
	fake := writeFakeYamllint(t, "exit 0")
	a := New(discardLogger(), WithBinary(fake))

	got, err := a.Lint(context.Background(), []string{"ok.yaml"})
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	if got != "" {
		t.Errorf("Lint() = %q, want empty", got)
	}
}

func TestAdapter_Lint_FindingsAreOutputNotError(t *testing.T) {
	fake := writeFakeYamllint(t, `echo "bad.yaml"
echo "  3:1       error    syntax error: expected <block end>, but found '-'  (syntax)" >&2
exit 1`)
	a := New(discardLogger(), WithBinary(fake))

	got, err := a.Lint(context.Background(), []string{"bad.yaml"})
	if err != nil {
		t.Fatalf("Lint() error = %v, want nil for lint findings", err)
	}
	want := "bad.yaml\n  3:1       error    syntax error: expected <block end>, but found '-'  (syntax)\n"
	if got != want {
		t.Errorf("Lint() = %q, want %q", got, want)
	}
}

func TestAdapter_Lint_MissingBinaryIsSubprocessError(t *testing.T) {
	a := New(discardLogger(), WithBinary(filepath.Join(t.TempDir(), "nope")))

	_, err := a.Lint(context.Background(), []string{"a.yaml"})
	if err == nil {
		t.Fatal("Lint() error = nil, want subprocess error")
	}
	if !domain.IsSubprocessError(err) {
		t.Errorf("Lint() error = %T %v, want *domain.SubprocessError", err, err)
	}
	if !errors.Is(err, domain.ErrToolUnavailable) {
		t.Errorf("Lint() error = %v, want ErrToolUnavailable", err)
	}
}

func TestAdapter_Lint_Timeout(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"linter blocks", "exec sleep 5"},
		// The shell is killed but sleep keeps the output pipe open.
		{"wrapper with child process", "sleep 5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := writeFakeYamllint(t, tt.body)
			a := New(discardLogger(), WithBinary(fake), WithTimeout(100*time.Millisecond))

			start := time.Now()
			_, err := a.Lint(context.Background(), []string{"slow.yaml"})
			if !errors.Is(err, domain.ErrLintTimeout) {
				t.Fatalf("Lint() error = %v, want ErrLintTimeout", err)
			}
			if !domain.IsSubprocessError(err) {
				t.Errorf("Lint() error = %T, want *domain.SubprocessError", err)
			}
			if elapsed := time.Since(start); elapsed > 3*time.Second {
				t.Errorf("Lint() took %s, timeout not enforced", elapsed)
			}
		})
	}
}

func TestWithTimeout_IgnoresNonPositive(t *testing.T) {
	a := New(discardLogger(), WithTimeout(0), WithTimeout(-time.Second))
	if a.timeout != DefaultTimeout {
		t.Errorf("timeout = %s, want %s", a.timeout, DefaultTimeout)
	}
}

func TestAdapter_Lint_RunsInDir(t *testing.T) {
	fake := writeFakeYamllint(t, "pwd")
	dir := t.TempDir()
	a := New(discardLogger(), WithBinary(fake), WithDir(dir))

	got, err := a.Lint(context.Background(), []string{"a.yaml"})
	if err != nil {
		t.Fatalf("Lint() error = %v", err)
	}
	wantDir, _ := filepath.EvalSymlinks(dir)
	gotDir, _ := filepath.EvalSymlinks(strings.TrimSpace(got))
	if gotDir != wantDir {
		t.Errorf("yamllint ran in %q, want %q", gotDir, wantDir)
	}
}
