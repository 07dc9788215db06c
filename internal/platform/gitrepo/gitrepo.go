// Package gitrepo queries the local git repository a hook runs in: its root,
// the staged changeset and the HEAD commit.
package gitrepo

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo runs git commands against a single working tree.
type GitRepo struct {
	dir    string
	logger *slog.Logger
}

// New creates a GitRepo for the working tree containing dir. No I/O is
// performed; an empty dir means the process working directory.
func New(dir string, logger *slog.Logger) *GitRepo {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &GitRepo{
		dir:    dir,
		logger: logger,
	}
}

// Root returns the absolute path of the top-level working tree directory.
func (r *GitRepo) Root(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "--show-toplevel")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// HooksDir returns the absolute path of the directory git reads hooks from.
func (r *GitRepo) HooksDir(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "--git-path", "hooks")
	if err != nil {
		return "", err
	}
	dir := strings.TrimSpace(string(out))
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	base := r.dir
	if base == "" {
		if base, err = os.Getwd(); err != nil {
			return "", fmt.Errorf("resolving working directory: %w", err)
		}
	}
	return filepath.Join(base, dir), nil
}

// HeadSHA returns the commit SHA of HEAD.
func (r *GitRepo) HeadSHA(ctx context.Context) (string, error) {
	out, err := r.git(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// StagedFiles implements ports.ChangesetPort. It lists files added, copied,
// modified or renamed in the index, relative to the repository root, in the
// order git reports them. Deleted files are excluded since there is nothing
// left to check.
func (r *GitRepo) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := r.git(ctx, "diff", "--cached", "--name-only", "--diff-filter=ACMR", "-z")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, f := range bytes.Split(out, []byte{0}) {
		if len(f) == 0 {
			continue
		}
		files = append(files, string(f))
	}

	r.logger.Debug("staged files", "count", len(files))
	return files, nil
}

// git runs a git subcommand in r.dir and returns its stdout.
func (r *GitRepo) git(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("git %s failed: %w\noutput: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}
	return stdout.Bytes(), nil
}
