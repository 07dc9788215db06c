package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nathantilsley/hookcheck/internal/platform/gitrepo"
)

// hookScript is written to .git/hooks/pre-commit. Paths are relative to the
// repository root, which is where git runs hooks from.
const hookScript = `#!/bin/sh
# Installed by hookcheck -install
exec hookcheck "$@"
`

// installHook writes the pre-commit hook into repo's hooks directory and
// returns its path. An existing hook is only replaced when force is set.
func installHook(ctx context.Context, repo *gitrepo.GitRepo, force bool) (string, error) {
	hooksDir, err := repo.HooksDir(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(hooksDir, 0o755); err != nil {
		return "", fmt.Errorf("creating hooks directory: %w", err)
	}

	path := filepath.Join(hooksDir, "pre-commit")
	if _, err := os.Stat(path); err == nil && !force {
		return "", fmt.Errorf("%s already exists (use -force to overwrite)", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking existing hook: %w", err)
	}

	//nolint:gosec // G306: git hooks must be executable
	if err := os.WriteFile(path, []byte(hookScript), 0o755); err != nil {
		return "", fmt.Errorf("writing hook: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", fmt.Errorf("making hook executable: %w", err)
	}
	return path, nil
}
