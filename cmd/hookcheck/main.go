// Package main provides the hookcheck git pre-commit hook.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/nathantilsley/hookcheck/internal/check/domain"
	"github.com/nathantilsley/hookcheck/internal/platform/config"
	"github.com/nathantilsley/hookcheck/internal/platform/gitrepo"
	"github.com/nathantilsley/hookcheck/internal/platform/logger"
	"github.com/nathantilsley/hookcheck/internal/platform/telemetry"
)

// Exit codes. A failed check blocks the commit like an error does, but the
// two are kept apart for scripts.
const (
	exitOK     = 0
	exitFailed = 1
	exitError  = 2
)

// errChecksFailed signals that at least one check produced output.
var errChecksFailed = errors.New("checks failed")

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	switch {
	case err == nil:
		os.Exit(exitOK)
	case errors.Is(err, errChecksFailed):
		os.Exit(exitFailed)
	default:
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(exitError)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("hookcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		install = fs.Bool("install", false, "install hookcheck as the repository's pre-commit hook")
		force   = fs.Bool("force", false, "with -install, overwrite an existing pre-commit hook")
		dir     = fs.String("C", "", "run as if started in this directory")
	)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: hookcheck [flags] [files...]\n\n")
		fmt.Fprintf(stderr, "Runs the enabled checks against files, or against the staged\n")
		fmt.Fprintf(stderr, "changeset when no files are given.\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Initialize logger
	log := logger.New(cfg.LogLevel, stderr)

	if *install {
		path, err := installHook(ctx, gitrepo.New(*dir, log), *force)
		if err != nil {
			return fmt.Errorf("installing hook: %w", err)
		}
		fmt.Fprintf(stdout, "installed pre-commit hook at %s\n", path)
		return nil
	}

	tel, err := telemetry.New(ctx, cfg.OTelEnabled)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			log.Warn("telemetry shutdown failed", "error", err)
		}
	}()

	// Build dependency container
	container, err := NewContainer(ctx, cfg, log, tel, *dir, stdout, os.Getenv("NO_COLOR") == "")
	if err != nil {
		return fmt.Errorf("building container: %w", err)
	}

	var files []string
	if fs.NArg() > 0 {
		files, err = repoRelative(container.RepoRoot, *dir, fs.Args())
		if err != nil {
			return fmt.Errorf("resolving file arguments: %w", err)
		}
	} else {
		files, err = container.Repo.StagedFiles(ctx)
		if err != nil {
			return fmt.Errorf("listing staged files: %w", err)
		}
	}

	results, err := container.HookService.Execute(ctx, files)
	if err != nil {
		return err
	}
	if len(domain.Failed(results)) > 0 {
		return errChecksFailed
	}
	return nil
}

// repoRelative rewrites file arguments, given relative to base (the -C
// directory, or the working directory when empty), as paths relative to the
// repository root, where checks run. Staged files are already root-relative.
func repoRelative(root, base string, files []string) ([]string, error) {
	base, err := filepath.Abs(base)
	if err != nil {
		return nil, err
	}
	// git reports the root with symlinks resolved.
	if resolved, err := filepath.EvalSymlinks(base); err == nil {
		base = resolved
	}
	if resolved, err := filepath.EvalSymlinks(root); err == nil {
		root = resolved
	}

	out := make([]string, 0, len(files))
	for _, f := range files {
		p := f
		if !filepath.IsAbs(p) {
			p = filepath.Join(base, p)
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		out = append(out, rel)
	}
	return out, nil
}
