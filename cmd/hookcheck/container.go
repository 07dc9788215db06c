package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	consoleout "github.com/nathantilsley/hookcheck/internal/check/adapters/console_out"
	githubout "github.com/nathantilsley/hookcheck/internal/check/adapters/github_out"
	hookconfig "github.com/nathantilsley/hookcheck/internal/check/adapters/hook_config"
	yamllintcli "github.com/nathantilsley/hookcheck/internal/check/adapters/yamllint_cli"
	"github.com/nathantilsley/hookcheck/internal/check/app"
	"github.com/nathantilsley/hookcheck/internal/check/ports"
	"github.com/nathantilsley/hookcheck/internal/platform/config"
	ghclient "github.com/nathantilsley/hookcheck/internal/platform/github"
	"github.com/nathantilsley/hookcheck/internal/platform/gitrepo"
	"github.com/nathantilsley/hookcheck/internal/platform/telemetry"
)

// Container holds all application dependencies.
type Container struct {
	Config      config.Config
	Logger      *slog.Logger
	Repo        *gitrepo.GitRepo
	RepoRoot    string
	HookService ports.HookUseCase
}

// NewContainer builds and wires all dependencies. out receives check
// reports; dir is the directory the hook runs in.
func NewContainer(
	ctx context.Context,
	cfg config.Config,
	log *slog.Logger,
	tel *telemetry.Telemetry,
	dir string,
	out io.Writer,
	useColor bool,
) (*Container, error) {
	repo := gitrepo.New(dir, log)
	root, err := repo.Root(ctx)
	if err != nil {
		return nil, fmt.Errorf("locating repository root: %w", err)
	}

	var cfgSource ports.ConfigPort = hookconfig.New(root, cfg.ConfigFile)
	hookCfg, err := cfgSource.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading hook config: %w", err)
	}

	// Checkers, in the order they run
	yamlRunner := yamllintcli.New(log,
		yamllintcli.WithDir(root),
		yamllintcli.WithTimeout(cfg.LintTimeout),
	)
	yamlChecker, err := app.NewYAMLChecker(
		yamlRunner,
		hookCfg.Check(app.YAMLLintCheckName).Extensions,
		log,
		tel.Meter,
		tel.Tracer,
	)
	if err != nil {
		return nil, fmt.Errorf("creating yamllint checker: %w", err)
	}
	checkers := []ports.Checker{yamlChecker}

	// Reporters
	reporters := []ports.ReportingPort{consoleout.New(out, useColor)}
	if cfg.GitHubEnabled() {
		log.Info("github check run reporting enabled", "repository", cfg.GitHubRepository)
		client, err := ghclient.NewClient(cfg.GitHubAppID, cfg.GitHubInstallationID, cfg.GitHubPrivateKey)
		if err != nil {
			return nil, fmt.Errorf("creating github client: %w", err)
		}
		reporter, err := githubout.New(client, cfg.GitHubRepository, repo, log)
		if err != nil {
			return nil, fmt.Errorf("creating github reporter: %w", err)
		}
		reporters = append(reporters, reporter)
	}

	hookService := app.NewHookService(checkers, reporters, hookCfg, root, log)

	return &Container{
		Config:      cfg,
		Logger:      log,
		Repo:        repo,
		RepoRoot:    root,
		HookService: hookService,
	}, nil
}
