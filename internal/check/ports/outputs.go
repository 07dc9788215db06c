package ports

import (
	"context"

	"github.com/nathantilsley/hookcheck/api"
	"github.com/nathantilsley/hookcheck/internal/check/domain"
)

// Checker is a single hook plugin. Run returns the textual findings for
// files, or "" when there is nothing to report. tempFolder is a scratch
// directory owned by the caller.
type Checker interface {
	Descriptor() domain.Descriptor
	Run(ctx context.Context, files []string, tempFolder string) (string, error)
}

// LintRunner abstracts an external linter so the checker can be exercised
// without the real binary.
type LintRunner interface {
	// Available reports whether the linter can be invoked at all.
	Available(ctx context.Context) bool
	// Lint runs the linter over paths and returns its combined output.
	// Findings are output, not errors.
	Lint(ctx context.Context, paths []string) (string, error)
}

// ChangesetPort abstracts listing the files staged for commit.
type ChangesetPort interface {
	StagedFiles(ctx context.Context) ([]string, error)
}

// ConfigPort abstracts loading the per-check hook configuration.
type ConfigPort interface {
	Load(ctx context.Context) (api.HookConfig, error)
}

// ReportingPort abstracts publishing the results of a hook run.
type ReportingPort interface {
	Report(ctx context.Context, results []domain.Result) error
}
