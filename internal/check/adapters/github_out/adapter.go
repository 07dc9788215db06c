// Package githubout publishes hook results as a GitHub check run.
package githubout

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	gogithub "github.com/google/go-github/v68/github"

	"github.com/nathantilsley/hookcheck/internal/check/domain"
)

const (
	checkRunName       = "hookcheck"
	checkRunTitle      = "Pre-commit checks"
	maxCheckRunTextLen = 65535
)

// HeadResolver returns the commit the check run is attached to.
type HeadResolver interface {
	HeadSHA(ctx context.Context) (string, error)
}

// Adapter implements ports.ReportingPort by creating one completed check run
// per hook run via the GitHub Checks API.
type Adapter struct {
	client *gogithub.Client
	owner  string
	repo   string
	head   HeadResolver
	logger *slog.Logger
}

// New creates a GitHub reporting adapter. repository is "owner/repo" as in
// GITHUB_REPOSITORY.
func New(client *gogithub.Client, repository string, head HeadResolver, logger *slog.Logger) (*Adapter, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return nil, fmt.Errorf("invalid repository %q: want owner/repo", repository)
	}
	return &Adapter{
		client: client,
		owner:  owner,
		repo:   repo,
		head:   head,
		logger: logger,
	}, nil
}

// Report creates a completed check run on HEAD summarizing results.
func (a *Adapter) Report(ctx context.Context, results []domain.Result) error {
	sha, err := a.head.HeadSHA(ctx)
	if err != nil {
		return fmt.Errorf("resolving head commit: %w", err)
	}

	conclusion, summary, text := formatCheckRun(results)
	a.logger.Info("creating check run", "sha", sha, "conclusion", conclusion)

	checkRun, _, err := a.client.Checks.CreateCheckRun(ctx, a.owner, a.repo, gogithub.CreateCheckRunOptions{
		Name:       checkRunName,
		HeadSHA:    sha,
		Status:     gogithub.Ptr("completed"),
		Conclusion: gogithub.Ptr(conclusion),
		Output: &gogithub.CheckRunOutput{
			Title:   gogithub.Ptr(checkRunTitle),
			Summary: gogithub.Ptr(summary),
			Text:    gogithub.Ptr(text),
		},
	})
	if err != nil {
		return fmt.Errorf("creating check run: %w", err)
	}

	a.logger.Info("check run created", "checkRunID", checkRun.GetID())
	return nil
}

// formatCheckRun builds the conclusion, summary, and collapsible text for the check run.
func formatCheckRun(results []domain.Result) (conclusion, summary, text string) {
	passed, failed := domain.CountByOutcome(results)

	conclusion = "success"
	switch {
	case failed > 0:
		conclusion = "failure"
	case len(results) == 0:
		conclusion = "neutral"
	}

	summary = fmt.Sprintf("Ran %d check(s): %d passed, %d failed", len(results), passed, failed)

	var sb strings.Builder
	for _, r := range results {
		if r.Passed() {
			fmt.Fprintf(&sb, "- `%s` passed\n", r.Check)
			continue
		}
		fmt.Fprintf(&sb, "<details><summary><code>%s</code> failed</summary>\n\n", r.Check)
		fmt.Fprintf(&sb, "```\n%s\n```\n\n</details>\n", strings.TrimRight(r.Output, "\n"))
	}
	return conclusion, summary, truncateIfNeeded(sb.String())
}

// truncateIfNeeded keeps text within the check run limit, cutting on a rune
// boundary so linter output stays valid UTF-8.
func truncateIfNeeded(text string) string {
	if len(text) > maxCheckRunTextLen {
		truncMsg := "\n\n... (output truncated)"
		cut := maxCheckRunTextLen - len(truncMsg)
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		return text[:cut] + truncMsg
	}
	return text
}
