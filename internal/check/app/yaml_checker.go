package app

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/nathantilsley/hookcheck/internal/check/domain"
	"github.com/nathantilsley/hookcheck/internal/check/ports"
	"github.com/nathantilsley/hookcheck/internal/platform/config"
)

// YAMLLintCheckName is the registration name of the yamllint check.
const YAMLLintCheckName = "yamllint"

// NoYAMLLintMessage returns the text reported instead of lint output when
// yamllint cannot be found. It names the active hook config file.
func NoYAMLLintMessage() string {
	return "yamllint is required for the yamllint plugin.\n" +
		"`pip install yamllint` or turn it off in your " + config.FileName() + " file."
}

// yamlLintDescriptor is off by default and needs a .yamllint config at the
// repository root.
var yamlLintDescriptor = domain.Descriptor{
	Name:          YAMLLintCheckName,
	Default:       domain.StateOff,
	RequiredFiles: []string{".yamllint"},
}

// YAMLChecker implements ports.Checker by running a LintRunner over the
// YAML files of a changeset.
type YAMLChecker struct {
	runner     ports.LintRunner
	extensions []string
	logger     *slog.Logger
	tracer     trace.Tracer
	runs       metric.Int64Counter
	findings   metric.Int64Counter
}

// NewYAMLChecker creates a YAMLChecker. A nil or empty extensions slice
// means domain.DefaultYAMLExtensions.
func NewYAMLChecker(
	runner ports.LintRunner,
	extensions []string,
	logger *slog.Logger,
	meter metric.Meter,
	tracer trace.Tracer,
) (*YAMLChecker, error) {
	if len(extensions) == 0 {
		extensions = domain.DefaultYAMLExtensions
	}

	runs, err := meter.Int64Counter("hookcheck.checks.run",
		metric.WithDescription("Checker invocations that reached the linter"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating run counter: %w", err)
	}
	findings, err := meter.Int64Counter("hookcheck.checks.findings",
		metric.WithDescription("Checker invocations that produced output"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating findings counter: %w", err)
	}

	return &YAMLChecker{
		runner:     runner,
		extensions: slices.Clone(extensions),
		logger:     logger.With("check", YAMLLintCheckName),
		tracer:     tracer,
		runs:       runs,
		findings:   findings,
	}, nil
}

// Descriptor returns the static registration record of the check.
func (c *YAMLChecker) Descriptor() domain.Descriptor {
	d := yamlLintDescriptor
	d.RequiredFiles = slices.Clone(d.RequiredFiles)
	return d
}

// Run lints the YAML files in files. It returns NoYAMLLintMessage when the
// linter is unavailable, "" when no file matches, and otherwise the linter's
// output unmodified. tempFolder is not used by this check.
func (c *YAMLChecker) Run(ctx context.Context, files []string, _ string) (string, error) {
	ctx, span := c.tracer.Start(ctx, "yamllint.run",
		trace.WithAttributes(attribute.Int("files.total", len(files))),
	)
	defer span.End()

	if !c.runner.Available(ctx) {
		c.logger.Warn("yamllint not available")
		span.SetAttributes(attribute.Bool("tool.available", false))
		return NoYAMLLintMessage(), nil
	}

	yamlFiles := domain.FilterByExtension(files, c.extensions)
	span.SetAttributes(attribute.Int("files.matched", len(yamlFiles)))
	if len(yamlFiles) == 0 {
		c.logger.Debug("no yaml files in changeset")
		return "", nil
	}

	c.logger.Info("linting yaml files", "count", len(yamlFiles))
	attrs := metric.WithAttributes(attribute.String("check", YAMLLintCheckName))
	c.runs.Add(ctx, 1, attrs)

	output, err := c.runner.Lint(ctx, yamlFiles)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "yamllint failed")
		return "", fmt.Errorf("running yamllint: %w", err)
	}

	if output != "" {
		c.findings.Add(ctx, 1, attrs)
		span.SetAttributes(attribute.Bool("findings", true))
	}
	return output, nil
}
