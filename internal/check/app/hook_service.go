package app

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/nathantilsley/hookcheck/api"
	"github.com/nathantilsley/hookcheck/internal/check/domain"
	"github.com/nathantilsley/hookcheck/internal/check/ports"
)

// HookService implements ports.HookUseCase by running every enabled checker
// in registration order against the changeset and handing the results to
// the reporters.
type HookService struct {
	checkers  []ports.Checker
	reporters []ports.ReportingPort
	config    api.HookConfig
	repoRoot  string // required files are resolved against this
	logger    *slog.Logger
}

// NewHookService creates a new HookService.
func NewHookService(
	checkers []ports.Checker,
	reporters []ports.ReportingPort,
	cfg api.HookConfig,
	repoRoot string,
	logger *slog.Logger,
) *HookService {
	return &HookService{
		checkers:  checkers,
		reporters: reporters,
		config:    cfg,
		repoRoot:  repoRoot,
		logger:    logger,
	}
}

// Execute runs the enabled checkers sequentially. A checker returning an
// error aborts the run; no results are reported in that case.
func (s *HookService) Execute(ctx context.Context, files []string) ([]domain.Result, error) {
	if len(files) == 0 {
		s.logger.Info("no files to check")
	}

	tempFolder, err := os.MkdirTemp("", "hookcheck-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp folder: %w", err)
	}
	defer os.RemoveAll(tempFolder)

	var results []domain.Result
	for _, checker := range s.checkers {
		desc := checker.Descriptor()

		if !s.enabled(desc) {
			s.logger.Debug("check disabled, skipping", "check", desc.Name)
			continue
		}

		missing, err := s.missingRequiredFiles(desc)
		if err != nil {
			return nil, err
		}
		if len(missing) > 0 {
			s.logger.Warn("required files missing", "check", desc.Name, "missing", missing)
			results = append(results, domain.Result{
				Check:  desc.Name,
				Output: fmt.Sprintf("%s: required file(s) missing: %s", desc.Name, strings.Join(missing, ", ")),
			})
			continue
		}

		s.logger.Debug("running check", "check", desc.Name)
		output, err := checker.Run(ctx, files, tempFolder)
		if err != nil {
			return nil, fmt.Errorf("check %s: %w", desc.Name, err)
		}
		results = append(results, domain.Result{Check: desc.Name, Output: output})
	}

	passed, failed := domain.CountByOutcome(results)
	s.logger.Info("checks complete", "passed", passed, "failed", failed)

	for _, r := range s.reporters {
		if err := r.Report(ctx, results); err != nil {
			s.logger.Error("failed to report results", "error", err)
		}
	}

	return results, nil
}

// enabled applies the config override, if any, over the descriptor default.
func (s *HookService) enabled(desc domain.Descriptor) bool {
	state := desc.Default
	if v := s.config.Check(desc.Name).State; v != "" {
		parsed, err := domain.ParseState(v)
		if err != nil {
			s.logger.Warn("ignoring invalid check state", "check", desc.Name, "state", v)
		} else {
			state = parsed
		}
	}
	return state == domain.StateOn
}

func (s *HookService) missingRequiredFiles(desc domain.Descriptor) ([]string, error) {
	var missing []string
	for _, f := range desc.RequiredFiles {
		_, err := os.Stat(filepath.Join(s.repoRoot, f))
		if errors.Is(err, fs.ErrNotExist) {
			missing = append(missing, f)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("checking required file %s for %s: %w", f, desc.Name, err)
		}
	}
	return missing, nil
}
