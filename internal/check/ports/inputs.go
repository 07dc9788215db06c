package ports

import (
	"context"

	"github.com/nathantilsley/hookcheck/internal/check/domain"
)

// HookUseCase is the driving port for running all enabled checks against a
// changeset.
type HookUseCase interface {
	Execute(ctx context.Context, files []string) ([]domain.Result, error)
}
