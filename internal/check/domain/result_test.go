package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestFailedAndCountByOutcome(t *testing.T) {
	results := []Result{
		{Check: "yamllint", Output: ""},
		{Check: "flake8", Output: "E501 line too long"},
		{Check: "pdb", Output: "breakpoint left in a.py"},
	}

	failed := Failed(results)
	if len(failed) != 2 {
		t.Fatalf("len(Failed()) = %d, want 2", len(failed))
	}
	if failed[0].Check != "flake8" || failed[1].Check != "pdb" {
		t.Errorf("Failed() order = %v, want flake8 then pdb", failed)
	}

	passed, failedCount := CountByOutcome(results)
	if passed != 1 || failedCount != 2 {
		t.Errorf("CountByOutcome() = (%d, %d), want (1, 2)", passed, failedCount)
	}
}

func TestSubprocessError(t *testing.T) {
	err := fmt.Errorf("yaml check: %w", NewSubprocessError("yamllint", ErrLintTimeout))

	if !IsSubprocessError(err) {
		t.Error("IsSubprocessError() = false, want true")
	}
	if !errors.Is(err, ErrLintTimeout) {
		t.Error("errors.Is(err, ErrLintTimeout) = false, want true")
	}
	if IsSubprocessError(ErrToolUnavailable) {
		t.Error("IsSubprocessError(ErrToolUnavailable) = true, want false")
	}
	want := "yaml check: running yamllint: lint tool timed out"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}
