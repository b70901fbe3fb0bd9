// Package corerrors collects the error taxonomy the core reports to
// callers (spec §7). Per-file and per-pair errors are recovered locally by
// whoever encounters them; comparison-wide errors abort the in-progress
// comparison. Nothing here is retried automatically — recovery policy
// belongs to the caller.
package corerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per taxonomy entry in spec §7.
var (
	ErrPathNotFound          = errors.New("path-not-found")
	ErrFileTooLarge          = errors.New("file-too-large")
	ErrParseBudgetExceeded   = errors.New("parse-budget-exceeded")
	ErrParseFailed           = errors.New("parse-failed")
	ErrKernelBudgetExceeded  = errors.New("kernel-budget-exceeded")
	ErrBudgetExceeded        = errors.New("budget-exceeded")
	ErrCancelled             = errors.New("cancelled")
	ErrComparisonNotFound    = errors.New("comparison-not-found")
	ErrFunctionNotFound      = errors.New("function-not-found")
	ErrPoolNotStarted        = errors.New("worker pool not started")
	ErrPoolStopped           = errors.New("worker pool stopped")
)

// InvariantError is fatal to the comparison that produced it, never to the
// process (spec §7). It always carries the comparison id it was raised
// against so the failure can be correlated after the fact.
type InvariantError struct {
	Message      string
	ComparisonID string
}

func (e *InvariantError) Error() string {
	if e.ComparisonID == "" {
		return fmt.Sprintf("internal-invariant-violation: %s", e.Message)
	}
	return fmt.Sprintf("internal-invariant-violation [%s]: %s", e.ComparisonID, e.Message)
}

// Invariant builds an InvariantError for the given comparison id.
func Invariant(comparisonID, format string, args ...any) error {
	return &InvariantError{
		Message:      fmt.Sprintf(format, args...),
		ComparisonID: comparisonID,
	}
}
