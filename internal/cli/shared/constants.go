// Package shared provides constants and helpers used across CLI subpackages.
package shared

import (
	"errors"
	"fmt"

	"github.com/ariel-frischer/anchorlog/internal/changelog"
	clierrors "github.com/ariel-frischer/anchorlog/internal/errors"
)

// Exit codes for the anchorlog CLI.
// These codes support scripting and CI integration.
const (
	// ExitSuccess indicates successful command execution
	ExitSuccess = 0

	// ExitFailure indicates a runtime failure, e.g. the changelog could not be written
	ExitFailure = 1

	// ExitInsufficientAnchors indicates fewer than two anchors resolved
	ExitInsufficientAnchors = 2

	// ExitInvalidArguments indicates invalid arguments, flags or configuration
	ExitInvalidArguments = 3

	// ExitRepositoryUnavailable indicates the repository could not be opened
	ExitRepositoryUnavailable = 4
)

// Command group IDs for organizing help output.
const (
	GroupChangelog     = "changelog"
	GroupInspection    = "inspection"
	GroupConfiguration = "configuration"
)

// ExitError carries a specific process exit code. It has no message of its
// own: the command already reported the problem.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// NewExitError returns an error that makes the process exit with code.
func NewExitError(code int) error {
	return &ExitError{Code: code}
}

// IsExitError reports whether err carries an exit code and nothing to print.
func IsExitError(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr)
}

// ExitCode maps an error returned by a command to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}

	if changelog.IsInsufficientAnchors(err) {
		return ExitInsufficientAnchors
	}

	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		switch cliErr.Category {
		case clierrors.Argument, clierrors.Configuration:
			return ExitInvalidArguments
		case clierrors.Prerequisite:
			return ExitRepositoryUnavailable
		}
	}

	return ExitFailure
}
