package cli

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"syscall"

	"github.com/alnah/go-twilio-tools/internal/apierr"
	"github.com/alnah/go-twilio-tools/internal/date"
)

// Exit codes shared by both commands.
const (
	ExitOK        = 0
	ExitGeneral   = 1
	ExitUsage     = 2
	ExitSetup     = 3
	ExitAPI       = 4
	ExitCancelled = 5
	ExitInterrupt = 130
)

// ExitCode maps errors to process exit codes.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}

	// Check for context cancellation (interrupt).
	if errors.Is(err, context.Canceled) {
		return ExitInterrupt
	}

	if errors.Is(err, ErrCancelled) {
		return ExitCancelled
	}

	// Setup errors (ExitSetup = 3). Checked before the usage patterns since
	// their OS causes may read like usage errors ("invalid argument").
	if errors.Is(err, ErrMissingCredential) || errors.Is(err, ErrInvalidArchivePath) ||
		errors.Is(err, ErrArchiveCreation) {
		return ExitSetup
	}

	// Usage errors (ExitUsage = 2): Cobra flag/arg parsing errors and bad arguments.
	if errors.Is(err, ErrMissingArgument) || errors.Is(err, date.ErrInvalid) ||
		errors.Is(err, ErrInvalidDateRange) || isCobraUsageError(err) {
		return ExitUsage
	}

	if errors.Is(err, apierr.ErrAPI) {
		return ExitAPI
	}

	return ExitGeneral
}

// cobraUsageErrorPatterns contains error message substrings that indicate Cobra usage errors.
// Cobra doesn't expose typed errors, so string matching is the only reliable approach.
var cobraUsageErrorPatterns = []string{
	"required flag",             // Missing required flag
	"unknown flag",              // Flag doesn't exist
	"unknown shorthand",         // Short flag doesn't exist
	"unknown command",           // Subcommand doesn't exist
	"flag needs an argument",    // Flag provided without value
	"invalid argument",          // Invalid flag value type
	"if any flags in the group", // Mutually exclusive flag violation
	"accepts ",                  // Wrong number of arguments (e.g., "accepts 1 arg(s)")
	"requires at least",         // Too few arguments
	"requires at most",          // Too many arguments
}

// isCobraUsageError checks if an error is a Cobra usage/parsing error.
// API and OS errors are never usage errors even if their message matches.
func isCobraUsageError(err error) bool {
	if err == nil || errors.Is(err, apierr.ErrAPI) {
		return false
	}
	var pathErr *fs.PathError
	var errno syscall.Errno
	if errors.As(err, &pathErr) || errors.As(err, &errno) {
		return false
	}
	errMsg := err.Error()
	for _, pattern := range cobraUsageErrorPatterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}
	return false
}
