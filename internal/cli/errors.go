package cli

import "errors"

// CLI-specific sentinel errors.
// These are validation/usage errors that don't belong to domain packages.
// Invalid dates are reported with date.ErrInvalid and provider failures
// with apierr.ErrAPI.

var (
	// ErrMissingCredential indicates no account SID or auth token was found
	// in flags, environment or config file.
	ErrMissingCredential = errors.New("missing credential")

	// ErrMissingArgument indicates a required flag was not given.
	ErrMissingArgument = errors.New("missing required argument")

	// ErrInvalidDateRange indicates --after is not strictly before --before.
	ErrInvalidDateRange = errors.New("after date is not before the before date")

	// ErrInvalidArchivePath indicates the archive path exists and is not a directory.
	ErrInvalidArchivePath = errors.New("archive path is not a directory")

	// ErrArchiveCreation indicates the archive directory could not be created.
	ErrArchiveCreation = errors.New("unable to create archive directory")

	// ErrCancelled indicates the user declined the delete confirmation.
	ErrCancelled = errors.New("aborted")
)
