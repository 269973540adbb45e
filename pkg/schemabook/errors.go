package schemabook

import (
	"errors"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	ok, err := loader.Load(path)
//	if errors.Is(err, schemabook.ErrSourceUnavailable) {
//	    // Input workbook missing or unreadable
//	}
var (
	// ErrSourceUnavailable indicates the input workbook does not exist or
	// could not be opened as a supported format. This is the only fatal
	// pipeline error: Load aborts immediately and produces no catalog.
	ErrSourceUnavailable = errors.New("source workbook unavailable")

	// ErrNoObjects indicates a load completed but zero objects survived
	// validation, so nothing was written.
	ErrNoObjects = errors.New("no objects survived validation")

	// ErrInvalidConfig indicates the project configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrWriteFailed indicates every object that survived validation failed
	// to write, so a completed load still produced no documents.
	ErrWriteFailed = errors.New("all object documents failed to write")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrSourceUnavailable):
		return ExitSourceMissing
	case errors.Is(err, ErrNoObjects):
		return ExitNoObjects
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrWriteFailed):
		return ExitWriteFailed
	}

	return ExitGeneralError
}
