// Package errors provides error wrapping utilities and the sentinel errors
// shared by the import workflow.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Sentinel errors. Callers match them with Is.
var (
	// ErrSelectionEmpty means no eligible image was chosen.
	ErrSelectionEmpty = stderrors.New("no images selected")

	// ErrDocumentResolution means neither an active nor a new document could be obtained.
	ErrDocumentResolution = stderrors.New("document resolution failed")

	// ErrImportFailed marks a single image that could not be placed.
	ErrImportFailed = stderrors.New("image import failed")

	// ErrSessionUnavailable means the automation session could not be acquired.
	ErrSessionUnavailable = stderrors.New("automation session unavailable")

	// ErrNotSupported is returned by the host session on platforms without COM.
	ErrNotSupported = stderrors.New("not supported")
)

// Wrap wraps an error with additional context information.
// If err is nil, it returns nil without wrapping.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// Wrapf is Wrap with a formatted context.
func Wrapf(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// Join returns an error that wraps the given errors.
func Join(errs ...error) error {
	return stderrors.Join(errs...)
}
