package chooser

import (
	"errors"
	"fmt"
)

// NotFoundError is returned when a locale code or record id does not resolve.
type NotFoundError struct {
	Kind string // "locale", "snippet", "content type"
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

// ValidationError is returned for malformed identifiers or registrations.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// CollaboratorError wraps a failure of the store, search backend or locale
// registry. It is never retried here.
type CollaboratorError struct {
	Op  string
	Err error
}

func (e *CollaboratorError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *CollaboratorError) Unwrap() error { return e.Err }

// IsNotFound reports whether err (or anything it wraps) is a NotFoundError.
func IsNotFound(err error) bool {
	var e *NotFoundError
	return errors.As(err, &e)
}

// IsValidation reports whether err (or anything it wraps) is a ValidationError.
func IsValidation(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

// IsCollaborator reports whether err (or anything it wraps) is a CollaboratorError.
func IsCollaborator(err error) bool {
	var e *CollaboratorError
	return errors.As(err, &e)
}

func collaboratorErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &CollaboratorError{Op: op, Err: err}
}
