package apperrors

import "fmt"

// ValidationError rejects bad input before any mutation happens.
// Its message is safe to show to the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func Validation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError marks a stale-state write or an illegal state transition.
// The caller may re-fetch and try again; we never retry on their behalf.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

func Conflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// AuthorizationError rejects an operation the caller is not allowed to perform.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string { return e.Message }

func Authorization(format string, args ...any) *AuthorizationError {
	return &AuthorizationError{Message: fmt.Sprintf(format, args...)}
}

// PersistenceError wraps a store failure. The whole operation failed;
// nothing was committed.
type PersistenceError struct {
	Message string
	Err     error
}

func (e *PersistenceError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func Persistence(err error, format string, args ...any) *PersistenceError {
	return &PersistenceError{Message: fmt.Sprintf(format, args...), Err: err}
}
