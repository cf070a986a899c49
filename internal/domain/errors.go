package domain

import "fmt"

// ErrorKind classifies domain errors so transport layers can map them to
// status codes without string matching.
type ErrorKind int

const (
	KindValidation ErrorKind = iota
	KindNotFound
	KindConflict
	KindInvalidState
	KindUnauthorized
	KindForbidden
)

// Error is the common error type returned by domain and application code.
type Error struct {
	Kind    ErrorKind
	Message string
}

// Error returns the error message.
func (e *Error) Error() string {
	return e.Message
}

// NewValidationError creates an error for invalid input.
func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NewNotFoundError creates an error for a missing entity.
func NewNotFoundError(entity, id string) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s not found: %s", entity, id)}
}

// NewConflictError creates an error for a uniqueness or concurrency conflict.
func NewConflictError(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// NewInvalidStateError creates an error for an illegal state transition.
func NewInvalidStateError(from, to string) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf("cannot transition from %s to %s", from, to)}
}

// NewUnauthorizedError creates an error for missing or invalid credentials.
func NewUnauthorizedError(message string) *Error {
	return &Error{Kind: KindUnauthorized, Message: message}
}

// NewForbiddenError creates an error for an action the caller may not perform.
func NewForbiddenError(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}
