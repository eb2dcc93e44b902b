package domain

import "fmt"

// ValidationError indicates that caller-supplied input is malformed or incomplete.
type ValidationError struct {
	Message string
}

// NewValidationError creates a ValidationError with the given message.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NotFoundError indicates that a requested entity does not exist.
type NotFoundError struct {
	Entity string
	Key    string
}

// NewNotFoundError creates a NotFoundError for the given entity and key.
func NewNotFoundError(entity, key string) *NotFoundError {
	return &NotFoundError{Entity: entity, Key: key}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Entity, e.Key)
}

// ConflictError indicates a concurrent-modification or state conflict.
type ConflictError struct {
	Message string
}

// NewConflictError creates a ConflictError with the given message.
func NewConflictError(message string) *ConflictError {
	return &ConflictError{Message: message}
}

func (e *ConflictError) Error() string {
	return e.Message
}

// InvalidStateError indicates a disallowed state-machine transition.
type InvalidStateError struct {
	From string
	To   string
}

// NewInvalidStateError creates an InvalidStateError for the given transition.
func NewInvalidStateError(from, to string) *InvalidStateError {
	return &InvalidStateError{From: from, To: to}
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// UnavailableError indicates that an external provider call failed. Inside the
// planner this is recovered by discarding the dependent candidate, never
// surfaced to the API caller.
type UnavailableError struct {
	Provider string
	Cause    error
}

// NewUnavailableError wraps a provider failure.
func NewUnavailableError(provider string, cause error) *UnavailableError {
	return &UnavailableError{Provider: provider, Cause: cause}
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("provider %s unavailable: %v", e.Provider, e.Cause)
	}
	return fmt.Sprintf("provider %s unavailable", e.Provider)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}
