package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in the
	// store. This is the generic version of the entity-specific not found
	// errors.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrConflict is returned when an atomic read-modify-write keeps losing
	// to concurrent writers and runs out of retries.
	ErrConflict = errors.New("concurrent modification conflict")

	// ErrUnavailable is returned when the backing store cannot be reached.
	// Callers decide retry policy; the engine never recovers from this
	// locally.
	ErrUnavailable = errors.New("store unavailable")

	// ErrRecordNotFound indicates that the requested problem review record
	// does not exist. This is distinct from the normal zero-state: a problem
	// the user simply has not attempted yet is represented by a fresh record,
	// not by this error.
	ErrRecordNotFound = fmt.Errorf("%w: problem review record", ErrNotFound)

	// ErrStreakNotFound indicates that the requested study streak does not
	// exist.
	ErrStreakNotFound = fmt.Errorf("%w: study streak", ErrNotFound)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError is a custom error type for store-specific errors with additional
// context.
type StoreError struct {
	Entity    string // The entity type (e.g., "review_record", "study_streak")
	Operation string // The operation that failed (e.g., "get", "apply")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for StoreError.
func (e *StoreError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf(
			"%s operation on %s failed: %s: %v",
			e.Operation,
			e.Entity,
			e.Message,
			e.Err,
		)
	}
	return fmt.Sprintf("%s operation on %s failed: %s", e.Operation, e.Entity, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError with the given entity, operation,
// message, and wrapped error.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
