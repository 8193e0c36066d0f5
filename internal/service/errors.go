// Package service holds the error vocabulary shared by the application
// services. Service methods return sentinel errors for expected conditions;
// unexpected failures are wrapped in a ServiceError so the API layer can map
// them without leaking internals.
package service

import "fmt"

// ServiceError carries the operation context of an unexpected service
// failure.
type ServiceError struct {
	Operation string // The operation that failed (e.g., "submit_attempt")
	Message   string // Error message
	Err       error  // Original error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// NewServiceError creates a new ServiceError with the given operation,
// message, and wrapped error.
func NewServiceError(operation, message string, err error) *ServiceError {
	return &ServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
