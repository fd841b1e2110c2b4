package api

import (
	"fmt"
	"strings"
)

// Op identifies which service operation an error belongs to
type Op string

const (
	// OpDetect is the batch image detection call
	OpDetect Op = "detect"

	// OpComplaint is the complaint text generation call
	OpComplaint Op = "complaint"

	// OpExport is the PDF document generation call
	OpExport Op = "export"

	// OpDispatch is the email dispatch call
	OpDispatch Op = "dispatch"
)

// ValidationError represents a precondition violated before any call was made.
// No network attempt happens when one of these is returned.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// BusyError represents an overlapping operation of the same kind. The second
// trigger is rejected rather than queued so two responses can never race to
// replace the same state.
type BusyError struct {
	Op Op `json:"op"`
}

// Error implements the error interface
func (e *BusyError) Error() string {
	return fmt.Sprintf("%s operation already in flight", e.Op)
}

// ServiceError represents a remote call that failed: transport error,
// non-success HTTP status, or an unusable payload.
type ServiceError struct {
	// Op identifies the failed operation
	Op Op `json:"op"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// StatusCode for HTTP-level failures
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`

	// Retryable indicates if a manual retry is worth attempting
	Retryable bool `json:"retryable"`
}

// Error implements the error interface
func (e *ServiceError) Error() string {
	parts := []string{fmt.Sprintf("op=%s", e.Op)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *ServiceError) Unwrap() error {
	return e.Cause
}

// Is checks if the error matches the target operation
func (e *ServiceError) Is(target error) bool {
	if se, ok := target.(*ServiceError); ok {
		return e.Op == se.Op
	}
	return false
}

// StatusError represents a call that succeeded at the transport level but
// reported a non-success outcome, e.g. dispatch status not "sent". Distinct
// from ServiceError because the request demonstrably reached the service.
type StatusError struct {
	Op         Op     `json:"op"`
	Status     string `json:"status"`
	Diagnostic string `json:"diagnostic,omitempty"`
}

// Error implements the error interface
func (e *StatusError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("%s reported status '%s': %s", e.Op, e.Status, e.Diagnostic)
	}
	return fmt.Sprintf("%s reported status '%s'", e.Op, e.Status)
}

// Error constructors

// NewValidationError creates a validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// NewBusyError creates a busy error for the given operation
func NewBusyError(op Op) *BusyError {
	return &BusyError{Op: op}
}

// NewServiceError creates a service error
func NewServiceError(op Op, message string) *ServiceError {
	return &ServiceError{Op: op, Message: message}
}

// NewServiceErrorWithCause creates a service error with an underlying cause.
// Transport-level causes are marked retryable.
func NewServiceErrorWithCause(op Op, message string, cause error) *ServiceError {
	return &ServiceError{Op: op, Message: message, Cause: cause, Retryable: true}
}

// NewServiceErrorWithStatus creates a service error for a non-success HTTP status
func NewServiceErrorWithStatus(op Op, message string, statusCode int) *ServiceError {
	return &ServiceError{Op: op, Message: message, StatusCode: statusCode, Retryable: statusCode >= 500}
}

// NewStatusError creates a service-reported failure error
func NewStatusError(op Op, status, diagnostic string) *StatusError {
	return &StatusError{Op: op, Status: status, Diagnostic: diagnostic}
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	_, ok := err.(*ValidationError)
	return ok
}

// IsBusyError checks if an error is a busy error
func IsBusyError(err error) bool {
	_, ok := err.(*BusyError)
	return ok
}

// IsServiceError checks if an error is a failed remote call for the given operation
func IsServiceError(err error, op Op) bool {
	if se, ok := err.(*ServiceError); ok {
		return se.Op == op
	}
	return false
}

// IsStatusError checks if an error is a service-reported failure
func IsStatusError(err error) bool {
	_, ok := err.(*StatusError)
	return ok
}

// IsRetryableError checks if a manual retry may succeed
func IsRetryableError(err error) bool {
	if se, ok := err.(*ServiceError); ok {
		return se.Retryable
	}
	return false
}
