package shared

import "fmt"

// DomainError represents a business rule violation with a stable code that
// the transport layer maps to a protocol status.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewDomainError creates a domain error with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Common domain error codes.
const (
	ErrCodeNotFound      = "NOT_FOUND"
	ErrCodeAlreadyExists = "ALREADY_EXISTS"
	ErrCodeValidation    = "VALIDATION_ERROR"
	ErrCodeInvalidInput  = "INVALID_INPUT"
	ErrCodeInternal      = "INTERNAL_ERROR"
)

// Common domain errors used as sentinels across repositories and services.
var (
	ErrNotFound      = NewDomainError(ErrCodeNotFound, "entity not found")
	ErrAlreadyExists = NewDomainError(ErrCodeAlreadyExists, "entity already exists")
)

// NewNotFoundError creates a not-found error naming the entity and identifier.
func NewNotFoundError(entity, id string) *DomainError {
	return NewDomainError(ErrCodeNotFound, fmt.Sprintf("%s with identifier '%s' not found", entity, id))
}

// NewConflictError creates an already-exists error with a specific message.
func NewConflictError(message string) *DomainError {
	return NewDomainError(ErrCodeAlreadyExists, message)
}

// ValidationError is a domain error carrying every violated rule, so callers
// can surface the complete list instead of the first failure.
type ValidationError struct {
	DomainError
	Violations []string `json:"violations"`
}

func (e *ValidationError) Error() string {
	return e.DomainError.Error()
}

// NewValidationError creates a validation error from the collected violations.
func NewValidationError(message string, violations []string) *ValidationError {
	return &ValidationError{
		DomainError: DomainError{Code: ErrCodeValidation, Message: message},
		Violations:  violations,
	}
}
