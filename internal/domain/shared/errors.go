package shared

// ErrorKind classifies domain errors into caller-facing categories
type ErrorKind string

const (
	// ErrorKindValidation marks malformed or rule-violating input
	ErrorKindValidation ErrorKind = "VALIDATION"
	// ErrorKindNotFound marks lookups of unknown entities
	ErrorKindNotFound ErrorKind = "NOT_FOUND"
	// ErrorKindPermission marks actors attempting actions they may not perform
	ErrorKindPermission ErrorKind = "PERMISSION"
	// ErrorKindConflict marks transitions invalid from the current state
	ErrorKindConflict ErrorKind = "CONFLICT"
	// ErrorKindDependency marks failures of external collaborators (persistence, ledger)
	ErrorKindDependency ErrorKind = "DEPENDENCY"
)

// DomainError represents a domain-level error
type DomainError struct {
	Kind    ErrorKind `json:"kind"`
	Code    string    `json:"code"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error of the given kind
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError creates a validation error
func NewValidationError(code, message string) *DomainError {
	return NewDomainError(ErrorKindValidation, code, message)
}

// NewPermissionError creates a permission error
func NewPermissionError(code, message string) *DomainError {
	return NewDomainError(ErrorKindPermission, code, message)
}

// NewConflictError creates a conflict error
func NewConflictError(code, message string) *DomainError {
	return NewDomainError(ErrorKindConflict, code, message)
}

// NewDependencyError creates a dependency error
func NewDependencyError(code, message string) *DomainError {
	return NewDomainError(ErrorKindDependency, code, message)
}

// Common domain errors
var (
	ErrNotFound            = NewDomainError(ErrorKindNotFound, "NOT_FOUND", "Resource not found")
	ErrAlreadyExists       = NewConflictError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput        = NewValidationError("INVALID_INPUT", "Invalid input provided")
	ErrConcurrencyConflict = NewConflictError("CONCURRENCY_CONFLICT", "Resource was modified by another process")
	ErrForbidden           = NewPermissionError("FORBIDDEN", "Actor is not allowed to perform this action")
	ErrInvalidState        = NewConflictError("INVALID_STATE", "Operation not allowed in current state")
)

// KindOf returns the ErrorKind of err, or ErrorKindDependency for
// non-domain errors (infrastructure failures bubble up as dependency errors)
func KindOf(err error) ErrorKind {
	if de, ok := err.(*DomainError); ok {
		return de.Kind
	}
	return ErrorKindDependency
}
