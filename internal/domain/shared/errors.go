package shared

import "fmt"

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// Is reports whether target is a DomainError with the same code.
// Handlers build descriptive messages with Newf; errors.Is still matches
// the sentinels below by code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Newf creates a new domain error with a formatted message
func Newf(code, format string, args ...any) *DomainError {
	return &DomainError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Error codes used across the engine
const (
	CodeNotFound          = "NOT_FOUND"
	CodeDuplicateName     = "DUPLICATE_NAME"
	CodeReferentialBlock  = "REFERENTIAL_BLOCK"
	CodeConflictingState  = "CONFLICTING_STATE"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeFormatError       = "FORMAT_ERROR"
	CodeInvalidInput      = "INVALID_INPUT"
)

// Common domain errors
var (
	ErrNotFound          = NewDomainError(CodeNotFound, "Resource not found")
	ErrDuplicateName     = NewDomainError(CodeDuplicateName, "Name already in use")
	ErrReferentialBlock  = NewDomainError(CodeReferentialBlock, "Resource is referenced and cannot be deleted")
	ErrConflictingState  = NewDomainError(CodeConflictingState, "Operation not allowed in current state")
	ErrInsufficientStock = NewDomainError(CodeInsufficientStock, "Insufficient stock available")
	ErrFormatError       = NewDomainError(CodeFormatError, "Malformed document")
	ErrInvalidInput      = NewDomainError(CodeInvalidInput, "Invalid input provided")
)
