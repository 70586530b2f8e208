package shared

import "fmt"

// DomainError is an error with a stable machine-readable code.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func NewDomainErrorf(code, format string, args ...interface{}) *DomainError {
	return &DomainError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Common domain errors shared across packages.
var (
	ErrNotFound      = NewDomainError("NOT_FOUND", "entity not found")
	ErrAlreadyExists = NewDomainError("ALREADY_EXISTS", "entity already exists")
	ErrInvalidInput  = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidState  = NewDomainError("INVALID_STATE", "operation not allowed in current state")
	ErrUnauthorized  = NewDomainError("UNAUTHORIZED", "authentication required")
	ErrForbidden     = NewDomainError("FORBIDDEN", "operation not permitted")
)

// IsDomainError reports whether err carries the given code.
func IsDomainError(err error, code string) bool {
	de, ok := err.(*DomainError)
	return ok && de.Code == code
}
