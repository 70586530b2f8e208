package dto

import "net/http"

// Error codes produced by the HTTP layer itself. Domain and
// application errors carry their own codes; this file maps all of them
// to HTTP statuses.
const (
	ErrCodeBadRequest   = "BAD_REQUEST"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeUnauthorized = "UNAUTHORIZED"
	ErrCodeForbidden    = "FORBIDDEN"
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInternal     = "INTERNAL_ERROR"
	ErrCodeRateLimited  = "RATE_LIMITED"
	ErrCodeTooLarge     = "REQUEST_TOO_LARGE"
	ErrCodeFileTooLarge = "FILE_TOO_LARGE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes.
var ErrorCodeHTTPStatus = map[string]int{
	// Input problems -> 400 Bad Request
	ErrCodeBadRequest:       http.StatusBadRequest,
	ErrCodeInvalidInput:     http.StatusBadRequest,
	"INVALID_QUANTITY":      http.StatusBadRequest,
	"INVALID_EMAIL":         http.StatusBadRequest,
	"INVALID_PASSWORD":      http.StatusBadRequest,
	"INVALID_ROLE":          http.StatusBadRequest,
	"INVALID_CONTACT":       http.StatusBadRequest,
	"INVALID_SHOP_NAME":     http.StatusBadRequest,
	"INVALID_STATUS":        http.StatusBadRequest,
	"INVALID_CONFIRM_TOKEN": http.StatusBadRequest,

	// Auth problems
	ErrCodeUnauthorized:   http.StatusUnauthorized,
	"INVALID_CREDENTIALS": http.StatusUnauthorized,
	"TOKEN_EXPIRED":       http.StatusUnauthorized,
	"INVALID_TOKEN":       http.StatusUnauthorized,
	"TOKEN_REVOKED":       http.StatusUnauthorized,
	ErrCodeForbidden:      http.StatusForbidden,
	"ACCOUNT_INACTIVE":    http.StatusForbidden,

	// Missing resources -> 404 Not Found
	ErrCodeNotFound:     http.StatusNotFound,
	"ORDER_NOT_FOUND":   http.StatusNotFound,
	"CONTACT_NOT_FOUND": http.StatusNotFound,
	"PRODUCT_NOT_FOUND": http.StatusNotFound,
	"SHOP_NOT_FOUND":    http.StatusNotFound,

	// Conflicts and business rules
	"ALREADY_EXISTS":            http.StatusConflict,
	"INVALID_STATE":             http.StatusUnprocessableEntity,
	"INVALID_STATUS_TRANSITION": http.StatusUnprocessableEntity,
	"EMPTY_BASKET":              http.StatusUnprocessableEntity,
	"CONTACT_LIMIT":             http.StatusUnprocessableEntity,

	// Everything else
	ErrCodeFileTooLarge: http.StatusRequestEntityTooLarge,
	ErrCodeTooLarge:     http.StatusRequestEntityTooLarge,
	ErrCodeRateLimited:  http.StatusTooManyRequests,
	ErrCodeInternal:     http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code.
// Unknown codes map to 500 Internal Server Error.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
