package dto

import (
	"net/http"

	"github.com/printmarket/backend/internal/domain/shared"
)

// Transport-level error codes (domain errors carry their own codes)
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeUnauthorized is used when actor resolution fails
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeForbidden is used when the actor lacks permission
	ErrCodeForbidden = "ERR_FORBIDDEN"
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeInternal is used for unexpected server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// ErrorKindHTTPStatus maps domain error kinds to HTTP status codes
var ErrorKindHTTPStatus = map[shared.ErrorKind]int{
	shared.ErrorKindValidation: http.StatusBadRequest,
	shared.ErrorKindNotFound:   http.StatusNotFound,
	shared.ErrorKindPermission: http.StatusForbidden,
	shared.ErrorKindConflict:   http.StatusConflict,
	shared.ErrorKindDependency: http.StatusBadGateway,
}

// invalidStateCodes are conflict codes reported as 422: the resource exists
// and the request is well formed, but the operation is not allowed from the
// current lifecycle state.
var invalidStateCodes = map[string]bool{
	"INVALID_STATE":        true,
	"NO_SHOP_SELECTED":     true,
	"NO_PRICING_AGREEMENT": true,
}

// HTTPStatusFor returns the HTTP status code for a domain error
func HTTPStatusFor(err *shared.DomainError) int {
	if err.Kind == shared.ErrorKindConflict && invalidStateCodes[err.Code] {
		return http.StatusUnprocessableEntity
	}
	if status, ok := ErrorKindHTTPStatus[err.Kind]; ok {
		return status
	}
	return http.StatusInternalServerError
}
