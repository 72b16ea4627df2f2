package accounts

import (
	"errors"
	"net/http"
)

// Domain errors for account operations.
var (
	ErrNotFound           = errors.New("user not found")
	ErrDuplicate          = errors.New("username or email already exists")
	ErrInvalid            = errors.New("invalid account data")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInactive           = errors.New("account is disabled")
	ErrTokenRevoked       = errors.New("token has been revoked")
	ErrTokenOwner         = errors.New("token belongs to another user")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrInactive),
		errors.Is(err, ErrTokenRevoked):
		return http.StatusUnauthorized
	case errors.Is(err, ErrTokenOwner):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
