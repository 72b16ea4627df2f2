package permissions

import (
	"errors"
	"net/http"
)

// Domain errors for grant operations.
var (
	ErrNotFound      = errors.New("grant not found")
	ErrDuplicate     = errors.New("user already has a grant on this facility")
	ErrInvalid       = errors.New("invalid grant")
	ErrInvalidLevel  = errors.New("invalid permission level")
	ErrUnknownTarget = errors.New("user or facility does not exist")
	ErrForbidden     = errors.New("facility admin permission required")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, ErrInvalid),
		errors.Is(err, ErrInvalidLevel),
		errors.Is(err, ErrUnknownTarget):
		return http.StatusBadRequest
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
