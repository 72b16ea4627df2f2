package facilities

import (
	"errors"
	"net/http"
)

// Domain errors for facility operations.
var (
	ErrNotFound  = errors.New("facility not found")
	ErrDuplicate = errors.New("facility name or code already exists")
	ErrInvalid   = errors.New("invalid facility")
	ErrForbidden = errors.New("insufficient facility permission")
)

// MapHTTPStatus maps domain errors to appropriate HTTP status codes.
func MapHTTPStatus(err error) int {
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrDuplicate) {
		return http.StatusConflict
	}
	if errors.Is(err, ErrInvalid) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrForbidden) {
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
