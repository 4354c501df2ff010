package errors

import (
	"errors"
	"net/http"
)

// MapToHTTPStatus translates domain errors into response codes.
// Unknown errors are reported as 500.
func MapToHTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidPayload), errors.Is(err, ErrIDRequired), errors.Is(err, ErrNoRefreshToken):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized), errors.Is(err, ErrInvalidToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrStoreNotConfigured):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
