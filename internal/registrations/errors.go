package registrations

import (
	"errors"
	"net/http"
)

var (
	ErrNotFound       = errors.New("registration not found")
	ErrDuplicate      = errors.New("utr number already registered")
	ErrExists         = errors.New("registration already exists")
	ErrProofAttached  = errors.New("payment proof already attached")
	ErrInvalidStatus  = errors.New("status must be pending or confirmed")
	ErrInvalidCommand = errors.New("team name required")
)

// MapHTTPStatus converts domain errors to HTTP status codes.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrExists), errors.Is(err, ErrProofAttached):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrInvalidCommand):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
