package payments

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrValidation is the parent of every local input error. Nothing remote
	// has been called when it is returned.
	ErrValidation        = errors.New("validation failed")
	ErrInvalidFile       = fmt.Errorf("%w: invalid file", ErrValidation)
	ErrReferenceTooShort = fmt.Errorf("%w: reference too short", ErrValidation)

	ErrDuplicateReference = errors.New("utr number already used by another registration")
	ErrUpload             = errors.New("screenshot upload failed")
	ErrPersistence        = errors.New("saving payment proof failed")

	ErrNotFound         = errors.New("registration not found")
	ErrAlreadySubmitted = errors.New("payment proof already submitted")
	ErrSubmitted        = errors.New("form already submitted")
	ErrBusy             = errors.New("another operation is in progress")

	// ErrRefresh means the proof was saved but the confirmation view could
	// not be reloaded.
	ErrRefresh = errors.New("confirmation refresh failed")
)

// MapHTTPStatus converts workflow errors to HTTP status codes. Errors may wrap
// several sentinels; the first match in this order wins.
func MapHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrRefresh):
		return http.StatusInternalServerError
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrDuplicateReference),
		errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrSubmitted),
		errors.Is(err, ErrBusy):
		return http.StatusConflict
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpload):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}
