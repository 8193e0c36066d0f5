package api

import (
	"errors"
	"net/http"

	"github.com/sansu-dojo/drill-api/internal/api/shared"
	"github.com/sansu-dojo/drill-api/internal/domain"
	"github.com/sansu-dojo/drill-api/internal/service/review"
	"github.com/sansu-dojo/drill-api/internal/service/streak"
	"github.com/sansu-dojo/drill-api/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes so no
// internal error type leaks to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, review.ErrRecordNotFound),
		errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, store.ErrConflict):
		return http.StatusConflict

	case errors.Is(err, domain.ErrInvalidStage),
		errors.Is(err, domain.ErrInvalidMode),
		errors.Is(err, domain.ErrMissingTimestamp),
		errors.Is(err, domain.ErrNegativeHints),
		errors.Is(err, domain.ErrNegativeDuration),
		errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrEmptyUnitID),
		errors.Is(err, domain.ErrEmptyProblemID),
		errors.Is(err, domain.ErrEmptyStreakUserID),
		errors.Is(err, streak.ErrInvalidProblemCount),
		errors.Is(err, store.ErrInvalidEntity):
		return http.StatusBadRequest

	case errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a sanitized, user-facing message for an error.
func GetSafeErrorMessage(err error) string {
	switch {
	case err == nil:
		return "An unexpected error occurred"

	case errors.Is(err, review.ErrRecordNotFound):
		return "Review record not found"
	case errors.Is(err, store.ErrStreakNotFound):
		return "Study streak not found"
	case errors.Is(err, store.ErrNotFound):
		return "Resource not found"

	case errors.Is(err, store.ErrConflict):
		return "The record was modified concurrently, please retry"

	case errors.Is(err, domain.ErrInvalidStage):
		return "Review stage must be between 0 and 3"
	case errors.Is(err, domain.ErrInvalidMode):
		return "Unknown study mode"
	case errors.Is(err, domain.ErrMissingTimestamp):
		return "Attempt timestamp is required"
	case errors.Is(err, domain.ErrNegativeHints),
		errors.Is(err, domain.ErrNegativeDuration):
		return "Attempt counters must not be negative"
	case errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrEmptyStreakUserID):
		return "User ID is required"
	case errors.Is(err, domain.ErrEmptyUnitID):
		return "Unit ID is required"
	case errors.Is(err, domain.ErrEmptyProblemID):
		return "Problem ID is required"
	case errors.Is(err, streak.ErrInvalidProblemCount):
		return "Problems solved must be a positive number"
	case errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"

	case errors.Is(err, store.ErrUnavailable):
		return "Storage is temporarily unavailable"

	default:
		return "An unexpected error occurred"
	}
}

// respondServiceError is the common error exit for handlers.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
}
