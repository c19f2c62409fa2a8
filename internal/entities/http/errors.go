package http

import (
	"errors"
	"net/http"

	"github.com/GoSim-25-26J-441/portfolio-backend/internal/apperrors"
)

// GenericFailure is shown for every failure that is not the caller's fault.
const GenericFailure = "Something went wrong. Please try again."

// StatusFor maps an entity error to an HTTP status and a message safe to show.
func StatusFor(err error) (int, string) {
	var ve *apperrors.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Error()
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, "record not found"
	default:
		return http.StatusInternalServerError, GenericFailure
	}
}
