package handler

import (
	"errors"
	"net/http"

	"snapvault/internal/transport/httpdto"
	apperrors "snapvault/pkg/errors"

	"github.com/gin-gonic/gin"
)

// writeError is the single place domain errors become HTTP responses.
// Duplicate usernames and double-likes are reported as 400s, matching the
// validation-style contract of the API.
func writeError(c *gin.Context, err error) {
	status := statusFromErr(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal server error"
	}
	c.JSON(status, httpdto.NewErrorResponse(message))
}

func statusFromErr(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrInvalidInput),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrAlreadyExists):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrNotUploaded):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}
