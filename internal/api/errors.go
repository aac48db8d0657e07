package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"taskhive/internal/platform/http/middleware"
	"taskhive/internal/shared/apperr"
)

const internalErrorMessage = "internal server error"

// StatusFor maps an error to its HTTP status code.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, apperr.ErrValidation), errors.Is(err, apperr.ErrInvalidCredentials):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// WriteError logs err and writes the matching status with an ErrorResponse.
// Unclassified errors are reported as a generic internal error.
func WriteError(c *gin.Context, op string, err error) {
	status := StatusFor(err)
	msg := apperr.Message(err)
	if status == http.StatusInternalServerError || msg == "" {
		status = http.StatusInternalServerError
		msg = internalErrorMessage
		slog.Error(op+" failed", "error", err, "remote_addr", c.ClientIP(), "request_id", c.GetString(middleware.ContextRequestID))
	} else {
		slog.Warn(op+" rejected", "error", err, "remote_addr", c.ClientIP(), "request_id", c.GetString(middleware.ContextRequestID))
	}
	c.AbortWithStatusJSON(status, ErrorResponse{Error: msg})
}
