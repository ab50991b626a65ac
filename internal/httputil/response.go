// Package httputil provides HTTP utility functions for request and response handling.
package httputil

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "github.com/allisson/identity/internal/errors"
)

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// errorMapping pairs a sentinel with the status and public body it maps to.
type errorMapping struct {
	sentinel   error
	statusCode int
	response   ErrorResponse
}

// errorMappings is checked in order; the first sentinel found in the chain wins.
var errorMappings = []errorMapping{
	{apperrors.ErrNotFound, http.StatusNotFound, ErrorResponse{
		Error: "not_found", Message: "The requested resource was not found",
	}},
	{apperrors.ErrConflict, http.StatusConflict, ErrorResponse{
		Error: "conflict", Message: "A conflict occurred with existing data",
	}},
	{apperrors.ErrInvalidInput, http.StatusUnprocessableEntity, ErrorResponse{
		Error: "invalid_input", Message: "The request contains invalid data",
	}},
	{apperrors.ErrUnauthorized, http.StatusUnauthorized, ErrorResponse{
		Error: "unauthorized", Message: "Authentication is required",
	}},
	{apperrors.ErrForbidden, http.StatusForbidden, ErrorResponse{
		Error: "forbidden", Message: "You don't have permission to access this resource",
	}},
}

var internalErrorResponse = ErrorResponse{
	Error:   "internal_error",
	Message: "An internal error occurred",
}

// HandleErrorGin maps domain errors to HTTP status codes and writes a JSON response.
// The full error is logged; the response only carries a generic code and message,
// so a wrong password and an unknown account produce identical bodies.
func HandleErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if err == nil {
		return
	}

	statusCode, response := http.StatusInternalServerError, internalErrorResponse
	for _, m := range errorMappings {
		if apperrors.Is(err, m.sentinel) {
			statusCode, response = m.statusCode, m.response
			break
		}
	}

	if logger != nil {
		level := slog.LevelWarn
		if statusCode >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		logger.Log(c.Request.Context(), level, "request failed",
			slog.Int("status_code", statusCode),
			slog.String("error_code", response.Error),
			slog.Any("error", err),
		)
	}

	c.JSON(statusCode, response)
}

// HandleBadRequestGin writes a 400 Bad Request response for malformed JSON or parameters.
func HandleBadRequestGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("bad request", slog.Any("error", err))
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:   "bad_request",
		Message: "The request body could not be parsed",
	})
}

// HandleValidationErrorGin writes a 422 Unprocessable Entity response for validation errors.
// Validation messages only describe request fields, so they are returned as-is.
func HandleValidationErrorGin(c *gin.Context, err error, logger *slog.Logger) {
	if logger != nil {
		logger.Warn("validation failed", slog.Any("error", err))
	}

	c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
		Error:   "validation_error",
		Message: err.Error(),
	})
}
