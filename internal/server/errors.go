// Package server provides the HTTP REST API for the career mentor.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jonathan/career-mentor/internal/profile"
	"github.com/jonathan/career-mentor/internal/recommend"
	"github.com/jonathan/career-mentor/internal/resume"
	"github.com/jonathan/career-mentor/internal/session"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	switch {
	case errors.As(err, &validationErr),
		errors.Is(err, profile.ErrInvalidID),
		errors.Is(err, recommend.ErrInvalidThreshold),
		errors.Is(err, resume.ErrUnsupportedFormat),
		errors.Is(err, session.ErrInvalidFeedback):
		return http.StatusBadRequest
	case errors.Is(err, recommend.ErrRoleNotFound):
		return http.StatusNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// errorCode returns the short machine-readable code for a status.
func errorCode(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusGatewayTimeout:
		return "timeout"
	case http.StatusTooManyRequests:
		return "rate_limit_exceeded"
	default:
		return "internal_error"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("failed to encode JSON response", slog.Any("error", err))
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": errorCode(status), "message": message})
}

// writeFailure maps err through HTTPStatus. Server-side failures are logged.
func writeFailure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		slog.Error("request failed", slog.Any("error", err))
	}
	writeError(w, status, err.Error())
}
