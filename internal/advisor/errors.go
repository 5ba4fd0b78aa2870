package advisor

import (
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no client is registered for a backend.
var ErrNotConfigured = errors.New("API key not found or not set")

// ExternalServiceError reports a failed language-model call.
type ExternalServiceError struct {
	Backend Backend
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Backend.DisplayName(), e.Err)
}

func (e *ExternalServiceError) Unwrap() error {
	return e.Err
}

// Diagnostic renders the inline text shown to users in place of advice.
func (e *ExternalServiceError) Diagnostic() string {
	if errors.Is(e.Err, ErrNotConfigured) {
		return fmt.Sprintf("[%s] %s.", e.Backend.DisplayName(), ErrNotConfigured)
	}
	return fmt.Sprintf("[%s Error] %v", e.Backend.DisplayName(), e.Err)
}
