// Package retry runs outbound calls with exponential backoff on transient failures.
package retry

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"net"
	"net/http"
	"time"

	"google.golang.org/api/googleapi"
)

// Config controls retry behavior.
type Config struct {
	MaxRetries  int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// Default suits LLM and job-search calls: two retries after the first attempt.
var Default = Config{
	MaxRetries:  2,
	InitialWait: 500 * time.Millisecond,
	MaxWait:     5 * time.Second,
	Multiplier:  2.0,
}

// Do retries fn up to MaxRetries times with exponential backoff.
// Non-retryable errors and context cancellation return immediately.
func Do[T any](ctx context.Context, rc Config, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt <= rc.MaxRetries; attempt++ {
		if ctx.Err() != nil {
			return zero, ctx.Err()
		}

		result, err := fn()
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !IsRetryable(err) {
			return zero, err
		}

		if attempt < rc.MaxRetries {
			wait := rc.backoff(attempt)
			slog.Debug("retrying", slog.Int("attempt", attempt+1), slog.Duration("wait", wait), slog.Any("error", err))
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}
	}
	return zero, lastErr
}

func (rc Config) backoff(attempt int) time.Duration {
	mult := rc.Multiplier
	if mult < 1 {
		mult = 1
	}
	wait := time.Duration(float64(rc.InitialWait) * math.Pow(mult, float64(attempt)))
	if rc.MaxWait > 0 && wait > rc.MaxWait {
		wait = rc.MaxWait
	}
	return wait
}

// StatusError reports an HTTP response status from a remote service.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return http.StatusText(e.StatusCode) + ": " + e.Body
	}
	return http.StatusText(e.StatusCode)
}

// IsRetryable returns true for transient errors worth retrying.
func IsRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return IsRetryableStatus(statusErr.StatusCode)
	}

	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return IsRetryableStatus(apiErr.Code)
	}

	// Connection errors (dial failures, connection refused, etc.)
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}

	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}

	// net.Error includes OpError, so check after OpError
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}

// IsRetryableStatus returns true for HTTP status codes worth retrying.
func IsRetryableStatus(code int) bool {
	switch code {
	case http.StatusTooManyRequests, http.StatusInternalServerError, http.StatusBadGateway,
		http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}
