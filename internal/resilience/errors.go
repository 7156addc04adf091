package resilience

import (
	"errors"
	"net/http"
)

// RateLimitError wraps an error that signals request throttling (HTTP 429).
type RateLimitError struct {
	Err error
}

func (e *RateLimitError) Error() string {
	return e.Err.Error()
}

func (e *RateLimitError) Unwrap() error {
	return e.Err
}

// NewRateLimitError marks err as a throttling signal.
func NewRateLimitError(err error) *RateLimitError {
	return &RateLimitError{Err: err}
}

// IsRateLimit returns true if the error (or any error in its chain) is a
// RateLimitError, or reports HTTP 429 through an HTTPStatus method.
func IsRateLimit(err error) bool {
	if err == nil {
		return false
	}

	var rl *RateLimitError
	if errors.As(err, &rl) {
		return true
	}

	var sc interface{ HTTPStatus() int }
	if errors.As(err, &sc) {
		return sc.HTTPStatus() == http.StatusTooManyRequests
	}

	return false
}
