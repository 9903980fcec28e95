package backend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var (
	ErrAuth         = errors.New("backend auth rejected")
	ErrRateLimited  = errors.New("backend rate limited")
	ErrModelWarming = errors.New("backend model warming up")
	ErrUnreachable  = errors.New("backend unreachable")
)

// StatusError preserves the HTTP status of a failed backend call so the
// driver can decide between retrying and aborting.
type StatusError struct {
	Status     int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend status %d", e.Status)
	}
	return fmt.Sprintf("backend status %d: %s", e.Status, e.Body)
}

func (e *StatusError) Unwrap() error {
	switch e.Status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuth
	case http.StatusTooManyRequests:
		return ErrRateLimited
	case http.StatusServiceUnavailable:
		return ErrModelWarming
	default:
		return ErrUnreachable
	}
}

// Retryable reports whether a failed call may succeed on a later
// attempt. Timeouts count as warming-equivalent.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrModelWarming) {
		return true
	}
	return errors.Is(err, context.DeadlineExceeded)
}

// RetryDelay returns the server-suggested or default backoff for a
// retryable error, zero otherwise.
func RetryDelay(err error) time.Duration {
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.RetryAfter > 0 {
		return statusErr.RetryAfter
	}
	if !Retryable(err) {
		return 0
	}
	if errors.Is(err, ErrRateLimited) {
		return 2 * time.Second
	}
	return time.Second
}
