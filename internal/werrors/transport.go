package werrors

import (
	"fmt"
	"time"
)

// ConnectionError reports a failure to reach the server at all: DNS,
// TCP reset, or TLS handshake failure. Idempotent operations retry these;
// the final ConnectionError wraps the last transport error observed.
type ConnectionError struct {
	Host string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connect to %s: %s", e.Host, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Retryable reports true: a failure to reach the server at all is
// exactly the transient-network case spec.md §4.D's retry policy
// covers for idempotent intrinsics.
func (e *ConnectionError) Retryable() bool { return true }

// AuthError reports a TLS certificate validation failure, a hostname
// mismatch, or an HTTP 401 that persisted after one Basic-auth retry.
type AuthError struct {
	Host   string
	Reason string
	Err    error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("authentication failed for %s: %s: %s", e.Host, e.Reason, e.Err)
	}
	return fmt.Sprintf("authentication failed for %s: %s", e.Host, e.Reason)
}

func (e *AuthError) Unwrap() error { return e.Err }

// HTTPError reports a non-2xx, non-401 HTTP response.
type HTTPError struct {
	StatusCode int
	Reason     string
	BodyExcerpt string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d %s: %s", e.StatusCode, e.Reason, e.BodyExcerpt)
}

// Retryable reports true for 5xx server errors only, per spec.md §4.D
// ("transient network and HTTP 5xx failures").
func (e *HTTPError) Retryable() bool { return e.StatusCode >= 500 && e.StatusCode < 600 }

// TimeoutError reports the configured operation timeout elapsing before
// the exchange (including any retries) completed.
type TimeoutError struct {
	Operation string
	Timeout   time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Operation, e.Timeout)
}

// ModelError reports a locally detected violation of the CIM data model
// that never reaches the wire: an array value supplied for a key
// property, a null element in a non-nullable array, a width-n integer
// constructed outside its range.
type ModelError struct {
	Message string
}

func (e *ModelError) Error() string { return e.Message }
