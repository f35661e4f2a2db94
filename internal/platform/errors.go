// internal/platform/errors.go
package platform

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the single error type the client surfaces to callers. The HTTP
// adapter is the only place raw transport and HTTP failures are translated
// into it; higher layers pass it through unchanged.
//
// StatusCode conventions:
//   - 0:   transport failure (connection refused, DNS, reset)
//   - 408: the call exceeded its deadline
//   - else the backend's HTTP status
type Error struct {
	StatusCode  int
	Message     string
	FieldErrors map[string][]string
	cause       error
}

func (e *Error) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("platform: network error: %s", e.Message)
	}
	return fmt.Sprintf("platform: %d %s", e.StatusCode, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// netError wraps a transport-level failure.
func netError(err error) *Error {
	return &Error{StatusCode: 0, Message: "could not reach the backend", cause: err}
}

// timeoutError wraps a deadline expiry.
func timeoutError(err error) *Error {
	return &Error{StatusCode: http.StatusRequestTimeout, Message: "request timed out", cause: err}
}

// IsAuth reports whether err is a 401/403 from the backend, meaning the
// session is no longer good and the operator must sign in again.
func IsAuth(err error) bool {
	var pe *Error
	if !errors.As(err, &pe) {
		return false
	}
	return pe.StatusCode == http.StatusUnauthorized || pe.StatusCode == http.StatusForbidden
}

// IsTimeout reports whether err is a deadline expiry.
func IsTimeout(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.StatusCode == http.StatusRequestTimeout
}

// IsNetwork reports whether err is a transport failure (no response at all).
func IsNetwork(err error) bool {
	var pe *Error
	return errors.As(err, &pe) && pe.StatusCode == 0
}

// Message extracts a human-readable message from any error the client
// returns, for display in error panels and modals.
func Message(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Message
	}
	if err != nil {
		return err.Error()
	}
	return ""
}
