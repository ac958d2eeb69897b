package core

import (
	"errors"
	"fmt"
)

// AuthError means the provider rejected our credentials, or none were
// configured to begin with. Construction-time key checks use it too, so a
// missing key fails before any request is built.
type AuthError struct {
	Provider string
	Reason   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s: authentication failed: %s", e.Provider, e.Reason)
}

// TransportError covers everything between us and the vendor: connection
// failures, request timeouts, and an analysis that never reached a terminal
// status inside the poll window.
type TransportError struct {
	Provider string
	Op       string
	Err      error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ServiceError is a failure the vendor reported for this submission. The body
// is carried unchanged so the caller sees exactly what the service said.
type ServiceError struct {
	Provider   string
	StatusCode int
	Body       []byte
}

func (e *ServiceError) Error() string {
	if len(e.Body) == 0 {
		return fmt.Sprintf("%s: service error: HTTP %d", e.Provider, e.StatusCode)
	}
	return fmt.Sprintf("%s: service error: HTTP %d: %s", e.Provider, e.StatusCode, snippet(e.Body))
}

// IsAuth reports whether err is, or wraps, an AuthError.
func IsAuth(err error) bool {
	var ae *AuthError
	return errors.As(err, &ae)
}

// IsTransport reports whether err is, or wraps, a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsService reports whether err is, or wraps, a ServiceError.
func IsService(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

const snippetLimit = 300

func snippet(body []byte) string {
	if len(body) <= snippetLimit {
		return string(body)
	}
	return string(body[:snippetLimit]) + "...(truncated)"
}
