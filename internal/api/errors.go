package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrAuthentication means the backend rejected a login attempt.
	ErrAuthentication = errors.New("authentication rejected")
	// ErrUnauthorized means an authenticated request was refused (401/403),
	// usually because the credential is invalid or expired.
	ErrUnauthorized = errors.New("credential rejected by backend")
	// ErrUnrecognizedShape means an analytics payload matched neither the
	// aggregate nor the anomaly contract.
	ErrUnrecognizedShape = errors.New("unrecognized analytics payload shape")
)

// StatusError is returned for any non-2xx backend reply.
type StatusError struct {
	Op         string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Op, e.StatusCode, e.Body)
}

// Unwrap lets errors.Is(err, ErrUnauthorized) match 401 and 403 replies.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}
	return nil
}
