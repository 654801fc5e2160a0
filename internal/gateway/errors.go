package gateway

import (
	"fmt"
	"net/http"

	"github.com/lmicro/gomero/internal/shared"
)

// ServiceError reports a client-side or transport failure: the request never
// produced a usable response from the gateway.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("service error during %s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// AccessError reports that the gateway refused or could not locate the
// requested object (401, 403 or 404 responses).
type AccessError struct {
	Op     string
	Status int
	Err    error
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("access error during %s (status %d): %v", e.Op, e.Status, e.Err)
}

func (e *AccessError) Unwrap() error { return e.Err }

// ServerError reports a server-side failure (5xx responses).
type ServerError struct {
	Op      string
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server error during %s (status %d): %s", e.Op, e.Status, e.Message)
	}
	return fmt.Sprintf("server error during %s (status %d)", e.Op, e.Status)
}

func (e *ServerError) Unwrap() error { return shared.ErrGatewayRequest }

// statusError converts a non-2xx response into the matching typed error.
func statusError(op string, status int, message string) error {
	switch {
	case status == http.StatusUnauthorized:
		return &AccessError{Op: op, Status: status, Err: shared.ErrSessionExpired}
	case status == http.StatusForbidden:
		return &AccessError{Op: op, Status: status, Err: shared.ErrAccessDenied}
	case status == http.StatusNotFound:
		return &AccessError{Op: op, Status: status, Err: shared.ErrNotFound}
	case status >= 500:
		return &ServerError{Op: op, Status: status, Message: message}
	default:
		return &ServiceError{Op: op, Err: fmt.Errorf("%w: unexpected status %d: %s", shared.ErrGatewayRequest, status, message)}
	}
}
