package shared

import "fmt"

var (
	ErrNotImplemented = fmt.Errorf("not implemented")

	// Configuration errors
	ErrMissingConfig      = fmt.Errorf("configuration not found")
	ErrInvalidConfig      = fmt.Errorf("invalid configuration")
	ErrMissingCredentials = fmt.Errorf("missing credentials")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")

	// Session errors
	ErrAuthFailed     = fmt.Errorf("authentication failed")
	ErrNotConnected   = fmt.Errorf("not connected to a server")
	ErrSessionExpired = fmt.Errorf("session expired")
	ErrTimeout        = fmt.Errorf("operation timed out")

	// Gateway and facility errors
	ErrGatewayRequest     = fmt.Errorf("gateway request failed")
	ErrServiceUnavailable = fmt.Errorf("service unavailable")
	ErrAccessDenied       = fmt.Errorf("access denied")
	ErrNotFound           = fmt.Errorf("object not found")
	ErrKeyNotFound        = fmt.Errorf("key not found")

	// Input validation errors
	ErrInvalidInput    = fmt.Errorf("invalid input")
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
	ErrInvalidFlag     = fmt.Errorf("invalid flag value")
)
