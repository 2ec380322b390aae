package smoketest

import "errors"

var (
	// ErrUnhealthy is returned when the target does not answer /healthz.
	ErrUnhealthy = errors.New("service unhealthy")
	// ErrMismatch is returned when a server descriptor differs from the local one.
	ErrMismatch = errors.New("classification mismatch")
	// ErrInvalidConfig is returned when a Config cannot drive a run.
	ErrInvalidConfig = errors.New("invalid smoke config")
	// ErrRequest is returned when requests fail outright.
	ErrRequest = errors.New("request failed")
)
