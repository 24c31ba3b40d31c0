package service

import "errors"

// Sentinel kinds for service errors.
var (
	ErrNotStarted      = errors.New("service not started")
	ErrRequestInFlight = errors.New("registration with this idempotency key is in progress")
)
