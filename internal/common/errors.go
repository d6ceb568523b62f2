// Package common defines shared constants and sentinel errors used across
// the QMS Hub client. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors: bad local input, detected before any network I/O.
	ErrValidation = errors.New("validation error")

	// Auth errors: missing, expired or rejected credentials.
	ErrUnauthorized = errors.New("unauthorized")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")

	// Transport failure: the request never produced an HTTP response.
	ErrNetwork = errors.New("network error")

	// Server rejection: non-2xx with a message payload.
	ErrServer = errors.New("server error")

	// Repository-level errors.
	ErrNotFound = errors.New("not found")
)
