// Package common defines shared constants and sentinel errors used across
// the shopkeeper server and client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Store errors. Both are surfaced to callers as ErrorInternal.
	ErrStoreUnavailable   = errors.New("store unavailable")
	ErrProvisioningFailed = errors.New("basket provisioning failed")

	// Auth errors (invalid or malformed token).
	ErrInvalidToken      = errors.New("invalid token")
	ErrTokenExpired      = errors.New("token expired")
	ErrWrongTokenPurpose = errors.New("wrong token purpose")

	// ErrSessionNotFound is returned when a token is valid but no longer
	// registered (logged out or evicted).
	ErrSessionNotFound = errors.New("session not found")
)
