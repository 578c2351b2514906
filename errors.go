package goSession

import "errors"

var (
	// ErrUnauthenticated is returned when no token is presented, or the
	// presented token resolves to a missing, corrupted, or expired session,
	// or the trust score falls below the configured minimum. Callers must
	// treat every case identically: "please sign in again".
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when a valid session lacks a required
	// permission.
	ErrForbidden = errors.New("forbidden")
	// ErrEngineNotReady is returned when an Engine is used before it was
	// initialized through [Builder.Build].
	ErrEngineNotReady = errors.New("engine not initialized")
)
