package domain

import "errors"

var (
	// ErrNotFound indicates the requested session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrCodeExists indicates the code is already held by a live session.
	ErrCodeExists = errors.New("code already in use")

	// ErrExpired indicates the session has expired.
	ErrExpired = errors.New("session has expired")

	// ErrInvalidCode indicates a code that cannot have been generated.
	ErrInvalidCode = errors.New("invalid code")
)
