// Package common defines shared constants and sentinel errors used across
// server and client layers of authd. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound    = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")

	// Validation errors.
	ErrValidation      = errors.New("all fields are required")
	ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

	// Account errors.
	ErrUserNotFound             = errors.New("user not found")
	ErrInvalidCredentials       = errors.New("incorrect password")
	ErrBadLogin                 = errors.New("invalid email or password")
	ErrInvalidVerificationToken = errors.New("invalid or missing verification token")
	ErrInvalidOrExpiredToken    = errors.New("invalid or expired reset token")

	// Session token errors (invalid signature, malformed or expired).
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
