package domain

import "errors"

// Sentinel errors for the auth core. The API layer maps these to HTTP status
// codes in one place (internal/api/error_handler.go).
var (
	// ErrMissingFields covers absent or empty username/password.
	ErrMissingFields = errors.New("username and password required")

	// ErrInvalidRole rejects a registration whose role is outside the
	// closed role set. Registration rejects rather than coercing.
	ErrInvalidRole = errors.New("invalid role")

	// ErrUserExists signals a duplicate username on registration.
	ErrUserExists = errors.New("user already exists")

	// ErrUserNotFound is internal to the store; Login folds it into
	// ErrInvalidCredentials so callers cannot probe for usernames.
	ErrUserNotFound = errors.New("user not found")

	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords, deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken covers malformed structure, bad signatures and
	// missing claims.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken means the signature verified but the token is past
	// its expiry.
	ErrExpiredToken = errors.New("token expired")

	// ErrForbidden means a valid identity lacks a permitted role.
	ErrForbidden = errors.New("access forbidden")

	// ErrTooManyAttempts throttles repeated failed logins for a username.
	ErrTooManyAttempts = errors.New("too many login attempts")
)
