package domain

import "errors"

var (
	// ErrUserExists is returned when an email is already registered.
	ErrUserExists = errors.New("user already exists")
	// ErrUserNotFound is returned when no user matches an email or id.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidCredentials is returned by login when the password does not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnauthorized covers every bearer token failure: missing, malformed,
	// forged, expired or revoked. The cause is deliberately not distinguished.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden is returned when an authenticated caller lacks the required role.
	ErrForbidden = errors.New("access forbidden")
	// ErrBadRequest is returned for input the service cannot act on.
	ErrBadRequest = errors.New("bad request")
	// ErrInvalidToken is returned by logout when the token carries no readable expiry.
	ErrInvalidToken = errors.New("invalid token")
	// ErrUnavailable wraps store failures: connectivity, timeouts, cancellation.
	ErrUnavailable = errors.New("store unavailable")
)
