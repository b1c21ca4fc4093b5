package services

import "errors"

// Business outcomes returned by the service layer. Handlers map them to HTTP
// statuses with errors.Is; anything not in this list is treated as a store
// failure and surfaced as a generic 500.
var (
	// ErrInvalidCredentials covers both an unknown username and a wrong
	// password. The two causes are deliberately indistinguishable so the
	// login endpoint cannot be used to enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrTokenExpired     = errors.New("token expired")
	ErrTokenInvalid     = errors.New("invalid token")
	ErrConflict         = errors.New("already exists")
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)
