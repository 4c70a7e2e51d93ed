package identity

import "errors"

var (
	ErrNotLoggedIn    = errors.New("No active session")
	ErrInvalidSession = errors.New("Invalid username or password")
)
