package identity

import "context"

// Service owns the persisted identity record and the login/logout
// round-trips to the backend.
type Service interface {
	// Restore loads the identity saved by a previous login. A missing or
	// unparseable record returns ErrNotLoggedIn and leaves no file behind.
	Restore() (Identity, error)

	// Current returns the identity restored or established by Login.
	Current() (Identity, bool)

	// Login authenticates against the backend and persists the returned
	// identity record.
	Login(ctx context.Context, username, password string) (Identity, error)

	// Logout revokes the backend session (best effort) and always clears
	// the persisted record, even when the remote call fails.
	Logout(ctx context.Context) error
}
