package session

import "context"

// Manager issues and validates opaque bearer tokens backed by the row store.
type Manager interface {
	// Issue creates a session for the user and returns its token.
	Issue(ctx context.Context, userID string) (string, error)

	// Validate resolves an "Authorization: Bearer <token>" header value to a
	// user id. It fails closed with ErrUnauthenticated on a missing or
	// malformed header, an unknown token, or an expired one; expired session
	// rows are deleted on detection.
	Validate(ctx context.Context, bearerHeader string) (string, error)

	// Revoke deletes the session matching the bearer header, if any.
	Revoke(ctx context.Context, bearerHeader string) error
}
