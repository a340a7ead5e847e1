package auth

import "context"

type AuthService interface {
	// Register creates a user and opens a session for it.
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)

	// Login verifies credentials, stamps the last-login time and opens a
	// session.
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)

	// Logout revokes the session behind the bearer header. Idempotent.
	Logout(ctx context.Context, bearerHeader string) error
}
