package profile

import "context"

type ProfileService interface {
	// Get returns the user's profile. When no row exists it returns a
	// Profile with Complete=false and no error.
	Get(ctx context.Context, userID string) (Profile, error)

	// Setup validates and upserts the user's profile row. Repeated calls
	// overwrite in place, they never accumulate rows.
	Setup(ctx context.Context, userID string, req SetupRequest) error
}
