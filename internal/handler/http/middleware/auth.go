package middleware

import (
	"context"
	"net/http"

	"github.com/portalbd/employee-portal-go/internal/domain/session"
	"github.com/portalbd/employee-portal-go/internal/handler/http/response"
)

type userIDKey struct{}

// Authenticate resolves the bearer token against the session store and puts
// the user id on the request context. Expired tokens are rejected (and
// reclaimed) by the session manager itself.
func Authenticate(sessions session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		hfn := func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.Validate(r.Context(), r.Header.Get("Authorization"))
			if err != nil {
				response.HandleError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey{}, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		}
		return http.HandlerFunc(hfn)
	}
}

// UserID returns the authenticated user id stored by Authenticate.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}
