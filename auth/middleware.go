// Session middleware: resolves the opaque token carried by the request
// against the session store and makes the user id available to handlers.
// There is no ambient session state; every request is looked up.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/recipebook-go/apperror"
)

// ContextKey is a type used for context keys to avoid collisions.
type ContextKey string

// UserIDKey is the key under which the authenticated user's id is stored.
const UserIDKey ContextKey = "userID"

// TokenFromRequest extracts the session token from the request: the session
// cookie for browsers, or an Authorization: Bearer header for other clients.
// Returns "" when neither is present.
func TokenFromRequest(r *http.Request) string {
	if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
		return c.Value
	}
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return parts[1]
		}
	}
	return ""
}

// SessionMiddleware authenticates requests against the session store and
// injects the user id into the request context. Requests without a valid,
// unexpired session are rejected with 401.
func SessionMiddleware(service *Service) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := TokenFromRequest(r)
			if token == "" {
				WriteError(w, r, apperror.NewAuthError("authentication required", nil))
				return
			}

			userID, err := service.Authenticate(r.Context(), token)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext retrieves the authenticated user id from the request
// context. Returns 0 and false if no session was resolved.
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(UserIDKey).(int64)
	return userID, ok
}
