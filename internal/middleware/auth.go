package middleware

import (
	"context"
	"net/http"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/auth"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/models"
)

type ctxKey int

const userKey ctxKey = 0

// UserFrom returns the authenticated user for this request, or nil for
// an anonymous visitor.
func UserFrom(ctx context.Context) *models.User {
	u, _ := ctx.Value(userKey).(*models.User)
	return u
}

// WithUser injects a user into the context; exported for handler tests.
func WithUser(ctx context.Context, u *models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// UserGetter loads a user by id.
type UserGetter interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// SessionReader resolves a session id to a user id.
type SessionReader interface {
	Get(ctx context.Context, sessionID string) (int64, error)
}

// CurrentUser resolves the session cookie to a *models.User and stores
// it in the request context. Missing or stale sessions leave the
// request anonymous; they are not an error here.
func CurrentUser(sessions SessionReader, users UserGetter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(auth.SessionCookie)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := sessions.Get(r.Context(), cookie.Value)
			if err != nil || userID == 0 {
				next.ServeHTTP(w, r)
				return
			}
			user, err := users.GetUserByID(r.Context(), userID)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
		})
	}
}

// RequireUser gates a route on an authenticated identity; anonymous
// requests are redirected to the login page. No post-login return
// target is preserved.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserFrom(r.Context()) == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}
