package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/auth"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/models"
)

type fakeSessions map[string]int64

func (f fakeSessions) Get(ctx context.Context, sessionID string) (int64, error) {
	return f[sessionID], nil
}

type fakeUsers map[int64]*models.User

func (f fakeUsers) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, context.Canceled // any error leaves the request anonymous
}

func captureUser(t *testing.T) (http.Handler, **models.User) {
	t.Helper()
	var got *models.User
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserFrom(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return h, &got
}

func TestCurrentUserResolvesSession(t *testing.T) {
	alice := &models.User{ID: 7, Username: "alice"}
	mw := CurrentUser(fakeSessions{"sid-1": 7}, fakeUsers{7: alice})
	next, got := captureUser(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "sid-1"})
	mw(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, *got)
	assert.Equal(t, "alice", (*got).Username)
}

func TestCurrentUserAnonymousWithoutCookie(t *testing.T) {
	mw := CurrentUser(fakeSessions{}, fakeUsers{})
	next, got := captureUser(t)

	mw(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, *got)
}

func TestCurrentUserAnonymousOnStaleSession(t *testing.T) {
	mw := CurrentUser(fakeSessions{}, fakeUsers{})
	next, got := captureUser(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookie, Value: "expired"})
	mw(next).ServeHTTP(httptest.NewRecorder(), req)
	assert.Nil(t, *got)
}

func TestRequireUserRedirectsAnonymous(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run for anonymous requests")
	})

	w := httptest.NewRecorder()
	RequireUser(next).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Result().Header.Get("Location"))
}

func TestRequireUserPassesAuthenticated(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	req = req.WithContext(WithUser(req.Context(), &models.User{ID: 1}))
	RequireUser(next).ServeHTTP(httptest.NewRecorder(), req)

	assert.True(t, called)
}
