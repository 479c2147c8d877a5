package api

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/models"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/store"
)

type fakeListings struct {
	out       []models.Listing
	lastQ     string
	lastCat   string
	lastLimit int
}

func (f *fakeListings) ListListings(ctx context.Context, q, category string, limit int) ([]models.Listing, error) {
	f.lastQ, f.lastCat, f.lastLimit = q, category, limit
	return f.out, nil
}

type fakeUsers struct {
	user    *models.User
	profile *models.Profile
}

func (f *fakeUsers) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	if f.user == nil || f.user.ID != id {
		return nil, store.ErrNotFound
	}
	return f.user, nil
}

func (f *fakeUsers) GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error) {
	if f.profile == nil {
		return nil, store.ErrNotFound
	}
	return f.profile, nil
}

func newTestHandler(listings *fakeListings, users *fakeUsers) *Handler {
	return NewHandler(listings, users, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func price(f float64) *float64 { return &f }

func TestListingsShape(t *testing.T) {
	listings := &fakeListings{out: []models.Listing{
		{
			ID: 1, Title: "Fresh milk", Description: "Chilled daily",
			OwnerID: 7, OwnerUsername: "alice", Category: "milk",
			Price: price(2.0), Quantity: "20 L/week", Location: "Bikaner",
		},
		{
			ID: 2, Title: "Cold chain transport", OwnerID: 9, OwnerUsername: "bob",
			Category: "transport",
		},
	}}
	h := newTestHandler(listings, &fakeUsers{})

	w := httptest.NewRecorder()
	h.Listings(w, httptest.NewRequest(http.MethodGet, "/api/listings?q=milk&category=milk", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Equal(t, "milk", listings.lastQ)
	assert.Equal(t, "milk", listings.lastCat)
	assert.Equal(t, store.APIListingLimit, listings.lastLimit)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.Len(t, out, 2)

	first := out[0]
	assert.Equal(t, "Fresh milk", first["title"])
	owner := first["owner"].(map[string]any)
	assert.Equal(t, "alice", owner["username"])
	assert.Equal(t, float64(7), owner["id"])
	assert.Equal(t, 2.0, first["price"])

	// Absent price serializes as null, not as a missing key.
	second := out[1]
	v, present := second["price"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestListingsEmptyIsArray(t *testing.T) {
	h := newTestHandler(&fakeListings{}, &fakeUsers{})

	w := httptest.NewRecorder()
	h.Listings(w, httptest.NewRequest(http.MethodGet, "/api/listings", nil))

	assert.JSONEq(t, "[]", w.Body.String())
}

func userRequest(id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	req := httptest.NewRequest(http.MethodGet, "/api/users/"+id, nil)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestUserWithProfile(t *testing.T) {
	users := &fakeUsers{
		user: &models.User{ID: 7, Username: "alice", Email: "alice@x.com", Role: models.RoleFarmer},
		profile: &models.Profile{
			UserID: 7, FullName: "Alice", Phone: "123", Location: "Bikaner", Bio: "Farmer",
		},
	}
	h := newTestHandler(&fakeListings{}, users)

	w := httptest.NewRecorder()
	h.User(w, userRequest("7"))

	assert.Equal(t, http.StatusOK, w.Code)
	var out models.APIUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.Equal(t, "alice", out.Username)
	assert.Equal(t, models.RoleFarmer, out.Role)
	assert.Equal(t, "Alice", out.Profile.FullName)
}

func TestUserWithoutProfileDefaultsToEmptyStrings(t *testing.T) {
	users := &fakeUsers{
		user: &models.User{ID: 7, Username: "alice", Email: "alice@x.com", Role: models.RoleFarmer},
	}
	h := newTestHandler(&fakeListings{}, users)

	w := httptest.NewRecorder()
	h.User(w, userRequest("7"))

	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	profile := out["profile"].(map[string]any)
	for _, key := range []string{"full_name", "phone", "location", "bio"} {
		v, present := profile[key]
		assert.True(t, present, "key %s must be present", key)
		assert.Equal(t, "", v)
	}
}

func TestUserNotFound(t *testing.T) {
	h := newTestHandler(&fakeListings{}, &fakeUsers{})

	w := httptest.NewRecorder()
	h.User(w, userRequest("42"))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	h.User(w, userRequest("not-a-number"))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
