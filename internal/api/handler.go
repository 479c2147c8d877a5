// Package api exposes the read-only JSON surface used by external
// integrations (mobile app, aggregator).
package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/models"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/store"
)

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListingStore defines the listing reads the API needs.
type ListingStore interface {
	ListListings(ctx context.Context, q, category string, limit int) ([]models.Listing, error)
}

// UserStore defines the user reads the API needs.
type UserStore interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

// Handler holds the JSON API handlers.
type Handler struct {
	listings ListingStore
	users    UserStore
	log      *slog.Logger
}

func NewHandler(listings ListingStore, users UserStore, log *slog.Logger) *Handler {
	return &Handler{listings: listings, users: users, log: log}
}

// Listings returns listings matching the q/category filters, newest
// first, each with a nested owner summary. Always a JSON array.
func (h *Handler) Listings(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	category := r.URL.Query().Get("category")

	listings, err := h.listings.ListListings(r.Context(), q, category, store.APIListingLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	out := make([]models.APIListing, 0, len(listings))
	for _, l := range listings {
		out = append(out, models.APIListing{
			ID:          l.ID,
			Title:       l.Title,
			Description: l.Description,
			Category:    l.Category,
			Price:       l.Price,
			Quantity:    l.Quantity,
			Location:    l.Location,
			Owner:       models.ListingOwner{ID: l.OwnerID, Username: l.OwnerUsername},
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// User returns one user with profile fields defaulted to empty strings
// when no profile row exists.
func (h *Handler) User(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "user not found"})
			return
		}
		h.serverError(w, r, err)
		return
	}

	out := models.APIUser{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	profile, err := h.users.GetProfileByUserID(r.Context(), user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}
	if profile != nil {
		out.Profile = models.APIProfile{
			FullName: profile.FullName,
			Phone:    profile.Phone,
			Location: profile.Location,
			Bio:      profile.Bio,
		}
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("api handler", "path", r.URL.Path, "error", err)
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
