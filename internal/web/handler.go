package web

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/auth"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/forms"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/middleware"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/models"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/store"
)

// ListingStore defines the listing persistence the page handlers need.
type ListingStore interface {
	CreateListing(ctx context.Context, l *models.Listing) error
	GetListingByID(ctx context.Context, id int64) (*models.Listing, error)
	ListListings(ctx context.Context, q, category string, limit int) ([]models.Listing, error)
	ListListingsByOwner(ctx context.Context, ownerID int64) ([]models.Listing, error)
}

// MessageStore defines the message persistence the page handlers need.
type MessageStore interface {
	CreateMessage(ctx context.Context, m *models.Message) error
	ListMessagesByReceiver(ctx context.Context, receiverID int64, limit int) ([]models.Message, error)
}

// EventStore defines the event persistence the page handlers need.
type EventStore interface {
	CreateEvent(ctx context.Context, e *models.Event) error
	ListEvents(ctx context.Context, limit int) ([]models.Event, error)
	ListEventsByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error)
}

// UserDirectory resolves public user lookups.
type UserDirectory interface {
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetProfileByUserID(ctx context.Context, userID int64) (*models.Profile, error)
}

// Handler holds the server-rendered page handlers.
type Handler struct {
	listings ListingStore
	messages MessageStore
	events   EventStore
	users    UserDirectory
	render   Renderer
	log      *slog.Logger
}

func NewHandler(listings ListingStore, messages MessageStore, events EventStore, users UserDirectory, render Renderer, log *slog.Logger) *Handler {
	return &Handler{listings: listings, messages: messages, events: events, users: users, render: render, log: log}
}

// Home shows recent listings with q/cat filters plus upcoming events.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	cat := r.URL.Query().Get("cat")

	listings, err := h.listings.ListListings(r.Context(), q, cat, store.BrowseListingLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	events, err := h.events.ListEvents(r.Context(), store.BrowseEventLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render.Render(w, "index.html", map[string]any{
		"User":     middleware.UserFrom(r.Context()),
		"Flash":    auth.PopFlash(w, r),
		"Listings": listings,
		"Events":   events,
		"Query":    q,
		"Cat":      cat,
	})
}

// Dashboard aggregates the identity's listings, inbox and events.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	user := middleware.UserFrom(r.Context())

	mine, err := h.listings.ListListingsByOwner(r.Context(), user.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	inbox, err := h.messages.ListMessagesByReceiver(r.Context(), user.ID, store.InboxLimit)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	organized, err := h.events.ListEventsByOrganizer(r.Context(), user.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}

	h.render.Render(w, "dashboard.html", map[string]any{
		"User":       user,
		"Flash":      auth.PopFlash(w, r),
		"MyListings": mine,
		"Inbox":      inbox,
		"Organized":  organized,
	})
}

func (h *Handler) renderListingForm(w http.ResponseWriter, r *http.Request, values, errs map[string]string) {
	h.render.Render(w, "new_listing.html", map[string]any{
		"User":       middleware.UserFrom(r.Context()),
		"Flash":      auth.PopFlash(w, r),
		"Form":       values,
		"Errors":     errs,
		"Categories": forms.ListingCategories,
	})
}

// NewListing creates a listing owned by the current identity.
func (h *Handler) NewListing(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderListingForm(w, r, map[string]string{}, map[string]string{})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	values, errs, ok := forms.Listing.Validate(r.PostForm)
	if !ok {
		h.renderListingForm(w, r, values, errs)
		return
	}

	var price *float64
	if values["price"] != "" {
		p, err := strconv.ParseFloat(values["price"], 64)
		if err != nil {
			errs["price"] = "Must be a non-negative number."
			h.renderListingForm(w, r, values, errs)
			return
		}
		price = &p
	}

	listing := &models.Listing{
		Title:       values["title"],
		Description: values["description"],
		OwnerID:     middleware.UserFrom(r.Context()).ID,
		Category:    values["category"],
		Price:       price,
		Quantity:    values["quantity"],
		Location:    values["location"],
	}
	if err := h.listings.CreateListing(r.Context(), listing); err != nil {
		h.serverError(w, r, err)
		return
	}

	auth.SetFlash(w, "Listing created.", "success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// ViewListing shows one listing or 404s.
func (h *Handler) ViewListing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	listing, err := h.listings.GetListingByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, "listing.html", map[string]any{
		"User":    middleware.UserFrom(r.Context()),
		"Flash":   auth.PopFlash(w, r),
		"Listing": listing,
	})
}

// ViewUser shows a public profile or 404s.
func (h *Handler) ViewUser(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	user, err := h.users.GetUserByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		h.serverError(w, r, err)
		return
	}
	profile, err := h.users.GetProfileByUserID(r.Context(), user.ID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}
	h.render.Render(w, "user.html", map[string]any{
		"User":    middleware.UserFrom(r.Context()),
		"Flash":   auth.PopFlash(w, r),
		"Viewed":  user,
		"Profile": profile,
	})
}

func (h *Handler) renderMessageForm(w http.ResponseWriter, r *http.Request, values, errs map[string]string, formError string) {
	h.render.Render(w, "new_message.html", map[string]any{
		"User":      middleware.UserFrom(r.Context()),
		"Flash":     auth.PopFlash(w, r),
		"Form":      values,
		"Errors":    errs,
		"FormError": formError,
	})
}

// NewMessage sends a message to another user by username. A missing
// receiver re-shows the form; nothing is inserted.
func (h *Handler) NewMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderMessageForm(w, r, map[string]string{}, map[string]string{}, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	values, errs, ok := forms.Message.Validate(r.PostForm)
	if !ok {
		h.renderMessageForm(w, r, values, errs, "")
		return
	}

	receiver, err := h.users.GetUserByUsername(r.Context(), values["receiver"])
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.renderMessageForm(w, r, values, errs, "Receiver not found.")
			return
		}
		h.serverError(w, r, err)
		return
	}

	msg := &models.Message{
		SenderID:   middleware.UserFrom(r.Context()).ID,
		ReceiverID: receiver.ID,
		Subject:    values["subject"],
		Body:       values["body"],
	}
	if err := h.messages.CreateMessage(r.Context(), msg); err != nil {
		h.serverError(w, r, err)
		return
	}

	auth.SetFlash(w, "Message sent.", "success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) renderEventForm(w http.ResponseWriter, r *http.Request, values, errs map[string]string) {
	h.render.Render(w, "new_event.html", map[string]any{
		"User":   middleware.UserFrom(r.Context()),
		"Flash":  auth.PopFlash(w, r),
		"Form":   values,
		"Errors": errs,
	})
}

// NewEvent creates an event organized by the current identity. The
// date must parse strictly as YYYY-MM-DD or nothing is inserted.
func (h *Handler) NewEvent(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderEventForm(w, r, map[string]string{}, map[string]string{})
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	values, errs, ok := forms.Event.Validate(r.PostForm)
	if !ok {
		h.renderEventForm(w, r, values, errs)
		return
	}

	date, err := time.Parse("2006-01-02", values["date"])
	if err != nil {
		errs["date"] = "Invalid date format. Use YYYY-MM-DD."
		h.renderEventForm(w, r, values, errs)
		return
	}

	event := &models.Event{
		Title:       values["title"],
		Description: values["description"],
		Date:        date,
		OrganizerID: middleware.UserFrom(r.Context()).ID,
	}
	if err := h.events.CreateEvent(r.Context(), event); err != nil {
		h.serverError(w, r, err)
		return
	}

	auth.SetFlash(w, "Event created.", "success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("web handler", "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
