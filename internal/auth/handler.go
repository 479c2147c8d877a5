package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/IshaanVijayPuniya/Camel-Care/internal/forms"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/models"
	"github.com/IshaanVijayPuniya/Camel-Care/internal/store"
)

// UserStore defines the user persistence the auth handlers need.
type UserStore interface {
	CreateUser(ctx context.Context, username, email, passwordHash string, role models.Role) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UsernameOrEmailTaken(ctx context.Context, username, email string) (bool, error)
	CreateProfile(ctx context.Context, p *models.Profile) error
}

// Sessions defines the session operations the auth handlers need.
type Sessions interface {
	Create(ctx context.Context, userID int64) (string, error)
	Delete(ctx context.Context, sessionID string) error
}

// Renderer turns a template name and a context mapping into markup.
type Renderer interface {
	Render(w http.ResponseWriter, name string, data map[string]any)
}

// Handler holds the register/login/logout handlers.
type Handler struct {
	users    UserStore
	sessions Sessions
	render   Renderer
	log      *slog.Logger
}

func NewHandler(users UserStore, sessions Sessions, render Renderer, log *slog.Logger) *Handler {
	return &Handler{users: users, sessions: sessions, render: render, log: log}
}

func (h *Handler) renderRegister(w http.ResponseWriter, r *http.Request, values, errs map[string]string, formError string) {
	h.render.Render(w, "register.html", map[string]any{
		"Form":      values,
		"Errors":    errs,
		"FormError": formError,
		"Roles":     models.Roles,
		"Flash":     PopFlash(w, r),
	})
}

// Register creates a User plus an empty Profile, then sends the visitor
// to the login page. A taken username or email re-shows the form.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderRegister(w, r, map[string]string{}, map[string]string{}, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	values, errs, ok := forms.Register.Validate(r.PostForm)
	if !ok {
		h.renderRegister(w, r, values, errs, "")
		return
	}
	role, err := models.ParseRole(values["role"])
	if err != nil {
		errs["role"] = "Invalid choice."
		h.renderRegister(w, r, values, errs, "")
		return
	}

	taken, err := h.users.UsernameOrEmailTaken(r.Context(), values["username"], values["email"])
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	if taken {
		h.renderRegister(w, r, values, errs, "Username or email already exists")
		return
	}

	hash, err := HashPassword(values["password"])
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	user, err := h.users.CreateUser(r.Context(), values["username"], values["email"], hash, role)
	if err != nil {
		// Lost a registration race: the unique constraint fired
		// between the pre-check and the insert.
		if errors.Is(err, store.ErrConflict) {
			h.renderRegister(w, r, values, errs, "Username or email already exists")
			return
		}
		h.serverError(w, r, err)
		return
	}
	if err := h.users.CreateProfile(r.Context(), &models.Profile{UserID: user.ID}); err != nil {
		h.serverError(w, r, err)
		return
	}

	SetFlash(w, "Account created. Please log in.", "success")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, values, errs map[string]string, formError string) {
	h.render.Render(w, "login.html", map[string]any{
		"Form":      values,
		"Errors":    errs,
		"FormError": formError,
		"Flash":     PopFlash(w, r),
	})
}

// Login verifies credentials and establishes a session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		h.renderLogin(w, r, map[string]string{}, map[string]string{}, "")
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	values, errs, ok := forms.Login.Validate(r.PostForm)
	if !ok {
		h.renderLogin(w, r, values, errs, "")
		return
	}

	user, err := h.users.GetUserByUsername(r.Context(), values["username"])
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		h.serverError(w, r, err)
		return
	}
	if user == nil || !CheckPassword(values["password"], user.PasswordHash) {
		h.renderLogin(w, r, values, errs, "Invalid username or password.")
		return
	}

	sid, err := h.sessions.Create(r.Context(), user.ID)
	if err != nil {
		h.serverError(w, r, err)
		return
	}
	SetSessionCookie(w, sid)
	SetFlash(w, "Logged in.", "success")
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

// Logout clears the session association unconditionally.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			h.log.Warn("session delete", "error", err)
		}
	}
	ClearSessionCookie(w)
	SetFlash(w, "Logged out.", "info")
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) serverError(w http.ResponseWriter, r *http.Request, err error) {
	h.log.Error("auth handler", "path", r.URL.Path, "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
