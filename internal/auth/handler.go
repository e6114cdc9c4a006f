package auth

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator"
	"github.com/google/uuid"

	"github.com/thefamilyalliance/auth-service/internal/lib/sl"
	"github.com/thefamilyalliance/auth-service/internal/models"
	"github.com/thefamilyalliance/auth-service/internal/store"
)

// Store defines the persistence operations the handlers need.
type Store interface {
	CreateAccount(ctx context.Context, a models.Account) error
	FindAccountByEmail(ctx context.Context, email string) (*models.Account, error)
	CreateSession(ctx context.Context, sess models.Session) error
	FindValidSession(ctx context.Context, sessionID string, now int64) (*models.AccountView, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

var _ Store = (*store.PostgresStore)(nil)

// Handler serves the auth endpoints. It holds no per-request state; the
// backing store is the only synchronization point.
type Handler struct {
	log      *slog.Logger
	store    Store
	validate *validator.Validate
}

func NewHandler(log *slog.Logger, store Store) *Handler {
	return &Handler{
		log:      log,
		store:    store,
		validate: validator.New(),
	}
}

// ServeHTTP dispatches the closed set of operations by method and path.
// OPTIONS short-circuits before routing; the CORS middleware has already
// attached its headers by the time we run.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/register":
		h.register(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/login":
		h.login(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/api/auth/logout":
		h.logout(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/api/me":
		h.me(w, r)
	case r.Method == http.MethodGet && r.URL.Path == "/health":
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = NormalizeEmail(req.Email)
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "email and a password of at least 8 characters are required")
		return
	}

	digest, err := HashPassword(req.Password)
	if err != nil {
		h.internal(w, "hash password", err)
		return
	}

	acc := models.Account{
		ID:             uuid.NewString(),
		Email:          req.Email,
		PasswordDigest: digest,
		Role:           models.RoleFamily,
		CreatedAt:      time.Now().Unix(),
	}
	if err := h.store.CreateAccount(r.Context(), acc); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			writeError(w, http.StatusConflict, "email already in use")
			return
		}
		h.internal(w, "create account", err)
		return
	}

	h.issueSession(w, r, acc.View())
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	acc, err := h.store.FindAccountByEmail(r.Context(), NormalizeEmail(req.Email))
	if err != nil {
		h.internal(w, "find account", err)
		return
	}
	// One wording for unknown email and wrong password, so responses can
	// not be used to enumerate accounts.
	if acc == nil || !VerifyPassword(req.Password, acc.PasswordDigest) {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	h.issueSession(w, r, acc.View())
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if sid, ok := SessionFromRequest(r); ok {
		if err := h.store.DeleteSession(r.Context(), sid); err != nil {
			h.log.Error("delete session", sl.Err(err))
		}
	}
	// Always 200 with a clearing cookie, whether or not a session existed.
	http.SetCookie(w, BuildClearCookie(IsSecureRequest(r)))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true})
}

func (h *Handler) me(w http.ResponseWriter, r *http.Request) {
	sid, ok := SessionFromRequest(r)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	view, err := h.store.FindValidSession(r.Context(), sid, time.Now().Unix())
	if err != nil {
		h.internal(w, "find session", err)
		return
	}
	if view == nil {
		// Expired or unknown session is the normal anonymous result, not
		// an error; clear the dead cookie while we're at it.
		http.SetCookie(w, BuildClearCookie(IsSecureRequest(r)))
		writeJSON(w, http.StatusOK, map[string]any{"user": nil})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"user": view})
}

// issueSession creates a session row for the account and writes the 200
// response with the session cookie. Shared by register (auto-login) and
// login; every call makes a fresh session row, so multiple devices can be
// signed in at once.
func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, view models.AccountView) {
	sid, err := NewSessionID()
	if err != nil {
		h.internal(w, "new session id", err)
		return
	}
	now := time.Now().Unix()
	sess := models.Session{
		ID:        sid,
		AccountID: view.ID,
		ExpiresAt: now + int64(SessionLifetime/time.Second),
		CreatedAt: now,
	}
	if err := h.store.CreateSession(r.Context(), sess); err != nil {
		h.internal(w, "create session", err)
		return
	}

	http.SetCookie(w, BuildSessionCookie(sid, IsSecureRequest(r)))
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "user": view})
}

// NormalizeEmail trims and lower-cases an email; account uniqueness is
// defined over this form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// internal logs the real error server-side and answers with a generic 500;
// detail never reaches the client.
func (h *Handler) internal(w http.ResponseWriter, op string, err error) {
	h.log.Error(op, sl.Err(err))
	writeError(w, http.StatusInternalServerError, "internal server error")
}
