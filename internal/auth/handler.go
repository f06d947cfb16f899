package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/brandmetro/transit-ads-platform/internal/http/middleware"
	"github.com/brandmetro/transit-ads-platform/internal/http/respond"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

type Store interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
}

// BootstrapCredentials let the CMS run before any cms_users row exists; when
// set they are checked after the database lookup misses.
type BootstrapCredentials struct {
	Username string
	Password string
}

type Handler struct {
	store     Store
	bootstrap BootstrapCredentials
	cookieTTL time.Duration
	logger    *logging.Logger
}

func NewHandler(store Store, bootstrap BootstrapCredentials, cookieTTL time.Duration, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cookieTTL <= 0 {
		cookieTTL = 7 * 24 * time.Hour
	}
	return &Handler{store: store, bootstrap: bootstrap, cookieTTL: cookieTTL, logger: logger}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login. A successful check sets the session cookie; the
// cookie value is the user id (0 for the bootstrap admin).
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if req.Username == "" || req.Password == "" {
		respond.BadRequest(w, "username and password are required")
		return
	}

	userID, ok, err := h.check(r.Context(), req.Username, req.Password)
	if err != nil {
		h.logger.Error("login lookup failed", "error", err)
		respond.Internal(w)
		return
	}
	if !ok {
		respond.Error(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	middleware.SetSessionCookie(w, strconv.FormatInt(userID, 10), h.cookieTTL)
	h.logger.Info("cms login", "user_id", userID, "username", req.Username)
	respond.OK(w)
}

// Logout handles POST /logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	middleware.ClearSessionCookie(w)
	respond.OK(w)
}

func (h *Handler) check(ctx context.Context, username, password string) (int64, bool, error) {
	if h.store != nil {
		user, err := h.store.GetByUsername(ctx, username)
		switch {
		case err == nil:
			return user.ID, user.Password == password, nil
		case !errors.Is(err, ErrUserNotFound):
			return 0, false, err
		}
	}
	if h.bootstrap.Username != "" &&
		username == h.bootstrap.Username && password == h.bootstrap.Password {
		return 0, true, nil
	}
	return 0, false, nil
}
