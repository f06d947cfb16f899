package contact

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brandmetro/transit-ads-platform/internal/http/respond"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

type Store interface {
	Create(ctx context.Context, m *Message) error
	List(ctx context.Context) ([]Message, error)
	Delete(ctx context.Context, id int64) error
}

type Handler struct {
	store  Store
	logger *logging.Logger
}

func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// Submit handles POST /api/contact.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CreateMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respond.BadRequest(w, err.Error())
		return
	}
	m := &Message{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.store.Create(r.Context(), m); err != nil {
		h.logger.Error("contact insert failed", "error", err)
		respond.Internal(w)
		return
	}
	respond.Created(w, m.ID)
}

// List handles GET /cms/api/contact.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.logger.Error("contact list failed", "error", err)
		respond.Internal(w)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"messages": list})
}

// Delete handles DELETE /cms/api/contact/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.NotFound(w, err.Error())
			return
		}
		h.logger.Error("contact delete failed", "error", err)
		respond.Internal(w)
		return
	}
	respond.OK(w)
}
