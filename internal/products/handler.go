package products

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

// Store is the storage surface the handler needs.
type Store interface {
	List(ctx context.Context) ([]Product, error)
	Get(ctx context.Context, id int64) (*Product, error)
	Create(ctx context.Context, req *CreateProductRequest) (*Product, error)
	Update(ctx context.Context, id int64, req *UpdateProductRequest) (*Product, error)
	Delete(ctx context.Context, id int64) error
}

// Handler serves product CRUD.
type Handler struct {
	store  Store
	logger *logging.Logger
}

// NewHandler creates a products handler.
func NewHandler(store Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// List handles GET /products.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"products": list})
}

// Get handles GET /products/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	p, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Create handles POST /products.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	p, err := h.store.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("product created", "id", p.ID, "name", p.Name)
	respond.JSON(w, http.StatusCreated, p)
}

// Update handles PUT /products/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req UpdateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	p, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, p)
}

// Delete handles DELETE /products/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	respond.OK(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNameRequired):
		respond.BadRequest(w, err.Error())
	case errors.Is(err, ErrNameTaken):
		respond.Conflict(w, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.NotFound(w, err.Error())
	default:
		h.logger.Error("products store error", "error", err)
		respond.Internal(w)
	}
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.BadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}
