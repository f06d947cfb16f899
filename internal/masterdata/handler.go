package masterdata

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

// LineStore is the storage surface the lines handler needs.
type LineStore interface {
	List(ctx context.Context) ([]Line, error)
	Get(ctx context.Context, id int64) (*Line, error)
	Create(ctx context.Context, req *CreateLineRequest) (*Line, error)
	Update(ctx context.Context, id int64, req *UpdateLineRequest) (*Line, error)
	Delete(ctx context.Context, id int64) error
}

// NameStore is the storage surface for name-only master tables.
type NameStore interface {
	List(ctx context.Context) ([]NameRow, error)
	Get(ctx context.Context, id int64) (*NameRow, error)
	Create(ctx context.Context, req *CreateNameRequest) (*NameRow, error)
	Update(ctx context.Context, id int64, req *UpdateNameRequest) (*NameRow, error)
	Delete(ctx context.Context, id int64) error
}

// LinesHandler serves CRUD for metro lines.
type LinesHandler struct {
	store  LineStore
	logger *logging.Logger
}

// NewLinesHandler creates the lines handler.
func NewLinesHandler(store LineStore, logger *logging.Logger) *LinesHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &LinesHandler{store: store, logger: logger}
}

// List handles GET /lines.
func (h *LinesHandler) List(w http.ResponseWriter, r *http.Request) {
	lines, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"lines": lines})
}

// Get handles GET /lines/{id}.
func (h *LinesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	line, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, line)
}

// Create handles POST /lines.
func (h *LinesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	line, err := h.store.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("line created", "id", line.ID, "name", line.Name)
	respond.JSON(w, http.StatusCreated, line)
}

// Update handles PUT /lines/{id}.
func (h *LinesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req UpdateLineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	line, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, line)
}

// Delete handles DELETE /lines/{id}.
func (h *LinesHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *LinesHandler) writeError(w http.ResponseWriter, err error) {
	writeStoreError(w, h.logger, err)
}

// NameTableHandler serves CRUD for a name-only master table.
type NameTableHandler struct {
	store    NameStore
	resource string // "audiences" or "types", used as the JSON list key
	logger   *logging.Logger
}

// NewNameTableHandler creates a handler for one name-only resource.
func NewNameTableHandler(store NameStore, resource string, logger *logging.Logger) *NameTableHandler {
	if logger == nil {
		logger = logging.Default()
	}
	return &NameTableHandler{store: store, resource: resource, logger: logger}
}

// List handles GET on the collection.
func (h *NameTableHandler) List(w http.ResponseWriter, r *http.Request) {
	rows, err := h.store.List(r.Context())
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{h.resource: rows})
}

// Get handles GET on one row.
func (h *NameTableHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	row, err := h.store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, row)
}

// Create handles POST on the collection.
func (h *NameTableHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	row, err := h.store.Create(r.Context(), &req)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	h.logger.Info("master row created", "resource", h.resource, "id", row.ID, "name", row.Name)
	respond.JSON(w, http.StatusCreated, row)
}

// Update handles PUT on one row.
func (h *NameTableHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	var req UpdateNameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	row, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, row)
}

// Delete handles DELETE on one row.
func (h *NameTableHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		writeStoreError(w, h.logger, err)
		return
	}
	respond.OK(w)
}

func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.BadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
}

func writeStoreError(w http.ResponseWriter, logger *logging.Logger, err error) {
	switch {
	case errors.Is(err, ErrNameRequired):
		respond.BadRequest(w, err.Error())
	case errors.Is(err, ErrNameTaken):
		respond.Conflict(w, err.Error())
	case errors.Is(err, ErrNotFound):
		respond.NotFound(w, err.Error())
	default:
		logger.Error("master data store error", "error", err)
		respond.Internal(w)
	}
}
