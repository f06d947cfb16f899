package stations

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/brandmetro/transit-ads-platform/internal/http/respond"
	"github.com/brandmetro/transit-ads-platform/internal/observability/metrics"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Store is the storage surface the handler needs.
type Store interface {
	List(ctx context.Context) ([]Station, error)
	Get(ctx context.Context, id int64) (*Station, error)
	Create(ctx context.Context, req *CreateStationRequest) (*Station, error)
	Update(ctx context.Context, id int64, req *UpdateStationRequest) (*Station, error)
	Delete(ctx context.Context, id int64) error
	CreateFromImport(ctx context.Context, row *ImportRow) error
	MasterNames(ctx context.Context) (lines, audiences, types []string, err error)
}

// Handler serves station CRUD plus the spreadsheet endpoints.
type Handler struct {
	store         Store
	importMaxRows int
	metrics       *metrics.ImportMetrics
	logger        *logging.Logger
}

// NewHandler creates a stations handler. metrics may be nil.
func NewHandler(store Store, importMaxRows int, m *metrics.ImportMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if importMaxRows <= 0 {
		importMaxRows = 500
	}
	return &Handler{store: store, importMaxRows: importMaxRows, metrics: m, logger: logger}
}

// List handles GET /stations.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"stations": list})
}

// Get handles GET /stations/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	s, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, s)
}

// Create handles POST /stations.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateStationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	s, err := h.store.Create(r.Context(), &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.logger.Info("station created", "id", s.ID, "name", s.Name)
	respond.JSON(w, http.StatusCreated, s)
}

// Update handles PUT /stations/{id}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	var req UpdateStationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	s, err := h.store.Update(r.Context(), id, &req)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, s)
}

// Delete handles DELETE /stations/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.idParam(w, r)
	if !ok {
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	respond.OK(w)
}

// Export handles GET /stations/export, streaming the full station list as a
// workbook.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	f, err := BuildExport(list)
	if err != nil {
		h.logger.Error("failed to build export workbook", "error", err)
		respond.Internal(w)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="stations.xlsx"`)
	if err := f.Write(w); err != nil {
		h.logger.Error("failed to write export workbook", "error", err)
	}
}

// Import handles POST /stations/import (multipart "file"). Rows are processed
// independently; the response is the {success, failed} tally.
func (h *Handler) Import(w http.ResponseWriter, r *http.Request) {
	file, _, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, "file is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := ImportWorkbook(r.Context(), h.store, file, h.importMaxRows)
	if err != nil {
		h.logger.Error("failed to read import workbook", "error", err)
		respond.BadRequest(w, "could not read spreadsheet")
		return
	}
	h.metrics.ObserveRows(result.Success, result.Failed)
	h.logger.Info("station import finished", "success", result.Success, "failed", result.Failed)
	respond.JSON(w, http.StatusOK, result)
}

// Template handles GET /stations/template, returning a pre-formatted workbook
// with dropdown validation referencing current master data.
func (h *Handler) Template(w http.ResponseWriter, r *http.Request) {
	lines, audiences, types, err := h.store.MasterNames(r.Context())
	if err != nil {
		h.writeError(w, err)
		return
	}
	f, err := BuildTemplate(lines, audiences, types)
	if err != nil {
		h.logger.Error("failed to build template workbook", "error", err)
		respond.Internal(w)
		return
	}
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="stations-template.xlsx"`)
	if err := f.Write(w); err != nil {
		h.logger.Error("failed to write template workbook", "error", err)
	}
}

func (h *Handler) idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respond.BadRequest(w, "invalid id")
		return 0, false
	}
	return id, true
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
		h.logger.Error("stations store error", "error", err)
		respond.Internal(w)
	}
}
