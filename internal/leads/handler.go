package leads

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/brandmetro/transit-ads-platform/internal/http/respond"
	"github.com/brandmetro/transit-ads-platform/internal/observability/metrics"
	"github.com/brandmetro/transit-ads-platform/internal/products"
	"github.com/brandmetro/transit-ads-platform/internal/stations"
	"github.com/brandmetro/transit-ads-platform/pkg/logging"
)

// Store is the persistence surface the handler needs.
type Store interface {
	Create(ctx context.Context, l *Lead) error
	List(ctx context.Context, limit, offset int) ([]Lead, error)
	Get(ctx context.Context, id int64) (*Lead, error)
	Delete(ctx context.Context, id int64) error
}

// StationSource resolves the station referenced by a submission.
type StationSource interface {
	Get(ctx context.Context, id int64) (*stations.Station, error)
}

// ProductSource resolves the ad format referenced by a submission.
type ProductSource interface {
	Get(ctx context.Context, id int64) (*products.Product, error)
}

// Notifier runs the best-effort post-submission side effects (media-kit PDF,
// requester email, admin email). It is invoked after the HTTP response has
// been written; its outcome never reaches the caller.
type Notifier interface {
	LeadCaptured(ctx context.Context, lead *Lead) error
}

const defaultNotifyTimeout = 30 * time.Second

type Handler struct {
	store         Store
	stations      StationSource
	products      ProductSource
	notifier      Notifier
	metrics       *metrics.LeadMetrics
	logger        *logging.Logger
	notifyTimeout time.Duration
}

func NewHandler(store Store, st StationSource, pr ProductSource, n Notifier, m *metrics.LeadMetrics, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		store:         store,
		stations:      st,
		products:      pr,
		notifier:      n,
		metrics:       m,
		logger:        logger,
		notifyTimeout: defaultNotifyTimeout,
	}
}

// Submit handles POST /api/leads. The lead row is the only critical write;
// once it commits the response goes out, and notifications run on their own
// context in the background.
func (h *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	var req CreateLeadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		h.metrics.ObserveSubmission(req.Requirement, "invalid")
		respond.BadRequest(w, err.Error())
		return
	}

	lead := &Lead{
		Requirement:  req.Requirement,
		BuyerType:    req.BuyerType,
		Familiarity:  req.Familiarity,
		Company:      req.Company,
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		StationID:    req.StationID,
		BudgetBand:   req.BudgetBand,
		CampaignGoal: req.CampaignGoal,
		Audience:     req.Audience,
		Timeline:     req.Timeline,
		Message:      req.Message,
	}

	if req.StationID != nil {
		st, err := h.stations.Get(r.Context(), *req.StationID)
		if errors.Is(err, stations.ErrNotFound) {
			respond.NotFound(w, "station not found")
			return
		}
		if err != nil {
			h.logger.Error("station lookup failed", "station_id", *req.StationID, "error", err)
			respond.Internal(w)
			return
		}
		lead.StationName = st.Name
	}
	if req.ProductID != nil {
		p, err := h.products.Get(r.Context(), *req.ProductID)
		if errors.Is(err, products.ErrNotFound) {
			respond.NotFound(w, "product not found")
			return
		}
		if err != nil {
			h.logger.Error("product lookup failed", "product_id", *req.ProductID, "error", err)
			respond.Internal(w)
			return
		}
		lead.AdFormat = p.Name
	}

	if err := h.store.Create(r.Context(), lead); err != nil {
		h.metrics.ObserveSubmission(req.Requirement, "error")
		h.logger.Error("lead insert failed", "error", err)
		respond.Internal(w)
		return
	}
	h.metrics.ObserveSubmission(req.Requirement, "ok")
	respond.Created(w, lead.ID)

	if h.notifier != nil {
		go h.notify(lead)
	}
}

func (h *Handler) notify(lead *Lead) {
	ctx, cancel := context.WithTimeout(context.Background(), h.notifyTimeout)
	defer cancel()
	if err := h.notifier.LeadCaptured(ctx, lead); err != nil {
		h.logger.Warn("lead notification failed", "lead_id", lead.ID, "error", err)
	}
}

// List handles GET /cms/api/leads with optional limit/offset query params.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	list, err := h.store.List(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("lead list failed", "error", err)
		respond.Internal(w)
		return
	}
	respond.JSON(w, http.StatusOK, map[string]any{"leads": list})
}

// Get handles GET /cms/api/leads/{id}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}
	lead, err := h.store.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	respond.JSON(w, http.StatusOK, lead)
}

// Delete handles DELETE /cms/api/leads/{id}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respond.BadRequest(w, "invalid id")
		return
	}
	if err := h.store.Delete(r.Context(), id); err != nil {
		h.writeError(w, err)
		return
	}
	respond.OK(w)
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrNotFound) {
		respond.NotFound(w, err.Error())
		return
	}
	h.logger.Error("lead store error", "error", err)
	respond.Internal(w)
}

func idParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
