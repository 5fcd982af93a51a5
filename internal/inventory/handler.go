package inventory

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/subuhjayafarm/farmbook/internal/platform/httpx"
	"github.com/subuhjayafarm/farmbook/internal/shared"
	"github.com/subuhjayafarm/farmbook/internal/tenant"
)

// Handler wires HTTP endpoints for the inventory module.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs inventory handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers inventory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/balance", h.handleBalance)
	r.Get("/card", h.handleCard)
	r.Get("/summary", h.handleSummary)
	r.Post("/movements", h.handleAppend)
	r.Post("/recompute", h.handleRecompute)
}

type movementRequest struct {
	Date      string  `json:"date" validate:"required"`
	Type      string  `json:"type" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
}

type recomputeRequest struct {
	Category string `json:"category" validate:"required"`
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	bal, err := h.service.Balance(r.Context(), t.ID, r.URL.Query().Get("category"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, bal)
}

func (h *Handler) handleCard(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	rows, err := h.service.Card(r.Context(), t.ID, r.URL.Query().Get("category"))
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if rows == nil {
		rows = []CardRow{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleSummary(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	sum, err := h.service.Summary(r.Context(), t.ID)
	if err != nil {
		h.logger.Error("stock summary", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, sum)
}

func (h *Handler) handleAppend(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	var req movementRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "bad request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		httpx.Error(w, shared.Invalid(shared.KindBadDate, "date must be YYYY-MM-DD, got %q", req.Date))
		return
	}
	m, err := h.service.Append(r.Context(), AppendInput{
		TenantID:  t.ID,
		Date:      date,
		Type:      MovementType(req.Type),
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		Qty:       req.Qty,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, m)
}

func (h *Handler) handleRecompute(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	var req recomputeRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "bad request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}
	res, err := h.service.Recompute(r.Context(), t.ID, req.Category)
	if err != nil {
		h.logger.Error("recompute", slog.String("category", req.Category), slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}
