package reports

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/singleflight"

	"github.com/subuhjayafarm/farmbook/internal/platform/httpx"
	"github.com/subuhjayafarm/farmbook/internal/tenant"
)

// Handler wires HTTP endpoints for reports. Concurrent identical report
// requests collapse into one build via singleflight.
type Handler struct {
	logger  *slog.Logger
	service *Service
	group   singleflight.Group
}

// NewHandler constructs reports handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers report routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/trial-balance", h.handleTrialBalance)
	r.Get("/income-statement", h.handleIncomeStatement)
	r.Get("/balance-sheet", h.handleBalanceSheet)
	r.Get("/kpis", h.handleKPIs)
}

func (h *Handler) build(w http.ResponseWriter, r *http.Request, name string, fn func(ctx context.Context, tenantID string) (any, error)) {
	t, _ := tenant.FromContext(r.Context())
	key := fmt.Sprintf("%s:%s", name, t.ID)
	// The flight outlives the request that starts it; coalesced callers
	// must not inherit the first caller's cancellation.
	ctx := context.WithoutCancel(r.Context())
	result, err, _ := h.group.Do(key, func() (any, error) {
		return fn(ctx, t.ID)
	})
	if err != nil {
		h.logger.Error("build report", slog.String("report", name), slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, result)
}

func (h *Handler) handleTrialBalance(w http.ResponseWriter, r *http.Request) {
	includeOpening := r.URL.Query().Get("exclude_opening") != "true"
	name := "tb"
	if !includeOpening {
		name = "tb-post"
	}
	h.build(w, r, name, func(ctx context.Context, tenantID string) (any, error) {
		return h.service.TrialBalance(ctx, tenantID, includeOpening)
	})
}

func (h *Handler) handleIncomeStatement(w http.ResponseWriter, r *http.Request) {
	h.build(w, r, "pl", func(ctx context.Context, tenantID string) (any, error) {
		return h.service.IncomeStatement(ctx, tenantID)
	})
}

func (h *Handler) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	h.build(w, r, "bs", func(ctx context.Context, tenantID string) (any, error) {
		return h.service.BalanceSheet(ctx, tenantID)
	})
}

func (h *Handler) handleKPIs(w http.ResponseWriter, r *http.Request) {
	h.build(w, r, "kpi", func(ctx context.Context, tenantID string) (any, error) {
		return h.service.KPIs(ctx, tenantID)
	})
}
