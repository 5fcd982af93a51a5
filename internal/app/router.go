package app

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/subuhjayafarm/farmbook/internal/inventory"
	"github.com/subuhjayafarm/farmbook/internal/journal"
	"github.com/subuhjayafarm/farmbook/internal/ledger"
	"github.com/subuhjayafarm/farmbook/internal/reports"
	"github.com/subuhjayafarm/farmbook/internal/tenant"
	"github.com/subuhjayafarm/farmbook/jobs"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger           *slog.Logger
	Config           *Config
	TenantService    *tenant.Service
	TenantHandler    *tenant.Handler
	JournalHandler   *journal.Handler
	InventoryHandler *inventory.Handler
	LedgerHandler    *ledger.Handler
	ReportsHandler   *reports.Handler
	JobHandler       *jobs.Handler
}

// NewRouter constructs the chi.Router with farmbook defaults. Tenant
// registration, login and health live outside the tenant middleware;
// every engine route requires a resolved tenant.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger: params.Logger,
		Config: params.Config,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/tenants", params.TenantHandler.MountRoutes)
	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}

	r.Group(func(r chi.Router) {
		r.Use(params.TenantService.Middleware)
		r.Route("/journal", params.JournalHandler.MountRoutes)
		r.Route("/inventory", params.InventoryHandler.MountRoutes)
		r.Route("/ledger", params.LedgerHandler.MountRoutes)
		r.Route("/reports", params.ReportsHandler.MountRoutes)
		if params.JobHandler != nil {
			r.Route("/batch", params.JobHandler.MountTenantRoutes)
		}
	})

	return r
}
