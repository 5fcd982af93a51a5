package ledger

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/subuhjayafarm/farmbook/internal/platform/httpx"
	"github.com/subuhjayafarm/farmbook/internal/shared"
	"github.com/subuhjayafarm/farmbook/internal/tenant"
)

// Handler wires HTTP endpoints for ledger reconstruction.
type Handler struct {
	logger  *slog.Logger
	service *Service
}

// NewHandler constructs ledger handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service}
}

// MountRoutes registers ledger routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/balance", h.handleBalance)
	r.Get("/card", h.handleCard)
	r.Get("/subledger", h.handleSubledger)
	r.Get("/counterparties", h.handleCounterparties)
}

type balanceResponse struct {
	Account        string  `json:"account"`
	Balance        float64 `json:"balance"`
	IncludeOpening bool    `json:"include_opening"`
}

func (h *Handler) handleBalance(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	account := r.URL.Query().Get("account")
	if account == "" {
		httpx.Error(w, shared.Invalid(shared.KindMissingField, "account query parameter required"))
		return
	}
	includeOpening := r.URL.Query().Get("exclude_opening") != "true"
	bal, err := h.service.AccountBalance(r.Context(), t.ID, account, includeOpening)
	if err != nil {
		h.logger.Error("account balance", slog.String("account", account), slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, balanceResponse{Account: account, Balance: bal, IncludeOpening: includeOpening})
}

func (h *Handler) handleCard(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	account := r.URL.Query().Get("account")
	if account == "" {
		httpx.Error(w, shared.Invalid(shared.KindMissingField, "account query parameter required"))
		return
	}
	rows, err := h.service.Card(r.Context(), t.ID, account)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if rows == nil {
		rows = []Row{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleSubledger(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	kind := SubledgerKind(r.URL.Query().Get("kind"))
	counterparty := r.URL.Query().Get("counterparty")
	rows, err := h.service.SubledgerCard(r.Context(), t.ID, kind, counterparty)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if rows == nil {
		rows = []Row{}
	}
	httpx.JSON(w, http.StatusOK, rows)
}

func (h *Handler) handleCounterparties(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	names, err := h.service.Counterparties(r.Context(), t.ID)
	if err != nil {
		httpx.Error(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	httpx.JSON(w, http.StatusOK, names)
}
