package journal

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/subuhjayafarm/farmbook/internal/platform/httpx"
	"github.com/subuhjayafarm/farmbook/internal/shared"
	"github.com/subuhjayafarm/farmbook/internal/tenant"
)

// Handler wires HTTP endpoints for the journal module.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs journal handler.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers journal routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.handleList)
	r.Get("/view", h.handleView)
	r.Post("/misc", h.handleMisc)
	r.Post("/purchases", h.handlePurchase)
	r.Post("/sales", h.handleSale)
	r.Post("/openings/account", h.handleOpeningAccount)
	r.Post("/openings/counterparty", h.handleOpeningCounterparty)
	r.Post("/openings/inventory", h.handleOpeningInventory)
	r.Post("/delete", h.handleDelete)
}

type miscRequest struct {
	Date          string  `json:"date" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	DebitAccount  string  `json:"debit_account" validate:"required"`
	CreditAccount string  `json:"credit_account" validate:"required"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Counterparty  string  `json:"counterparty"`
}

type tradeRequest struct {
	Date         string  `json:"date" validate:"required"`
	Description  string  `json:"description"`
	Method       string  `json:"method" validate:"required,oneof=Cash Credit"`
	Counterparty string  `json:"counterparty"`
	Category     string  `json:"category" validate:"required"`
	UnitPrice    float64 `json:"unit_price" validate:"required,gt=0"`
	Qty          int     `json:"qty" validate:"required,gt=0"`
}

type openingAccountRequest struct {
	Date        string  `json:"date" validate:"required"`
	Account     string  `json:"account" validate:"required"`
	Side        string  `json:"side" validate:"required,oneof=debit credit"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Description string  `json:"description"`
}

type openingCounterpartyRequest struct {
	Date         string  `json:"date" validate:"required"`
	Counterparty string  `json:"counterparty" validate:"required"`
	Kind         string  `json:"kind" validate:"required,oneof=receivable payable"`
	Amount       float64 `json:"amount" validate:"required,gt=0"`
}

type openingInventoryRequest struct {
	Date      string  `json:"date" validate:"required"`
	Category  string  `json:"category" validate:"required"`
	UnitPrice float64 `json:"unit_price" validate:"gte=0"`
	Qty       int     `json:"qty" validate:"required,gt=0"`
}

type deleteRequest struct {
	Category string  `json:"category" validate:"required"`
	IDs      []int64 `json:"ids" validate:"required,min=1"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	category := r.URL.Query().Get("category")
	var (
		entries []Entry
		err     error
	)
	if category != "" {
		entries, err = h.service.ListByCategory(r.Context(), t.ID, Category(category))
	} else {
		entries, err = h.service.List(r.Context(), t.ID)
	}
	if err != nil {
		h.logger.Error("list journal", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	if entries == nil {
		entries = []Entry{}
	}
	httpx.JSON(w, http.StatusOK, entries)
}

// handleView renders the journal as display lines in posting order.
func (h *Handler) handleView(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	entries, err := h.service.List(r.Context(), t.ID)
	if err != nil {
		h.logger.Error("view journal", slog.Any("error", err))
		httpx.Error(w, err)
		return
	}
	lines := Format(entries)
	if lines == nil {
		lines = []DisplayLine{}
	}
	httpx.JSON(w, http.StatusOK, lines)
}

func (h *Handler) handleMisc(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	var req miscRequest
	date, ok := h.decode(w, r, &req)
	if !ok {
		return
	}
	entry, err := h.service.AppendMisc(r.Context(), MiscInput{
		TenantID:      t.ID,
		Date:          date,
		Description:   req.Description,
		DebitAccount:  req.DebitAccount,
		CreditAccount: req.CreditAccount,
		Amount:        req.Amount,
		Counterparty:  req.Counterparty,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	h.handleTrade(w, r, h.service.AppendPurchase)
}

func (h *Handler) handleSale(w http.ResponseWriter, r *http.Request) {
	h.handleTrade(w, r, h.service.AppendSale)
}

func (h *Handler) handleTrade(w http.ResponseWriter, r *http.Request, post func(context.Context, TradeInput) (Entry, error)) {
	t, _ := tenant.FromContext(r.Context())
	var req tradeRequest
	date, ok := h.decode(w, r, &req)
	if !ok {
		return
	}
	entry, err := post(r.Context(), TradeInput{
		TenantID:     t.ID,
		Date:         date,
		Description:  req.Description,
		Method:       Method(req.Method),
		Counterparty: req.Counterparty,
		Category:     req.Category,
		UnitPrice:    req.UnitPrice,
		Qty:          req.Qty,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleOpeningAccount(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	var req openingAccountRequest
	date, ok := h.decode(w, r, &req)
	if !ok {
		return
	}
	entry, err := h.service.AppendOpeningAccount(r.Context(), OpeningAccountInput{
		TenantID:    t.ID,
		Date:        date,
		Account:     req.Account,
		Debit:       req.Side == "debit",
		Amount:      req.Amount,
		Description: req.Description,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleOpeningCounterparty(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	var req openingCounterpartyRequest
	date, ok := h.decode(w, r, &req)
	if !ok {
		return
	}
	entry, err := h.service.AppendOpeningCounterparty(r.Context(), OpeningCounterpartyInput{
		TenantID:     t.ID,
		Date:         date,
		Counterparty: req.Counterparty,
		Kind:         OpeningKind(req.Kind),
		Amount:       req.Amount,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleOpeningInventory(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	var req openingInventoryRequest
	date, ok := h.decode(w, r, &req)
	if !ok {
		return
	}
	entry, err := h.service.AppendOpeningInventory(r.Context(), OpeningInventoryInput{
		TenantID:  t.ID,
		Date:      date,
		Category:  req.Category,
		UnitPrice: req.UnitPrice,
		Qty:       req.Qty,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, entry)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	t, _ := tenant.FromContext(r.Context())
	var req deleteRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "bad request", "invalid JSON body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return
	}
	res, err := h.service.Delete(r.Context(), DeleteInput{
		TenantID: t.ID,
		Category: Category(req.Category),
		IDs:      req.IDs,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}
	httpx.JSON(w, http.StatusOK, res)
}

// decode parses the body, validates it, and extracts the date field shared
// by every append request.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, req any) (time.Time, bool) {
	if err := httpx.DecodeJSON(r, req); err != nil {
		httpx.Problem(w, http.StatusBadRequest, "bad request", "invalid JSON body")
		return time.Time{}, false
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Problem(w, http.StatusUnprocessableEntity, "validation failed", err.Error())
		return time.Time{}, false
	}
	raw := dateOf(req)
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		httpx.Error(w, shared.Invalid(shared.KindBadDate, "date must be YYYY-MM-DD, got %q", raw))
		return time.Time{}, false
	}
	return date, true
}

func dateOf(req any) string {
	switch v := req.(type) {
	case *miscRequest:
		return v.Date
	case *tradeRequest:
		return v.Date
	case *openingAccountRequest:
		return v.Date
	case *openingCounterpartyRequest:
		return v.Date
	case *openingInventoryRequest:
		return v.Date
	}
	return ""
}
