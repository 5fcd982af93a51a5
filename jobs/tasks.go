package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/subuhjayafarm/farmbook/internal/accounts"
	"github.com/subuhjayafarm/farmbook/internal/inventory"
	"github.com/subuhjayafarm/farmbook/internal/reports"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskInventoryRecompute replays a category's costing from scratch.
	TaskInventoryRecompute = "inventory:recompute"
	// TaskLedgerIntegrity recomputes trial balances and logs discrepancies.
	TaskLedgerIntegrity = "ledger:integrity"
)

// RecomputePayload selects what to recompute. An empty category means
// every livestock category, fanned out concurrently.
type RecomputePayload struct {
	TenantID string `json:"tenant_id"`
	Category string `json:"category,omitempty"`
}

// IntegrityPayload selects the tenants to check. Empty means all.
type IntegrityPayload struct {
	TenantID string `json:"tenant_id,omitempty"`
}

// NewRecomputeTask constructs an Asynq task.
func NewRecomputeTask(payload RecomputePayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInventoryRecompute, data), nil
}

// NewIntegrityTask constructs an Asynq task.
func NewIntegrityTask(payload IntegrityPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLedgerIntegrity, data), nil
}

// TenantPort lists tenants for fleet-wide tasks.
type TenantPort interface {
	ListIDs(ctx context.Context) ([]string, error)
}

// Deps carries the services task handlers run against.
type Deps struct {
	Inventory *inventory.Service
	Reports   *reports.Service
	Tenants   TenantPort
	Logger    *slog.Logger
}

// HandleRecomputeTask processes TaskInventoryRecompute tasks.
func (d Deps) HandleRecomputeTask(ctx context.Context, t *asynq.Task) error {
	var payload RecomputePayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	if payload.TenantID == "" {
		return asynq.SkipRetry
	}
	categories := []string{payload.Category}
	if payload.Category == "" {
		categories = accounts.LivestockCategories()
	}
	g, ctx := errgroup.WithContext(ctx)
	for _, cat := range categories {
		g.Go(func() error {
			res, err := d.Inventory.Recompute(ctx, payload.TenantID, cat)
			if err != nil {
				return err
			}
			d.Logger.Info("inventory recompute",
				slog.String("tenant", payload.TenantID),
				slog.String("category", cat),
				slog.Int("scanned", res.Scanned),
				slog.Int("repaired", res.Repaired))
			return nil
		})
	}
	return g.Wait()
}

// HandleIntegrityTask processes TaskLedgerIntegrity tasks. An out of
// balance book is logged as a warning; the task itself still succeeds so
// the report stays available.
func (d Deps) HandleIntegrityTask(ctx context.Context, t *asynq.Task) error {
	var payload IntegrityPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	tenants := []string{payload.TenantID}
	if payload.TenantID == "" {
		var err error
		tenants, err = d.Tenants.ListIDs(ctx)
		if err != nil {
			return err
		}
	}
	for _, id := range tenants {
		tb, err := d.Reports.TrialBalance(ctx, id, true)
		if err != nil {
			return err
		}
		if !tb.Balanced {
			d.Logger.Warn("ledger integrity check failed",
				slog.String("tenant", id),
				slog.Float64("debit", tb.TotalDebit),
				slog.Float64("credit", tb.TotalCredit),
				slog.String("warning", tb.Warning))
			continue
		}
		d.Logger.Info("ledger integrity ok", slog.String("tenant", id))
	}
	return nil
}
