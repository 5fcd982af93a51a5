package inventory

import (
	"context"
	"fmt"

	"github.com/subuhjayafarm/farmbook/internal/accounts"
	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// RepositoryPort abstracts repository usage for the service.
type RepositoryPort interface {
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
	ListMovements(ctx context.Context, tenantID, category string) ([]Movement, error)
	ListAllMovements(ctx context.Context, tenantID string) ([]Movement, error)
	Categories(ctx context.Context, tenantID string) ([]string, error)
}

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates inventory operations.
type Service struct {
	repo  RepositoryPort
	audit AuditPort
}

// NewService builds Service.
func NewService(repo RepositoryPort, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// Append records a movement that is not tied to a journal entry. Outbound
// movements are rejected when they would drive stock negative.
func (s *Service) Append(ctx context.Context, input AppendInput) (Movement, error) {
	if input.TenantID == "" {
		return Movement{}, shared.ErrTenantUnknown
	}
	if _, ok := accounts.InventoryAccount(input.Category); !ok {
		return Movement{}, shared.ErrUnknownCategory
	}
	if input.Qty <= 0 {
		return Movement{}, shared.Invalid(shared.KindBadAmount, "quantity must be positive, got %d", input.Qty)
	}
	if input.UnitPrice < 0 {
		return Movement{}, shared.Invalid(shared.KindBadAmount, "unit price must be >= 0")
	}
	if input.Date.IsZero() {
		return Movement{}, shared.Invalid(shared.KindBadDate, "movement date required")
	}
	switch input.Type {
	case MovementPurchase, MovementSale, MovementOpening:
	default:
		return Movement{}, shared.Invalid(shared.KindBadReference, "unknown movement type %q", input.Type)
	}

	var saved Movement
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		existing, err := tx.ListMovementsForUpdate(ctx, input.TenantID, input.Category)
		if err != nil {
			return err
		}
		m := Movement{
			TenantID:  input.TenantID,
			Date:      input.Date,
			Type:      input.Type,
			Category:  input.Category,
			UnitPrice: input.UnitPrice,
			Qty:       input.Qty,
		}
		if m.Type == MovementSale {
			bal := Fold(input.Category, existing)
			if input.Qty > bal.Qty {
				return shared.ErrNegativeStock
			}
			// A sale is valued at the moving average, never the caller price.
			m.UnitPrice = bal.AvgCost
			m.Total = round2(bal.AvgCost * float64(input.Qty))
		} else {
			m.Total = round2(input.UnitPrice * float64(input.Qty))
		}
		saved, err = tx.InsertMovement(ctx, m)
		return err
	})
	if err != nil {
		return Movement{}, err
	}
	s.record(ctx, input.TenantID, "inventory:append", saved.ID, map[string]any{
		"category": saved.Category,
		"type":     string(saved.Type),
		"qty":      saved.Qty,
		"total":    saved.Total,
	})
	return saved, nil
}

// Balance returns the current stock position for a category.
func (s *Service) Balance(ctx context.Context, tenantID, category string) (Balance, error) {
	if _, ok := accounts.InventoryAccount(category); !ok {
		return Balance{}, shared.ErrUnknownCategory
	}
	ms, err := s.repo.ListMovements(ctx, tenantID, category)
	if err != nil {
		return Balance{}, fmt.Errorf("inventory balance %s: %w", category, err)
	}
	return Fold(category, ms), nil
}

// Card returns the stock card for a category with running balances.
func (s *Service) Card(ctx context.Context, tenantID, category string) ([]CardRow, error) {
	if _, ok := accounts.InventoryAccount(category); !ok {
		return nil, shared.ErrUnknownCategory
	}
	ms, err := s.repo.ListMovements(ctx, tenantID, category)
	if err != nil {
		return nil, fmt.Errorf("inventory card %s: %w", category, err)
	}
	return BuildCard(ms), nil
}

// Summary aggregates head count and stock value across all categories.
func (s *Service) Summary(ctx context.Context, tenantID string) (StockSummary, error) {
	var sum StockSummary
	for _, cat := range accounts.LivestockCategories() {
		ms, err := s.repo.ListMovements(ctx, tenantID, cat)
		if err != nil {
			return StockSummary{}, err
		}
		b := Fold(cat, ms)
		sum.TotalQty += b.Qty
		sum.TotalValue = round2(sum.TotalValue + b.Value)
		sum.Categories = append(sum.Categories, b)
	}
	return sum, nil
}

// Recompute replays a category from scratch and rewrites any sale whose
// stored cost drifted from the replayed moving average. This is the only
// repair path; appends never retroactively change recorded sales.
func (s *Service) Recompute(ctx context.Context, tenantID, category string) (RecomputeResult, error) {
	if _, ok := accounts.InventoryAccount(category); !ok {
		return RecomputeResult{}, shared.ErrUnknownCategory
	}
	var res RecomputeResult
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		ms, err := tx.ListMovementsForUpdate(ctx, tenantID, category)
		if err != nil {
			return err
		}
		repaired, err := replan(ms)
		if err != nil {
			return err
		}
		for _, m := range repaired {
			if err := tx.UpdateMovementCost(ctx, m.ID, m.UnitPrice, m.Total); err != nil {
				return err
			}
		}
		res = RecomputeResult{
			Category: category,
			Scanned:  len(ms),
			Repaired: len(repaired),
			Balance:  Fold(category, ms),
		}
		return nil
	})
	if err != nil {
		return RecomputeResult{}, err
	}
	s.record(ctx, tenantID, "inventory:recompute", 0, map[string]any{
		"category": category,
		"scanned":  res.Scanned,
		"repaired": res.Repaired,
	})
	return res, nil
}

func (s *Service) record(ctx context.Context, tenantID, action string, id int64, meta map[string]any) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		TenantID: tenantID,
		Action:   action,
		Entity:   "inventory_movement",
		EntityID: fmt.Sprintf("%d", id),
		Meta:     meta,
	})
}
