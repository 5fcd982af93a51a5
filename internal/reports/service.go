package reports

import (
	"context"

	"github.com/subuhjayafarm/farmbook/internal/inventory"
	"github.com/subuhjayafarm/farmbook/internal/journal"
	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// JournalPort supplies entries to build reports from.
type JournalPort interface {
	List(ctx context.Context, tenantID string) ([]journal.Entry, error)
}

// StockPort supplies the stock summary for the KPI report.
type StockPort interface {
	Summary(ctx context.Context, tenantID string) (inventory.StockSummary, error)
}

// Service builds financial reports on demand.
type Service struct {
	journals JournalPort
	stock    StockPort
}

// NewService builds Service.
func NewService(journals JournalPort, stock StockPort) *Service {
	return &Service{journals: journals, stock: stock}
}

// TrialBalance recomputes the trial balance from the journal.
func (s *Service) TrialBalance(ctx context.Context, tenantID string, includeOpening bool) (TrialBalance, error) {
	entries, err := s.load(ctx, tenantID)
	if err != nil {
		return TrialBalance{}, err
	}
	return BuildTrialBalance(entries, includeOpening), nil
}

// IncomeStatement recomputes the income statement from the journal.
func (s *Service) IncomeStatement(ctx context.Context, tenantID string) (IncomeStatement, error) {
	entries, err := s.load(ctx, tenantID)
	if err != nil {
		return IncomeStatement{}, err
	}
	return BuildIncomeStatement(entries), nil
}

// BalanceSheet recomputes the balance sheet from the journal.
func (s *Service) BalanceSheet(ctx context.Context, tenantID string) (BalanceSheet, error) {
	entries, err := s.load(ctx, tenantID)
	if err != nil {
		return BalanceSheet{}, err
	}
	return BuildBalanceSheet(entries), nil
}

// KPIs assembles the dashboard numbers from the journal and the stock
// summary.
func (s *Service) KPIs(ctx context.Context, tenantID string) (KPI, error) {
	entries, err := s.load(ctx, tenantID)
	if err != nil {
		return KPI{}, err
	}
	stock, err := s.stock.Summary(ctx, tenantID)
	if err != nil {
		return KPI{}, err
	}
	return BuildKPI(entries, stock), nil
}

func (s *Service) load(ctx context.Context, tenantID string) ([]journal.Entry, error) {
	if tenantID == "" {
		return nil, shared.ErrTenantUnknown
	}
	return s.journals.List(ctx, tenantID)
}
