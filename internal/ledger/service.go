package ledger

import (
	"context"

	"github.com/subuhjayafarm/farmbook/internal/journal"
	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// JournalPort supplies the entries the engine reconstructs from.
type JournalPort interface {
	List(ctx context.Context, tenantID string) ([]journal.Entry, error)
}

// Service reconstructs account views from the journal. All derived state
// is recomputed from entries on demand; nothing is cached.
type Service struct {
	journals JournalPort
}

// NewService builds Service.
func NewService(journals JournalPort) *Service {
	return &Service{journals: journals}
}

// AccountBalance returns the account's balance on its normal side.
func (s *Service) AccountBalance(ctx context.Context, tenantID, account string, includeOpening bool) (float64, error) {
	entries, err := s.load(ctx, tenantID)
	if err != nil {
		return 0, err
	}
	return AccountBalanceFrom(entries, account, includeOpening), nil
}

// Card returns the account's ledger card.
func (s *Service) Card(ctx context.Context, tenantID, account string) ([]Row, error) {
	entries, err := s.load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return CardFrom(entries, account), nil
}

// SubledgerCard returns one counterparty's receivable or payable card.
func (s *Service) SubledgerCard(ctx context.Context, tenantID string, kind SubledgerKind, counterparty string) ([]Row, error) {
	if kind != SubledgerReceivable && kind != SubledgerPayable {
		return nil, shared.Invalid(shared.KindBadReference, "unknown subledger kind %q", kind)
	}
	if counterparty == "" {
		return nil, shared.Invalid(shared.KindMissingField, "counterparty required")
	}
	entries, err := s.load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return SubledgerCardFrom(entries, kind, counterparty), nil
}

// Counterparties lists distinct counterparty names.
func (s *Service) Counterparties(ctx context.Context, tenantID string) ([]string, error) {
	entries, err := s.load(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return CounterpartiesFrom(entries), nil
}

func (s *Service) load(ctx context.Context, tenantID string) ([]journal.Entry, error) {
	if tenantID == "" {
		return nil, shared.ErrTenantUnknown
	}
	return s.journals.List(ctx, tenantID)
}
