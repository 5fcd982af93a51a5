package journal

import (
	"context"
	"fmt"

	"github.com/subuhjayafarm/farmbook/internal/accounts"
	"github.com/subuhjayafarm/farmbook/internal/inventory"
	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// AuditPort abstracts audit logging functionality.
type AuditPort interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service coordinates journal postings. Every append validates, builds a
// balanced entry and writes the entry plus any inventory movement in one
// transaction.
type Service struct {
	repo  Repository
	audit AuditPort
}

// NewService builds Service.
func NewService(repo Repository, audit AuditPort) *Service {
	return &Service{repo: repo, audit: audit}
}

// List returns every entry for the tenant ordered by date then id.
func (s *Service) List(ctx context.Context, tenantID string) ([]Entry, error) {
	if tenantID == "" {
		return nil, shared.ErrTenantUnknown
	}
	return s.repo.List(ctx, tenantID)
}

// ListByCategory returns the tenant's entries of one category.
func (s *Service) ListByCategory(ctx context.Context, tenantID string, category Category) ([]Entry, error) {
	if tenantID == "" {
		return nil, shared.ErrTenantUnknown
	}
	return s.repo.ListByCategory(ctx, tenantID, category)
}

// AppendMisc posts a miscellaneous entry: one debit and one credit of the
// same amount.
func (s *Service) AppendMisc(ctx context.Context, input MiscInput) (Entry, error) {
	if input.TenantID == "" {
		return Entry{}, shared.ErrTenantUnknown
	}
	if input.Amount <= 0 {
		return Entry{}, shared.Invalid(shared.KindBadAmount, "amount must be positive, got %.2f", input.Amount)
	}
	if input.DebitAccount == "" || input.CreditAccount == "" {
		return Entry{}, shared.Invalid(shared.KindMissingField, "debit and credit accounts required")
	}
	entry := Entry{
		TenantID:     input.TenantID,
		Date:         input.Date,
		Description:  input.Description,
		Method:       MethodCash,
		Category:     CategoryMisc,
		Debits:       []PostingLine{{Account: input.DebitAccount, Amount: input.Amount}},
		Credits:      []PostingLine{{Account: input.CreditAccount, Amount: input.Amount}},
		Counterparty: input.Counterparty,
		TotalValue:   input.Amount,
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	var saved Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		saved, err = tx.InsertEntry(ctx, entry)
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	s.record(ctx, saved, "journal:append_misc")
	return saved, nil
}

// AppendPurchase posts a livestock purchase: debit the category's inventory
// account, credit cash or trade payable, and record the inbound movement in
// the same transaction.
func (s *Service) AppendPurchase(ctx context.Context, input TradeInput) (Entry, error) {
	invAccount, total, err := s.validateTrade(input, CategoryPurchase)
	if err != nil {
		return Entry{}, err
	}
	settle := accounts.Cash
	if input.Method == MethodCredit {
		settle = accounts.TradePayable
	}
	entry := Entry{
		TenantID:          input.TenantID,
		Date:              input.Date,
		Description:       input.Description,
		Method:            input.Method,
		Category:          CategoryPurchase,
		Debits:            []PostingLine{{Account: invAccount, Amount: total}},
		Credits:           []PostingLine{{Account: settle, Amount: total}},
		Counterparty:      input.Counterparty,
		LivestockCategory: input.Category,
		UnitPrice:         input.UnitPrice,
		UnitQty:           input.Qty,
		TotalValue:        total,
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	var saved Entry
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		saved, err = tx.InsertEntry(ctx, entry)
		if err != nil {
			return err
		}
		_, err = tx.InsertMovement(ctx, inventory.Movement{
			TenantID:       input.TenantID,
			JournalEntryID: &saved.ID,
			Date:           input.Date,
			Type:           inventory.MovementPurchase,
			Category:       input.Category,
			UnitPrice:      input.UnitPrice,
			Qty:            input.Qty,
			Total:          total,
		})
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	s.record(ctx, saved, "journal:append_purchase")
	return saved, nil
}

// AppendSale posts a livestock sale. Revenue is recognised gross at the
// selling price; cost of goods sold is the quantity times the moving
// average in force when the sale is recorded, locked into the entry and
// movement. A sale that would drive stock negative is rejected.
func (s *Service) AppendSale(ctx context.Context, input TradeInput) (Entry, error) {
	invAccount, gross, err := s.validateTrade(input, CategorySale)
	if err != nil {
		return Entry{}, err
	}
	settle := accounts.Cash
	if input.Method == MethodCredit {
		settle = accounts.TradeReceivable
	}
	var saved Entry
	err = s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		movements, err := tx.CategoryMovementsForUpdate(ctx, input.TenantID, input.Category)
		if err != nil {
			return err
		}
		bal := inventory.Fold(input.Category, movements)
		if input.Qty > bal.Qty {
			return shared.ErrNegativeStock
		}
		cogs := roundCents(bal.AvgCost * float64(input.Qty))
		entry := Entry{
			TenantID:          input.TenantID,
			Date:              input.Date,
			Description:       input.Description,
			Method:            input.Method,
			Category:          CategorySale,
			Debits:            []PostingLine{{Account: settle, Amount: gross}},
			Credits:           []PostingLine{{Account: accounts.SalesRevenue, Amount: gross}},
			Counterparty:      input.Counterparty,
			LivestockCategory: input.Category,
			UnitPrice:         input.UnitPrice,
			UnitQty:           input.Qty,
			TotalValue:        gross,
		}
		if cogs >= 0.01 {
			entry.Debits = append(entry.Debits, PostingLine{Account: accounts.CostOfGoodsSold, Amount: cogs})
			entry.Credits = append(entry.Credits, PostingLine{Account: invAccount, Amount: cogs})
		}
		if err := entry.Validate(); err != nil {
			return err
		}
		saved, err = tx.InsertEntry(ctx, entry)
		if err != nil {
			return err
		}
		_, err = tx.InsertMovement(ctx, inventory.Movement{
			TenantID:       input.TenantID,
			JournalEntryID: &saved.ID,
			Date:           input.Date,
			Type:           inventory.MovementSale,
			Category:       input.Category,
			UnitPrice:      bal.AvgCost,
			Qty:            input.Qty,
			Total:          cogs,
		})
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	s.record(ctx, saved, "journal:append_sale")
	return saved, nil
}

// AppendOpeningAccount seeds one account's opening balance, balanced
// against owner capital. The capital account itself cannot be opened this
// way; it absorbs the counter-side of every opening.
func (s *Service) AppendOpeningAccount(ctx context.Context, input OpeningAccountInput) (Entry, error) {
	if input.TenantID == "" {
		return Entry{}, shared.ErrTenantUnknown
	}
	if input.Account == accounts.OwnerCapital {
		return Entry{}, shared.ErrCapitalOpening
	}
	if _, ok := accounts.Classify(input.Account); !ok {
		return Entry{}, shared.Invalid(shared.KindBadReference, "unknown account %q", input.Account)
	}
	if input.Amount <= 0 {
		return Entry{}, shared.Invalid(shared.KindBadAmount, "amount must be positive, got %.2f", input.Amount)
	}
	desc := input.Description
	if desc == "" {
		desc = fmt.Sprintf("Opening balance %s", input.Account)
	}
	entry := Entry{
		TenantID:    input.TenantID,
		Date:        input.Date,
		Description: desc,
		Method:      MethodOpening,
		Category:    CategoryOpening,
		TotalValue:  input.Amount,
	}
	if input.Debit {
		entry.Debits = []PostingLine{{Account: input.Account, Amount: input.Amount}}
		entry.Credits = []PostingLine{{Account: accounts.OwnerCapital, Amount: input.Amount}}
	} else {
		entry.Debits = []PostingLine{{Account: accounts.OwnerCapital, Amount: input.Amount}}
		entry.Credits = []PostingLine{{Account: input.Account, Amount: input.Amount}}
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	var saved Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		saved, err = tx.InsertEntry(ctx, entry)
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	s.record(ctx, saved, "journal:append_opening")
	return saved, nil
}

// AppendOpeningCounterparty seeds a receivable or payable opening balance
// tagged with the counterparty, balanced against owner capital.
func (s *Service) AppendOpeningCounterparty(ctx context.Context, input OpeningCounterpartyInput) (Entry, error) {
	if input.TenantID == "" {
		return Entry{}, shared.ErrTenantUnknown
	}
	if input.Counterparty == "" {
		return Entry{}, shared.Invalid(shared.KindMissingField, "counterparty required")
	}
	if input.Amount <= 0 {
		return Entry{}, shared.Invalid(shared.KindBadAmount, "amount must be positive, got %.2f", input.Amount)
	}
	entry := Entry{
		TenantID:     input.TenantID,
		Date:         input.Date,
		Method:       MethodOpening,
		Category:     CategoryOpening,
		Counterparty: input.Counterparty,
		TotalValue:   input.Amount,
	}
	switch input.Kind {
	case OpeningReceivable:
		entry.Description = fmt.Sprintf("Opening receivable %s", input.Counterparty)
		entry.Debits = []PostingLine{{Account: accounts.TradeReceivable, Amount: input.Amount}}
		entry.Credits = []PostingLine{{Account: accounts.OwnerCapital, Amount: input.Amount}}
	case OpeningPayable:
		entry.Description = fmt.Sprintf("Opening payable %s", input.Counterparty)
		entry.Debits = []PostingLine{{Account: accounts.OwnerCapital, Amount: input.Amount}}
		entry.Credits = []PostingLine{{Account: accounts.TradePayable, Amount: input.Amount}}
	default:
		return Entry{}, shared.Invalid(shared.KindBadReference, "unknown opening kind %q", input.Kind)
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	var saved Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		saved, err = tx.InsertEntry(ctx, entry)
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	s.record(ctx, saved, "journal:append_opening")
	return saved, nil
}

// AppendOpeningInventory seeds a livestock category's opening stock,
// writing the journal entry and the opening movement in one transaction.
func (s *Service) AppendOpeningInventory(ctx context.Context, input OpeningInventoryInput) (Entry, error) {
	if input.TenantID == "" {
		return Entry{}, shared.ErrTenantUnknown
	}
	invAccount, ok := accounts.InventoryAccount(input.Category)
	if !ok {
		return Entry{}, shared.ErrUnknownCategory
	}
	if input.Qty <= 0 {
		return Entry{}, shared.Invalid(shared.KindBadAmount, "quantity must be positive, got %d", input.Qty)
	}
	if input.UnitPrice < 0 {
		return Entry{}, shared.Invalid(shared.KindBadAmount, "unit price must be >= 0")
	}
	total := roundCents(input.UnitPrice * float64(input.Qty))
	entry := Entry{
		TenantID:          input.TenantID,
		Date:              input.Date,
		Description:       fmt.Sprintf("Opening stock %s", input.Category),
		Method:            MethodOpening,
		Category:          CategoryOpening,
		Debits:            []PostingLine{{Account: invAccount, Amount: total}},
		Credits:           []PostingLine{{Account: accounts.OwnerCapital, Amount: total}},
		LivestockCategory: input.Category,
		UnitPrice:         input.UnitPrice,
		UnitQty:           input.Qty,
		TotalValue:        total,
	}
	if err := entry.Validate(); err != nil {
		return Entry{}, err
	}
	var saved Entry
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		var err error
		saved, err = tx.InsertEntry(ctx, entry)
		if err != nil {
			return err
		}
		_, err = tx.InsertMovement(ctx, inventory.Movement{
			TenantID:       input.TenantID,
			JournalEntryID: &saved.ID,
			Date:           input.Date,
			Type:           inventory.MovementOpening,
			Category:       input.Category,
			UnitPrice:      input.UnitPrice,
			Qty:            input.Qty,
			Total:          total,
		})
		return err
	})
	if err != nil {
		return Entry{}, err
	}
	s.record(ctx, saved, "journal:append_opening")
	return saved, nil
}

// Delete removes entries of one category by id and cascades to inventory
// movements through their journal_entry_id link. Both counts are returned.
func (s *Service) Delete(ctx context.Context, input DeleteInput) (DeleteResult, error) {
	if input.TenantID == "" {
		return DeleteResult{}, shared.ErrTenantUnknown
	}
	if len(input.IDs) == 0 {
		return DeleteResult{}, shared.Invalid(shared.KindMissingField, "at least one entry id required")
	}
	switch input.Category {
	case CategorySale, CategoryPurchase, CategoryMisc, CategoryOpening:
	default:
		return DeleteResult{}, shared.Invalid(shared.KindBadReference, "unknown category %q", input.Category)
	}
	var res DeleteResult
	err := s.repo.WithTx(ctx, func(ctx context.Context, tx TxRepository) error {
		cascaded, err := tx.DeleteMovementsByEntry(ctx, input.TenantID, input.IDs)
		if err != nil {
			return err
		}
		deleted, err := tx.DeleteEntries(ctx, input.TenantID, input.Category, input.IDs)
		if err != nil {
			return err
		}
		res = DeleteResult{JournalDeleted: deleted, InventoryDeleted: cascaded}
		return nil
	})
	if err != nil {
		return DeleteResult{}, err
	}
	res.Summary = shared.Summary("deleted %d journal entries and %d linked inventory movements", res.JournalDeleted, res.InventoryDeleted)
	if s.audit != nil {
		_ = s.audit.Record(ctx, shared.AuditLog{
			TenantID: input.TenantID,
			Action:   "journal:delete",
			Entity:   "journal_entry",
			EntityID: fmt.Sprintf("%v", input.IDs),
			Meta: map[string]any{
				"category":  string(input.Category),
				"journal":   res.JournalDeleted,
				"inventory": res.InventoryDeleted,
			},
		})
	}
	return res, nil
}

func (s *Service) validateTrade(input TradeInput, category Category) (string, float64, error) {
	if input.TenantID == "" {
		return "", 0, shared.ErrTenantUnknown
	}
	invAccount, ok := accounts.InventoryAccount(input.Category)
	if !ok {
		return "", 0, shared.ErrUnknownCategory
	}
	if input.Method != MethodCash && input.Method != MethodCredit {
		return "", 0, shared.Invalid(shared.KindBadReference, "method must be Cash or Credit, got %q", input.Method)
	}
	if input.Method == MethodCredit && input.Counterparty == "" {
		return "", 0, shared.Invalid(shared.KindMissingField, "counterparty required for credit %s", category)
	}
	if input.Qty <= 0 {
		return "", 0, shared.Invalid(shared.KindBadAmount, "quantity must be positive, got %d", input.Qty)
	}
	if input.UnitPrice <= 0 {
		return "", 0, shared.Invalid(shared.KindBadAmount, "unit price must be positive, got %.2f", input.UnitPrice)
	}
	if input.Date.IsZero() {
		return "", 0, shared.Invalid(shared.KindBadDate, "entry date required")
	}
	return invAccount, roundCents(input.UnitPrice * float64(input.Qty)), nil
}

func (s *Service) record(ctx context.Context, e Entry, action string) {
	if s.audit == nil {
		return
	}
	_ = s.audit.Record(ctx, shared.AuditLog{
		TenantID: e.TenantID,
		Action:   action,
		Entity:   "journal_entry",
		EntityID: fmt.Sprintf("%d", e.ID),
		Meta: map[string]any{
			"category": string(e.Category),
			"date":     e.DateKey(),
			"total":    e.TotalValue,
		},
	})
}
