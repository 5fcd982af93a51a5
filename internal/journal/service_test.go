package journal

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/subuhjayafarm/farmbook/internal/accounts"
	"github.com/subuhjayafarm/farmbook/internal/inventory"
	"github.com/subuhjayafarm/farmbook/internal/shared"
)

type memoryRepo struct {
	entries    []Entry
	movements  []inventory.Movement
	nextEntry  int64
	nextMoveID int64
}

type memoryTx struct {
	repo *memoryRepo
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{}
}

func (r *memoryRepo) List(ctx context.Context, tenantID string) ([]Entry, error) {
	var out []Entry
	for _, e := range r.entries {
		if e.TenantID == tenantID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryRepo) ListByCategory(ctx context.Context, tenantID string, category Category) ([]Entry, error) {
	var out []Entry
	for _, e := range r.entries {
		if e.TenantID == tenantID && e.Category == category {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *memoryRepo) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	return fn(ctx, &memoryTx{repo: r})
}

func (tx *memoryTx) InsertEntry(ctx context.Context, e Entry) (Entry, error) {
	tx.repo.nextEntry++
	e.ID = tx.repo.nextEntry
	e.CreatedAt = time.Now()
	tx.repo.entries = append(tx.repo.entries, e)
	return e, nil
}

func (tx *memoryTx) InsertMovement(ctx context.Context, m inventory.Movement) (inventory.Movement, error) {
	tx.repo.nextMoveID++
	m.ID = tx.repo.nextMoveID
	m.CreatedAt = time.Now()
	tx.repo.movements = append(tx.repo.movements, m)
	return m, nil
}

func (tx *memoryTx) CategoryMovementsForUpdate(ctx context.Context, tenantID, category string) ([]inventory.Movement, error) {
	var out []inventory.Movement
	for _, m := range tx.repo.movements {
		if m.TenantID == tenantID && m.Category == category {
			out = append(out, m)
		}
	}
	return out, nil
}

func (tx *memoryTx) DeleteMovementsByEntry(ctx context.Context, tenantID string, entryIDs []int64) (int64, error) {
	ids := map[int64]struct{}{}
	for _, id := range entryIDs {
		ids[id] = struct{}{}
	}
	var kept []inventory.Movement
	var removed int64
	for _, m := range tx.repo.movements {
		if m.TenantID == tenantID && m.JournalEntryID != nil {
			if _, ok := ids[*m.JournalEntryID]; ok {
				removed++
				continue
			}
		}
		kept = append(kept, m)
	}
	tx.repo.movements = kept
	return removed, nil
}

func (tx *memoryTx) DeleteEntries(ctx context.Context, tenantID string, category Category, entryIDs []int64) (int64, error) {
	ids := map[int64]struct{}{}
	for _, id := range entryIDs {
		ids[id] = struct{}{}
	}
	var kept []Entry
	var removed int64
	for _, e := range tx.repo.entries {
		if e.TenantID == tenantID && e.Category == category {
			if _, ok := ids[e.ID]; ok {
				removed++
				continue
			}
		}
		kept = append(kept, e)
	}
	tx.repo.entries = kept
	return removed, nil
}

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAppendMiscBalanced(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	entry, err := svc.AppendMisc(ctx, MiscInput{
		TenantID:      "t1",
		Date:          day("2025-02-01"),
		Description:   "Feed purchase",
		DebitAccount:  "Feed Expense",
		CreditAccount: accounts.Cash,
		Amount:        250,
	})
	require.NoError(t, err)
	require.InDelta(t, entry.DebitTotal(), entry.CreditTotal(), 0.009)
	require.Len(t, repo.entries, 1)
}

func TestAppendMiscTagsCounterparty(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	// A settling receipt: cash in against the customer's receivable.
	entry, err := svc.AppendMisc(ctx, MiscInput{
		TenantID:      "t1",
		Date:          day("2025-03-10"),
		Description:   "Payment received",
		DebitAccount:  accounts.Cash,
		CreditAccount: accounts.TradeReceivable,
		Amount:        600,
		Counterparty:  "Pak Budi",
	})
	require.NoError(t, err)
	require.Equal(t, "Pak Budi", entry.Counterparty)

	got, err := svc.List(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, "Pak Budi", got[0].Counterparty)
}

func TestEntryValidation(t *testing.T) {
	base := Entry{
		Date:    day("2025-01-01"),
		Debits:  []PostingLine{{Account: accounts.Cash, Amount: 100}},
		Credits: []PostingLine{{Account: accounts.SalesRevenue, Amount: 100}},
	}
	require.NoError(t, base.Validate())

	unbalanced := base
	unbalanced.Credits = []PostingLine{{Account: accounts.SalesRevenue, Amount: 90}}
	require.ErrorIs(t, unbalanced.Validate(), shared.ErrUnbalanced)

	oneSided := base
	oneSided.Credits = nil
	require.ErrorIs(t, oneSided.Validate(), shared.ErrTooFewLines)

	overfull := base
	overfull.Debits = []PostingLine{
		{Account: accounts.Cash, Amount: 40},
		{Account: accounts.Cash, Amount: 30},
		{Account: accounts.Cash, Amount: 30},
	}
	require.ErrorIs(t, overfull.Validate(), shared.ErrTooManyLines)

	negative := base
	negative.Debits = []PostingLine{{Account: accounts.Cash, Amount: -100}}
	require.Error(t, negative.Validate())
}

func TestPurchaseWritesEntryAndMovement(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	entry, err := svc.AppendPurchase(ctx, TradeInput{
		TenantID:  "t1",
		Date:      day("2025-03-01"),
		Method:    MethodCash,
		Category:  "Male Goat",
		UnitPrice: 100,
		Qty:       10,
	})
	require.NoError(t, err)
	require.Equal(t, []PostingLine{{Account: "Male Goat Inventory", Amount: 1000}}, entry.Debits)
	require.Equal(t, []PostingLine{{Account: accounts.Cash, Amount: 1000}}, entry.Credits)

	require.Len(t, repo.movements, 1)
	m := repo.movements[0]
	require.Equal(t, inventory.MovementPurchase, m.Type)
	require.NotNil(t, m.JournalEntryID)
	require.Equal(t, entry.ID, *m.JournalEntryID)
}

func TestSalePostsGrossAndLockedCOGS(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.AppendPurchase(ctx, TradeInput{
		TenantID: "t1", Date: day("2025-03-01"), Method: MethodCash,
		Category: "Male Goat", UnitPrice: 100, Qty: 10,
	})
	require.NoError(t, err)

	entry, err := svc.AppendSale(ctx, TradeInput{
		TenantID: "t1", Date: day("2025-03-05"), Method: MethodCredit,
		Counterparty: "Pak Budi", Category: "Male Goat", UnitPrice: 150, Qty: 4,
	})
	require.NoError(t, err)

	require.Equal(t, []PostingLine{
		{Account: accounts.TradeReceivable, Amount: 600},
		{Account: accounts.CostOfGoodsSold, Amount: 400},
	}, entry.Debits)
	require.Equal(t, []PostingLine{
		{Account: accounts.SalesRevenue, Amount: 600},
		{Account: "Male Goat Inventory", Amount: 400},
	}, entry.Credits)

	require.Len(t, repo.movements, 2)
	sale := repo.movements[1]
	require.Equal(t, inventory.MovementSale, sale.Type)
	require.InDelta(t, 100.0, sale.UnitPrice, 0.001)
	require.InDelta(t, 400.0, sale.Total, 0.001)
}

func TestSaleOversellRejectedNothingStored(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.AppendPurchase(ctx, TradeInput{
		TenantID: "t1", Date: day("2025-03-01"), Method: MethodCash,
		Category: "Male Goat", UnitPrice: 100, Qty: 5,
	})
	require.NoError(t, err)

	_, err = svc.AppendSale(ctx, TradeInput{
		TenantID: "t1", Date: day("2025-03-02"), Method: MethodCash,
		Category: "Male Goat", UnitPrice: 150, Qty: 6,
	})
	require.ErrorIs(t, err, shared.ErrNegativeStock)
	require.Len(t, repo.entries, 1)
	require.Len(t, repo.movements, 1)
}

func TestCreditTradeRequiresCounterparty(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	_, err := svc.AppendPurchase(context.Background(), TradeInput{
		TenantID: "t1", Date: day("2025-03-01"), Method: MethodCredit,
		Category: "Male Goat", UnitPrice: 100, Qty: 1,
	})
	ve, ok := shared.AsValidation(err)
	require.True(t, ok)
	require.Equal(t, shared.KindMissingField, ve.Kind)
}

func TestOpeningAccountBalancesAgainstCapital(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	entry, err := svc.AppendOpeningAccount(ctx, OpeningAccountInput{
		TenantID: "t1", Date: day("2025-01-01"), Account: accounts.Cash, Debit: true, Amount: 500,
	})
	require.NoError(t, err)
	require.Equal(t, CategoryOpening, entry.Category)
	require.Equal(t, []PostingLine{{Account: accounts.Cash, Amount: 500}}, entry.Debits)
	require.Equal(t, []PostingLine{{Account: accounts.OwnerCapital, Amount: 500}}, entry.Credits)
	require.NoError(t, entry.Validate())
}

func TestOpeningCapitalDirectlyRejected(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	_, err := svc.AppendOpeningAccount(context.Background(), OpeningAccountInput{
		TenantID: "t1", Date: day("2025-01-01"), Account: accounts.OwnerCapital, Debit: false, Amount: 500,
	})
	require.ErrorIs(t, err, shared.ErrCapitalOpening)
}

func TestOpeningCounterparty(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	rec, err := svc.AppendOpeningCounterparty(ctx, OpeningCounterpartyInput{
		TenantID: "t1", Date: day("2025-01-01"), Counterparty: "Pak Budi",
		Kind: OpeningReceivable, Amount: 200,
	})
	require.NoError(t, err)
	require.Equal(t, accounts.TradeReceivable, rec.Debits[0].Account)
	require.Equal(t, "Pak Budi", rec.Counterparty)

	pay, err := svc.AppendOpeningCounterparty(ctx, OpeningCounterpartyInput{
		TenantID: "t1", Date: day("2025-01-01"), Counterparty: "Toko Pakan",
		Kind: OpeningPayable, Amount: 150,
	})
	require.NoError(t, err)
	require.Equal(t, accounts.TradePayable, pay.Credits[0].Account)
}

func TestOpeningInventoryWritesMovement(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	entry, err := svc.AppendOpeningInventory(ctx, OpeningInventoryInput{
		TenantID: "t1", Date: day("2025-01-01"), Category: "Female Goat", UnitPrice: 80, Qty: 5,
	})
	require.NoError(t, err)
	require.Equal(t, []PostingLine{{Account: "Female Goat Inventory", Amount: 400}}, entry.Debits)
	require.Len(t, repo.movements, 1)
	require.Equal(t, inventory.MovementOpening, repo.movements[0].Type)
}

func TestDeleteCascadesByEntryID(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	p1, err := svc.AppendPurchase(ctx, TradeInput{
		TenantID: "t1", Date: day("2025-03-01"), Method: MethodCash,
		Category: "Male Goat", UnitPrice: 100, Qty: 10,
	})
	require.NoError(t, err)
	// Second purchase on the same date must survive the deletion of the
	// first; cascade follows the entry link, not the date.
	p2, err := svc.AppendPurchase(ctx, TradeInput{
		TenantID: "t1", Date: day("2025-03-01"), Method: MethodCash,
		Category: "Male Goat", UnitPrice: 110, Qty: 3,
	})
	require.NoError(t, err)

	res, err := svc.Delete(ctx, DeleteInput{TenantID: "t1", Category: CategoryPurchase, IDs: []int64{p1.ID}})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.JournalDeleted)
	require.EqualValues(t, 1, res.InventoryDeleted)
	require.NotEmpty(t, res.Summary)

	require.Len(t, repo.entries, 1)
	require.Equal(t, p2.ID, repo.entries[0].ID)
	require.Len(t, repo.movements, 1)
	require.Equal(t, p2.ID, *repo.movements[0].JournalEntryID)
}

func TestDeleteMiscLeavesInventoryAlone(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	_, err := svc.AppendPurchase(ctx, TradeInput{
		TenantID: "t1", Date: day("2025-03-01"), Method: MethodCash,
		Category: "Male Goat", UnitPrice: 100, Qty: 10,
	})
	require.NoError(t, err)
	m, err := svc.AppendMisc(ctx, MiscInput{
		TenantID: "t1", Date: day("2025-03-02"), Description: "Wages",
		DebitAccount: "Wages Expense", CreditAccount: accounts.Cash, Amount: 50,
	})
	require.NoError(t, err)

	res, err := svc.Delete(ctx, DeleteInput{TenantID: "t1", Category: CategoryMisc, IDs: []int64{m.ID}})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.JournalDeleted)
	require.EqualValues(t, 0, res.InventoryDeleted)
	require.Len(t, repo.movements, 1)
}

func TestListRoundTrip(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, nil)
	ctx := context.Background()

	want, err := svc.AppendMisc(ctx, MiscInput{
		TenantID: "t1", Date: day("2025-03-02"), Description: "Utilities",
		DebitAccount: "Utilities Expense", CreditAccount: accounts.Cash, Amount: 75,
	})
	require.NoError(t, err)

	got, err := svc.List(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, want.ID, got[0].ID)
	require.Equal(t, want.Debits, got[0].Debits)
	require.Equal(t, want.Credits, got[0].Credits)
	require.Equal(t, "2025-03-02", got[0].DateKey())

	// Reads do not mutate.
	again, err := svc.List(ctx, "t1")
	require.NoError(t, err)
	require.Equal(t, got, again)
}

func TestMissingTenantAborts(t *testing.T) {
	svc := NewService(newMemoryRepo(), nil)
	_, err := svc.List(context.Background(), "")
	require.ErrorIs(t, err, shared.ErrTenantUnknown)
	_, err = svc.AppendMisc(context.Background(), MiscInput{Amount: 10, DebitAccount: "a", CreditAccount: "b"})
	require.ErrorIs(t, err, shared.ErrTenantUnknown)
}
