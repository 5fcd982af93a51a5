package journal

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subuhjayafarm/farmbook/internal/inventory"
)

// Repository encapsulates DB operations for journal entries. Inventory
// movements created by trade entries live in the same transaction, so the
// transactional surface covers both tables.
type Repository interface {
	List(ctx context.Context, tenantID string) ([]Entry, error)
	ListByCategory(ctx context.Context, tenantID string, category Category) ([]Entry, error)
	WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error
}

// TxRepository exposes methods available within a transaction.
type TxRepository interface {
	InsertEntry(ctx context.Context, e Entry) (Entry, error)
	InsertMovement(ctx context.Context, m inventory.Movement) (inventory.Movement, error)
	CategoryMovementsForUpdate(ctx context.Context, tenantID, category string) ([]inventory.Movement, error)
	DeleteMovementsByEntry(ctx context.Context, tenantID string, entryIDs []int64) (int64, error)
	DeleteEntries(ctx context.Context, tenantID string, category Category, ids []int64) (int64, error)
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository returns a PostgreSQL-backed Repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const entryColumns = `id, tenant_id, entry_date, description, method, category,
d1_account, d1_amount, d2_account, d2_amount, k1_account, k1_amount, k2_account, k2_amount,
counterparty, livestock_category, unit_price, unit_qty, total_value, created_at`

func (r *repository) List(ctx context.Context, tenantID string) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries
WHERE tenant_id=$1 ORDER BY entry_date ASC, id ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *repository) ListByCategory(ctx context.Context, tenantID string, category Category) ([]Entry, error) {
	rows, err := r.db.Query(ctx, `SELECT `+entryColumns+` FROM journal_entries
WHERE tenant_id=$1 AND category=$2 ORDER BY entry_date ASC, id ASC`, tenantID, string(category))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &txRepository{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

type txRepository struct {
	tx pgx.Tx
}

func (r *txRepository) InsertEntry(ctx context.Context, e Entry) (Entry, error) {
	d1, d2 := slot(e.Debits, 0), slot(e.Debits, 1)
	k1, k2 := slot(e.Credits, 0), slot(e.Credits, 1)
	row := r.tx.QueryRow(ctx, `INSERT INTO journal_entries
(tenant_id, entry_date, description, method, category,
 d1_account, d1_amount, d2_account, d2_amount, k1_account, k1_amount, k2_account, k2_amount,
 counterparty, livestock_category, unit_price, unit_qty, total_value)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
RETURNING id, created_at`,
		e.TenantID, e.Date, e.Description, string(e.Method), string(e.Category),
		d1.account, d1.amount, d2.account, d2.amount, k1.account, k1.amount, k2.account, k2.amount,
		nullStr(e.Counterparty), nullStr(e.LivestockCategory), e.UnitPrice, e.UnitQty, e.TotalValue)
	if err := row.Scan(&e.ID, &e.CreatedAt); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (r *txRepository) InsertMovement(ctx context.Context, m inventory.Movement) (inventory.Movement, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO inventory_movements
(tenant_id, journal_entry_id, moved_on, movement_type, category, unit_price, qty, total)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id, created_at`,
		m.TenantID, m.JournalEntryID, m.Date, string(m.Type), m.Category, m.UnitPrice, m.Qty, m.Total)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return inventory.Movement{}, err
	}
	return m, nil
}

func (r *txRepository) CategoryMovementsForUpdate(ctx context.Context, tenantID, category string) ([]inventory.Movement, error) {
	rows, err := r.tx.Query(ctx, `SELECT id, tenant_id, journal_entry_id, moved_on, movement_type, category, unit_price, qty, total, created_at
FROM inventory_movements WHERE tenant_id=$1 AND category=$2 ORDER BY moved_on ASC, id ASC FOR UPDATE`, tenantID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []inventory.Movement
	for rows.Next() {
		var m inventory.Movement
		var typ string
		if err := rows.Scan(&m.ID, &m.TenantID, &m.JournalEntryID, &m.Date, &typ, &m.Category, &m.UnitPrice, &m.Qty, &m.Total, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Type = inventory.MovementType(typ)
		out = append(out, m)
	}
	return out, rows.Err()
}

// DeleteMovementsByEntry removes movements linked by journal_entry_id.
// Cascade follows the foreign key, never dates.
func (r *txRepository) DeleteMovementsByEntry(ctx context.Context, tenantID string, entryIDs []int64) (int64, error) {
	cmd, err := r.tx.Exec(ctx, `DELETE FROM inventory_movements WHERE tenant_id=$1 AND journal_entry_id = ANY($2)`, tenantID, entryIDs)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

func (r *txRepository) DeleteEntries(ctx context.Context, tenantID string, category Category, ids []int64) (int64, error) {
	cmd, err := r.tx.Exec(ctx, `DELETE FROM journal_entries WHERE tenant_id=$1 AND category=$2 AND id = ANY($3)`, tenantID, string(category), ids)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}

type nullableSlot struct {
	account any
	amount  any
}

func slot(lines []PostingLine, i int) nullableSlot {
	if i >= len(lines) {
		return nullableSlot{}
	}
	return nullableSlot{account: lines[i].Account, amount: lines[i].Amount}
}

func nullStr(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func scanEntries(rows pgx.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var (
			e                          Entry
			method, category           string
			d1a, d2a, k1a, k2a         *string
			d1v, d2v, k1v, k2v         *float64
			counterparty, livestockCat *string
		)
		if err := rows.Scan(&e.ID, &e.TenantID, &e.Date, &e.Description, &method, &category,
			&d1a, &d1v, &d2a, &d2v, &k1a, &k1v, &k2a, &k2v,
			&counterparty, &livestockCat, &e.UnitPrice, &e.UnitQty, &e.TotalValue, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Method = Method(method)
		e.Category = Category(category)
		if counterparty != nil {
			e.Counterparty = *counterparty
		}
		if livestockCat != nil {
			e.LivestockCategory = *livestockCat
		}
		e.Debits = appendSlot(e.Debits, d1a, d1v)
		e.Debits = appendSlot(e.Debits, d2a, d2v)
		e.Credits = appendSlot(e.Credits, k1a, k1v)
		e.Credits = appendSlot(e.Credits, k2a, k2v)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func appendSlot(lines []PostingLine, account *string, amount *float64) []PostingLine {
	if account == nil || amount == nil {
		return lines
	}
	return append(lines, PostingLine{Account: *account, Amount: *amount})
}
