package inventory

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository persists inventory movements in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// TxRepository exposes transactional operations used by the service.
type TxRepository interface {
	ListMovementsForUpdate(ctx context.Context, tenantID, category string) ([]Movement, error)
	InsertMovement(ctx context.Context, m Movement) (Movement, error)
	UpdateMovementCost(ctx context.Context, id int64, unitPrice, total float64) error
}

type txRepo struct {
	tx pgx.Tx
}

const movementColumns = `id, tenant_id, journal_entry_id, moved_on, movement_type, category, unit_price, qty, total, created_at`

// WithTx executes the callback inside a repeatable-read transaction.
func (r *Repository) WithTx(ctx context.Context, fn func(context.Context, TxRepository) error) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.RepeatableRead})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := fn(ctx, &txRepo{tx: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ListMovements returns a category's movements ordered by date then id.
func (r *Repository) ListMovements(ctx context.Context, tenantID, category string) ([]Movement, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+movementColumns+` FROM inventory_movements
WHERE tenant_id=$1 AND category=$2 ORDER BY moved_on ASC, id ASC`, tenantID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

// ListAllMovements returns every movement for the tenant ordered by date then id.
func (r *Repository) ListAllMovements(ctx context.Context, tenantID string) ([]Movement, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+movementColumns+` FROM inventory_movements
WHERE tenant_id=$1 ORDER BY moved_on ASC, id ASC`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

// Categories lists distinct categories that have movements.
func (r *Repository) Categories(ctx context.Context, tenantID string) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT DISTINCT category FROM inventory_movements WHERE tenant_id=$1 ORDER BY category`, tenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *txRepo) ListMovementsForUpdate(ctx context.Context, tenantID, category string) ([]Movement, error) {
	rows, err := r.tx.Query(ctx, `SELECT `+movementColumns+` FROM inventory_movements
WHERE tenant_id=$1 AND category=$2 ORDER BY moved_on ASC, id ASC FOR UPDATE`, tenantID, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovements(rows)
}

func (r *txRepo) InsertMovement(ctx context.Context, m Movement) (Movement, error) {
	row := r.tx.QueryRow(ctx, `INSERT INTO inventory_movements (tenant_id, journal_entry_id, moved_on, movement_type, category, unit_price, qty, total)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8) RETURNING id, created_at`,
		m.TenantID, m.JournalEntryID, m.Date, string(m.Type), m.Category, m.UnitPrice, m.Qty, m.Total)
	if err := row.Scan(&m.ID, &m.CreatedAt); err != nil {
		return Movement{}, err
	}
	return m, nil
}

func (r *txRepo) UpdateMovementCost(ctx context.Context, id int64, unitPrice, total float64) error {
	_, err := r.tx.Exec(ctx, `UPDATE inventory_movements SET unit_price=$2, total=$3 WHERE id=$1`, id, unitPrice, total)
	return err
}

func scanMovements(rows pgx.Rows) ([]Movement, error) {
	var out []Movement
	for rows.Next() {
		var m Movement
		var typ string
		if err := rows.Scan(&m.ID, &m.TenantID, &m.JournalEntryID, &m.Date, &typ, &m.Category, &m.UnitPrice, &m.Qty, &m.Total, &m.CreatedAt); err != nil {
			return nil, err
		}
		m.Type = MovementType(typ)
		out = append(out, m)
	}
	return out, rows.Err()
}
