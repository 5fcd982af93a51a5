package tenant

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// Repository persists tenants in PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs Repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores a tenant. A duplicate name maps to ErrTenantExists.
func (r *Repository) Insert(ctx context.Context, t Tenant) (Tenant, error) {
	row := r.pool.QueryRow(ctx, `INSERT INTO tenants (id, name, password_hash) VALUES ($1,$2,$3) RETURNING created_at`,
		t.ID, t.Name, t.PasswordHash)
	if err := row.Scan(&t.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return Tenant{}, ErrTenantExists
		}
		return Tenant{}, err
	}
	return t, nil
}

// ListIDs returns every registered tenant id.
func (r *Repository) ListIDs(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `SELECT id FROM tenants ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetByID fetches a tenant by id.
func (r *Repository) GetByID(ctx context.Context, id string) (Tenant, error) {
	return r.get(ctx, `SELECT id, name, password_hash, created_at FROM tenants WHERE id=$1`, id)
}

// GetByName fetches a tenant by name.
func (r *Repository) GetByName(ctx context.Context, name string) (Tenant, error) {
	return r.get(ctx, `SELECT id, name, password_hash, created_at FROM tenants WHERE name=$1`, name)
}

func (r *Repository) get(ctx context.Context, query, arg string) (Tenant, error) {
	var t Tenant
	err := r.pool.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Name, &t.PasswordHash, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Tenant{}, shared.ErrTenantUnknown
		}
		return Tenant{}, err
	}
	return t, nil
}
