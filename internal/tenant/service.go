package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/subuhjayafarm/farmbook/internal/shared"
)

// RepositoryPort abstracts tenant storage for the service.
type RepositoryPort interface {
	Insert(ctx context.Context, t Tenant) (Tenant, error)
	GetByID(ctx context.Context, id string) (Tenant, error)
	GetByName(ctx context.Context, name string) (Tenant, error)
}

// Service manages the tenant directory. The engine itself never sees
// credentials, only resolved tenant ids.
type Service struct {
	repo RepositoryPort
}

// NewService builds Service.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Register creates a tenant with a bcrypt-hashed password.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Tenant, error) {
	if input.Name == "" {
		return Tenant{}, shared.Invalid(shared.KindMissingField, "tenant name required")
	}
	if len(input.Password) < 8 {
		return Tenant{}, shared.Invalid(shared.KindMissingField, "password must be at least 8 characters")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Tenant{}, fmt.Errorf("hash password: %w", err)
	}
	t := Tenant{
		ID:           uuid.NewString(),
		Name:         input.Name,
		PasswordHash: string(hash),
	}
	return s.repo.Insert(ctx, t)
}

// Authenticate checks the name/password pair and returns the tenant.
func (s *Service) Authenticate(ctx context.Context, name, password string) (Tenant, error) {
	t, err := s.repo.GetByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrTenantUnknown) {
			return Tenant{}, shared.ErrInvalidCredentials
		}
		return Tenant{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(t.PasswordHash), []byte(password)) != nil {
		return Tenant{}, shared.ErrInvalidCredentials
	}
	return t, nil
}

// Resolve maps a tenant id to its directory record. An unknown id aborts
// the calling operation with ErrTenantUnknown.
func (s *Service) Resolve(ctx context.Context, id string) (Tenant, error) {
	if id == "" {
		return Tenant{}, shared.ErrTenantUnknown
	}
	return s.repo.GetByID(ctx, id)
}
