package tenant

import (
	"errors"
	"time"
)

// Tenant is one registered farm book. Its ID namespaces every journal
// entry and inventory movement.
type Tenant struct {
	ID           string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

// ErrTenantExists indicates a duplicate registration.
var ErrTenantExists = errors.New("tenant: name already registered")

// RegisterInput creates a tenant.
type RegisterInput struct {
	Name     string
	Password string
}
