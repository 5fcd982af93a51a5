package tenant

import (
	"context"
	"errors"
	"net/http"

	"github.com/subuhjayafarm/farmbook/internal/shared"
)

type ctxKey struct{}

// FromContext returns the tenant resolved by Middleware.
func FromContext(ctx context.Context) (Tenant, bool) {
	t, ok := ctx.Value(ctxKey{}).(Tenant)
	return t, ok
}

// WithTenant stores a tenant on the context; used by tests and Middleware.
func WithTenant(ctx context.Context, t Tenant) context.Context {
	return context.WithValue(ctx, ctxKey{}, t)
}

// Middleware resolves the X-Tenant-ID header to a tenant record and puts
// it on the request context. Requests without a resolvable tenant are
// rejected before reaching any engine operation.
func (s *Service) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Tenant-ID")
		t, err := s.Resolve(r.Context(), id)
		if err != nil {
			if errors.Is(err, shared.ErrTenantUnknown) {
				http.Error(w, "unknown tenant", http.StatusUnauthorized)
				return
			}
			http.Error(w, "tenant directory unavailable", http.StatusServiceUnavailable)
			return
		}
		next.ServeHTTP(w, r.WithContext(WithTenant(r.Context(), t)))
	})
}
