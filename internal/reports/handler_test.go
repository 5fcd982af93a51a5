package reports

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/subuhjayafarm/farmbook/internal/journal"
	"github.com/subuhjayafarm/farmbook/internal/tenant"
)

type journalPortStub struct {
	entries []journal.Entry
}

func (s *journalPortStub) List(ctx context.Context, _ string) ([]journal.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.entries, nil
}

// A coalesced build runs on behalf of every waiter; the first caller
// hanging up must not fail the flight.
func TestBuildSurvivesCallerCancellation(t *testing.T) {
	svc := NewService(&journalPortStub{entries: []journal.Entry{balancedTestEntry()}}, nil)
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ctx = tenant.WithTenant(ctx, tenant.Tenant{ID: "t1"})

	req := httptest.NewRequest("GET", "/trial-balance", nil).WithContext(ctx)
	rec := httptest.NewRecorder()
	h.handleTrialBalance(rec, req)

	require.Equal(t, 200, rec.Code)
	var tb TrialBalance
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&tb))
	require.True(t, tb.Balanced)
}

func balancedTestEntry() journal.Entry {
	return journal.Entry{
		ID:       1,
		Date:     day("2025-02-01"),
		Category: journal.CategoryMisc,
		Debits:   []journal.PostingLine{{Account: "Cash", Amount: 100}},
		Credits:  []journal.PostingLine{{Account: "Sales Revenue", Amount: 100}},
	}
}
