package service_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/service"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func money(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func fixedExpenses(expenses ...domain.Expense) *mockExpenseRepo {
	return &mockExpenseRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Expense, error) {
			return expenses, nil
		},
	}
}

func fixedActivities(activities ...domain.DayActivity) *mockActivityRepo {
	return &mockActivityRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.DayActivity, error) {
			return activities, nil
		},
	}
}

func noRates() *mockRateRepo {
	return &mockRateRepo{
		listForDisplay: func(_ context.Context, _ []string, _ string) ([]domain.ExchangeRate, error) {
			return nil, nil
		},
	}
}

func TestBudgetService_Summary_ConvertsForeignCurrency(t *testing.T) {
	updated := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	rates := &mockRateRepo{
		listForDisplay: func(_ context.Context, from []string, display string) ([]domain.ExchangeRate, error) {
			assert.Equal(t, []string{"EUR"}, from)
			assert.Equal(t, "USD", display)
			return []domain.ExchangeRate{{
				FromCurrency: "EUR", ToCurrency: "USD",
				Rate: decimal.RequireFromString("1.1"), LastUpdated: updated,
			}}, nil
		},
	}
	expenses := fixedExpenses(domain.Expense{
		Title: "Hotel", Type: "accommodation", Cost: money("100"), Currency: "EUR",
	})
	svc := service.NewBudgetService(expenses, fixedActivities(), rates, discardLogger())

	summary, err := svc.Summary(context.Background(), uuid.New(), "USD")

	require.NoError(t, err)
	assert.True(t, summary.Totals.Accommodation.Equal(decimal.RequireFromString("110")))
	assert.Equal(t, updated, summary.RatesUpdatedAt)
}

func TestBudgetService_Summary_RateLookupFailureFallsBack(t *testing.T) {
	rates := &mockRateRepo{
		listForDisplay: func(_ context.Context, _ []string, _ string) ([]domain.ExchangeRate, error) {
			return nil, errors.New("rate store down")
		},
	}
	expenses := fixedExpenses(domain.Expense{
		Title: "Hotel", Type: "accommodation", Cost: money("100"), Currency: "EUR",
	})
	svc := service.NewBudgetService(expenses, fixedActivities(), rates, discardLogger())

	summary, err := svc.Summary(context.Background(), uuid.New(), "USD")

	// The failure degrades to 1:1 conversion, never to an error.
	require.NoError(t, err)
	assert.True(t, summary.Totals.Accommodation.Equal(decimal.RequireFromString("100")))
	assert.True(t, summary.RatesUpdatedAt.IsZero())
}

func TestBudgetService_Summary_NoForeignCurrenciesSkipsLookup(t *testing.T) {
	rates := &mockRateRepo{
		listForDisplay: func(_ context.Context, _ []string, _ string) ([]domain.ExchangeRate, error) {
			t.Fatal("no rate lookup expected when everything is in the display currency")
			return nil, nil
		},
	}
	expenses := fixedExpenses(domain.Expense{
		Title: "Dinner", Type: "other", Cost: money("40"), Currency: "USD",
	})
	svc := service.NewBudgetService(expenses, fixedActivities(), rates, discardLogger())

	summary, err := svc.Summary(context.Background(), uuid.New(), "USD")

	require.NoError(t, err)
	assert.True(t, summary.Totals.Other.Equal(decimal.RequireFromString("40")))
}

func TestBudgetService_Summary_ActivityCostsIncluded(t *testing.T) {
	activities := fixedActivities(domain.DayActivity{
		Title: "Museum", Cost: money("25"), Currency: "USD",
	})
	svc := service.NewBudgetService(fixedExpenses(), activities, noRates(), discardLogger())

	summary, err := svc.Summary(context.Background(), uuid.New(), "USD")

	require.NoError(t, err)
	assert.True(t, summary.Totals.Activities.Equal(decimal.RequireFromString("25")))
	assert.True(t, summary.Totals.Total.Equal(decimal.RequireFromString("25")))
}

func TestBudgetService_Summary_ExpenseRepoError(t *testing.T) {
	repoErr := errors.New("db down")
	expenses := &mockExpenseRepo{
		listByTripID: func(_ context.Context, _ uuid.UUID) ([]domain.Expense, error) {
			return nil, repoErr
		},
	}
	svc := service.NewBudgetService(expenses, fixedActivities(), noRates(), discardLogger())

	_, err := svc.Summary(context.Background(), uuid.New(), "USD")

	assert.ErrorIs(t, err, repoErr)
}
