package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/budget"
	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
)

// BudgetSummary is the aggregated spend for one trip in one display
// currency. RatesUpdatedAt is the zero time when no exchange rates were
// available and every foreign amount fell back to 1:1 conversion.
type BudgetSummary struct {
	Totals         budget.Totals `json:"totals"`
	RatesUpdatedAt time.Time     `json:"rates_updated_at,omitzero"`
}

// BudgetService derives budget summaries from expenses, activity costs, and
// the stored exchange-rate snapshot.
type BudgetService struct {
	expenses   repo.ExpenseRepo
	activities repo.ActivityRepo
	rates      repo.RateRepo
	log        *slog.Logger
}

// NewBudgetService constructs a BudgetService backed by the provided repos.
func NewBudgetService(expenses repo.ExpenseRepo, activities repo.ActivityRepo, rates repo.RateRepo, log *slog.Logger) *BudgetService {
	return &BudgetService{expenses: expenses, activities: activities, rates: rates, log: log}
}

// Summary aggregates the trip's expenses and activity costs into
// per-category totals in the display currency.
//
// A rate lookup failure degrades to 1:1 conversion for every foreign
// currency rather than failing the summary — missing rates are a display
// quality issue, not an error.
func (s *BudgetService) Summary(ctx context.Context, tripID uuid.UUID, displayCurrency string) (BudgetSummary, error) {
	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return BudgetSummary{}, fmt.Errorf("service.BudgetService.Summary: expenses: %w", err)
	}
	activities, err := s.activities.ListByTripID(ctx, tripID)
	if err != nil {
		return BudgetSummary{}, fmt.Errorf("service.BudgetService.Summary: activities: %w", err)
	}

	table := budget.NewRateTable(displayCurrency, s.fetchRates(ctx, expenses, activities, displayCurrency))

	return BudgetSummary{
		Totals:         budget.Aggregate(expenses, activities, table),
		RatesUpdatedAt: table.LastUpdated,
	}, nil
}

// fetchRates loads the stored rates for every foreign currency appearing in
// the trip's expenses and activities. Failures are logged and yield no
// rates, which the RateTable turns into 1:1 conversion.
func (s *BudgetService) fetchRates(ctx context.Context, expenses []domain.Expense, activities []domain.DayActivity, display string) []domain.ExchangeRate {
	seen := make(map[string]bool)
	var foreign []string
	add := func(currency string) {
		if currency == "" || currency == display || seen[currency] {
			return
		}
		seen[currency] = true
		foreign = append(foreign, currency)
	}
	for _, e := range expenses {
		add(e.Currency)
	}
	for _, a := range activities {
		add(a.Currency)
	}
	if len(foreign) == 0 {
		return nil
	}

	rates, err := s.rates.ListForDisplay(ctx, foreign, display)
	if err != nil {
		s.log.Warn("exchange rate lookup failed; falling back to 1:1 conversion",
			"display_currency", display, "error", err)
		return nil
	}
	return rates
}
