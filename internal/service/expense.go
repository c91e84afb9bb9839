package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
)

// ExpenseService implements business logic for Expense operations.
// Mutations return the persisted record; the live change feed tells other
// consumers to refetch, so nothing here mutates aggregation state directly.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Create validates the expense, verifies the parent trip exists, then persists.
func (s *ExpenseService) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, expense.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}

	created, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single expense by ID, scoped to the given tripID.
func (s *ExpenseService) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	expense, err := s.expenses.GetByID(ctx, tripID, expenseID)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.GetByID: %w", err)
	}
	return expense, nil
}

// ListByTripID returns all expenses for a trip, oldest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTripID: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// Update validates and persists changes to an existing expense.
func (s *ExpenseService) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}

	updated, err := s.expenses.Update(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an expense by ID, scoped to the given tripID.
func (s *ExpenseService) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	if err := s.expenses.Delete(ctx, tripID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// validateExpense enforces business rules common to Create and Update.
//   - Title must be non-empty.
//   - A cost requires a currency.
//   - A negative cost is rejected.
//
// Type is deliberately NOT validated against the budget categories: the
// store accepts any value, and aggregation excludes unrecognized types.
func validateExpense(expense domain.Expense) error {
	if strings.TrimSpace(expense.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if expense.Cost != nil {
		if expense.Currency == "" {
			return fmt.Errorf("%w: currency is required when cost is set", domain.ErrValidation)
		}
		if expense.Cost.IsNegative() {
			return fmt.Errorf("%w: cost must not be negative", domain.ErrValidation)
		}
	}
	return nil
}
