package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripcanvas/backend/internal/domain"
)

// ExpenseRepo defines the persistence operations for Expenses.
type ExpenseRepo interface {
	// Create inserts a new expense and returns the persisted record.
	Create(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// GetByID retrieves a single expense, scoped to the given tripID.
	// Returns domain.ErrNotFound if no expense with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error)

	// ListByTripID returns all expenses for a trip ordered by date, oldest first.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error)

	// Update overwrites the mutable fields of an expense, scoped to its tripID.
	// Returns domain.ErrNotFound if no expense with that ID exists under that trip.
	Update(ctx context.Context, expense domain.Expense) (domain.Expense, error)

	// Delete removes an expense by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no expense with that ID exists under that trip.
	Delete(ctx context.Context, tripID, expenseID uuid.UUID) error
}

// pgExpenseRepo is the Postgres implementation of ExpenseRepo.
type pgExpenseRepo struct {
	db db
}

// NewExpenseRepo constructs an ExpenseRepo backed by the provided db connection.
func NewExpenseRepo(db db) ExpenseRepo {
	return &pgExpenseRepo{db: db}
}

const expenseColumns = `id, trip_id, title, type, cost, currency, paid, date, created_at, updated_at`

func (r *pgExpenseRepo) Create(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		INSERT INTO expenses (trip_id, title, type, cost, currency, paid, date)
		VALUES (@trip_id, @title, @type, @cost, @currency, @paid, @date)
		RETURNING ` + expenseColumns

	result, err := scanExpense(r.db.QueryRow(ctx, q, expenseArgs(expense)))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) GetByID(ctx context.Context, tripID, expenseID uuid.UUID) (domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = @id AND trip_id = @trip_id`

	result, err := scanExpense(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": expenseID, "trip_id": tripID}))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Expense, error) {
	const q = `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE trip_id = @trip_id
		ORDER BY date ASC NULLS LAST, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var expenses []domain.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: scan: %w", err)
		}
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ExpenseRepo.ListByTripID: rows: %w", err)
	}

	return expenses, nil
}

func (r *pgExpenseRepo) Update(ctx context.Context, expense domain.Expense) (domain.Expense, error) {
	const q = `
		UPDATE expenses
		SET title      = @title,
		    type       = @type,
		    cost       = @cost,
		    currency   = @currency,
		    paid       = @paid,
		    date       = @date,
		    updated_at = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + expenseColumns

	args := expenseArgs(expense)
	args["id"] = expense.ID

	result, err := scanExpense(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Expense{}, fmt.Errorf("repo.ExpenseRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgExpenseRepo) Delete(ctx context.Context, tripID, expenseID uuid.UUID) error {
	const q = `DELETE FROM expenses WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": expenseID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ExpenseRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func expenseArgs(expense domain.Expense) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":  expense.TripID,
		"title":    expense.Title,
		"type":     expense.Type,
		"cost":     decimalToNumeric(expense.Cost),
		"currency": expense.Currency,
		"paid":     expense.Paid,
		"date":     expense.Date,
	}
}

// scanExpense maps a single database row into a domain.Expense.
func scanExpense(s scanner) (domain.Expense, error) {
	var (
		e      domain.Expense
		id     pgtype.UUID
		tripID pgtype.UUID
		cost   pgtype.Numeric
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &e.Title, &e.Type, &cost, &e.Currency, &e.Paid,
		&date, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Expense{}, domain.ErrNotFound
		}
		return domain.Expense{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Cost = numericToDecimal(cost)
	if date.Valid {
		d := date.Time
		e.Date = &d
	}

	return e, nil
}
