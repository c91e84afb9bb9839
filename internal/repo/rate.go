package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tripcanvas/backend/internal/domain"
)

// RateRepo defines read/refresh access to the exchange-rate snapshot.
// Rates are refreshed by an out-of-band job; the budget path only reads the
// latest snapshot and degrades to 1:1 conversion when a pair is absent.
type RateRepo interface {
	// ListForDisplay returns the stored rates converting each of the given
	// source currencies into the display currency. Pairs with no stored
	// rate are simply absent from the result.
	ListForDisplay(ctx context.Context, from []string, display string) ([]domain.ExchangeRate, error)

	// Upsert stores or refreshes a single rate, stamping last_updated.
	Upsert(ctx context.Context, rate domain.ExchangeRate) error
}

// pgRateRepo is the Postgres implementation of RateRepo.
type pgRateRepo struct {
	db db
}

// NewRateRepo constructs a RateRepo backed by the provided db connection.
func NewRateRepo(db db) RateRepo {
	return &pgRateRepo{db: db}
}

func (r *pgRateRepo) ListForDisplay(ctx context.Context, from []string, display string) ([]domain.ExchangeRate, error) {
	if len(from) == 0 {
		return nil, nil
	}

	const q = `
		SELECT from_currency, to_currency, rate, last_updated
		FROM exchange_rates
		WHERE from_currency = ANY(@from) AND to_currency = @to`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"from": from, "to": display})
	if err != nil {
		return nil, fmt.Errorf("repo.RateRepo.ListForDisplay: %w", err)
	}
	defer rows.Close()

	var rates []domain.ExchangeRate
	for rows.Next() {
		var (
			rate domain.ExchangeRate
			n    pgtype.Numeric
		)
		if err := rows.Scan(&rate.FromCurrency, &rate.ToCurrency, &n, &rate.LastUpdated); err != nil {
			return nil, fmt.Errorf("repo.RateRepo.ListForDisplay: scan: %w", err)
		}
		if n.Valid {
			rate.Rate = decimal.NewFromBigInt(n.Int, n.Exp)
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RateRepo.ListForDisplay: rows: %w", err)
	}

	return rates, nil
}

func (r *pgRateRepo) Upsert(ctx context.Context, rate domain.ExchangeRate) error {
	const q = `
		INSERT INTO exchange_rates (from_currency, to_currency, rate, last_updated)
		VALUES (@from, @to, @rate, now())
		ON CONFLICT (from_currency, to_currency)
		DO UPDATE SET rate = EXCLUDED.rate, last_updated = now()`

	args := pgx.NamedArgs{
		"from": rate.FromCurrency,
		"to":   rate.ToCurrency,
		"rate": pgtype.Numeric{Int: rate.Rate.Coefficient(), Exp: rate.Rate.Exponent(), Valid: true},
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.RateRepo.Upsert: %w", err)
	}
	return nil
}
