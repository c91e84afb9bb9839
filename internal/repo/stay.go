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

// StayRepo defines the persistence operations for AccommodationStays.
type StayRepo interface {
	// Create inserts a new stay and returns the persisted record.
	Create(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error)

	// GetByID retrieves a single stay, scoped to the given tripID.
	// Returns domain.ErrNotFound if no stay with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, stayID uuid.UUID) (domain.AccommodationStay, error)

	// ListByTripID returns all stays for a trip ordered by checkin_date ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.AccommodationStay, error)

	// Update overwrites the mutable fields of a stay, scoped to its tripID.
	// Returns domain.ErrNotFound if no stay with that ID exists under that trip.
	Update(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error)

	// Delete removes a stay by ID, scoped to the given tripID. Days
	// materialized for the stay are left in place.
	// Returns domain.ErrNotFound if no stay with that ID exists under that trip.
	Delete(ctx context.Context, tripID, stayID uuid.UUID) error
}

// pgStayRepo is the Postgres implementation of StayRepo.
type pgStayRepo struct {
	db db
}

// NewStayRepo constructs a StayRepo backed by the provided db connection.
func NewStayRepo(db db) StayRepo {
	return &pgStayRepo{db: db}
}

const stayColumns = `id, trip_id, name, details, url, address, phone, place_id, website,
	checkin_date, checkout_date, cost, currency, created_at, updated_at`

func (r *pgStayRepo) Create(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error) {
	const q = `
		INSERT INTO accommodations
			(trip_id, name, details, url, address, phone, place_id, website,
			 checkin_date, checkout_date, cost, currency)
		VALUES
			(@trip_id, @name, @details, @url, @address, @phone, @place_id, @website,
			 @checkin_date, @checkout_date, @cost, @currency)
		RETURNING ` + stayColumns

	result, err := scanStay(r.db.QueryRow(ctx, q, stayArgs(stay)))
	if err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("repo.StayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgStayRepo) GetByID(ctx context.Context, tripID, stayID uuid.UUID) (domain.AccommodationStay, error) {
	const q = `
		SELECT ` + stayColumns + `
		FROM accommodations
		WHERE id = @id AND trip_id = @trip_id`

	result, err := scanStay(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": stayID, "trip_id": tripID}))
	if err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("repo.StayRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgStayRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.AccommodationStay, error) {
	const q = `
		SELECT ` + stayColumns + `
		FROM accommodations
		WHERE trip_id = @trip_id
		ORDER BY checkin_date ASC, id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.StayRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var stays []domain.AccommodationStay
	for rows.Next() {
		s, err := scanStay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.StayRepo.ListByTripID: scan: %w", err)
		}
		stays = append(stays, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.StayRepo.ListByTripID: rows: %w", err)
	}

	return stays, nil
}

func (r *pgStayRepo) Update(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error) {
	const q = `
		UPDATE accommodations
		SET name          = @name,
		    details       = @details,
		    url           = @url,
		    address       = @address,
		    phone         = @phone,
		    place_id      = @place_id,
		    website       = @website,
		    checkin_date  = @checkin_date,
		    checkout_date = @checkout_date,
		    cost          = @cost,
		    currency      = @currency,
		    updated_at    = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + stayColumns

	args := stayArgs(stay)
	args["id"] = stay.ID

	result, err := scanStay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("repo.StayRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgStayRepo) Delete(ctx context.Context, tripID, stayID uuid.UUID) error {
	const q = `DELETE FROM accommodations WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": stayID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.StayRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.StayRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func stayArgs(stay domain.AccommodationStay) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":       stay.TripID,
		"name":          stay.Name,
		"details":       stay.Details,
		"url":           stay.URL,
		"address":       stay.Address,
		"phone":         stay.Phone,
		"place_id":      stay.PlaceID,
		"website":       stay.Website,
		"checkin_date":  stay.CheckinDate,
		"checkout_date": stay.CheckoutDate,
		"cost":          decimalToNumeric(stay.Cost),
		"currency":      stay.Currency,
	}
}

// scanStay maps a single database row into a domain.AccommodationStay.
func scanStay(s scanner) (domain.AccommodationStay, error) {
	var (
		st       domain.AccommodationStay
		id       pgtype.UUID
		tripID   pgtype.UUID
		checkin  pgtype.Date
		checkout pgtype.Date
		cost     pgtype.Numeric
	)

	err := s.Scan(&id, &tripID, &st.Name, &st.Details, &st.URL, &st.Address, &st.Phone,
		&st.PlaceID, &st.Website, &checkin, &checkout, &cost, &st.Currency,
		&st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.AccommodationStay{}, domain.ErrNotFound
		}
		return domain.AccommodationStay{}, err
	}

	st.ID = uuid.UUID(id.Bytes)
	st.TripID = uuid.UUID(tripID.Bytes)
	st.CheckinDate = checkin.Time
	st.CheckoutDate = checkout.Time
	st.Cost = numericToDecimal(cost)

	return st, nil
}
