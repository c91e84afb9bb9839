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

// ReservationRepo defines the persistence operations for DiningReservations.
type ReservationRepo interface {
	// Create inserts a new reservation and returns the persisted record.
	Create(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error)

	// ListByDayID returns all reservations for a day ordered by order_index.
	ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.DiningReservation, error)

	// Update overwrites the mutable fields of a reservation, scoped to its day.
	// Returns domain.ErrNotFound if no reservation with that ID exists under that day.
	Update(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error)

	// Delete removes a reservation by ID, scoped to the given dayID.
	// Returns domain.ErrNotFound if no reservation with that ID exists under that day.
	Delete(ctx context.Context, dayID, reservationID uuid.UUID) error
}

// pgReservationRepo is the Postgres implementation of ReservationRepo.
type pgReservationRepo struct {
	db db
}

// NewReservationRepo constructs a ReservationRepo backed by the provided db connection.
func NewReservationRepo(db db) ReservationRepo {
	return &pgReservationRepo{db: db}
}

const reservationColumns = `id, day_id, restaurant_name, address, phone_number, website,
	place_id, confirmation_number, notes, reservation_time, number_of_people, rating,
	cost, currency, order_index, created_at, updated_at`

func (r *pgReservationRepo) Create(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error) {
	const q = `
		INSERT INTO restaurant_reservations
			(day_id, restaurant_name, address, phone_number, website, place_id,
			 confirmation_number, notes, reservation_time, number_of_people, rating,
			 cost, currency, order_index)
		VALUES
			(@day_id, @restaurant_name, @address, @phone_number, @website, @place_id,
			 @confirmation_number, @notes, @reservation_time, @number_of_people, @rating,
			 @cost, @currency, @order_index)
		RETURNING ` + reservationColumns

	result, err := scanReservation(r.db.QueryRow(ctx, q, reservationArgs(reservation)))
	if err != nil {
		return domain.DiningReservation{}, fmt.Errorf("repo.ReservationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgReservationRepo) ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.DiningReservation, error) {
	const q = `
		SELECT ` + reservationColumns + `
		FROM restaurant_reservations
		WHERE day_id = @day_id
		ORDER BY order_index ASC, created_at ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"day_id": dayID})
	if err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.ListByDayID: %w", err)
	}
	defer rows.Close()

	var reservations []domain.DiningReservation
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ReservationRepo.ListByDayID: scan: %w", err)
		}
		reservations = append(reservations, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ReservationRepo.ListByDayID: rows: %w", err)
	}

	return reservations, nil
}

func (r *pgReservationRepo) Update(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error) {
	const q = `
		UPDATE restaurant_reservations
		SET restaurant_name     = @restaurant_name,
		    address             = @address,
		    phone_number        = @phone_number,
		    website             = @website,
		    place_id            = @place_id,
		    confirmation_number = @confirmation_number,
		    notes               = @notes,
		    reservation_time    = @reservation_time,
		    number_of_people    = @number_of_people,
		    rating              = @rating,
		    cost                = @cost,
		    currency            = @currency,
		    order_index         = @order_index,
		    updated_at          = now()
		WHERE id = @id AND day_id = @day_id
		RETURNING ` + reservationColumns

	args := reservationArgs(reservation)
	args["id"] = reservation.ID

	result, err := scanReservation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DiningReservation{}, fmt.Errorf("repo.ReservationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgReservationRepo) Delete(ctx context.Context, dayID, reservationID uuid.UUID) error {
	const q = `DELETE FROM restaurant_reservations WHERE id = @id AND day_id = @day_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": reservationID, "day_id": dayID})
	if err != nil {
		return fmt.Errorf("repo.ReservationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ReservationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// reservationArgs builds the named args shared by Create and Update.
func reservationArgs(res domain.DiningReservation) pgx.NamedArgs {
	return pgx.NamedArgs{
		"day_id":              res.DayID,
		"restaurant_name":     res.RestaurantName,
		"address":             res.Address,
		"phone_number":        res.PhoneNumber,
		"website":             res.Website,
		"place_id":            res.PlaceID,
		"confirmation_number": res.ConfirmationNumber,
		"notes":               res.Notes,
		"reservation_time":    res.ReservationTime,
		"number_of_people":    res.NumberOfPeople,
		"rating":              res.Rating,
		"cost":                decimalToNumeric(res.Cost),
		"currency":            res.Currency,
		"order_index":         res.OrderIndex,
	}
}

// scanReservation maps a single database row into a domain.DiningReservation.
func scanReservation(s scanner) (domain.DiningReservation, error) {
	var (
		res   domain.DiningReservation
		id    pgtype.UUID
		dayID pgtype.UUID
		cost  pgtype.Numeric
	)

	err := s.Scan(&id, &dayID, &res.RestaurantName, &res.Address, &res.PhoneNumber,
		&res.Website, &res.PlaceID, &res.ConfirmationNumber, &res.Notes,
		&res.ReservationTime, &res.NumberOfPeople, &res.Rating,
		&cost, &res.Currency, &res.OrderIndex, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DiningReservation{}, domain.ErrNotFound
		}
		return domain.DiningReservation{}, err
	}

	res.ID = uuid.UUID(id.Bytes)
	res.DayID = uuid.UUID(dayID.Bytes)
	res.Cost = numericToDecimal(cost)

	return res, nil
}
