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

// TransportationRepo defines the persistence operations for TransportationEvents.
type TransportationRepo interface {
	// Create inserts a new event and returns the persisted record.
	Create(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error)

	// GetByID retrieves a single event, scoped to the given tripID.
	// Returns domain.ErrNotFound if no event with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.TransportationEvent, error)

	// ListByTripID returns all events for a trip ordered by start date,
	// then start time.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TransportationEvent, error)

	// Update overwrites the mutable fields of an event, scoped to its tripID.
	// Returns domain.ErrNotFound if no event with that ID exists under that trip.
	Update(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error)

	// Delete removes an event by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no event with that ID exists under that trip.
	Delete(ctx context.Context, tripID, eventID uuid.UUID) error
}

// pgTransportationRepo is the Postgres implementation of TransportationRepo.
type pgTransportationRepo struct {
	db db
}

// NewTransportationRepo constructs a TransportationRepo backed by the provided db connection.
func NewTransportationRepo(db db) TransportationRepo {
	return &pgTransportationRepo{db: db}
}

const transportColumns = `id, trip_id, type, provider, confirmation_number,
	departure_location, arrival_location, start_date, start_time, end_date, end_time,
	cost, currency, created_at, updated_at`

func (r *pgTransportationRepo) Create(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error) {
	const q = `
		INSERT INTO transportation_events
			(trip_id, type, provider, confirmation_number, departure_location,
			 arrival_location, start_date, start_time, end_date, end_time, cost, currency)
		VALUES
			(@trip_id, @type, @provider, @confirmation_number, @departure_location,
			 @arrival_location, @start_date, @start_time, @end_date, @end_time, @cost, @currency)
		RETURNING ` + transportColumns

	result, err := scanTransportation(r.db.QueryRow(ctx, q, transportArgs(event)))
	if err != nil {
		return domain.TransportationEvent{}, fmt.Errorf("repo.TransportationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTransportationRepo) GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.TransportationEvent, error) {
	const q = `
		SELECT ` + transportColumns + `
		FROM transportation_events
		WHERE id = @id AND trip_id = @trip_id`

	result, err := scanTransportation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": eventID, "trip_id": tripID}))
	if err != nil {
		return domain.TransportationEvent{}, fmt.Errorf("repo.TransportationRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgTransportationRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TransportationEvent, error) {
	const q = `
		SELECT ` + transportColumns + `
		FROM transportation_events
		WHERE trip_id = @trip_id
		ORDER BY start_date ASC, start_time ASC, id ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.TransportationRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var events []domain.TransportationEvent
	for rows.Next() {
		e, err := scanTransportation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.TransportationRepo.ListByTripID: scan: %w", err)
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.TransportationRepo.ListByTripID: rows: %w", err)
	}

	return events, nil
}

func (r *pgTransportationRepo) Update(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error) {
	const q = `
		UPDATE transportation_events
		SET type                = @type,
		    provider            = @provider,
		    confirmation_number = @confirmation_number,
		    departure_location  = @departure_location,
		    arrival_location    = @arrival_location,
		    start_date          = @start_date,
		    start_time          = @start_time,
		    end_date            = @end_date,
		    end_time            = @end_time,
		    cost                = @cost,
		    currency            = @currency,
		    updated_at          = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + transportColumns

	args := transportArgs(event)
	args["id"] = event.ID

	result, err := scanTransportation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TransportationEvent{}, fmt.Errorf("repo.TransportationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTransportationRepo) Delete(ctx context.Context, tripID, eventID uuid.UUID) error {
	const q = `DELETE FROM transportation_events WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": eventID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.TransportationRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.TransportationRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

func transportArgs(event domain.TransportationEvent) pgx.NamedArgs {
	return pgx.NamedArgs{
		"trip_id":             event.TripID,
		"type":                string(event.Type),
		"provider":            event.Provider,
		"confirmation_number": event.ConfirmationNumber,
		"departure_location":  event.DepartureLocation,
		"arrival_location":    event.ArrivalLocation,
		"start_date":          event.StartDate,
		"start_time":          event.StartTime,
		"end_date":            event.EndDate,
		"end_time":            event.EndTime,
		"cost":                decimalToNumeric(event.Cost),
		"currency":            event.Currency,
	}
}

// scanTransportation maps a single database row into a domain.TransportationEvent.
func scanTransportation(s scanner) (domain.TransportationEvent, error) {
	var (
		e         domain.TransportationEvent
		id        pgtype.UUID
		tripID    pgtype.UUID
		eventType string
		startDate pgtype.Date
		endDate   pgtype.Date
		cost      pgtype.Numeric
	)

	err := s.Scan(&id, &tripID, &eventType, &e.Provider, &e.ConfirmationNumber,
		&e.DepartureLocation, &e.ArrivalLocation, &startDate, &e.StartTime,
		&endDate, &e.EndTime, &cost, &e.Currency, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TransportationEvent{}, domain.ErrNotFound
		}
		return domain.TransportationEvent{}, err
	}

	e.ID = uuid.UUID(id.Bytes)
	e.TripID = uuid.UUID(tripID.Bytes)
	e.Type = domain.TransportType(eventType)
	e.StartDate = startDate.Time
	if endDate.Valid {
		ed := endDate.Time
		e.EndDate = &ed
	}
	e.Cost = numericToDecimal(cost)

	return e, nil
}
