package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tripcanvas/backend/internal/domain"
)

// DayRepo defines the persistence operations for TripDays.
// All single-row operations are scoped by tripID to enforce ownership.
type DayRepo interface {
	// Create inserts a new day and returns the persisted record.
	Create(ctx context.Context, day domain.TripDay) (domain.TripDay, error)

	// Ensure inserts a day for (tripID, date) if none exists yet.
	// An existing row for that date is left untouched — user edits to a
	// day's title or description survive re-materialization when a stay
	// is added or moved over the same range.
	Ensure(ctx context.Context, tripID uuid.UUID, date time.Time, title string) error

	// GetByID retrieves a single day, scoped to the given tripID.
	// Returns domain.ErrNotFound if no day with that ID exists under that trip.
	GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.TripDay, error)

	// ListByTripID returns all days for a trip ordered by date ascending.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error)

	// Update overwrites the mutable fields of a day, scoped to its tripID.
	// Returns domain.ErrNotFound if no day with that ID exists under that trip.
	Update(ctx context.Context, day domain.TripDay) (domain.TripDay, error)

	// Delete removes a day by ID, scoped to the given tripID.
	// Returns domain.ErrNotFound if no day with that ID exists under that trip.
	Delete(ctx context.Context, tripID, dayID uuid.UUID) error
}

// pgDayRepo is the Postgres implementation of DayRepo.
type pgDayRepo struct {
	db db
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db) DayRepo {
	return &pgDayRepo{db: db}
}

const dayColumns = `id, trip_id, date, title, description, image_url, created_at, updated_at`

func (r *pgDayRepo) Create(ctx context.Context, day domain.TripDay) (domain.TripDay, error) {
	const q = `
		INSERT INTO trip_days (trip_id, date, title, description, image_url)
		VALUES (@trip_id, @date, @title, @description, @image_url)
		RETURNING ` + dayColumns

	args := pgx.NamedArgs{
		"trip_id":     day.TripID,
		"date":        day.Date,
		"title":       day.Title,
		"description": day.Description,
		"image_url":   day.ImageURL,
	}

	result, err := scanDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("repo.DayRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) Ensure(ctx context.Context, tripID uuid.UUID, date time.Time, title string) error {
	const q = `
		INSERT INTO trip_days (trip_id, date, title)
		VALUES (@trip_id, @date, @title)
		ON CONFLICT (trip_id, date) DO NOTHING`

	args := pgx.NamedArgs{
		"trip_id": tripID,
		"date":    date,
		"title":   title,
	}

	if _, err := r.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("repo.DayRepo.Ensure: %w", err)
	}
	return nil
}

func (r *pgDayRepo) GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.TripDay, error) {
	const q = `
		SELECT ` + dayColumns + `
		FROM trip_days
		WHERE id = @id AND trip_id = @trip_id`

	result, err := scanDay(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": dayID, "trip_id": tripID}))
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("repo.DayRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error) {
	const q = `
		SELECT ` + dayColumns + `
		FROM trip_days
		WHERE trip_id = @trip_id
		ORDER BY date ASC`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTripID: %w", err)
	}
	defer rows.Close()

	var days []domain.TripDay
	for rows.Next() {
		d, err := scanDay(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.DayRepo.ListByTripID: scan: %w", err)
		}
		days = append(days, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.DayRepo.ListByTripID: rows: %w", err)
	}

	return days, nil
}

func (r *pgDayRepo) Update(ctx context.Context, day domain.TripDay) (domain.TripDay, error) {
	const q = `
		UPDATE trip_days
		SET title       = @title,
		    description = @description,
		    image_url   = @image_url,
		    updated_at  = now()
		WHERE id = @id AND trip_id = @trip_id
		RETURNING ` + dayColumns

	args := pgx.NamedArgs{
		"id":          day.ID,
		"trip_id":     day.TripID,
		"title":       day.Title,
		"description": day.Description,
		"image_url":   day.ImageURL,
	}

	result, err := scanDay(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("repo.DayRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgDayRepo) Delete(ctx context.Context, tripID, dayID uuid.UUID) error {
	const q = `DELETE FROM trip_days WHERE id = @id AND trip_id = @trip_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": dayID, "trip_id": tripID})
	if err != nil {
		return fmt.Errorf("repo.DayRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.DayRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanDay maps a single database row into a domain.TripDay.
func scanDay(s scanner) (domain.TripDay, error) {
	var (
		d      domain.TripDay
		id     pgtype.UUID
		tripID pgtype.UUID
		date   pgtype.Date
	)

	err := s.Scan(&id, &tripID, &date, &d.Title, &d.Description, &d.ImageURL, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.TripDay{}, domain.ErrNotFound
		}
		return domain.TripDay{}, err
	}

	d.ID = uuid.UUID(id.Bytes)
	d.TripID = uuid.UUID(tripID.Bytes)
	d.Date = date.Time

	return d, nil
}
