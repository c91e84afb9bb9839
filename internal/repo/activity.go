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

// ActivityRepo defines the persistence operations for DayActivities.
type ActivityRepo interface {
	// Create inserts a new activity and returns the persisted record.
	Create(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error)

	// ListByDayID returns all activities for a day ordered by order_index.
	ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.DayActivity, error)

	// ListByTripID returns all activities across every day of a trip,
	// ordered by day date then order_index. Used by budget aggregation.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivity, error)

	// Update overwrites the mutable fields of an activity, scoped to its day.
	// Returns domain.ErrNotFound if no activity with that ID exists under that day.
	Update(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error)

	// Delete removes an activity by ID, scoped to the given dayID.
	// Returns domain.ErrNotFound if no activity with that ID exists under that day.
	Delete(ctx context.Context, dayID, activityID uuid.UUID) error
}

// pgActivityRepo is the Postgres implementation of ActivityRepo.
type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, day_id, title, description, start_time, end_time, cost, currency, order_index, created_at`

func (r *pgActivityRepo) Create(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error) {
	const q = `
		INSERT INTO day_activities
			(day_id, title, description, start_time, end_time, cost, currency, order_index)
		VALUES
			(@day_id, @title, @description, @start_time, @end_time, @cost, @currency, @order_index)
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"day_id":      activity.DayID,
		"title":       activity.Title,
		"description": activity.Description,
		"start_time":  activity.StartTime,
		"end_time":    activity.EndTime,
		"cost":        decimalToNumeric(activity.Cost),
		"currency":    activity.Currency,
		"order_index": activity.OrderIndex,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayActivity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.DayActivity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM day_activities
		WHERE day_id = @day_id
		ORDER BY order_index ASC, created_at ASC`

	return r.list(ctx, "ListByDayID", q, pgx.NamedArgs{"day_id": dayID})
}

func (r *pgActivityRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.DayActivity, error) {
	const q = `
		SELECT a.id, a.day_id, a.title, a.description, a.start_time, a.end_time,
		       a.cost, a.currency, a.order_index, a.created_at
		FROM day_activities a
		JOIN trip_days d ON d.id = a.day_id
		WHERE d.trip_id = @trip_id
		ORDER BY d.date ASC, a.order_index ASC`

	return r.list(ctx, "ListByTripID", q, pgx.NamedArgs{"trip_id": tripID})
}

func (r *pgActivityRepo) list(ctx context.Context, op, q string, args pgx.NamedArgs) ([]domain.DayActivity, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.%s: %w", op, err)
	}
	defer rows.Close()

	var activities []domain.DayActivity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.ActivityRepo.%s: scan: %w", op, err)
		}
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ActivityRepo.%s: rows: %w", op, err)
	}

	return activities, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error) {
	const q = `
		UPDATE day_activities
		SET title       = @title,
		    description = @description,
		    start_time  = @start_time,
		    end_time    = @end_time,
		    cost        = @cost,
		    currency    = @currency,
		    order_index = @order_index
		WHERE id = @id AND day_id = @day_id
		RETURNING ` + activityColumns

	args := pgx.NamedArgs{
		"id":          activity.ID,
		"day_id":      activity.DayID,
		"title":       activity.Title,
		"description": activity.Description,
		"start_time":  activity.StartTime,
		"end_time":    activity.EndTime,
		"cost":        decimalToNumeric(activity.Cost),
		"currency":    activity.Currency,
		"order_index": activity.OrderIndex,
	}

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.DayActivity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, dayID, activityID uuid.UUID) error {
	const q = `DELETE FROM day_activities WHERE id = @id AND day_id = @day_id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": activityID, "day_id": dayID})
	if err != nil {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.ActivityRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanActivity maps a single database row into a domain.DayActivity.
func scanActivity(s scanner) (domain.DayActivity, error) {
	var (
		a     domain.DayActivity
		id    pgtype.UUID
		dayID pgtype.UUID
		cost  pgtype.Numeric
	)

	err := s.Scan(&id, &dayID, &a.Title, &a.Description, &a.StartTime, &a.EndTime,
		&cost, &a.Currency, &a.OrderIndex, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.DayActivity{}, domain.ErrNotFound
		}
		return domain.DayActivity{}, err
	}

	a.ID = uuid.UUID(id.Bytes)
	a.DayID = uuid.UUID(dayID.Bytes)
	a.Cost = numericToDecimal(cost)

	return a, nil
}
