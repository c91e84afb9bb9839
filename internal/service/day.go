package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
)

// DayService implements business logic for TripDay and DayActivity
// operations. Activity operations live here because they are scoped to a
// day and creating one requires verifying the parent day exists.
type DayService struct {
	trips      repo.TripRepo
	days       repo.DayRepo
	activities repo.ActivityRepo
}

// NewDayService constructs a DayService backed by the provided repos.
func NewDayService(trips repo.TripRepo, days repo.DayRepo, activities repo.ActivityRepo) *DayService {
	return &DayService{trips: trips, days: days, activities: activities}
}

// Create validates the day, verifies the parent trip exists, then persists.
// Returns domain.ErrValidation if the day duplicates an existing date —
// at most one day exists per (trip, date).
func (s *DayService) Create(ctx context.Context, day domain.TripDay) (domain.TripDay, error) {
	if _, err := s.trips.GetByID(ctx, day.TripID); err != nil {
		return domain.TripDay{}, fmt.Errorf("service.DayService.Create: %w", err)
	}
	if day.Date.IsZero() {
		return domain.TripDay{}, fmt.Errorf("%w: date is required", domain.ErrValidation)
	}

	created, err := s.days.Create(ctx, day)
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("service.DayService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single day by ID, scoped to the given tripID.
func (s *DayService) GetByID(ctx context.Context, tripID, dayID uuid.UUID) (domain.TripDay, error) {
	day, err := s.days.GetByID(ctx, tripID, dayID)
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("service.DayService.GetByID: %w", err)
	}
	return day, nil
}

// ListByTripID returns all days for a trip ordered by date ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DayService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TripDay, error) {
	days, err := s.days.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DayService.ListByTripID: %w", err)
	}
	if days == nil {
		return []domain.TripDay{}, nil
	}
	return days, nil
}

// Update persists changes to a day's title, description, or image.
// The date itself is immutable — moving a day means deleting and recreating.
func (s *DayService) Update(ctx context.Context, day domain.TripDay) (domain.TripDay, error) {
	updated, err := s.days.Update(ctx, day)
	if err != nil {
		return domain.TripDay{}, fmt.Errorf("service.DayService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a day by ID, scoped to the given tripID, cascading to its
// activities.
func (s *DayService) Delete(ctx context.Context, tripID, dayID uuid.UUID) error {
	if err := s.days.Delete(ctx, tripID, dayID); err != nil {
		return fmt.Errorf("service.DayService.Delete: %w", err)
	}
	return nil
}

// AddActivity validates and persists a new activity under the given day.
// Returns domain.ErrNotFound if the day does not exist under the trip.
func (s *DayService) AddActivity(ctx context.Context, tripID uuid.UUID, activity domain.DayActivity) (domain.DayActivity, error) {
	if _, err := s.days.GetByID(ctx, tripID, activity.DayID); err != nil {
		return domain.DayActivity{}, fmt.Errorf("service.DayService.AddActivity: %w", err)
	}
	if err := validateActivity(activity); err != nil {
		return domain.DayActivity{}, err
	}

	created, err := s.activities.Create(ctx, activity)
	if err != nil {
		return domain.DayActivity{}, fmt.Errorf("service.DayService.AddActivity: %w", err)
	}
	return created, nil
}

// ListActivities returns all activities for a day, ordered by order_index.
// Always returns a non-nil slice so callers can safely range over it.
func (s *DayService) ListActivities(ctx context.Context, dayID uuid.UUID) ([]domain.DayActivity, error) {
	activities, err := s.activities.ListByDayID(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("service.DayService.ListActivities: %w", err)
	}
	if activities == nil {
		return []domain.DayActivity{}, nil
	}
	return activities, nil
}

// UpdateActivity validates and persists changes to an existing activity.
func (s *DayService) UpdateActivity(ctx context.Context, activity domain.DayActivity) (domain.DayActivity, error) {
	if err := validateActivity(activity); err != nil {
		return domain.DayActivity{}, err
	}

	updated, err := s.activities.Update(ctx, activity)
	if err != nil {
		return domain.DayActivity{}, fmt.Errorf("service.DayService.UpdateActivity: %w", err)
	}
	return updated, nil
}

// DeleteActivity removes an activity by ID, scoped to the given dayID.
func (s *DayService) DeleteActivity(ctx context.Context, dayID, activityID uuid.UUID) error {
	if err := s.activities.Delete(ctx, dayID, activityID); err != nil {
		return fmt.Errorf("service.DayService.DeleteActivity: %w", err)
	}
	return nil
}

// validateActivity enforces business rules common to add and update.
//   - Title must be non-empty.
//   - A cost requires a currency, and vice versa.
func validateActivity(activity domain.DayActivity) error {
	if strings.TrimSpace(activity.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrValidation)
	}
	if activity.Cost != nil && activity.Currency == "" {
		return fmt.Errorf("%w: currency is required when cost is set", domain.ErrValidation)
	}
	return nil
}
