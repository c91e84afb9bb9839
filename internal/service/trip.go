// Package service contains the business logic for the trip planner API.
// Services validate inputs, enforce business rules, and orchestrate repo
// calls. No SQL lives here — services depend on repo interfaces, not
// implementations.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
	"github.com/tripcanvas/backend/internal/timeline"
)

// TripService implements business logic for Trip operations.
// It also holds the day repo because creating a trip with dates
// materializes one itinerary row per calendar day of the trip.
type TripService struct {
	trips repo.TripRepo
	days  repo.DayRepo
}

// NewTripService constructs a TripService backed by the provided repos.
func NewTripService(trips repo.TripRepo, days repo.DayRepo) *TripService {
	return &TripService{trips: trips, days: days}
}

// Create validates and persists a new trip, then materializes its days.
// Returns domain.ErrValidation if input violates business rules.
func (s *TripService) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	created, err := s.trips.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	if err := s.materializeDays(ctx, created); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip by ID.
// Returns domain.ErrNotFound if no trip with that ID exists.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.trips.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips, most recent first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.trips.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and updates an existing trip, materializing days for any
// newly covered dates. Days outside the new range are left untouched.
func (s *TripService) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}

	updated, err := s.trips.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}

	if err := s.materializeDays(ctx, updated); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a trip by ID, cascading to all its trip-scoped records.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.trips.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// materializeDays upserts one TripDay per calendar day of the trip's date
// range. Unlike stay coverage, the departure day is part of the trip, so
// the range is inclusive of both endpoints.
func (s *TripService) materializeDays(ctx context.Context, trip domain.Trip) error {
	if trip.ArrivalDate == nil || trip.DepartureDate == nil {
		return nil
	}

	days, err := timeline.DaysBetween(*trip.ArrivalDate, trip.DepartureDate.AddDate(0, 0, 1))
	if err != nil {
		return err
	}
	for _, date := range days {
		if err := s.days.Ensure(ctx, trip.ID, date, defaultDayTitle(date)); err != nil {
			return err
		}
	}
	return nil
}

// validateTrip enforces business rules common to both Create and Update.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - DepartureDate, if both dates are set, must not be before ArrivalDate.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.ArrivalDate != nil && trip.DepartureDate != nil &&
		trip.DepartureDate.Before(*trip.ArrivalDate) {
		return fmt.Errorf("%w: departure_date must not be before arrival_date", domain.ErrValidation)
	}
	return nil
}
