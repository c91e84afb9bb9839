package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
)

// ReservationService implements business logic for DiningReservation
// operations. Reservations are scoped to a day, so adding one verifies the
// day exists under the caller's trip first.
type ReservationService struct {
	days         repo.DayRepo
	reservations repo.ReservationRepo
}

// NewReservationService constructs a ReservationService backed by the provided repos.
func NewReservationService(days repo.DayRepo, reservations repo.ReservationRepo) *ReservationService {
	return &ReservationService{days: days, reservations: reservations}
}

// Add validates and persists a new reservation under the given day.
// Returns domain.ErrNotFound if the day does not exist under the trip.
func (s *ReservationService) Add(ctx context.Context, tripID uuid.UUID, reservation domain.DiningReservation) (domain.DiningReservation, error) {
	if _, err := s.days.GetByID(ctx, tripID, reservation.DayID); err != nil {
		return domain.DiningReservation{}, fmt.Errorf("service.ReservationService.Add: %w", err)
	}
	if err := validateReservation(reservation); err != nil {
		return domain.DiningReservation{}, err
	}

	created, err := s.reservations.Create(ctx, reservation)
	if err != nil {
		return domain.DiningReservation{}, fmt.Errorf("service.ReservationService.Add: %w", err)
	}
	return created, nil
}

// List returns all reservations for a day, ordered by order_index.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ReservationService) List(ctx context.Context, dayID uuid.UUID) ([]domain.DiningReservation, error) {
	reservations, err := s.reservations.ListByDayID(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("service.ReservationService.List: %w", err)
	}
	if reservations == nil {
		return []domain.DiningReservation{}, nil
	}
	return reservations, nil
}

// Update validates and persists changes to an existing reservation.
func (s *ReservationService) Update(ctx context.Context, reservation domain.DiningReservation) (domain.DiningReservation, error) {
	if err := validateReservation(reservation); err != nil {
		return domain.DiningReservation{}, err
	}

	updated, err := s.reservations.Update(ctx, reservation)
	if err != nil {
		return domain.DiningReservation{}, fmt.Errorf("service.ReservationService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a reservation by ID, scoped to the given dayID.
func (s *ReservationService) Delete(ctx context.Context, dayID, reservationID uuid.UUID) error {
	if err := s.reservations.Delete(ctx, dayID, reservationID); err != nil {
		return fmt.Errorf("service.ReservationService.Delete: %w", err)
	}
	return nil
}

// validateReservation enforces business rules common to add and update.
//   - RestaurantName must be non-empty.
//   - A cost requires a currency.
//   - NumberOfPeople, when set, must be at least 1.
func validateReservation(reservation domain.DiningReservation) error {
	if strings.TrimSpace(reservation.RestaurantName) == "" {
		return fmt.Errorf("%w: restaurant_name is required", domain.ErrValidation)
	}
	if reservation.Cost != nil && reservation.Currency == "" {
		return fmt.Errorf("%w: currency is required when cost is set", domain.ErrValidation)
	}
	if reservation.NumberOfPeople != nil && *reservation.NumberOfPeople < 1 {
		return fmt.Errorf("%w: number_of_people must be at least 1", domain.ErrValidation)
	}
	return nil
}
