package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
	"github.com/tripcanvas/backend/internal/timeline"
)

// StayService implements business logic for AccommodationStay operations.
// It holds trips and days repos because creating a stay requires verifying
// the parent trip exists and materializing itinerary rows for the stay's
// covered date range.
type StayService struct {
	trips repo.TripRepo
	stays repo.StayRepo
	days  repo.DayRepo
}

// NewStayService constructs a StayService backed by the provided repos.
func NewStayService(trips repo.TripRepo, stays repo.StayRepo, days repo.DayRepo) *StayService {
	return &StayService{trips: trips, stays: stays, days: days}
}

// Create validates the stay, verifies the parent trip exists, persists the
// booking, and materializes a TripDay for each covered date. Existing days
// in the range are never overwritten, so user edits survive.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// parent trip does not exist.
func (s *StayService) Create(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error) {
	if _, err := s.trips.GetByID(ctx, stay.TripID); err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("service.StayService.Create: %w", err)
	}
	if err := validateStay(stay); err != nil {
		return domain.AccommodationStay{}, err
	}

	created, err := s.stays.Create(ctx, stay)
	if err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("service.StayService.Create: %w", err)
	}

	if err := s.materializeDays(ctx, created); err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("service.StayService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single stay by ID, scoped to the given tripID.
func (s *StayService) GetByID(ctx context.Context, tripID, stayID uuid.UUID) (domain.AccommodationStay, error) {
	stay, err := s.stays.GetByID(ctx, tripID, stayID)
	if err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("service.StayService.GetByID: %w", err)
	}
	return stay, nil
}

// ListByTripID returns all stays for a trip ordered by check-in date.
// Always returns a non-nil slice so callers can safely range over it.
func (s *StayService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.AccommodationStay, error) {
	stays, err := s.stays.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.StayService.ListByTripID: %w", err)
	}
	if stays == nil {
		return []domain.AccommodationStay{}, nil
	}
	return stays, nil
}

// Update validates and persists changes to an existing stay, then
// materializes days for the (possibly moved) covered range. Days from the
// old range are deliberately kept — the timeline shows them as standalone
// or gap days until the user removes them.
func (s *StayService) Update(ctx context.Context, stay domain.AccommodationStay) (domain.AccommodationStay, error) {
	if err := validateStay(stay); err != nil {
		return domain.AccommodationStay{}, err
	}

	updated, err := s.stays.Update(ctx, stay)
	if err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("service.StayService.Update: %w", err)
	}

	if err := s.materializeDays(ctx, updated); err != nil {
		return domain.AccommodationStay{}, fmt.Errorf("service.StayService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes a stay by ID, scoped to the given tripID. The days
// materialized for the stay stay in the itinerary; the next timeline
// recompute reports them as a gap.
func (s *StayService) Delete(ctx context.Context, tripID, stayID uuid.UUID) error {
	if err := s.stays.Delete(ctx, tripID, stayID); err != nil {
		return fmt.Errorf("service.StayService.Delete: %w", err)
	}
	return nil
}

// materializeDays upserts one TripDay per covered date of the stay
// (checkout day excluded). A failure here leaves the stay persisted with
// fewer days than expected; the timeline treats that as a consistency
// window and the next successful materialization resolves it.
func (s *StayService) materializeDays(ctx context.Context, stay domain.AccommodationStay) error {
	dates, err := timeline.DaysBetween(stay.CheckinDate, stay.CheckoutDate)
	if err != nil {
		return err
	}
	for _, date := range dates {
		if err := s.days.Ensure(ctx, stay.TripID, date, defaultDayTitle(date)); err != nil {
			return err
		}
	}
	return nil
}

// defaultDayTitle is the title given to auto-materialized days,
// e.g. "Tuesday, May 6". User edits replace it.
func defaultDayTitle(date time.Time) string {
	return date.Format("Monday, January 2")
}

// validateStay enforces business rules common to both Create and Update.
//   - Name must be non-empty (whitespace-only names are rejected).
//   - CheckoutDate must not be before CheckinDate. Equal dates are a legal
//     zero-night stay.
func validateStay(stay domain.AccommodationStay) error {
	if strings.TrimSpace(stay.Name) == "" {
		return fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	if stay.CheckoutDate.Before(stay.CheckinDate) {
		return fmt.Errorf("%w: checkout_date must not be before checkin_date", domain.ErrValidation)
	}
	return nil
}
