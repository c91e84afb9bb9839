package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
)

// TransportationService implements business logic for TransportationEvent
// operations.
type TransportationService struct {
	trips  repo.TripRepo
	events repo.TransportationRepo
}

// NewTransportationService constructs a TransportationService backed by the
// provided repos.
func NewTransportationService(trips repo.TripRepo, events repo.TransportationRepo) *TransportationService {
	return &TransportationService{trips: trips, events: events}
}

// Create validates the event, verifies the parent trip exists, then persists.
func (s *TransportationService) Create(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error) {
	if _, err := s.trips.GetByID(ctx, event.TripID); err != nil {
		return domain.TransportationEvent{}, fmt.Errorf("service.TransportationService.Create: %w", err)
	}
	if err := validateTransportation(event); err != nil {
		return domain.TransportationEvent{}, err
	}

	created, err := s.events.Create(ctx, event)
	if err != nil {
		return domain.TransportationEvent{}, fmt.Errorf("service.TransportationService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single event by ID, scoped to the given tripID.
func (s *TransportationService) GetByID(ctx context.Context, tripID, eventID uuid.UUID) (domain.TransportationEvent, error) {
	event, err := s.events.GetByID(ctx, tripID, eventID)
	if err != nil {
		return domain.TransportationEvent{}, fmt.Errorf("service.TransportationService.GetByID: %w", err)
	}
	return event, nil
}

// ListByTripID returns all events for a trip in departure order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TransportationService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.TransportationEvent, error) {
	events, err := s.events.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.TransportationService.ListByTripID: %w", err)
	}
	if events == nil {
		return []domain.TransportationEvent{}, nil
	}
	return events, nil
}

// Update validates and persists changes to an existing event.
func (s *TransportationService) Update(ctx context.Context, event domain.TransportationEvent) (domain.TransportationEvent, error) {
	if err := validateTransportation(event); err != nil {
		return domain.TransportationEvent{}, err
	}

	updated, err := s.events.Update(ctx, event)
	if err != nil {
		return domain.TransportationEvent{}, fmt.Errorf("service.TransportationService.Update: %w", err)
	}
	return updated, nil
}

// Delete removes an event by ID, scoped to the given tripID.
func (s *TransportationService) Delete(ctx context.Context, tripID, eventID uuid.UUID) error {
	if err := s.events.Delete(ctx, tripID, eventID); err != nil {
		return fmt.Errorf("service.TransportationService.Delete: %w", err)
	}
	return nil
}

// validateTransportation enforces business rules common to Create and Update.
//   - Type must be one of the enumerated kinds.
//   - StartDate is required.
//   - EndDate, if set, must not be before StartDate.
func validateTransportation(event domain.TransportationEvent) error {
	if !event.Type.Valid() {
		return fmt.Errorf("%w: unknown transportation type %q", domain.ErrValidation, event.Type)
	}
	if event.StartDate.IsZero() {
		return fmt.Errorf("%w: start_date is required", domain.ErrValidation)
	}
	if event.EndDate != nil && event.EndDate.Before(event.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	return nil
}
