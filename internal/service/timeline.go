package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
	"github.com/tripcanvas/backend/internal/repo"
	"github.com/tripcanvas/backend/internal/timeline"
)

// TimelineView is the fully derived itinerary for one trip: days grouped
// under stays with their flights interleaved, plus the accommodation gaps
// and the flights that matched no stay.
//
// The view is recomputed from scratch on every call and owned by the
// caller; it holds copies, never references into repo results.
type TimelineView struct {
	Groups          []timeline.Group             `json:"groups"`
	Gaps            []timeline.Gap               `json:"gaps"`
	UnplacedFlights []domain.TransportationEvent `json:"unplaced_flights"`
}

// TimelineService derives TimelineViews from the persisted collections.
type TimelineService struct {
	days      repo.DayRepo
	stays     repo.StayRepo
	transport repo.TransportationRepo
}

// NewTimelineService constructs a TimelineService backed by the provided repos.
func NewTimelineService(days repo.DayRepo, stays repo.StayRepo, transport repo.TransportationRepo) *TimelineService {
	return &TimelineService{days: days, stays: stays, transport: transport}
}

// View fetches the trip's days, stays, and transportation events and derives
// the timeline. Empty collections are fine — a trip with days but no stays
// yields standalone groups, and a stay whose days are not materialized yet
// simply contributes nothing until they appear.
//
// The derivation itself is pure; given the same stored state this returns
// the same view every time. Callers re-invoke it whenever the change feed
// reports that any input collection changed.
func (s *TimelineService) View(ctx context.Context, tripID uuid.UUID) (TimelineView, error) {
	days, err := s.days.ListByTripID(ctx, tripID)
	if err != nil {
		return TimelineView{}, fmt.Errorf("service.TimelineService.View: days: %w", err)
	}
	stays, err := s.stays.ListByTripID(ctx, tripID)
	if err != nil {
		return TimelineView{}, fmt.Errorf("service.TimelineService.View: stays: %w", err)
	}
	events, err := s.transport.ListByTripID(ctx, tripID)
	if err != nil {
		return TimelineView{}, fmt.Errorf("service.TimelineService.View: transportation: %w", err)
	}

	groups, gaps := timeline.BuildTimeline(days, stays)
	unplaced := timeline.PlaceFlights(groups, events)

	view := TimelineView{Groups: groups, Gaps: gaps, UnplacedFlights: unplaced}
	if view.Groups == nil {
		view.Groups = []timeline.Group{}
	}
	if view.Gaps == nil {
		view.Gaps = []timeline.Gap{}
	}
	if view.UnplacedFlights == nil {
		view.UnplacedFlights = []domain.TransportationEvent{}
	}
	return view, nil
}
