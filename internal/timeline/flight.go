package timeline

import (
	"sort"

	"github.com/tripcanvas/backend/internal/domain"
)

// PlaceFlights attaches each flight among events to the stay-backed group
// whose inclusive [checkin, checkout] window contains the flight's departure
// date, and returns the flights that matched no group.
//
// Note the boundary asymmetry versus day coverage: a flight departing on the
// checkout date still belongs to that stay (checkout-day flights are the
// common case), while the checkout day itself is not a covered day. When the
// checkout day of one stay is the checkin day of the next, the earlier
// (departing) group wins.
//
// Within a group, flights are ordered by departure date, then departure
// time, then ID. Non-flight events are ignored. Unplaced flights are
// returned rather than dropped so the caller can still render them.
func PlaceFlights(groups []Group, events []domain.TransportationEvent) []domain.TransportationEvent {
	flights := make([]domain.TransportationEvent, 0, len(events))
	for _, e := range events {
		if e.Type == domain.TransportFlight {
			flights = append(flights, e)
		}
	}
	sort.Slice(flights, func(i, j int) bool {
		di, dj := NormalizeDay(flights[i].StartDate), NormalizeDay(flights[j].StartDate)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		if flights[i].StartTime != flights[j].StartTime {
			return flights[i].StartTime < flights[j].StartTime
		}
		return flights[i].ID.String() < flights[j].ID.String()
	})

	var unplaced []domain.TransportationEvent
	for _, f := range flights {
		if g := matchGroup(groups, f); g != nil {
			g.Flights = append(g.Flights, f)
		} else {
			unplaced = append(unplaced, f)
		}
	}
	return unplaced
}

// matchGroup returns the first stay-backed group whose inclusive stay window
// contains the flight's departure date, or nil.
func matchGroup(groups []Group, f domain.TransportationEvent) *Group {
	d := NormalizeDay(f.StartDate)
	for i := range groups {
		stay := groups[i].Stay
		if stay == nil {
			continue
		}
		checkin := NormalizeDay(stay.CheckinDate)
		checkout := NormalizeDay(stay.CheckoutDate)
		if !d.Before(checkin) && !d.After(checkout) {
			return &groups[i]
		}
	}
	return nil
}
