// Package timeline derives the display-ready itinerary for a trip: days
// grouped under accommodation stays, gaps where no accommodation is booked,
// and flights placed into the stay they occur during.
//
// Everything in this package is pure computation over fully-fetched
// snapshots. Callers re-run it from current state whenever any input
// collection changes; given the same snapshot the output is identical.
package timeline

import (
	"fmt"
	"time"

	"github.com/tripcanvas/backend/internal/domain"
)

// NormalizeDay truncates t to its date-only component (UTC midnight).
// All coverage comparisons in this package operate on normalized days so
// time-of-day and timezone components can never shift a day across a
// stay boundary.
func NormalizeDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return NormalizeDay(a).Equal(NormalizeDay(b))
}

// DaysBetween returns every calendar day in [checkin, checkout), ordered
// ascending. The checkout day is excluded: a stay from May 1 to May 4
// yields May 1, 2, and 3. When checkout equals checkin the result is empty
// (zero-night stay). Returns domain.ErrValidation when checkout precedes
// checkin.
func DaysBetween(checkin, checkout time.Time) ([]time.Time, error) {
	start := NormalizeDay(checkin)
	end := NormalizeDay(checkout)
	if end.Before(start) {
		return nil, fmt.Errorf("%w: check-out date must not be before check-in date", domain.ErrValidation)
	}

	var days []time.Time
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days, nil
}

// CoversDay reports whether day falls inside the stay's half-open
// [checkin, checkout) range. The checkout day itself is NOT covered by the
// departing stay, which leaves it free to be covered by a same-day
// following stay. Flight placement deliberately uses a different, inclusive
// rule — see PlaceFlights.
func CoversDay(stay domain.AccommodationStay, day time.Time) bool {
	d := NormalizeDay(day)
	return !d.Before(NormalizeDay(stay.CheckinDate)) && d.Before(NormalizeDay(stay.CheckoutDate))
}
