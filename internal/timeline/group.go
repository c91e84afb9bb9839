package timeline

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/tripcanvas/backend/internal/domain"
)

// Group is one contiguous run of trip days in the rendered timeline.
// Stay is non-nil for a run covered by an accommodation booking and nil for
// a standalone run. Flights is populated by PlaceFlights.
//
// Groups are derived values owned by the compute pass that produced them;
// Stay points at a copy, not into the caller's slice.
type Group struct {
	Stay    *domain.AccommodationStay    `json:"stay,omitempty"`
	Days    []domain.TripDay             `json:"days"`
	Flights []domain.TransportationEvent `json:"flights,omitempty"`
}

// Gap is a maximal run of date-consecutive trip days with no covering stay.
// Start and End are both inclusive day values.
type Gap struct {
	Start  time.Time   `json:"start"`
	End    time.Time   `json:"end"`
	DayIDs []uuid.UUID `json:"day_ids"`
}

// BuildTimeline partitions a trip's days into ordered groups and derives the
// accommodation gaps, in a single pass over the days sorted ascending by
// date.
//
// Every day lands in exactly one group. A new group starts whenever the
// covering stay changes, including transitions to and from "no stay". Gaps
// cover the same uncovered days as the standalone groups, split additionally
// on date discontinuities so each gap is a contiguous date range.
//
// When overlapping bookings cover the same day, the stay with the latest
// check-in date wins (the most recently started stay takes precedence);
// check-in ties break by stay ID so the result is deterministic.
//
// Empty days yield empty groups and gaps. A stay whose days have not been
// materialized yet simply produces no group until they exist.
func BuildTimeline(days []domain.TripDay, stays []domain.AccommodationStay) ([]Group, []Gap) {
	if len(days) == 0 {
		return nil, nil
	}

	sorted := make([]domain.TripDay, len(days))
	copy(sorted, days)
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := NormalizeDay(sorted[i].Date), NormalizeDay(sorted[j].Date)
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return sorted[i].ID.String() < sorted[j].ID.String()
	})

	var (
		groups  []Group
		gaps    []Gap
		current *Group
		gap     *Gap
		prevDay time.Time
	)

	flushGap := func() {
		if gap != nil {
			gaps = append(gaps, *gap)
			gap = nil
		}
	}

	for _, day := range sorted {
		date := NormalizeDay(day.Date)
		stay := coveringStay(stays, date)

		if current == nil || !sameStay(current.Stay, stay) {
			if current != nil {
				groups = append(groups, *current)
			}
			current = &Group{Stay: stay}
		}
		current.Days = append(current.Days, day)

		if stay == nil {
			contiguous := gap != nil && date.Sub(prevDay) <= 24*time.Hour
			if !contiguous {
				flushGap()
				gap = &Gap{Start: date, End: date}
			}
			gap.End = date
			gap.DayIDs = append(gap.DayIDs, day.ID)
		} else {
			flushGap()
		}
		prevDay = date
	}

	if current != nil {
		groups = append(groups, *current)
	}
	flushGap()

	return groups, gaps
}

// coveringStay resolves which stay (if any) covers the given normalized day,
// applying the latest-check-in tie-break for overlapping bookings.
func coveringStay(stays []domain.AccommodationStay, day time.Time) *domain.AccommodationStay {
	var winner *domain.AccommodationStay
	for i := range stays {
		s := stays[i]
		if NormalizeDay(s.CheckoutDate).Before(NormalizeDay(s.CheckinDate)) {
			// Inverted range from bad data; skip rather than fail the pass.
			continue
		}
		if !CoversDay(s, day) {
			continue
		}
		if winner == nil || laterCheckin(s, *winner) {
			stay := s
			winner = &stay
		}
	}
	return winner
}

// laterCheckin reports whether a takes precedence over b for a contested
// day: later check-in wins, with stay ID as the deterministic tie-break.
func laterCheckin(a, b domain.AccommodationStay) bool {
	ca, cb := NormalizeDay(a.CheckinDate), NormalizeDay(b.CheckinDate)
	if !ca.Equal(cb) {
		return ca.After(cb)
	}
	return a.ID.String() > b.ID.String()
}

func sameStay(a, b *domain.AccommodationStay) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}
