package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccommodationStay is one hotel/lodging booking within a trip.
//
// CheckoutDate is an exclusive upper bound for day coverage: the stay covers
// the days in [CheckinDate, CheckoutDate). A stay with CheckinDate ==
// CheckoutDate covers zero nights — degenerate but representable.
type AccommodationStay struct {
	ID           uuid.UUID        `json:"id"`
	TripID       uuid.UUID        `json:"trip_id"`
	Name         string           `json:"name"`
	Details      string           `json:"details,omitempty"`
	URL          string           `json:"url,omitempty"`
	Address      string           `json:"address,omitempty"`
	Phone        string           `json:"phone,omitempty"`
	PlaceID      string           `json:"place_id,omitempty"`
	Website      string           `json:"website,omitempty"`
	CheckinDate  time.Time        `json:"checkin_date"`
	CheckoutDate time.Time        `json:"checkout_date"`
	Cost         *decimal.Decimal `json:"cost,omitempty"`
	Currency     string           `json:"currency,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Nights returns the number of nights booked (checkout excluded).
func (s AccommodationStay) Nights() int {
	return int(s.CheckoutDate.Sub(s.CheckinDate).Hours() / 24)
}
