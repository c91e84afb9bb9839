package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DiningReservation is a restaurant booking attached to one trip day.
// Reservations are data-only: they render on the day card and never feed
// timeline grouping or budget aggregation. ReservationTime is a local
// clock string ("HH:MM"), empty when unknown. Rating is the restaurant's
// review score captured at booking time, not user input.
type DiningReservation struct {
	ID                 uuid.UUID        `json:"id"`
	DayID              uuid.UUID        `json:"day_id"`
	RestaurantName     string           `json:"restaurant_name"`
	Address            string           `json:"address,omitempty"`
	PhoneNumber        string           `json:"phone_number,omitempty"`
	Website            string           `json:"website,omitempty"`
	PlaceID            string           `json:"place_id,omitempty"`
	ConfirmationNumber string           `json:"confirmation_number,omitempty"`
	Notes              string           `json:"notes,omitempty"`
	ReservationTime    string           `json:"reservation_time,omitempty"`
	NumberOfPeople     *int             `json:"number_of_people,omitempty"`
	Rating             *float64         `json:"rating,omitempty"`
	Cost               *decimal.Decimal `json:"cost,omitempty"`
	Currency           string           `json:"currency,omitempty"`
	OrderIndex         int              `json:"order_index"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
