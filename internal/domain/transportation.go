package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransportType enumerates the kinds of transportation events.
type TransportType string

const (
	TransportFlight     TransportType = "flight"
	TransportTrain      TransportType = "train"
	TransportCarService TransportType = "car_service"
	TransportRentalCar  TransportType = "rental_car"
	TransportShuttle    TransportType = "shuttle"
	TransportFerry      TransportType = "ferry"
)

// Valid reports whether t is one of the enumerated transport types.
func (t TransportType) Valid() bool {
	switch t {
	case TransportFlight, TransportTrain, TransportCarService,
		TransportRentalCar, TransportShuttle, TransportFerry:
		return true
	}
	return false
}

// TransportationEvent is one travel segment within a trip. Only flights
// participate in timeline placement; other types are data-only.
// StartDate/EndDate carry day granularity; StartTime/EndTime are separate
// "HH:MM" strings, empty when unknown.
type TransportationEvent struct {
	ID                 uuid.UUID        `json:"id"`
	TripID             uuid.UUID        `json:"trip_id"`
	Type               TransportType    `json:"type"`
	Provider           string           `json:"provider,omitempty"`
	ConfirmationNumber string           `json:"confirmation_number,omitempty"`
	DepartureLocation  string           `json:"departure_location,omitempty"`
	ArrivalLocation    string           `json:"arrival_location,omitempty"`
	StartDate          time.Time        `json:"start_date"`
	StartTime          string           `json:"start_time,omitempty"`
	EndDate            *time.Time       `json:"end_date,omitempty"`
	EndTime            string           `json:"end_time,omitempty"`
	Cost               *decimal.Decimal `json:"cost,omitempty"`
	Currency           string           `json:"currency,omitempty"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}
