package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripDay is one calendar day within a trip's itinerary.
// At most one TripDay exists per (trip, date) — day materialization for an
// accommodation stay upserts on that key and never duplicates a day.
// Date carries day granularity only; the time-of-day component is always
// UTC midnight.
type TripDay struct {
	ID          uuid.UUID `json:"id"`
	TripID      uuid.UUID `json:"trip_id"`
	Date        time.Time `json:"date"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	ImageURL    string    `json:"image_url,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
