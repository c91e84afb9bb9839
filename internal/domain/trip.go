// Package domain contains the core data types for the trip planner backend.
// This package has zero external dependencies beyond uuid and decimal and is
// imported by every other internal package (repo, service, handler, timeline).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Trip is the top-level aggregate; days, stays, transportation events, and
// expenses all belong to a trip.
type Trip struct {
	ID            uuid.UUID  `json:"id"`
	Destination   string     `json:"destination"`
	ArrivalDate   *time.Time `json:"arrival_date,omitempty"`   // nil when dates are not yet chosen
	DepartureDate *time.Time `json:"departure_date,omitempty"` // inclusive last day of the trip
	CoverImageURL string     `json:"cover_image_url,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}
