package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a standalone cost line attached to a trip.
// Type is the stored expense category string ("accommodation",
// "transportation", "activities", "other"); unrecognized values are kept
// as-is but contribute to no budget bucket.
type Expense struct {
	ID        uuid.UUID        `json:"id"`
	TripID    uuid.UUID        `json:"trip_id"`
	Title     string           `json:"title"`
	Type      string           `json:"type"`
	Cost      *decimal.Decimal `json:"cost,omitempty"`
	Currency  string           `json:"currency,omitempty"`
	Paid      bool             `json:"paid"`
	Date      *time.Time       `json:"date,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}
