package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DayActivity is a single planned activity within a trip day.
// Cost is nil when the activity is free or the cost is unknown; activities
// with a cost and currency contribute to the "activities" budget bucket.
type DayActivity struct {
	ID          uuid.UUID        `json:"id"`
	DayID       uuid.UUID        `json:"day_id"`
	Title       string           `json:"title"`
	Description string           `json:"description,omitempty"`
	StartTime   string           `json:"start_time,omitempty"` // "HH:MM", empty when unscheduled
	EndTime     string           `json:"end_time,omitempty"`
	Cost        *decimal.Decimal `json:"cost,omitempty"`
	Currency    string           `json:"currency,omitempty"`
	OrderIndex  int              `json:"order_index"`
	CreatedAt   time.Time        `json:"created_at"`
}
