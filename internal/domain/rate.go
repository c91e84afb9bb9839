package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate is the most recently fetched conversion rate from one
// currency to another. Rates are refreshed out of band; LastUpdated is
// surfaced to users so stale rates are visible.
type ExchangeRate struct {
	FromCurrency string          `json:"from_currency"`
	ToCurrency   string          `json:"to_currency"`
	Rate         decimal.Decimal `json:"rate"`
	LastUpdated  time.Time       `json:"last_updated"`
}
