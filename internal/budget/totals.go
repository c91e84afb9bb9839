// Package budget computes per-category spending totals for a trip in a
// user-selected display currency.
//
// Aggregation is a pure fold over currently-loaded expenses, activities, and
// the latest exchange-rate snapshot. It never fetches anything itself;
// callers re-run it whenever the source records, the selected currency, or
// the rate snapshot change.
package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tripcanvas/backend/internal/domain"
)

// Category is one of the fixed budget buckets.
type Category string

const (
	CategoryAccommodation  Category = "accommodation"
	CategoryTransportation Category = "transportation"
	CategoryActivities     Category = "activities"
	CategoryOther          Category = "other"
)

// Categories lists every budget bucket in display order.
var Categories = []Category{
	CategoryAccommodation,
	CategoryTransportation,
	CategoryActivities,
	CategoryOther,
}

// Totals holds per-category sums and the grand total, all expressed in
// Currency.
type Totals struct {
	Currency       string          `json:"currency"`
	Accommodation  decimal.Decimal `json:"accommodation"`
	Transportation decimal.Decimal `json:"transportation"`
	Activities     decimal.Decimal `json:"activities"`
	Other          decimal.Decimal `json:"other"`
	Total          decimal.Decimal `json:"total"`
}

// RateTable is the most recently fetched exchange-rate snapshot for one
// display currency. LastUpdated is the zero time when no rates have been
// fetched yet.
type RateTable struct {
	Display     string
	LastUpdated time.Time

	rates map[string]decimal.Decimal
}

// NewRateTable builds a RateTable from fetched rates. Rates whose target
// currency is not the display currency are ignored. LastUpdated is the
// newest timestamp among the kept rates.
func NewRateTable(display string, rates []domain.ExchangeRate) RateTable {
	t := RateTable{Display: display, rates: make(map[string]decimal.Decimal)}
	for _, r := range rates {
		if r.ToCurrency != display {
			continue
		}
		t.rates[r.FromCurrency] = r.Rate
		if r.LastUpdated.After(t.LastUpdated) {
			t.LastUpdated = r.LastUpdated
		}
	}
	return t
}

// Convert converts amount from the given currency into the display currency.
// Amounts already in the display currency pass through unchanged. When no
// rate is known for the source currency the amount is used as-is — a 1:1
// fallback, degraded but never an error.
func (t RateTable) Convert(amount decimal.Decimal, from string) decimal.Decimal {
	if from == t.Display {
		return amount
	}
	rate, ok := t.rates[from]
	if !ok {
		return amount
	}
	return amount.Mul(rate)
}

// Aggregate folds trip expenses and day activities into per-category totals
// in the table's display currency.
//
// An expense lands in the bucket named by its stored type; expenses with an
// unrecognized or absent type contribute to no bucket at all — they are not
// coerced into "other". Activity costs always land in the activities bucket.
// Records missing a cost or a currency are skipped.
func Aggregate(expenses []domain.Expense, activities []domain.DayActivity, rates RateTable) Totals {
	totals := Totals{Currency: rates.Display}

	for _, e := range expenses {
		if e.Cost == nil || e.Currency == "" {
			continue
		}
		amount := rates.Convert(*e.Cost, e.Currency)
		switch Category(e.Type) {
		case CategoryAccommodation:
			totals.Accommodation = totals.Accommodation.Add(amount)
		case CategoryTransportation:
			totals.Transportation = totals.Transportation.Add(amount)
		case CategoryActivities:
			totals.Activities = totals.Activities.Add(amount)
		case CategoryOther:
			totals.Other = totals.Other.Add(amount)
		}
	}

	for _, a := range activities {
		if a.Cost == nil || a.Currency == "" {
			continue
		}
		totals.Activities = totals.Activities.Add(rates.Convert(*a.Cost, a.Currency))
	}

	totals.Total = totals.Accommodation.
		Add(totals.Transportation).
		Add(totals.Activities).
		Add(totals.Other)
	return totals
}
