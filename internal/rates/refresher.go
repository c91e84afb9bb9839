// Package rates keeps the exchange_rates table fresh. A Refresher
// periodically fetches a quote sheet from an external rates API and upserts
// one row per currency converting into the configured display currency.
// Budget aggregation only ever reads the table; this package is its sole
// writer.
package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"

	"github.com/tripcanvas/backend/internal/domain"
)

// RateWriter is the slice of the rate repository the refresher needs.
// Satisfied by repo.RateRepo.
type RateWriter interface {
	Upsert(ctx context.Context, rate domain.ExchangeRate) error
}

// quoteResponse is the wire shape of the rates endpoint: one base currency
// and a map of quoted rates, where each value is the amount of that currency
// one unit of the base buys (the open.er-api.com /v6/latest shape).
type quoteResponse struct {
	BaseCode string                     `json:"base_code"`
	Rates    map[string]decimal.Decimal `json:"rates"`
}

// fetchTimeout bounds one refresh round-trip so a hung rates API cannot
// stall the cron goroutine indefinitely.
const fetchTimeout = 30 * time.Second

// Refresher fetches and stores exchange rates on a cron schedule.
type Refresher struct {
	cron   *cron.Cron
	client *http.Client
	url    string
	base   string
	repo   RateWriter
	logger *slog.Logger
}

// NewRefresher constructs a Refresher that fetches url + "/" + base and
// upserts rates converting each quoted currency into base.
func NewRefresher(url, base string, repo RateWriter, logger *slog.Logger) *Refresher {
	return &Refresher{
		cron:   cron.New(),
		client: &http.Client{Timeout: fetchTimeout},
		url:    url,
		base:   base,
		repo:   repo,
		logger: logger,
	}
}

// Start registers the refresh job under the given cron schedule (any spec
// robfig/cron accepts, e.g. "@every 6h") and runs one refresh immediately so
// a fresh deployment does not wait a full interval for its first rates.
func (r *Refresher) Start(schedule string) error {
	if _, err := r.cron.AddFunc(schedule, r.refresh); err != nil {
		return fmt.Errorf("rates.Refresher.Start: %w", err)
	}

	go r.refresh()

	r.cron.Start()
	r.logger.Info("exchange rate refresher started", "schedule", schedule, "base", r.base)
	return nil
}

// Stop halts the schedule and waits for an in-flight refresh job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
	r.logger.Info("exchange rate refresher stopped")
}

// refresh is the cron entry point. Failures are logged and swallowed: the
// budget layer degrades to its 1:1 fallback until the next round succeeds.
func (r *Refresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	count, err := r.RefreshOnce(ctx)
	if err != nil {
		r.logger.Warn("exchange rate refresh failed", "error", err)
		return
	}
	r.logger.Info("exchange rates refreshed", "count", count, "base", r.base)
}

// RefreshOnce fetches the quote sheet and upserts every usable rate,
// returning how many rates were stored. The endpoint quotes base→currency;
// the stored direction is currency→base, so each quote is inverted before
// writing. Non-positive quotes and the base's self-quote are skipped.
func (r *Refresher) RefreshOnce(ctx context.Context) (int, error) {
	quotes, err := r.fetch(ctx)
	if err != nil {
		return 0, fmt.Errorf("rates.Refresher.RefreshOnce: %w", err)
	}

	one := decimal.NewFromInt(1)
	count := 0
	for currency, quoted := range quotes.Rates {
		if currency == r.base || !quoted.IsPositive() {
			continue
		}

		rate := domain.ExchangeRate{
			FromCurrency: currency,
			ToCurrency:   r.base,
			Rate:         one.Div(quoted),
		}
		if err := r.repo.Upsert(ctx, rate); err != nil {
			return count, fmt.Errorf("rates.Refresher.RefreshOnce: upsert %s: %w", currency, err)
		}
		count++
	}

	return count, nil
}

func (r *Refresher) fetch(ctx context.Context) (quoteResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.url+"/"+r.base, nil)
	if err != nil {
		return quoteResponse{}, err
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return quoteResponse{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return quoteResponse{}, fmt.Errorf("rates endpoint returned %s", resp.Status)
	}

	var quotes quoteResponse
	if err := json.NewDecoder(resp.Body).Decode(&quotes); err != nil {
		return quoteResponse{}, fmt.Errorf("decode rates response: %w", err)
	}
	if len(quotes.Rates) == 0 {
		return quoteResponse{}, fmt.Errorf("rates response carried no rates")
	}

	return quotes, nil
}
