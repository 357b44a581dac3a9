package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Simplici0/costquote/internal/pricing"
)

// QuoteStatus is the lifecycle state of a quote.
type QuoteStatus string

const (
	QuoteDraft     QuoteStatus = "draft"
	QuoteFinal     QuoteStatus = "final"
	QuoteCompleted QuoteStatus = "completed"
)

// legacyStatuses maps labels used by older clients onto the canonical ones.
var legacyStatuses = map[string]QuoteStatus{
	"saved": QuoteFinal,
}

// ParseQuoteStatus accepts the canonical labels and the legacy "saved" alias.
func ParseQuoteStatus(raw string) (QuoteStatus, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch QuoteStatus(s) {
	case QuoteDraft, QuoteFinal, QuoteCompleted:
		return QuoteStatus(s), nil
	}
	if st, ok := legacyStatuses[s]; ok {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, raw)
}

// Terminal reports whether no further edits are allowed.
func (s QuoteStatus) Terminal() bool { return s == QuoteCompleted }

// CanTransition reports whether a quote may move from s to next.
func (s QuoteStatus) CanTransition(next QuoteStatus) bool {
	switch s {
	case QuoteDraft, QuoteFinal:
		return next == QuoteDraft || next == QuoteFinal || next == QuoteCompleted
	default:
		return false
	}
}

// Quote is a client-facing document aggregating priced products.
type Quote struct {
	ID         uuid.UUID               `json:"id"`
	Title      string                  `json:"title"`
	ClientName string                  `json:"client_name"`
	Currency   string                  `json:"currency"`
	Status     QuoteStatus             `json:"status"`
	Products   []pricing.PricedProduct `json:"products"`
	Discount   *pricing.Discount       `json:"discount,omitempty"`
	Shipping   *pricing.Shipping       `json:"shipping,omitempty"`
	Tax        *pricing.TaxSetting     `json:"tax,omitempty"`
	Totals     pricing.QuoteTotals     `json:"totals"`
	CreatedAt  time.Time               `json:"created_at"`
	UpdatedAt  time.Time               `json:"updated_at"`
}

// Recalculate recomputes the rolled-up totals from the current membership,
// discount, shipping and tax setting.
func (q *Quote) Recalculate() error {
	totals, err := pricing.ComputeQuoteTotals(q.Products, q.Discount, q.Shipping, q.Tax)
	if err != nil {
		return err
	}
	q.Totals = totals
	return nil
}

// QuoteSummary is a list row.
type QuoteSummary struct {
	ID          uuid.UUID   `json:"id"`
	Title       string      `json:"title"`
	ClientName  string      `json:"client_name"`
	Currency    string      `json:"currency"`
	Status      QuoteStatus `json:"status"`
	TotalAmount float64     `json:"total_amount"`
	CreatedAt   time.Time   `json:"created_at"`
}
