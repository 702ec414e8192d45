// Package transactions stores tracked transactions and serves the reporting
// queries built on them.
package transactions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is one tracked spend, extracted from an email or added by hand.
type Transaction struct {
	ID           uuid.UUID       `json:"id"`
	UserID       string          `json:"user_id"`
	Merchant     string          `json:"merchant"`
	Amount       decimal.Decimal `json:"amount"`
	Category     string          `json:"category"`
	Date         string          `json:"date"` // YYYY-MM-DD
	EmailSubject string          `json:"email_subject,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}

// CategoryAmount is one row of the spending-by-category breakdown.
type CategoryAmount struct {
	Category      string          `json:"category"`
	Amount        decimal.Decimal `json:"amount"`
	AmountDisplay string          `json:"amount_display"`
	Percentage    decimal.Decimal `json:"percentage"`
}

// Breakdown is a month's spending grouped by category, sorted by amount
// descending, zero categories omitted.
type Breakdown struct {
	Categories []CategoryAmount `json:"breakdown"`
	Total      decimal.Decimal  `json:"total"`
	Month      string           `json:"month"`
}
