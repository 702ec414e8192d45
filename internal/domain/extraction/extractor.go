// Package extraction parses bank notification emails into transaction
// candidates using an ordered list of regex rules.
package extraction

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoMatch is returned when no rule yields both a merchant and an amount.
var ErrNoMatch = errors.New("extraction: no transaction found in email")

// Candidate is a transaction extracted from an email, before categorization.
type Candidate struct {
	Merchant string
	Amount   decimal.Decimal
	Date     string // YYYY-MM-DD
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// Extractor applies the rule list to email text.
type Extractor struct {
	now func() time.Time
}

func NewExtractor() *Extractor {
	return &Extractor{now: time.Now}
}

// Extract scans the subject and body for a rupee transaction. Rules are tried
// in order over the combined "subject body" text; a rule only counts when
// both its amount and merchant patterns match and the amount is positive.
func (e *Extractor) Extract(subject, body string) (*Candidate, error) {
	fullText := subject + " " + body

	for _, r := range rules {
		amountMatch := r.amount.FindStringSubmatch(fullText)
		if amountMatch == nil {
			continue
		}
		amount, err := decimal.NewFromString(strings.ReplaceAll(amountMatch[1], ",", ""))
		if err != nil {
			continue
		}

		merchantMatch := r.merchant.FindStringSubmatch(fullText)
		if merchantMatch == nil {
			continue
		}
		merchant := cleanMerchant(merchantMatch[1])

		if merchant != "" && amount.IsPositive() {
			return &Candidate{
				Merchant: merchant,
				Amount:   amount,
				Date:     extractDate(fullText, e.now()),
			}, nil
		}
	}

	return nil, ErrNoMatch
}

func cleanMerchant(s string) string {
	s = whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.Trim(s, ".,;:-")
}
