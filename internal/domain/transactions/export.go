package transactions

import (
	"context"
	"fmt"

	"github.com/gocarina/gocsv"
)

type exportRow struct {
	Date     string `csv:"date"`
	Merchant string `csv:"merchant"`
	Category string `csv:"category"`
	Amount   string `csv:"amount"`
}

// ExportCSV renders a user's transactions (optionally narrowed to a month)
// as CSV, newest first.
func (s *Service) ExportCSV(ctx context.Context, userID, month string) ([]byte, error) {
	txs, _, err := s.List(ctx, userID, month, "")
	if err != nil {
		return nil, err
	}

	rows := make([]exportRow, len(txs))
	for i, t := range txs {
		rows[i] = exportRow{
			Date:     t.Date,
			Merchant: t.Merchant,
			Category: t.Category,
			Amount:   t.Amount.StringFixed(2),
		}
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("encoding csv: %w", err)
	}
	return out, nil
}
