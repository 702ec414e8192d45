package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var demoTransactions = []struct {
	merchant string
	amount   int64
	category string
	day      string
}{
	{"Domino's Pizza", 450, "Food and Drinks", "05"},
	{"Amazon", 1299, "Shopping", "08"},
	{"Swiggy", 320, "Food and Drinks", "10"},
	{"Uber", 180, "Travel and Transport", "12"},
	{"Netflix", 649, "Entertainment", "15"},
	{"Big Bazaar", 2500, "Shopping", "18"},
	{"Zomato", 280, "Food and Drinks", "20"},
	{"Apollo Pharmacy", 650, "Healthcare", "22"},
	{"Flipkart", 899, "Shopping", "25"},
	{"Starbucks", 220, "Food and Drinks", "28"},
}

// LoadDemoData seeds ten sample transactions into the given month. Rows that
// already exist are skipped; the count of newly inserted rows is returned.
func (s *Service) LoadDemoData(ctx context.Context, userID, month string) (int, error) {
	inserted := 0
	for _, d := range demoTransactions {
		_, err := s.Add(ctx, AddInput{
			UserID:       userID,
			Merchant:     d.merchant,
			Amount:       decimal.NewFromInt(d.amount),
			Category:     d.category,
			Date:         fmt.Sprintf("%s-%s", month, d.day),
			EmailSubject: fmt.Sprintf("Payment to %s", d.merchant),
		})
		if errors.Is(err, ErrDuplicate) {
			continue
		}
		if err != nil {
			return inserted, err
		}
		inserted++
	}
	return inserted, nil
}
