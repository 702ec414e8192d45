// Package split calculates and stores expense splits over tracked
// transactions.
package split

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Method is how a transaction amount is divided among participants.
type Method string

const (
	MethodEqual      Method = "equal"
	MethodPercentage Method = "percentage"
	MethodRatio      Method = "ratio"
)

// ParseMethod validates a split method string.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodEqual, MethodPercentage, MethodRatio:
		return Method(s), nil
	}
	return "", fmt.Errorf("invalid split method %q (want equal, percentage or ratio)", s)
}

// Participant is one person in a split. SharePercentage, ShareAmount and
// AmountOwed are filled in by the allocator.
type Participant struct {
	Name            string          `json:"name"`
	PhoneNumber     string          `json:"phone_number,omitempty"`
	SharePercentage decimal.Decimal `json:"share_percentage"`
	ShareRatio      int             `json:"share_ratio"`
	ShareAmount     decimal.Decimal `json:"share_amount"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
	AmountOwed      decimal.Decimal `json:"amount_owed"`
}

// Split is a stored split. Merchant, TotalAmount, Category and Date are
// snapshotted from the transaction at create/update time.
type Split struct {
	ID            uuid.UUID       `json:"id"`
	UserID        string          `json:"user_id"`
	TransactionID uuid.UUID       `json:"transaction_id"`
	Merchant      string          `json:"merchant"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	Method        Method          `json:"split_method"`
	Participants  []Participant   `json:"participants"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
