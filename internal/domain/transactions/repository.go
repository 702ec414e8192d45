package transactions

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrNotFound is returned when the transaction does not exist or
	// belongs to another user.
	ErrNotFound = errors.New("transaction not found")
	// ErrDuplicate is returned when an identical (user, merchant, amount,
	// date) tuple is already stored.
	ErrDuplicate = errors.New("duplicate transaction")
)

// Repository persists transactions.
type Repository interface {
	Insert(ctx context.Context, t *Transaction) error
	Exists(ctx context.Context, userID, merchant string, amount decimal.Decimal, date string) (bool, error)
	Get(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Transaction, error)
	ListByMonth(ctx context.Context, userID, month string) ([]Transaction, error)
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}
