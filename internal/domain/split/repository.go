package split

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no split exists for the transaction.
	ErrNotFound = errors.New("split not found")
	// ErrTransactionNotFound is returned when the underlying transaction
	// does not exist or belongs to another user.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Repository persists splits, one per (user, transaction).
type Repository interface {
	Upsert(ctx context.Context, s *Split) error
	Get(ctx context.Context, userID string, transactionID uuid.UUID) (*Split, error)
	Delete(ctx context.Context, userID string, transactionID uuid.UUID) error
	ListByUser(ctx context.Context, userID string) ([]Split, error)
}
