package split

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionInfo is the data a split snapshots from its transaction.
type TransactionInfo struct {
	Merchant string
	Amount   decimal.Decimal
	Category string
	Date     string
}

// TransactionSource resolves a user's transaction for snapshotting. It must
// return ErrTransactionNotFound when the transaction is missing or owned by
// someone else.
type TransactionSource interface {
	Lookup(ctx context.Context, userID string, transactionID uuid.UUID) (*TransactionInfo, error)
}

// Service owns split lifecycle: allocation, snapshotting and persistence.
type Service struct {
	repo   Repository
	txs    TransactionSource
	logger *slog.Logger
}

func NewService(repo Repository, txs TransactionSource, logger *slog.Logger) *Service {
	return &Service{repo: repo, txs: txs, logger: logger}
}

// CreateInput carries a create-or-update split request.
type CreateInput struct {
	UserID        string
	TransactionID uuid.UUID
	Participants  []Participant
	Method        Method
	Notes         string
}

// CreateOrUpdate allocates shares against the transaction's amount and
// upserts the split. A second call for the same transaction replaces the
// previous split and refreshes the snapshot.
func (s *Service) CreateOrUpdate(ctx context.Context, in CreateInput) (*Split, error) {
	info, err := s.txs.Lookup(ctx, in.UserID, in.TransactionID)
	if err != nil {
		return nil, err
	}

	participants, err := Allocate(info.Amount, in.Participants, in.Method)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	sp := &Split{
		ID:            uuid.New(),
		UserID:        in.UserID,
		TransactionID: in.TransactionID,
		Merchant:      info.Merchant,
		TotalAmount:   info.Amount,
		Category:      info.Category,
		Date:          info.Date,
		Method:        in.Method,
		Participants:  participants,
		Notes:         in.Notes,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Upsert(ctx, sp); err != nil {
		return nil, fmt.Errorf("saving split: %w", err)
	}

	s.logger.Info("split saved",
		slog.String("user_id", in.UserID),
		slog.String("transaction_id", in.TransactionID.String()),
		slog.String("method", string(in.Method)),
		slog.Int("participants", len(participants)))

	return sp, nil
}

func (s *Service) Get(ctx context.Context, userID string, transactionID uuid.UUID) (*Split, error) {
	return s.repo.Get(ctx, userID, transactionID)
}

func (s *Service) Delete(ctx context.Context, userID string, transactionID uuid.UUID) error {
	return s.repo.Delete(ctx, userID, transactionID)
}

func (s *Service) ListByUser(ctx context.Context, userID string) ([]Split, error) {
	return s.repo.ListByUser(ctx, userID)
}
