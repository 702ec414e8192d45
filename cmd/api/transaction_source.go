package main

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/FACorreiaa/splitmint/internal/domain/split"
	"github.com/FACorreiaa/splitmint/internal/domain/transactions"
)

// transactionSource adapts transactions.Service to split's TransactionSource
// interface.
type transactionSource struct {
	txs *transactions.Service
}

func newTransactionSource(txs *transactions.Service) split.TransactionSource {
	return &transactionSource{txs: txs}
}

func (a *transactionSource) Lookup(ctx context.Context, userID string, transactionID uuid.UUID) (*split.TransactionInfo, error) {
	t, err := a.txs.Get(ctx, userID, transactionID)
	if errors.Is(err, transactions.ErrNotFound) {
		return nil, split.ErrTransactionNotFound
	}
	if err != nil {
		return nil, err
	}

	return &split.TransactionInfo{
		Merchant: t.Merchant,
		Amount:   t.Amount,
		Category: t.Category,
		Date:     t.Date,
	}, nil
}
