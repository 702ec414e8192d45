package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/splitmint/internal/domain/categorization"
	"github.com/FACorreiaa/splitmint/internal/domain/extraction"
	"github.com/FACorreiaa/splitmint/internal/domain/transactions"
	"github.com/FACorreiaa/splitmint/internal/mail"
)

type fakeFetcher struct {
	emails []mail.Email
	err    error
}

func (f *fakeFetcher) FetchCandidates(ctx context.Context, maxResults, lookbackDays int) ([]mail.Email, error) {
	return f.emails, f.err
}

type memoryTxRepo struct {
	stored []*transactions.Transaction
	failOn string // merchant whose insert fails
}

func (m *memoryTxRepo) Insert(ctx context.Context, t *transactions.Transaction) error {
	if t.Merchant == m.failOn {
		return errors.New("storage down")
	}
	m.stored = append(m.stored, t)
	return nil
}

func (m *memoryTxRepo) Exists(ctx context.Context, userID, merchant string, amount decimal.Decimal, date string) (bool, error) {
	for _, t := range m.stored {
		if t.UserID == userID && t.Merchant == merchant && t.Amount.Equal(amount) && t.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryTxRepo) Get(ctx context.Context, userID string, id uuid.UUID) (*transactions.Transaction, error) {
	return nil, transactions.ErrNotFound
}

func (m *memoryTxRepo) ListByUser(ctx context.Context, userID string, limit int) ([]transactions.Transaction, error) {
	return nil, nil
}

func (m *memoryTxRepo) ListByMonth(ctx context.Context, userID, month string) ([]transactions.Transaction, error) {
	return nil, nil
}

func (m *memoryTxRepo) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return transactions.ErrNotFound
}

func newTestPipeline(fetcher mail.Fetcher, repo transactions.Repository) *Pipeline {
	logger := slog.Default()
	return New(
		fetcher,
		extraction.NewExtractor(),
		categorization.NewService(nil, time.Second, logger),
		transactions.NewService(repo, logger),
		Options{MaxEmails: 3, LookbackDays: 30},
		nil,
		logger,
	)
}

func TestRunIngestsAndCategorizes(t *testing.T) {
	repo := &memoryTxRepo{}
	p := newTestPipeline(&fakeFetcher{emails: []mail.Email{
		{ID: "1", Subject: "Payment Alert", Body: "Rs. 450 spent at Domino's Pizza on 15 Oct 2025"},
		{ID: "2", Subject: "Transaction Alert", Body: "₹1299 debited to Amazon on 18/10/2025"},
		{ID: "3", Subject: "Newsletter", Body: "10 things to do this weekend"},
	}}, repo)

	got, err := p.Run(context.Background(), "u1")
	require.NoError(t, err)

	assert.Equal(t, 3, got.Processed)
	assert.Equal(t, 2, got.Parsed)
	assert.Equal(t, 0, got.Duplicates)
	assert.Equal(t, 2, got.Inserted)
	assert.Equal(t, 1, got.Failed)

	require.Len(t, repo.stored, 2)
	assert.Equal(t, "Domino's Pizza", repo.stored[0].Merchant)
	assert.Equal(t, "Food and Drinks", repo.stored[0].Category)
	assert.Equal(t, "2025-10-15", repo.stored[0].Date)
	assert.Equal(t, "Payment Alert", repo.stored[0].EmailSubject)
	assert.Equal(t, "Shopping", repo.stored[1].Category)
}

func TestRunSkipsDuplicates(t *testing.T) {
	repo := &memoryTxRepo{}
	emails := []mail.Email{
		{ID: "1", Subject: "Payment Alert", Body: "Rs. 450 spent at Domino's Pizza on 15 Oct 2025"},
	}

	p := newTestPipeline(&fakeFetcher{emails: emails}, repo)
	ctx := context.Background()

	_, err := p.Run(ctx, "u1")
	require.NoError(t, err)

	got, err := p.Run(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Parsed)
	assert.Equal(t, 1, got.Duplicates)
	assert.Equal(t, 0, got.Inserted)
	assert.Len(t, repo.stored, 1)
}

func TestRunAbortsOnMailError(t *testing.T) {
	p := newTestPipeline(&fakeFetcher{err: errors.New("gmail unavailable")}, &memoryTxRepo{})

	got, err := p.Run(context.Background(), "u1")
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "gmail unavailable")
}

func TestRunAbortsOnStorageError(t *testing.T) {
	repo := &memoryTxRepo{failOn: "Amazon"}
	p := newTestPipeline(&fakeFetcher{emails: []mail.Email{
		{ID: "1", Subject: "Transaction Alert", Body: "₹1299 debited to Amazon on 18/10/2025"},
	}}, repo)

	got, err := p.Run(context.Background(), "u1")
	assert.Nil(t, got)
	assert.ErrorContains(t, err, "storage down")
}

func TestRunEmptyInbox(t *testing.T) {
	p := newTestPipeline(&fakeFetcher{}, &memoryTxRepo{})

	got, err := p.Run(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, &Summary{}, got)
}
