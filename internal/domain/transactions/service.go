package transactions

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/splitmint/internal/domain/categorization"
	"github.com/FACorreiaa/splitmint/pkg/money"
)

const defaultListLimit = 100

// Service owns transaction lifecycle and the reports derived from it.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// AddInput carries a new transaction, manual or extracted.
type AddInput struct {
	UserID       string
	Merchant     string
	Amount       decimal.Decimal
	Category     string
	Date         string
	EmailSubject string
}

// Add stores a transaction unless the same (merchant, amount, date) tuple
// already exists for the user, in which case it returns ErrDuplicate.
func (s *Service) Add(ctx context.Context, in AddInput) (*Transaction, error) {
	exists, err := s.repo.Exists(ctx, in.UserID, in.Merchant, in.Amount, in.Date)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicate
	}

	t := &Transaction{
		ID:           uuid.New(),
		UserID:       in.UserID,
		Merchant:     in.Merchant,
		Amount:       in.Amount,
		Category:     in.Category,
		Date:         in.Date,
		EmailSubject: in.EmailSubject,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Insert(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("transaction stored",
		slog.String("user_id", t.UserID),
		slog.String("merchant", t.Merchant),
		slog.String("amount", t.Amount.StringFixed(2)),
		slog.String("date", t.Date))
	return t, nil
}

// IsDuplicate reports whether an identical tuple is already stored.
func (s *Service) IsDuplicate(ctx context.Context, userID, merchant string, amount decimal.Decimal, date string) (bool, error) {
	return s.repo.Exists(ctx, userID, merchant, amount, date)
}

// List returns a user's transactions, newest first, with the summed amount.
// month narrows to a YYYY-MM prefix; search keeps only merchants fuzzy-
// matching the query.
func (s *Service) List(ctx context.Context, userID, month, search string) ([]Transaction, decimal.Decimal, error) {
	var (
		txs []Transaction
		err error
	)
	if month != "" {
		txs, err = s.repo.ListByMonth(ctx, userID, month)
	} else {
		txs, err = s.repo.ListByUser(ctx, userID, defaultListLimit)
	}
	if err != nil {
		return nil, decimal.Zero, err
	}

	if search != "" {
		filtered := txs[:0]
		for _, t := range txs {
			if fuzzy.MatchNormalizedFold(search, t.Merchant) {
				filtered = append(filtered, t)
			}
		}
		txs = filtered
	}

	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return txs, total, nil
}

func (s *Service) Get(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	return s.repo.Get(ctx, userID, id)
}

func (s *Service) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	return s.repo.Delete(ctx, userID, id)
}

// MonthlyTotal sums a user's spending for the month.
func (s *Service) MonthlyTotal(ctx context.Context, userID, month string) (decimal.Decimal, error) {
	txs, err := s.repo.ListByMonth(ctx, userID, month)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, t := range txs {
		total = total.Add(t.Amount)
	}
	return total, nil
}

// unknownCategory buckets transactions whose stored category is no longer in
// the fixed set.
const unknownCategory = "Unknown"

// SpendingByCategory groups a month's spending by category with one-decimal
// percentages of the total.
func (s *Service) SpendingByCategory(ctx context.Context, userID, month string) (*Breakdown, error) {
	txs, err := s.repo.ListByMonth(ctx, userID, month)
	if err != nil {
		return nil, fmt.Errorf("loading monthly transactions: %w", err)
	}

	known := make(map[string]bool, len(categorization.Categories))
	spending := make(map[string]decimal.Decimal, len(categorization.Categories)+1)
	order := make([]string, 0, len(categorization.Categories)+1)
	for _, c := range categorization.Categories {
		known[string(c)] = true
		spending[string(c)] = decimal.Zero
		order = append(order, string(c))
	}
	spending[unknownCategory] = decimal.Zero
	order = append(order, unknownCategory)

	total := decimal.Zero
	for _, t := range txs {
		category := t.Category
		if !known[category] {
			category = unknownCategory
		}
		spending[category] = spending[category].Add(t.Amount)
		total = total.Add(t.Amount)
	}

	breakdown := &Breakdown{
		Categories: []CategoryAmount{},
		Total:      total.Round(2),
		Month:      month,
	}
	for _, category := range order {
		amount := spending[category]
		if !amount.IsPositive() {
			continue
		}
		pct := decimal.Zero
		if total.IsPositive() {
			pct = amount.Div(total).Mul(decimal.NewFromInt(100)).Round(1)
		}
		breakdown.Categories = append(breakdown.Categories, CategoryAmount{
			Category:      category,
			Amount:        amount.Round(2),
			AmountDisplay: money.FormatINR(amount),
			Percentage:    pct,
		})
	}

	sort.SliceStable(breakdown.Categories, func(i, j int) bool {
		return breakdown.Categories[i].Amount.GreaterThan(breakdown.Categories[j].Amount)
	})

	return breakdown, nil
}
