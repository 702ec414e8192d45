// Package budget stores per-month income and spending limits.
package budget

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrNotFound is returned when no budget is stored for the month.
var ErrNotFound = errors.New("budget not found")

// Budget is a user's plan for one month.
type Budget struct {
	ID        uuid.UUID       `json:"id"`
	UserID    string          `json:"user_id"`
	Month     string          `json:"month"` // YYYY-MM
	Income    decimal.Decimal `json:"income"`
	Budget    decimal.Decimal `json:"budget"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Repository persists budgets, one per (user, month).
type Repository interface {
	Upsert(ctx context.Context, b *Budget) error
	Get(ctx context.Context, userID, month string) (*Budget, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Upsert stores or replaces the budget for the month.
func (s *Service) Upsert(ctx context.Context, userID, month string, income, limit decimal.Decimal) (*Budget, error) {
	now := time.Now().UTC()
	b := &Budget{
		ID:        uuid.New(),
		UserID:    userID,
		Month:     month,
		Income:    income,
		Budget:    limit,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Upsert(ctx, b); err != nil {
		return nil, err
	}
	s.logger.Info("budget saved",
		slog.String("user_id", userID),
		slog.String("month", month),
		slog.String("budget", limit.StringFixed(2)))
	return b, nil
}

func (s *Service) Get(ctx context.Context, userID, month string) (*Budget, error) {
	return s.repo.Get(ctx, userID, month)
}
