package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/splitmint/pkg/db"
)

const upsertBudgetQuery = `
	INSERT INTO budgets (id, user_id, month, income, budget, created_at, updated_at)
	VALUES ($1, $2, $3, $4::numeric, $5::numeric, $6, $6)
	ON CONFLICT (user_id, month) DO UPDATE SET
		income = EXCLUDED.income,
		budget = EXCLUDED.budget,
		updated_at = EXCLUDED.updated_at`

const getBudgetQuery = `
	SELECT id, user_id, month, income::text, budget::text, created_at, updated_at
	FROM budgets
	WHERE user_id = $1 AND month = $2`

type PostgresRepository struct {
	pool db.Querier
}

func NewPostgresRepository(pool db.Querier) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Upsert(ctx context.Context, b *Budget) error {
	_, err := r.pool.Exec(ctx, upsertBudgetQuery,
		b.ID, b.UserID, b.Month, b.Income.StringFixed(2), b.Budget.StringFixed(2), b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting budget: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID, month string) (*Budget, error) {
	var (
		b      Budget
		income string
		limit  string
	)
	err := r.pool.QueryRow(ctx, getBudgetQuery, userID, month).
		Scan(&b.ID, &b.UserID, &b.Month, &income, &limit, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting budget: %w", err)
	}

	if b.Income, err = decimal.NewFromString(income); err != nil {
		return nil, fmt.Errorf("parsing income: %w", err)
	}
	if b.Budget, err = decimal.NewFromString(limit); err != nil {
		return nil, fmt.Errorf("parsing budget: %w", err)
	}
	return &b, nil
}
