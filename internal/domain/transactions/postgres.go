package transactions

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/splitmint/pkg/db"
)

const insertTransactionQuery = `
	INSERT INTO transactions (id, user_id, merchant, amount, category, date, email_subject, created_at)
	VALUES ($1, $2, $3, $4::numeric, $5, $6, $7, $8)`

const existsTransactionQuery = `
	SELECT EXISTS (
		SELECT 1 FROM transactions
		WHERE user_id = $1 AND merchant = $2 AND amount = $3::numeric AND date = $4
	)`

const selectTransactionColumns = `
	SELECT id, user_id, merchant, amount::text, category, date,
		COALESCE(email_subject, ''), created_at
	FROM transactions`

const getTransactionQuery = selectTransactionColumns + ` WHERE user_id = $1 AND id = $2`

const listTransactionsQuery = selectTransactionColumns + ` WHERE user_id = $1 ORDER BY date DESC LIMIT $2`

const listTransactionsByMonthQuery = selectTransactionColumns + ` WHERE user_id = $1 AND date LIKE $2 ORDER BY date DESC`

const deleteTransactionQuery = `DELETE FROM transactions WHERE user_id = $1 AND id = $2`

type PostgresRepository struct {
	pool db.Querier
}

func NewPostgresRepository(pool db.Querier) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Insert(ctx context.Context, t *Transaction) error {
	var subject any
	if t.EmailSubject != "" {
		subject = t.EmailSubject
	}
	_, err := r.pool.Exec(ctx, insertTransactionQuery,
		t.ID, t.UserID, t.Merchant, t.Amount.StringFixed(2), t.Category, t.Date, subject, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting transaction: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Exists(ctx context.Context, userID, merchant string, amount decimal.Decimal, date string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, existsTransactionQuery, userID, merchant, amount.StringFixed(2), date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking duplicate transaction: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string, id uuid.UUID) (*Transaction, error) {
	row := r.pool.QueryRow(ctx, getTransactionQuery, userID, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting transaction: %w", err)
	}
	return t, nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string, limit int) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, listTransactionsQuery, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *PostgresRepository) ListByMonth(ctx context.Context, userID, month string) ([]Transaction, error) {
	rows, err := r.pool.Query(ctx, listTransactionsByMonthQuery, userID, month+"%")
	if err != nil {
		return nil, fmt.Errorf("listing monthly transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteTransactionQuery, userID, id)
	if err != nil {
		return fmt.Errorf("deleting transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func collectTransactions(rows pgx.Rows) ([]Transaction, error) {
	defer rows.Close()

	var out []Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transactions: %w", err)
	}
	return out, nil
}

func scanTransaction(row pgx.Row) (*Transaction, error) {
	var (
		t      Transaction
		amount string
	)
	err := row.Scan(&t.ID, &t.UserID, &t.Merchant, &amount, &t.Category, &t.Date, &t.EmailSubject, &t.CreatedAt)
	if err != nil {
		return nil, err
	}
	t.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("parsing amount: %w", err)
	}
	return &t, nil
}
