package split

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/splitmint/pkg/db"
)

const upsertSplitQuery = `
	INSERT INTO splits (id, user_id, transaction_id, merchant, total_amount,
		category, date, split_method, participants, notes, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5::numeric, $6, $7, $8, $9, $10, $11, $11)
	ON CONFLICT (user_id, transaction_id) DO UPDATE SET
		merchant = EXCLUDED.merchant,
		total_amount = EXCLUDED.total_amount,
		category = EXCLUDED.category,
		date = EXCLUDED.date,
		split_method = EXCLUDED.split_method,
		participants = EXCLUDED.participants,
		notes = EXCLUDED.notes,
		updated_at = EXCLUDED.updated_at`

const selectSplitColumns = `
	SELECT id, user_id, transaction_id, merchant, total_amount::text,
		category, date, split_method, participants, notes, created_at, updated_at
	FROM splits`

const getSplitQuery = selectSplitColumns + ` WHERE user_id = $1 AND transaction_id = $2`

const listSplitsQuery = selectSplitColumns + ` WHERE user_id = $1 ORDER BY date DESC`

const deleteSplitQuery = `DELETE FROM splits WHERE user_id = $1 AND transaction_id = $2`

// PostgresRepository stores splits in Postgres with the participant list as
// JSONB.
type PostgresRepository struct {
	pool db.Querier
}

func NewPostgresRepository(pool db.Querier) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Upsert(ctx context.Context, s *Split) error {
	participants, err := json.Marshal(s.Participants)
	if err != nil {
		return fmt.Errorf("encoding participants: %w", err)
	}

	_, err = r.pool.Exec(ctx, upsertSplitQuery,
		s.ID, s.UserID, s.TransactionID, s.Merchant, s.TotalAmount.StringFixed(2),
		s.Category, s.Date, string(s.Method), participants, s.Notes, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upserting split: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Get(ctx context.Context, userID string, transactionID uuid.UUID) (*Split, error) {
	row := r.pool.QueryRow(ctx, getSplitQuery, userID, transactionID)
	s, err := scanSplit(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("getting split: %w", err)
	}
	return s, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, userID string, transactionID uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, deleteSplitQuery, userID, transactionID)
	if err != nil {
		return fmt.Errorf("deleting split: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]Split, error) {
	rows, err := r.pool.Query(ctx, listSplitsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("listing splits: %w", err)
	}
	defer rows.Close()

	var splits []Split
	for rows.Next() {
		s, err := scanSplit(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning split: %w", err)
		}
		splits = append(splits, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating splits: %w", err)
	}
	return splits, nil
}

func scanSplit(row pgx.Row) (*Split, error) {
	var (
		s            Split
		totalAmount  string
		method       string
		participants []byte
	)
	err := row.Scan(&s.ID, &s.UserID, &s.TransactionID, &s.Merchant, &totalAmount,
		&s.Category, &s.Date, &method, &participants, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	s.TotalAmount, err = decimal.NewFromString(totalAmount)
	if err != nil {
		return nil, fmt.Errorf("parsing total amount: %w", err)
	}
	s.Method = Method(method)
	if err := json.Unmarshal(participants, &s.Participants); err != nil {
		return nil, fmt.Errorf("decoding participants: %w", err)
	}
	return &s, nil
}
