package transactions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresRepository(mock), mock
}

func TestPostgresInsert(t *testing.T) {
	repo, mock := newMockRepo(t)

	tx := &Transaction{
		ID:        uuid.New(),
		UserID:    "u1",
		Merchant:  "Swiggy",
		Amount:    decimal.RequireFromString("320"),
		Category:  "Food and Drinks",
		Date:      "2025-10-10",
		CreatedAt: time.Now().UTC(),
	}

	mock.ExpectExec("INSERT INTO transactions").
		WithArgs(tx.ID, "u1", "Swiggy", "320.00", "Food and Drinks", "2025-10-10", nil, tx.CreatedAt).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err := repo.Insert(context.Background(), tx)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresExists(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("u1", "Swiggy", "320.00", "2025-10-10").
		WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.Exists(context.Background(), "u1", "Swiggy", decimal.RequireFromString("320"), "2025-10-10")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, user_id, merchant").
		WithArgs("u1", id).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "u1", id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListByMonth(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := pgxmock.NewRows([]string{"id", "user_id", "merchant", "amount", "category", "date", "email_subject", "created_at"}).
		AddRow(uuid.New(), "u1", "Uber", "180.00", "Travel and Transport", "2025-10-12", "", now).
		AddRow(uuid.New(), "u1", "Swiggy", "320.00", "Food and Drinks", "2025-10-10", "Payment Alert", now)

	mock.ExpectQuery("SELECT id, user_id, merchant").
		WithArgs("u1", "2025-10%").
		WillReturnRows(rows)

	got, err := repo.ListByMonth(context.Background(), "u1", "2025-10")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Uber", got[0].Merchant)
	assert.Equal(t, "180.00", got[0].Amount.StringFixed(2))
	assert.Equal(t, "Payment Alert", got[1].EmailSubject)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresDeleteNotOwned(t *testing.T) {
	repo, mock := newMockRepo(t)
	id := uuid.New()

	mock.ExpectExec("DELETE FROM transactions").
		WithArgs("u1", id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), "u1", id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
