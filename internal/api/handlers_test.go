package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/splitmint/internal/domain/budget"
	"github.com/FACorreiaa/splitmint/internal/domain/categorization"
	"github.com/FACorreiaa/splitmint/internal/domain/extraction"
	"github.com/FACorreiaa/splitmint/internal/domain/split"
	"github.com/FACorreiaa/splitmint/internal/domain/transactions"
	"github.com/FACorreiaa/splitmint/internal/mail"
	"github.com/FACorreiaa/splitmint/internal/pipeline"
)

type memoryTxRepo struct {
	txs []transactions.Transaction
}

func (r *memoryTxRepo) Insert(_ context.Context, t *transactions.Transaction) error {
	r.txs = append(r.txs, *t)
	return nil
}

func (r *memoryTxRepo) Exists(_ context.Context, userID, merchant string, amount decimal.Decimal, date string) (bool, error) {
	for _, t := range r.txs {
		if t.UserID == userID && t.Merchant == merchant && t.Amount.Equal(amount) && t.Date == date {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryTxRepo) Get(_ context.Context, userID string, id uuid.UUID) (*transactions.Transaction, error) {
	for _, t := range r.txs {
		if t.UserID == userID && t.ID == id {
			tx := t
			return &tx, nil
		}
	}
	return nil, transactions.ErrNotFound
}

func (r *memoryTxRepo) ListByUser(_ context.Context, userID string, limit int) ([]transactions.Transaction, error) {
	var out []transactions.Transaction
	for _, t := range r.txs {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memoryTxRepo) ListByMonth(_ context.Context, userID, month string) ([]transactions.Transaction, error) {
	var out []transactions.Transaction
	for _, t := range r.txs {
		if t.UserID == userID && strings.HasPrefix(t.Date, month) {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *memoryTxRepo) Delete(_ context.Context, userID string, id uuid.UUID) error {
	for i, t := range r.txs {
		if t.UserID == userID && t.ID == id {
			r.txs = append(r.txs[:i], r.txs[i+1:]...)
			return nil
		}
	}
	return transactions.ErrNotFound
}

type memoryBudgetRepo struct {
	budgets map[string]budget.Budget
}

func budgetKey(userID, month string) string { return userID + "|" + month }

func (r *memoryBudgetRepo) Upsert(_ context.Context, b *budget.Budget) error {
	if r.budgets == nil {
		r.budgets = map[string]budget.Budget{}
	}
	r.budgets[budgetKey(b.UserID, b.Month)] = *b
	return nil
}

func (r *memoryBudgetRepo) Get(_ context.Context, userID, month string) (*budget.Budget, error) {
	b, ok := r.budgets[budgetKey(userID, month)]
	if !ok {
		return nil, budget.ErrNotFound
	}
	return &b, nil
}

type memorySplitRepo struct {
	splits map[string]split.Split
}

func splitKey(userID string, txID uuid.UUID) string { return userID + "|" + txID.String() }

func (r *memorySplitRepo) Upsert(_ context.Context, s *split.Split) error {
	if r.splits == nil {
		r.splits = map[string]split.Split{}
	}
	r.splits[splitKey(s.UserID, s.TransactionID)] = *s
	return nil
}

func (r *memorySplitRepo) Get(_ context.Context, userID string, txID uuid.UUID) (*split.Split, error) {
	s, ok := r.splits[splitKey(userID, txID)]
	if !ok {
		return nil, split.ErrNotFound
	}
	return &s, nil
}

func (r *memorySplitRepo) Delete(_ context.Context, userID string, txID uuid.UUID) error {
	if _, ok := r.splits[splitKey(userID, txID)]; !ok {
		return split.ErrNotFound
	}
	delete(r.splits, splitKey(userID, txID))
	return nil
}

func (r *memorySplitRepo) ListByUser(_ context.Context, userID string) ([]split.Split, error) {
	var out []split.Split
	for _, s := range r.splits {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

type fakeFetcher struct {
	emails []mail.Email
}

func (f fakeFetcher) FetchCandidates(context.Context, int, int) ([]mail.Email, error) {
	return f.emails, nil
}

type txSourceAdapter struct {
	txs *transactions.Service
}

func (a txSourceAdapter) Lookup(ctx context.Context, userID string, txID uuid.UUID) (*split.TransactionInfo, error) {
	t, err := a.txs.Get(ctx, userID, txID)
	if err != nil {
		return nil, split.ErrTransactionNotFound
	}
	return &split.TransactionInfo{
		Merchant: t.Merchant,
		Amount:   t.Amount,
		Category: t.Category,
		Date:     t.Date,
	}, nil
}

type testServer struct {
	handler http.Handler
	txs     *transactions.Service
}

func newTestServer(t *testing.T, emails []mail.Email) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	txs := transactions.NewService(&memoryTxRepo{}, logger)
	budgets := budget.NewService(&memoryBudgetRepo{}, logger)
	splits := split.NewService(&memorySplitRepo{}, txSourceAdapter{txs: txs}, logger)

	categorizer := categorization.NewService(nil, time.Second, logger)
	p := pipeline.New(fakeFetcher{emails: emails}, extraction.NewExtractor(), categorizer,
		txs, pipeline.Options{MaxEmails: 10, LookbackDays: 30}, nil, logger)

	h := NewHandlers(p, txs, budgets, splits, "test", false, nil, logger)
	return &testServer{
		handler: NewRouter(h, nil, nil, logger),
		txs:     txs,
	}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeResponse(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func addTransaction(t *testing.T, s *testServer, userID, merchant, amount, category, date string) uuid.UUID {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/api/add-transaction", map[string]any{
		"user_id":  userID,
		"merchant": merchant,
		"amount":   amount,
		"category": category,
		"date":     date,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeResponse(t, rec)
	id, err := uuid.Parse(resp.Data.(map[string]any)["transaction_id"].(string))
	require.NoError(t, err)
	return id
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, false, body["auto_monitor_enabled"])
	assert.Equal(t, false, body["monitor_active"])
}

func TestFetchTransactions(t *testing.T) {
	s := newTestServer(t, []mail.Email{
		{ID: "1", Subject: "Transaction Alert", Body: "You spent Rs. 450 at Domino's Pizza on 15-10-2025"},
		{ID: "2", Subject: "Weekly digest", Body: "Here is what you missed this week"},
	})

	rec := s.do(t, http.MethodPost, "/api/fetch-transactions", map[string]any{"user_id": "u1"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Successfully processed 1 new transactions", resp.Message)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)

	data := resp.Data.(map[string]any)
	assert.Equal(t, float64(2), data["processed"])
	assert.Equal(t, float64(1), data["inserted"])
	assert.Equal(t, float64(1), data["failed"])
}

func TestFetchTransactionsRequiresUserID(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/fetch-transactions", map[string]any{})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestListTransactions(t *testing.T) {
	s := newTestServer(t, nil)
	addTransaction(t, s, "u1", "Amazon", "1299", "Shopping", "2025-10-08")
	addTransaction(t, s, "u1", "Swiggy", "320.50", "Food and Drinks", "2025-10-10")
	addTransaction(t, s, "u1", "Uber", "180", "Travel and Transport", "2025-11-02")

	rec := s.do(t, http.MethodGet, "/api/transactions?user_id=u1&month=2025-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 2, *resp.Count)

	data := resp.Data.(map[string]any)
	assert.Equal(t, "1619.5", data["total_spent"])
	assert.Len(t, data["transactions"], 2)
}

func TestListTransactionsSearch(t *testing.T) {
	s := newTestServer(t, nil)
	addTransaction(t, s, "u1", "Amazon", "1299", "Shopping", "2025-10-08")
	addTransaction(t, s, "u1", "Swiggy", "320", "Food and Drinks", "2025-10-10")

	rec := s.do(t, http.MethodGet, "/api/transactions?user_id=u1&search=amazon", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 1, *resp.Count)
}

func TestListTransactionsInvalidMonth(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/transactions?user_id=u1&month=October", nil)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "Invalid month format. Use YYYY-MM (e.g., 2025-10)", resp.Message)
}

func TestListTransactionsEmpty(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/transactions?user_id=nobody", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeResponse(t, rec).Data.(map[string]any)
	transactionsList, ok := data["transactions"].([]any)
	require.True(t, ok, "transactions must be a JSON array, not null")
	assert.Empty(t, transactionsList)
}

func TestAddTransactionValidation(t *testing.T) {
	s := newTestServer(t, nil)

	cases := []struct {
		name string
		body map[string]any
	}{
		{"invalid category", map[string]any{
			"user_id": "u1", "merchant": "Amazon", "amount": "100",
			"category": "Food & Dining", "date": "2025-10-01",
		}},
		{"bad date", map[string]any{
			"user_id": "u1", "merchant": "Amazon", "amount": "100",
			"category": "Shopping", "date": "01-10-2025",
		}},
		{"zero amount", map[string]any{
			"user_id": "u1", "merchant": "Amazon", "amount": "0",
			"category": "Shopping", "date": "2025-10-01",
		}},
		{"missing merchant", map[string]any{
			"user_id": "u1", "amount": "100",
			"category": "Shopping", "date": "2025-10-01",
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/add-transaction", tc.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		})
	}
}

func TestAddTransactionDuplicate(t *testing.T) {
	s := newTestServer(t, nil)
	addTransaction(t, s, "u1", "Amazon", "1299", "Shopping", "2025-10-08")

	rec := s.do(t, http.MethodPost, "/api/add-transaction", map[string]any{
		"user_id": "u1", "merchant": "Amazon", "amount": "1299",
		"category": "Shopping", "date": "2025-10-08",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestDeleteTransaction(t *testing.T) {
	s := newTestServer(t, nil)
	id := addTransaction(t, s, "u1", "Amazon", "1299", "Shopping", "2025-10-08")

	rec := s.do(t, http.MethodDelete, "/api/delete-transaction", map[string]any{
		"user_id": "u1", "transaction_id": id.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodDelete, "/api/delete-transaction", map[string]any{
		"user_id": "u1", "transaction_id": id.String(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Transaction not found", decodeResponse(t, rec).Message)
}

func TestDeleteTransactionBadID(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodDelete, "/api/delete-transaction", map[string]any{
		"user_id": "u1", "transaction_id": "not-a-uuid",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestBudgetLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	addTransaction(t, s, "u1", "Amazon", "1299", "Shopping", "2025-10-08")

	rec := s.do(t, http.MethodPost, "/api/update-budget", map[string]any{
		"user_id": "u1", "income": "50000", "budget": "20000", "month": "2025-10",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/budget?user_id=u1&month=2025-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, "50000", data["income"])
	assert.Equal(t, "20000", data["budget"])
	assert.Equal(t, "1299", data["total_spent"])
	assert.Equal(t, "18701", data["remaining"])
	assert.Equal(t, "2025-10", data["month"])
}

func TestBudgetNotFound(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodGet, "/api/budget?user_id=u1&month=2025-10", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestBudgetValidation(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/update-budget", map[string]any{
		"user_id": "u1", "income": "0", "budget": "20000", "month": "2025-10",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/update-budget", map[string]any{
		"user_id": "u1", "income": "50000", "budget": "20000", "month": "Oct",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestSpendingByCategory(t *testing.T) {
	s := newTestServer(t, nil)
	addTransaction(t, s, "u1", "Amazon", "750", "Shopping", "2025-10-08")
	addTransaction(t, s, "u1", "Swiggy", "250", "Food and Drinks", "2025-10-10")

	rec := s.do(t, http.MethodGet, "/api/spending-by-category?user_id=u1&month=2025-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, "1000", data["total"])

	categories := data["breakdown"].([]any)
	require.Len(t, categories, 2)
	first := categories[0].(map[string]any)
	assert.Equal(t, "Shopping", first["category"])
	assert.Equal(t, "75", first["percentage"])
}

func TestSplitLifecycle(t *testing.T) {
	s := newTestServer(t, nil)
	id := addTransaction(t, s, "u1", "Domino's Pizza", "900", "Food and Drinks", "2025-10-05")

	rec := s.do(t, http.MethodPost, "/api/create-split", map[string]any{
		"user_id":        "u1",
		"transaction_id": id.String(),
		"split_method":   "equal",
		"participants": []map[string]any{
			{"name": "Asha", "amount_paid": "900"},
			{"name": "Ravi", "amount_paid": "0"},
			{"name": "Meera", "amount_paid": "0"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	data := decodeResponse(t, rec).Data.(map[string]any)
	assert.Equal(t, "Domino's Pizza", data["merchant"])
	assert.Equal(t, "equal", data["split_method"])
	participants := data["participants"].([]any)
	require.Len(t, participants, 3)
	assert.Equal(t, "300", participants[0].(map[string]any)["share_amount"])

	rec = s.do(t, http.MethodPost, "/api/get-split", map[string]any{
		"user_id": "u1", "transaction_id": id.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeResponse(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Split found", resp.Message)

	rec = s.do(t, http.MethodGet, "/api/splits/u1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	resp = decodeResponse(t, rec)
	assert.Equal(t, "Found 1 splits", resp.Message)

	rec = s.do(t, http.MethodPost, "/api/delete-split", map[string]any{
		"user_id": "u1", "transaction_id": id.String(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/delete-split", map[string]any{
		"user_id": "u1", "transaction_id": id.String(),
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSplitMissing(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/get-split", map[string]any{
		"user_id": "u1", "transaction_id": uuid.NewString(),
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	assert.False(t, resp.Success)
	assert.Equal(t, "No split found for this transaction", resp.Message)
}

func TestCreateSplitErrors(t *testing.T) {
	s := newTestServer(t, nil)
	id := addTransaction(t, s, "u1", "Domino's Pizza", "900", "Food and Drinks", "2025-10-05")

	two := []map[string]any{
		{"name": "Asha", "amount_paid": "900", "share_percentage": "60"},
		{"name": "Ravi", "amount_paid": "0", "share_percentage": "30"},
	}

	rec := s.do(t, http.MethodPost, "/api/create-split", map[string]any{
		"user_id": "u1", "transaction_id": id.String(),
		"split_method": "fibonacci", "participants": two,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/create-split", map[string]any{
		"user_id": "u1", "transaction_id": uuid.NewString(),
		"split_method": "equal", "participants": two,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/create-split", map[string]any{
		"user_id": "u1", "transaction_id": id.String(),
		"split_method": "percentage", "participants": two,
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "percentages must add up to 100, got 90", decodeResponse(t, rec).Message)

	rec = s.do(t, http.MethodPost, "/api/create-split", map[string]any{
		"user_id": "u1", "transaction_id": id.String(),
		"split_method": "equal",
		"participants": []map[string]any{{"name": "Asha", "amount_paid": "900"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateSplitParticipantBounds(t *testing.T) {
	s := newTestServer(t, nil)
	id := addTransaction(t, s, "u1", "Domino's Pizza", "900", "Food and Drinks", "2025-10-05")

	cases := []struct {
		name         string
		method       string
		participants []map[string]any
		message      string
	}{
		{
			name:   "percentage above 100",
			method: "percentage",
			participants: []map[string]any{
				{"name": "Asha", "share_percentage": "150", "amount_paid": "900"},
				{"name": "Ravi", "share_percentage": "-50"},
			},
			message: "share_percentage must be between 0 and 100",
		},
		{
			name:   "negative amount paid",
			method: "equal",
			participants: []map[string]any{
				{"name": "Asha", "amount_paid": "950"},
				{"name": "Ravi", "amount_paid": "-50"},
			},
			message: "amount_paid cannot be negative",
		},
		{
			name:   "zero ratio",
			method: "ratio",
			participants: []map[string]any{
				{"name": "Asha", "share_ratio": 0, "amount_paid": "900"},
				{"name": "Ravi", "share_ratio": 2},
			},
			message: "share_ratio must be at least 1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := s.do(t, http.MethodPost, "/api/create-split", map[string]any{
				"user_id":        "u1",
				"transaction_id": id.String(),
				"split_method":   tc.method,
				"participants":   tc.participants,
			})
			require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
			assert.Equal(t, tc.message, decodeResponse(t, rec).Message)
		})
	}

	// An omitted ratio still defaults to 1.
	rec := s.do(t, http.MethodPost, "/api/create-split", map[string]any{
		"user_id":        "u1",
		"transaction_id": id.String(),
		"split_method":   "ratio",
		"participants": []map[string]any{
			{"name": "Asha", "share_ratio": 2, "amount_paid": "900"},
			{"name": "Ravi"},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	participants := decodeResponse(t, rec).Data.(map[string]any)["participants"].([]any)
	assert.Equal(t, float64(1), participants[1].(map[string]any)["share_ratio"])
}

func TestLoadDemoData(t *testing.T) {
	s := newTestServer(t, nil)

	rec := s.do(t, http.MethodPost, "/api/load-demo-data", map[string]any{
		"user_id": "u1", "month": "2025-10",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decodeResponse(t, rec)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 10, *resp.Count)

	rec = s.do(t, http.MethodPost, "/api/load-demo-data", map[string]any{
		"user_id": "u1", "month": "2025-10",
	})
	resp = decodeResponse(t, rec)
	require.NotNil(t, resp.Count)
	assert.Equal(t, 0, *resp.Count, "seeding again must not duplicate rows")
}

func TestExportTransactions(t *testing.T) {
	s := newTestServer(t, nil)
	addTransaction(t, s, "u1", "Amazon", "1299", "Shopping", "2025-10-08")

	rec := s.do(t, http.MethodGet, "/api/transactions/export?user_id=u1&month=2025-10", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="transactions_2025-10.csv"`, rec.Header().Get("Content-Disposition"))

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,merchant,category,amount", lines[0])
	assert.Equal(t, "2025-10-08,Amazon,Shopping,1299.00", lines[1])
}

func TestMalformedJSON(t *testing.T) {
	s := newTestServer(t, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/add-transaction", strings.NewReader("{nope"))
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	panicky := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic(fmt.Errorf("boom"))
	})

	rec := httptest.NewRecorder()
	Recovery(logger)(panicky).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
