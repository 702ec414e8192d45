// Package api exposes the JSON endpoints over net/http.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/FACorreiaa/splitmint/internal/domain/budget"
	"github.com/FACorreiaa/splitmint/internal/domain/categorization"
	"github.com/FACorreiaa/splitmint/internal/domain/split"
	"github.com/FACorreiaa/splitmint/internal/domain/transactions"
	"github.com/FACorreiaa/splitmint/internal/pipeline"
)

// Handlers wires the domain services into HTTP endpoints.
type Handlers struct {
	pipeline      *pipeline.Pipeline
	txs           *transactions.Service
	budgets       *budget.Service
	splits        *split.Service
	environment   string
	monitorOn     bool
	monitorActive func() bool
	logger        *slog.Logger
}

func NewHandlers(p *pipeline.Pipeline, txs *transactions.Service, budgets *budget.Service,
	splits *split.Service, environment string, monitorOn bool, monitorActive func() bool,
	logger *slog.Logger) *Handlers {
	if monitorActive == nil {
		monitorActive = func() bool { return false }
	}
	return &Handlers{
		pipeline:      p,
		txs:           txs,
		budgets:       budgets,
		splits:        splits,
		environment:   environment,
		monitorOn:     monitorOn,
		monitorActive: monitorActive,
		logger:        logger,
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func validMonth(month string) bool {
	_, err := time.Parse("2006-01", month)
	return err == nil
}

// Health reports service status and monitor state.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":               "ok",
		"environment":          h.environment,
		"timestamp":            time.Now().UTC().Format(time.RFC3339),
		"auto_monitor_enabled": h.monitorOn,
		"monitor_active":       h.monitorActive(),
	})
}

// FetchTransactions runs the ingestion pipeline for a user.
func (h *Handlers) FetchTransactions(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}

	summary, err := h.pipeline.Run(r.Context(), req.UserID)
	if err != nil {
		h.logger.Error("pipeline run failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to fetch transactions")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("Successfully processed %d new transactions", summary.Inserted),
		Data:    summary,
		Count:   count(summary.Inserted),
	})
}

// ListTransactions returns a user's transactions with their total.
func (h *Handlers) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	month := r.URL.Query().Get("month")
	if month != "" && !validMonth(month) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid month format. Use YYYY-MM (e.g., 2025-10)")
		return
	}

	txs, total, err := h.txs.List(r.Context(), userID, month, r.URL.Query().Get("search"))
	if err != nil {
		h.logger.Error("listing transactions failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to list transactions")
		return
	}
	if txs == nil {
		txs = []transactions.Transaction{}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("Retrieved %d transactions", len(txs)),
		Data: map[string]any{
			"transactions": txs,
			"total_spent":  total,
		},
		Count: count(len(txs)),
	})
}

// ExportTransactions streams a user's transactions as CSV.
func (h *Handlers) ExportTransactions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	month := r.URL.Query().Get("month")
	if month != "" && !validMonth(month) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid month format. Use YYYY-MM (e.g., 2025-10)")
		return
	}

	data, err := h.txs.ExportCSV(r.Context(), userID, month)
	if err != nil {
		h.logger.Error("csv export failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to export transactions")
		return
	}

	filename := "transactions.csv"
	if month != "" {
		filename = fmt.Sprintf("transactions_%s.csv", month)
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// AddTransaction stores a manually entered transaction.
func (h *Handlers) AddTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string          `json:"user_id"`
		Merchant string          `json:"merchant"`
		Amount   decimal.Decimal `json:"amount"`
		Category string          `json:"category"`
		Date     string          `json:"date"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Merchant == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id and merchant are required")
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusUnprocessableEntity, "amount must be greater than 0")
		return
	}
	if !categorization.IsValid(req.Category) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid category")
		return
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid date format. Use YYYY-MM-DD")
		return
	}

	tx, err := h.txs.Add(r.Context(), transactions.AddInput{
		UserID:   req.UserID,
		Merchant: req.Merchant,
		Amount:   req.Amount,
		Category: req.Category,
		Date:     req.Date,
	})
	if errors.Is(err, transactions.ErrDuplicate) {
		writeError(w, http.StatusConflict, "Transaction already exists")
		return
	}
	if err != nil {
		h.logger.Error("adding transaction failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to add transaction")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Transaction added successfully",
		Data:    map[string]any{"transaction_id": tx.ID},
	})
}

// DeleteTransaction removes a transaction owned by the user.
func (h *Handlers) DeleteTransaction(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string `json:"user_id"`
		TransactionID string `json:"transaction_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	id, err := uuid.Parse(req.TransactionID)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid transaction_id")
		return
	}

	err = h.txs.Delete(r.Context(), req.UserID, id)
	if errors.Is(err, transactions.ErrNotFound) {
		// Same answer whether the transaction is missing or owned by
		// another user.
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	}
	if err != nil {
		h.logger.Error("deleting transaction failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to delete transaction")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Transaction deleted successfully"})
}

// UpdateBudget upserts the budget for a month.
func (h *Handlers) UpdateBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string          `json:"user_id"`
		Income decimal.Decimal `json:"income"`
		Budget decimal.Decimal `json:"budget"`
		Month  string          `json:"month"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	if !req.Income.IsPositive() || !req.Budget.IsPositive() {
		writeError(w, http.StatusUnprocessableEntity, "income and budget must be greater than 0")
		return
	}
	if !validMonth(req.Month) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid month format. Use YYYY-MM (e.g., 2025-10)")
		return
	}

	b, err := h.budgets.Upsert(r.Context(), req.UserID, req.Month, req.Income, req.Budget)
	if err != nil {
		h.logger.Error("updating budget failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to update budget")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Budget updated successfully",
		Data:    b,
	})
}

// GetBudget returns the month's budget with spending and remainder.
func (h *Handlers) GetBudget(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	month := r.URL.Query().Get("month")
	if userID == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	if !validMonth(month) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid month format. Use YYYY-MM (e.g., 2025-10)")
		return
	}

	b, err := h.budgets.Get(r.Context(), userID, month)
	if errors.Is(err, budget.ErrNotFound) {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No budget found for user %s in %s", userID, month))
		return
	}
	if err != nil {
		h.logger.Error("getting budget failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to get budget")
		return
	}

	totalSpent, err := h.txs.MonthlyTotal(r.Context(), userID, month)
	if err != nil {
		h.logger.Error("summing monthly spend failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to get budget")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Budget retrieved successfully",
		Data: map[string]any{
			"income":      b.Income,
			"budget":      b.Budget,
			"total_spent": totalSpent,
			"remaining":   b.Budget.Sub(totalSpent),
			"month":       month,
		},
	})
}

// SpendingByCategory returns the month's per-category breakdown.
func (h *Handlers) SpendingByCategory(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("user_id")
	month := r.URL.Query().Get("month")
	if userID == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	if !validMonth(month) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid month format. Use YYYY-MM (e.g., 2025-10)")
		return
	}

	breakdown, err := h.txs.SpendingByCategory(r.Context(), userID, month)
	if err != nil {
		h.logger.Error("category breakdown failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to compute spending breakdown")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Spending breakdown computed", Data: breakdown})
}

type apiParticipant struct {
	Name            string          `json:"name"`
	PhoneNumber     string          `json:"phone_number"`
	SharePercentage decimal.Decimal `json:"share_percentage"`
	ShareRatio      *int            `json:"share_ratio"`
	AmountPaid      decimal.Decimal `json:"amount_paid"`
}

var maxSharePercentage = decimal.NewFromInt(100)

// CreateSplit creates or replaces the split for a transaction.
func (h *Handlers) CreateSplit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string           `json:"user_id"`
		TransactionID string           `json:"transaction_id"`
		Participants  []apiParticipant `json:"participants"`
		SplitMethod   string           `json:"split_method"`
		Notes         string           `json:"notes"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	method, err := split.ParseMethod(req.SplitMethod)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid split method. Must be one of: equal, percentage, ratio")
		return
	}
	txID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid transaction_id")
		return
	}
	if len(req.Participants) < 2 {
		writeError(w, http.StatusUnprocessableEntity, "A split needs at least 2 participants")
		return
	}

	participants := make([]split.Participant, len(req.Participants))
	for i, p := range req.Participants {
		if p.Name == "" {
			writeError(w, http.StatusUnprocessableEntity, "Every participant needs a name")
			return
		}
		if p.SharePercentage.IsNegative() || p.SharePercentage.GreaterThan(maxSharePercentage) {
			writeError(w, http.StatusUnprocessableEntity, "share_percentage must be between 0 and 100")
			return
		}
		if p.AmountPaid.IsNegative() {
			writeError(w, http.StatusUnprocessableEntity, "amount_paid cannot be negative")
			return
		}
		// Omitted ratio defaults to 1; an explicit ratio below 1 is rejected.
		ratio := 1
		if p.ShareRatio != nil {
			if *p.ShareRatio < 1 {
				writeError(w, http.StatusUnprocessableEntity, "share_ratio must be at least 1")
				return
			}
			ratio = *p.ShareRatio
		}
		participants[i] = split.Participant{
			Name:            p.Name,
			PhoneNumber:     p.PhoneNumber,
			SharePercentage: p.SharePercentage,
			ShareRatio:      ratio,
			AmountPaid:      p.AmountPaid,
		}
	}

	sp, err := h.splits.CreateOrUpdate(r.Context(), split.CreateInput{
		UserID:        req.UserID,
		TransactionID: txID,
		Participants:  participants,
		Method:        method,
		Notes:         req.Notes,
	})

	var verr *split.ValidationError
	switch {
	case errors.Is(err, split.ErrTransactionNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
		return
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
		return
	case err != nil:
		h.logger.Error("creating split failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to create split")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Split saved successfully",
		Data:    sp,
	})
}

// GetSplit returns the split for a transaction, if any.
func (h *Handlers) GetSplit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string `json:"user_id"`
		TransactionID string `json:"transaction_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	txID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid transaction_id")
		return
	}

	sp, err := h.splits.Get(r.Context(), req.UserID, txID)
	if errors.Is(err, split.ErrNotFound) {
		writeJSON(w, http.StatusOK, Response{Success: false, Message: "No split found for this transaction"})
		return
	}
	if err != nil {
		h.logger.Error("getting split failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to get split")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Split found", Data: sp})
}

// DeleteSplit removes the split for a transaction.
func (h *Handlers) DeleteSplit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID        string `json:"user_id"`
		TransactionID string `json:"transaction_id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	txID, err := uuid.Parse(req.TransactionID)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "Invalid transaction_id")
		return
	}

	err = h.splits.Delete(r.Context(), req.UserID, txID)
	if errors.Is(err, split.ErrNotFound) {
		writeError(w, http.StatusNotFound, "Split not found")
		return
	}
	if err != nil {
		h.logger.Error("deleting split failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to delete split")
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Message: "Split deleted successfully"})
}

// ListSplits returns all splits for a user.
func (h *Handlers) ListSplits(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")

	splits, err := h.splits.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("listing splits failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to list splits")
		return
	}
	if splits == nil {
		splits = []split.Split{}
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("Found %d splits", len(splits)),
		Data:    splits,
		Count:   count(len(splits)),
	})
}

// LoadDemoData seeds sample transactions for a month.
func (h *Handlers) LoadDemoData(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID string `json:"user_id"`
		Month  string `json:"month"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" {
		writeError(w, http.StatusUnprocessableEntity, "user_id is required")
		return
	}
	if !validMonth(req.Month) {
		writeError(w, http.StatusUnprocessableEntity, "Invalid month format. Use YYYY-MM (e.g., 2025-10)")
		return
	}

	inserted, err := h.txs.LoadDemoData(r.Context(), req.UserID, req.Month)
	if err != nil {
		h.logger.Error("loading demo data failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "Failed to load demo data")
		return
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: fmt.Sprintf("Inserted %d demo transactions", inserted),
		Count:   count(inserted),
	})
}
