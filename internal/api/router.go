package api

import (
	"log/slog"
	"net/http"

	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

// NewRouter assembles the route table and middleware chain.
func NewRouter(h *Handlers, metrics *HTTPMetrics, limiter *rate.Limiter, logger *slog.Logger) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", h.Health)

	mux.HandleFunc("POST /api/fetch-transactions", h.FetchTransactions)
	mux.HandleFunc("GET /api/transactions", h.ListTransactions)
	mux.HandleFunc("GET /api/transactions/export", h.ExportTransactions)
	mux.HandleFunc("POST /api/add-transaction", h.AddTransaction)
	mux.HandleFunc("DELETE /api/delete-transaction", h.DeleteTransaction)

	mux.HandleFunc("POST /api/update-budget", h.UpdateBudget)
	mux.HandleFunc("GET /api/budget", h.GetBudget)
	mux.HandleFunc("GET /api/spending-by-category", h.SpendingByCategory)

	mux.HandleFunc("POST /api/create-split", h.CreateSplit)
	mux.HandleFunc("POST /api/get-split", h.GetSplit)
	mux.HandleFunc("POST /api/delete-split", h.DeleteSplit)
	mux.HandleFunc("GET /api/splits/{user_id}", h.ListSplits)

	mux.HandleFunc("POST /api/load-demo-data", h.LoadDemoData)

	var handler http.Handler = mux
	if metrics != nil {
		handler = metrics.Middleware(handler)
	}
	if limiter != nil {
		handler = RateLimit(limiter)(handler)
	}
	handler = Logger(logger)(handler)
	handler = Recovery(logger)(handler)

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"*"},
	}).Handler(handler)
}
