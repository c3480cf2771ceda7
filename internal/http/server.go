// Package http exposes the ledger operations as a JSON RPC facade: one
// POST endpoint per named operation plus a read-only categories
// resource. Every response carries a "status" discriminator and a human
// message on error; no operation surfaces an unstructured failure.
package http

import (
	"net/http"
	"time"

	"ledger/internal/log"
	"ledger/internal/service"
)

type Server struct {
	http.Server
	svc    *service.Service
	logger *log.Logger
}

// NewServer configures routes and middleware, returning a ready-to-run
// http.Server.
func NewServer(addr string, svc *service.Service, logger *log.Logger, readTimeout, writeTimeout time.Duration) *Server {
	s := &Server{
		svc:    svc,
		logger: logger.WithComponent(log.ComponentHTTP),
	}
	s.Addr = addr
	s.ReadTimeout = readTimeout
	s.WriteTimeout = writeTimeout
	s.Handler = s.withRequestLog(s.routes())
	return s
}

func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /add_expense", s.handleAddExpense)
	mux.HandleFunc("POST /list_expenses", s.handleListExpenses)
	mux.HandleFunc("POST /summarize", s.handleSummarize)
	mux.HandleFunc("POST /delete_expense", s.handleDeleteExpense)
	mux.HandleFunc("POST /update_expense", s.handleUpdateExpense)
	mux.HandleFunc("POST /get_monthly_trends", s.handleMonthlyTrends)
	mux.HandleFunc("POST /get_top_expenses", s.handleTopExpenses)
	mux.HandleFunc("POST /get_category_breakdown", s.handleCategoryBreakdown)
	mux.HandleFunc("POST /set_budget", s.handleSetBudget)
	mux.HandleFunc("POST /get_budget_status", s.handleBudgetStatus)
	mux.HandleFunc("POST /list_budgets", s.handleListBudgets)
	mux.HandleFunc("POST /delete_budget", s.handleDeleteBudget)
	mux.HandleFunc("POST /add_recurring_expense", s.handleAddRecurring)
	mux.HandleFunc("POST /list_recurring_expenses", s.handleListRecurring)
	mux.HandleFunc("POST /deactivate_recurring_expense", s.handleDeactivateRecurring)
	mux.HandleFunc("POST /export_to_file", s.handleExport)

	mux.HandleFunc("GET /categories", s.handleCategories)
	mux.HandleFunc("GET /healthz", s.handleHealth)

	return mux
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		s.logger.InfoContext(r.Context(), "Request handled",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldStatusCode, rec.status,
			log.FieldDuration, time.Since(start).Milliseconds())
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeOK(w, map[string]any{
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	s.writeOK(w, map[string]any{
		"categories": s.svc.Taxonomy().All(),
	})
}
