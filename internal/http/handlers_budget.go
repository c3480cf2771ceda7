package http

import (
	"fmt"
	"net/http"

	"ledger/internal/core"
)

const defaultAlertThreshold = 0.8

func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category       string   `json:"category"`
		MonthlyLimit   float64  `json:"monthly_limit"`
		AlertThreshold *float64 `json:"alert_threshold"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	limit, err := core.MoneyFromFloat(req.MonthlyLimit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	threshold := defaultAlertThreshold
	if req.AlertThreshold != nil {
		threshold = *req.AlertThreshold
	}

	if err := s.svc.SetBudget(r.Context(), core.Budget{
		Category:       req.Category,
		MonthlyLimit:   limit,
		AlertThreshold: threshold,
	}); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeOK(w, map[string]any{
		"message": fmt.Sprintf("Budget set for %s: %s/month (alert at %d%%)",
			req.Category, limit, int(threshold*100)),
	})
}

func (s *Server) handleBudgetStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		YearMonth string `json:"year_month"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	statuses, err := s.svc.BudgetStatuses(r.Context(), req.YearMonth)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]map[string]any, 0, len(statuses))
	for _, st := range statuses {
		out = append(out, map[string]any{
			"category":          st.Category,
			"limit":             st.Limit.Float(),
			"spent":             st.Spent.Float(),
			"remaining":         st.Remaining.Float(),
			"percentage":        round1(st.Percentage),
			"alert_status":      st.Verdict,
			"transaction_count": st.TransactionCount,
		})
	}

	payload := map[string]any{
		"month":   req.YearMonth,
		"budgets": out,
	}
	if len(out) == 0 {
		payload["message"] = "No budgets set"
	}
	s.writeOK(w, payload)
}

func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.svc.ListBudgets(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]map[string]any, 0, len(budgets))
	for _, b := range budgets {
		out = append(out, map[string]any{
			"category":        b.Category,
			"monthly_limit":   b.MonthlyLimit.Float(),
			"alert_threshold": b.AlertThreshold,
		})
	}
	s.writeOK(w, map[string]any{
		"count":   len(out),
		"budgets": out,
	})
}

func (s *Server) handleDeleteBudget(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.DeleteBudget(r.Context(), req.Category); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeOK(w, map[string]any{
		"message": fmt.Sprintf("Budget deleted for %s", req.Category),
	})
}
