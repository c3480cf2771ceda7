package http

import (
	"fmt"
	"net/http"

	"ledger/internal/core"
)

func (s *Server) handleAddRecurring(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Subcategory string  `json:"subcategory"`
		Note        string  `json:"note"`
		Frequency   string  `json:"frequency"`
		StartDate   string  `json:"start_date"`
		EndDate     string  `json:"end_date"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	amount, err := core.MoneyFromFloat(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	frequency, err := core.ParseFrequency(req.Frequency)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	start, err := core.ParseDate(req.StartDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var end core.Date
	if req.EndDate != "" {
		if end, err = core.ParseDate(req.EndDate); err != nil {
			s.writeError(w, r, err)
			return
		}
	}

	recurringID, expenseID, alert, err := s.svc.AddRecurring(r.Context(), core.RecurringExpense{
		Amount:      amount,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Note:        req.Note,
		Frequency:   frequency,
		StartDate:   start,
		EndDate:     end,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	payload := map[string]any{
		"recurring_id":     recurringID,
		"first_expense_id": expenseID,
		"message": fmt.Sprintf("Recurring expense added: %s %s starting %s. First expense recorded.",
			amount, frequency, req.StartDate),
	}
	if alert != nil {
		payload["budget_alert"] = alert
	}
	s.writeOK(w, payload)
}

func (s *Server) handleListRecurring(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ActiveOnly *bool `json:"active_only"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	activeOnly := true
	if req.ActiveOnly != nil {
		activeOnly = *req.ActiveOnly
	}

	defs, err := s.svc.ListRecurring(r.Context(), activeOnly)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]map[string]any, 0, len(defs))
	for _, re := range defs {
		entry := map[string]any{
			"id":           re.ID,
			"amount":       re.Amount.Float(),
			"category":     re.Category,
			"subcategory":  re.Subcategory,
			"note":         re.Note,
			"frequency":    re.Frequency,
			"start_date":   re.StartDate.String(),
			"last_applied": re.LastApplied.String(),
			"active":       re.Active,
		}
		if !re.EndDate.IsEmpty() {
			entry["end_date"] = re.EndDate.String()
		}
		out = append(out, entry)
	}
	s.writeOK(w, map[string]any{
		"count":              len(out),
		"recurring_expenses": out,
	})
}

func (s *Server) handleDeactivateRecurring(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID int64 `json:"id"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.svc.DeactivateRecurring(r.Context(), req.ID); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeOK(w, map[string]any{
		"message": fmt.Sprintf("Recurring expense %d deactivated", req.ID),
	})
}
