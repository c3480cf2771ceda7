package http

import (
	"fmt"
	"math"
	"net/http"
	"strings"

	"ledger/internal/core"
	"ledger/internal/storage"
)

// expenseJSON is the wire form of a ledger entry. Amounts cross the API
// as decimal numbers; cents stay internal.
type expenseJSON struct {
	ID          int64   `json:"id"`
	Date        string  `json:"date"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Subcategory string  `json:"subcategory"`
	Note        string  `json:"note"`
}

func toExpenseJSON(rows []core.Expense) []expenseJSON {
	out := make([]expenseJSON, 0, len(rows))
	for _, e := range rows {
		out = append(out, expenseJSON{
			ID:          e.ID,
			Date:        e.Date.String(),
			Amount:      e.Amount.Float(),
			Category:    e.Category,
			Subcategory: e.Subcategory,
			Note:        e.Note,
		})
	}
	return out
}

func parseRange(startDate, endDate string) (start, end core.Date, err error) {
	if start, err = core.ParseDate(startDate); err != nil {
		return
	}
	end, err = core.ParseDate(endDate)
	return
}

func (s *Server) handleAddExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Date        string  `json:"date"`
		Amount      float64 `json:"amount"`
		Category    string  `json:"category"`
		Subcategory string  `json:"subcategory"`
		Note        string  `json:"note"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	date, err := core.ParseDate(req.Date)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	amount, err := core.MoneyFromFloat(req.Amount)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	id, alert, err := s.svc.AddExpense(r.Context(), core.Expense{
		Date:        date,
		Amount:      amount,
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Note:        req.Note,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	payload := map[string]any{
		"id":      id,
		"message": "Expense added successfully",
	}
	if alert != nil {
		payload["budget_alert"] = alert
	}
	s.writeOK(w, payload)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Category  string `json:"category"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows, err := s.svc.ListExpenses(r.Context(), start, end, req.Category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeOK(w, map[string]any{
		"count":    len(rows),
		"expenses": toExpenseJSON(rows),
	})
}

func (s *Server) handleUpdateExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID          int64    `json:"id"`
		Date        *string  `json:"date"`
		Amount      *float64 `json:"amount"`
		Category    *string  `json:"category"`
		Subcategory *string  `json:"subcategory"`
		Note        *string  `json:"note"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	upd := storage.ExpenseUpdate{
		Category:    req.Category,
		Subcategory: req.Subcategory,
		Note:        req.Note,
	}
	if req.Date != nil {
		date, err := core.ParseDate(*req.Date)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		upd.Date = &date
	}
	if req.Amount != nil {
		amount, err := core.MoneyFromFloat(*req.Amount)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		upd.Amount = &amount
	}

	alert, err := s.svc.UpdateExpense(r.Context(), req.ID, upd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	payload := map[string]any{
		"message": fmt.Sprintf("Expense %d updated successfully", req.ID),
	}
	if alert != nil {
		payload["budget_alert"] = alert
	}
	s.writeOK(w, payload)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID        *int64  `json:"id"`
		IDs       []int64 `json:"ids"`
		StartDate string  `json:"start_date"`
		EndDate   string  `json:"end_date"`
		Category  string  `json:"category"`
		DeleteAll bool    `json:"delete_all"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	sel, err := resolveDeleteSelector(req.ID, req.IDs, req.StartDate, req.EndDate, req.Category, req.DeleteAll)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	count, err := s.svc.DeleteExpenses(r.Context(), sel)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	payload := map[string]any{
		"deleted_count": count,
		"message":       fmt.Sprintf("%d expense(s) deleted successfully", count),
	}
	if _, all := sel.(storage.DeleteAll); all {
		payload["message"] = fmt.Sprintf("All %d expenses deleted", count)
		payload["warning"] = "All expense data has been cleared"
	}
	s.writeOK(w, payload)
}

// resolveDeleteSelector maps request fields onto exactly one selector
// variant, enforcing the id > ids > conditions > delete_all precedence.
// A delete_all alongside other criteria loses to them.
func resolveDeleteSelector(id *int64, ids []int64, startDate, endDate, category string, deleteAll bool) (storage.DeleteSelector, error) {
	switch {
	case id != nil:
		return storage.DeleteByID{ID: *id}, nil
	case len(ids) > 0:
		return storage.DeleteByIDs{IDs: ids}, nil
	case startDate != "" || endDate != "" || category != "":
		where := storage.DeleteWhere{Category: category}
		if startDate != "" || endDate != "" {
			if startDate == "" || endDate == "" {
				return nil, core.Validationf("both start_date and end_date are required for a date-range delete")
			}
			start, end, err := parseRange(startDate, endDate)
			if err != nil {
				return nil, err
			}
			where.Start, where.End = &start, &end
		}
		return where, nil
	case deleteAll:
		return storage.DeleteAll{}, nil
	}
	return nil, core.Validationf("no deletion criteria provided. Specify id, ids, date range, category, or delete_all=true")
}

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Category  string `json:"category"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	summary, err := s.svc.Summarize(r.Context(), start, end, req.Category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	categories := make([]map[string]any, 0, len(summary.Categories))
	for _, c := range summary.Categories {
		categories = append(categories, map[string]any{
			"category":     c.Category,
			"total_amount": c.Total.Float(),
			"count":        c.Count,
		})
	}
	s.writeOK(w, map[string]any{
		"start_date":   req.StartDate,
		"end_date":     req.EndDate,
		"total_amount": summary.GrandTotal.Float(),
		"categories":   categories,
	})
}

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

func (s *Server) handleMonthlyTrends(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Year     int    `json:"year"`
		Category string `json:"category"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	trends, err := s.svc.MonthlyTrend(r.Context(), req.Year, req.Category)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	out := make([]map[string]any, 0, len(trends))
	for _, t := range trends {
		out = append(out, map[string]any{
			"month":      fmt.Sprintf("%02d", t.Month),
			"month_name": monthNames[t.Month-1],
			"total":      t.Total.Float(),
			"count":      t.Count,
			"average":    t.Average,
		})
	}

	category := req.Category
	if category == "" {
		category = "all"
	}
	s.writeOK(w, map[string]any{
		"year":     req.Year,
		"category": category,
		"trends":   out,
	})
}

func (s *Server) handleTopExpenses(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Limit     int    `json:"limit"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	rows, err := s.svc.TopExpenses(r.Context(), start, end, req.Limit)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeOK(w, map[string]any{
		"count":        len(rows),
		"top_expenses": toExpenseJSON(rows),
	})
}

func (s *Server) handleCategoryBreakdown(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	stats, err := s.svc.CategoryBreakdown(r.Context(), start, end)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	breakdown := make(map[string]any, len(stats))
	for _, cat := range stats {
		subs := make([]map[string]any, 0, len(cat.Subcategories))
		for _, sub := range cat.Subcategories {
			subs = append(subs, map[string]any{
				"subcategory": sub.Subcategory,
				"total":       sub.Total.Float(),
				"count":       sub.Count,
				"average":     sub.Average,
			})
		}
		breakdown[cat.Category] = map[string]any{
			"total":         cat.Total.Float(),
			"count":         cat.Count,
			"subcategories": subs,
		}
	}
	s.writeOK(w, map[string]any{
		"start_date": req.StartDate,
		"end_date":   req.EndDate,
		"breakdown":  breakdown,
	})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		Filename  string `json:"filename"`
		Format    string `json:"format"`
	}
	if err := decode(r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}
	if req.Format == "" {
		req.Format = "csv"
	}
	start, end, err := parseRange(req.StartDate, req.EndDate)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	path, count, err := s.svc.Export(r.Context(), start, end, req.Format, req.Filename)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeOK(w, map[string]any{
		"message":   fmt.Sprintf("Exported %d expenses to %s file", count, strings.ToUpper(req.Format)),
		"file_path": path,
		"count":     count,
		"format":    req.Format,
	})
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
