package storage

import (
	"context"
	"fmt"
	"math"

	"ledger/internal/core"
)

type (
	// CategoryTotal is one row of a summary: total spend and entry count
	// for a category over the queried range.
	CategoryTotal struct {
		Category string
		Total    core.Money
		Count    int64
	}

	// Summary is the per-category totals plus the grand total over a
	// date range. Categories are ordered by total descending.
	Summary struct {
		Categories []CategoryTotal
		GrandTotal core.Money
	}

	// MonthTotal is one populated slot of a monthly trend. Months with
	// no matching expenses do not appear at all.
	MonthTotal struct {
		Month   int
		Total   core.Money
		Count   int64
		Average float64
	}

	// SubcategoryStat is the per-subcategory slice of a breakdown.
	SubcategoryStat struct {
		Subcategory string
		Total       core.Money
		Count       int64
		Average     float64
	}

	// CategoryStat aggregates a category with its subcategory slices.
	// The subcategory totals and counts sum to the category's.
	CategoryStat struct {
		Category      string
		Total         core.Money
		Count         int64
		Subcategories []SubcategoryStat
	}
)

// Summarize aggregates spend per category over the inclusive range,
// optionally restricted to one category.
func (s *Store) Summarize(ctx context.Context, start, end core.Date, category string) (Summary, error) {
	query := `SELECT category, SUM(amount_cents), COUNT(*)
		FROM expenses WHERE date BETWEEN ? AND ?`
	args := []any{start.String(), end.String()}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` GROUP BY category ORDER BY SUM(amount_cents) DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return Summary{}, core.Storef("summarize expenses", err)
	}
	defer rows.Close()

	var sum Summary
	for rows.Next() {
		var ct CategoryTotal
		if err := rows.Scan(&ct.Category, &ct.Total.Cents, &ct.Count); err != nil {
			return Summary{}, core.Storef("scan summary row", err)
		}
		sum.Categories = append(sum.Categories, ct)
		sum.GrandTotal.Cents += ct.Total.Cents
	}
	if err := rows.Err(); err != nil {
		return Summary{}, core.Storef("iterate summary", err)
	}
	return sum, nil
}

// TopExpenses returns up to limit expenses in the range ordered by
// amount descending, insertion order breaking ties.
func (s *Store) TopExpenses(ctx context.Context, start, end core.Date, limit int) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		WHERE date BETWEEN ? AND ?
		ORDER BY amount_cents DESC, id ASC LIMIT ?`,
		start.String(), end.String(), limit)
	if err != nil {
		return nil, core.Storef("top expenses", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

// MonthlyTrend aggregates spend per month of the given year. The result
// is sparse: only months with at least one matching expense appear,
// ordered January first.
func (s *Store) MonthlyTrend(ctx context.Context, year int, category string) ([]MonthTotal, error) {
	query := `SELECT CAST(substr(date, 6, 2) AS INTEGER), SUM(amount_cents), COUNT(*)
		FROM expenses WHERE substr(date, 1, 4) = ?`
	args := []any{fmt.Sprintf("%04d", year)}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` GROUP BY substr(date, 6, 2) ORDER BY substr(date, 6, 2) ASC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.Storef("monthly trend", err)
	}
	defer rows.Close()

	var out []MonthTotal
	for rows.Next() {
		var mt MonthTotal
		if err := rows.Scan(&mt.Month, &mt.Total.Cents, &mt.Count); err != nil {
			return nil, core.Storef("scan trend row", err)
		}
		mt.Average = roundCents2(mt.Total.Cents, mt.Count)
		out = append(out, mt)
	}
	if err := rows.Err(); err != nil {
		return nil, core.Storef("iterate trend", err)
	}
	return out, nil
}

// CategoryBreakdown aggregates spend per (category, subcategory) over
// the inclusive range and folds the rows into a nested structure.
// Within a category, subcategories are ordered by total descending.
func (s *Store) CategoryBreakdown(ctx context.Context, start, end core.Date) ([]CategoryStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, subcategory, SUM(amount_cents), COUNT(*)
		FROM expenses WHERE date BETWEEN ? AND ?
		GROUP BY category, subcategory
		ORDER BY category ASC, SUM(amount_cents) DESC`,
		start.String(), end.String())
	if err != nil {
		return nil, core.Storef("category breakdown", err)
	}
	defer rows.Close()

	var out []CategoryStat
	for rows.Next() {
		var (
			category string
			ss       SubcategoryStat
		)
		if err := rows.Scan(&category, &ss.Subcategory, &ss.Total.Cents, &ss.Count); err != nil {
			return nil, core.Storef("scan breakdown row", err)
		}
		ss.Average = roundCents2(ss.Total.Cents, ss.Count)

		if len(out) == 0 || out[len(out)-1].Category != category {
			out = append(out, CategoryStat{Category: category})
		}
		cs := &out[len(out)-1]
		cs.Total.Cents += ss.Total.Cents
		cs.Count += ss.Count
		cs.Subcategories = append(cs.Subcategories, ss)
	}
	if err := rows.Err(); err != nil {
		return nil, core.Storef("iterate breakdown", err)
	}
	return out, nil
}

// ListExpensesAsc returns the range ordered by date ascending, the
// export ordering.
func (s *Store) ListExpensesAsc(ctx context.Context, start, end core.Date) ([]core.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses
		WHERE date BETWEEN ? AND ? ORDER BY date ASC, id ASC`,
		start.String(), end.String())
	if err != nil {
		return nil, core.Storef("list expenses for export", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

// roundCents2 is mean cents expressed as a two-decimal float.
func roundCents2(totalCents, count int64) float64 {
	if count == 0 {
		return 0
	}
	return math.Round(float64(totalCents)/float64(count)) / 100
}
