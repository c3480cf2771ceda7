package storage

import (
	"context"
	"database/sql"
	"errors"

	"ledger/internal/core"
)

// UpsertBudget creates or replaces the budget for b.Category. Both the
// limit and the threshold are overwritten; the row id and created_at
// survive an update.
func (s *Store) UpsertBudget(ctx context.Context, b core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (category, monthly_limit_cents, alert_threshold)
		VALUES (?, ?, ?)
		ON CONFLICT(category) DO UPDATE SET
			monthly_limit_cents = excluded.monthly_limit_cents,
			alert_threshold = excluded.alert_threshold`,
		b.Category, b.MonthlyLimit.Cents, b.AlertThreshold)
	if err != nil {
		return core.Storef("upsert budget", err)
	}
	return nil
}

// GetBudget returns the budget for category, or NotFoundError.
func (s *Store) GetBudget(ctx context.Context, category string) (core.Budget, error) {
	b, err := budgetByCategory(ctx, s.db, category)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Budget{}, core.NotFoundf("no budget found for category %q", category)
	}
	if err != nil {
		return core.Budget{}, core.Storef("get budget", err)
	}
	return b, nil
}

// ListBudgets returns every configured budget ordered by category.
func (s *Store) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT category, monthly_limit_cents, alert_threshold, created_at
		FROM budgets ORDER BY category ASC`)
	if err != nil {
		return nil, core.Storef("list budgets", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		var (
			b       core.Budget
			created sql.NullString
		)
		if err := rows.Scan(&b.Category, &b.MonthlyLimit.Cents, &b.AlertThreshold, &created); err != nil {
			return nil, core.Storef("scan budget", err)
		}
		b.CreatedAt = parseTimestamp(created)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, core.Storef("iterate budgets", err)
	}
	return out, nil
}

// DeleteBudget removes the budget for category; absence is an error.
func (s *Store) DeleteBudget(ctx context.Context, category string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM budgets WHERE category = ?`, category)
	if err != nil {
		return core.Storef("delete budget", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Storef("delete budget", err)
	}
	if n == 0 {
		return core.NotFoundf("no budget found for category %q", category)
	}
	return nil
}

// CategoryMonthSpend sums spend and counts entries for category in the
// inclusive [start, end] window. Used by the budget status report.
func (s *Store) CategoryMonthSpend(ctx context.Context, category string, start, end core.Date) (core.Money, int64, error) {
	var (
		cents int64
		count int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0), COUNT(*)
		FROM expenses WHERE category = ? AND date BETWEEN ? AND ?`,
		category, start.String(), end.String()).Scan(&cents, &count)
	if err != nil {
		return core.Money{}, 0, core.Storef("sum month spend", err)
	}
	return core.Money{Cents: cents}, count, nil
}

func budgetByCategory(ctx context.Context, q querier, category string) (core.Budget, error) {
	var (
		b       core.Budget
		created sql.NullString
	)
	err := q.QueryRowContext(ctx,
		`SELECT category, monthly_limit_cents, alert_threshold, created_at
		FROM budgets WHERE category = ?`, category).
		Scan(&b.Category, &b.MonthlyLimit.Cents, &b.AlertThreshold, &created)
	if err != nil {
		return core.Budget{}, err
	}
	b.CreatedAt = parseTimestamp(created)
	return b, nil
}
