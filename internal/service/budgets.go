package service

import (
	"context"

	"ledger/internal/budget"
	"ledger/internal/core"
	"ledger/internal/log"
)

// BudgetStatus is one category's standing for a month: how much of the
// limit is spent and which verdict that earns.
type BudgetStatus struct {
	Category         string
	Limit            core.Money
	Spent            core.Money
	Remaining        core.Money
	Percentage       float64
	Verdict          budget.Verdict
	TransactionCount int64
}

// SetBudget creates or replaces the monthly budget for a category.
func (s *Service) SetBudget(ctx context.Context, b core.Budget) error {
	if err := b.Validate(); err != nil {
		return err
	}
	if err := s.tax.Validate(b.Category, ""); err != nil {
		return err
	}
	if err := s.store.UpsertBudget(ctx, b); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Budget set",
		log.FieldCategory, b.Category,
		"monthly_limit_cents", b.MonthlyLimit.Cents,
		"alert_threshold", b.AlertThreshold)
	return nil
}

// ListBudgets returns every configured budget ordered by category.
func (s *Service) ListBudgets(ctx context.Context) ([]core.Budget, error) {
	return s.store.ListBudgets(ctx)
}

// DeleteBudget removes a category's budget; absence is an error.
func (s *Service) DeleteBudget(ctx context.Context, category string) error {
	if err := s.store.DeleteBudget(ctx, category); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Budget deleted", log.FieldCategory, category)
	return nil
}

// BudgetStatuses reports every budget's standing for the month given as
// YYYY-MM. The month window comes from core.MonthBounds, the same
// function the write-time alert checks use.
func (s *Service) BudgetStatuses(ctx context.Context, yearMonth string) ([]BudgetStatus, error) {
	year, month, err := core.ParseYearMonth(yearMonth)
	if err != nil {
		return nil, err
	}
	start, end := core.MonthBounds(year, month)

	budgets, err := s.store.ListBudgets(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, b := range budgets {
		spent, count, err := s.store.CategoryMonthSpend(ctx, b.Category, start, end)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, BudgetStatus{
			Category:         b.Category,
			Limit:            b.MonthlyLimit,
			Spent:            spent,
			Remaining:        core.Money{Cents: b.MonthlyLimit.Cents - spent.Cents},
			Percentage:       budget.Percentage(b.MonthlyLimit, spent),
			Verdict:          budget.Evaluate(b.MonthlyLimit, b.AlertThreshold, spent),
			TransactionCount: count,
		})
	}
	return statuses, nil
}
