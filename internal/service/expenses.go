package service

import (
	"context"

	"ledger/internal/budget"
	"ledger/internal/core"
	"ledger/internal/log"
	"ledger/internal/storage"
)

const defaultTopLimit = 10

// AddExpense validates and records one expense. The returned alert is
// non-nil when the write pushed the category's monthly spend past its
// budget threshold; it never blocks the insert.
func (s *Service) AddExpense(ctx context.Context, e core.Expense) (int64, *budget.Alert, error) {
	if err := e.Validate(); err != nil {
		return 0, nil, err
	}
	if err := s.tax.Validate(e.Category, e.Subcategory); err != nil {
		return 0, nil, err
	}

	id, check, err := s.store.CreateExpense(ctx, e)
	if err != nil {
		return 0, nil, err
	}

	s.logger.InfoContext(ctx, "Expense added",
		log.FieldExpenseID, id,
		log.FieldDate, e.Date.String(),
		log.FieldAmountCents, e.Amount.Cents,
		log.FieldCategory, e.Category,
		log.FieldSubcategory, e.Subcategory)

	return id, s.checkAlert(ctx, check), nil
}

// ListExpenses returns the inclusive range, optionally filtered by
// category, most recent first.
func (s *Service) ListExpenses(ctx context.Context, start, end core.Date, category string) ([]core.Expense, error) {
	return s.store.ListExpenses(ctx, start, end, category)
}

// UpdateExpense applies the provided fields to an existing expense.
// A supplied subcategory is validated against the resulting category:
// the supplied one when the category changes in the same call, the
// stored one otherwise. Like AddExpense, the write triggers a budget
// check for the resulting category and month.
func (s *Service) UpdateExpense(ctx context.Context, id int64, upd storage.ExpenseUpdate) (*budget.Alert, error) {
	if upd.Empty() {
		return nil, core.Validationf("no fields provided to update")
	}
	if upd.Amount != nil {
		if err := upd.Amount.Validate(); err != nil {
			return nil, err
		}
	}

	if upd.Category != nil || upd.Subcategory != nil {
		category := ""
		switch {
		case upd.Category != nil:
			category = *upd.Category
		default:
			current, err := s.store.GetExpense(ctx, id)
			if err != nil {
				return nil, err
			}
			category = current.Category
		}
		subcategory := ""
		if upd.Subcategory != nil {
			subcategory = *upd.Subcategory
		}
		if err := s.tax.Validate(category, subcategory); err != nil {
			return nil, err
		}
	}

	_, check, err := s.store.UpdateExpense(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "Expense updated", log.FieldExpenseID, id)
	return s.checkAlert(ctx, check), nil
}

// DeleteExpenses removes the rows addressed by sel and reports the count.
func (s *Service) DeleteExpenses(ctx context.Context, sel storage.DeleteSelector) (int64, error) {
	n, err := s.store.DeleteExpenses(ctx, sel)
	if err != nil {
		return 0, err
	}
	s.logger.InfoContext(ctx, "Expenses deleted", log.FieldCount, n)
	return n, nil
}

// Summarize aggregates per-category totals over the range.
func (s *Service) Summarize(ctx context.Context, start, end core.Date, category string) (storage.Summary, error) {
	return s.store.Summarize(ctx, start, end, category)
}

// TopExpenses returns the largest expenses in the range. A non-positive
// limit falls back to ten.
func (s *Service) TopExpenses(ctx context.Context, start, end core.Date, limit int) ([]core.Expense, error) {
	if limit <= 0 {
		limit = defaultTopLimit
	}
	return s.store.TopExpenses(ctx, start, end, limit)
}

// MonthlyTrend returns the sparse per-month aggregation for year.
func (s *Service) MonthlyTrend(ctx context.Context, year int, category string) ([]storage.MonthTotal, error) {
	if year < 1 || year > 9999 {
		return nil, core.Validationf("invalid year %d", year)
	}
	return s.store.MonthlyTrend(ctx, year, category)
}

// CategoryBreakdown returns the nested category/subcategory aggregation.
func (s *Service) CategoryBreakdown(ctx context.Context, start, end core.Date) ([]storage.CategoryStat, error) {
	return s.store.CategoryBreakdown(ctx, start, end)
}

// Export writes the range to a file in the requested format and reports
// the path and row count. An empty result is an error so callers cannot
// mistake a bad range for a successful empty file.
func (s *Service) Export(ctx context.Context, start, end core.Date, format, filename string) (string, int, error) {
	rows, err := s.store.ListExpensesAsc(ctx, start, end)
	if err != nil {
		return "", 0, err
	}
	if len(rows) == 0 {
		return "", 0, core.NotFoundf("no expenses found between %s and %s", start, end)
	}

	path, err := s.exporter.Write(rows, format, filename)
	if err != nil {
		return "", 0, err
	}

	s.logger.InfoContext(ctx, "Expenses exported",
		log.FieldFormat, format,
		log.FieldFilePath, path,
		log.FieldCount, len(rows))
	return path, len(rows), nil
}
