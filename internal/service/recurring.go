package service

import (
	"context"

	"ledger/internal/budget"
	"ledger/internal/core"
	"ledger/internal/log"
)

// AddRecurring validates and persists a recurring definition, recording
// its first occurrence in the ledger dated at the start date. Both ids
// come back so callers can address the definition and the entry
// independently.
func (s *Service) AddRecurring(ctx context.Context, re core.RecurringExpense) (recurringID, expenseID int64, alert *budget.Alert, err error) {
	if err := re.Validate(); err != nil {
		return 0, 0, nil, err
	}
	if err := s.tax.Validate(re.Category, re.Subcategory); err != nil {
		return 0, 0, nil, err
	}

	recurringID, expenseID, check, err := s.store.CreateRecurring(ctx, re)
	if err != nil {
		return 0, 0, nil, err
	}

	s.logger.InfoContext(ctx, "Recurring expense added",
		log.FieldRecurringID, recurringID,
		log.FieldExpenseID, expenseID,
		log.FieldCategory, re.Category,
		log.FieldFrequency, string(re.Frequency))

	return recurringID, expenseID, s.checkAlert(ctx, check), nil
}

// ListRecurring returns recurring definitions newest first.
func (s *Service) ListRecurring(ctx context.Context, activeOnly bool) ([]core.RecurringExpense, error) {
	return s.store.ListRecurring(ctx, activeOnly)
}

// DeactivateRecurring stops future occurrences of a definition. Entries
// already materialized stay in the ledger.
func (s *Service) DeactivateRecurring(ctx context.Context, id int64) error {
	if err := s.store.DeactivateRecurring(ctx, id); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Recurring expense deactivated", log.FieldRecurringID, id)
	return nil
}
