package storage

import (
	"context"
	"database/sql"

	"ledger/internal/core"
)

// CreateRecurring persists the definition and materializes its first
// occurrence as a ledger entry dated at the start date, in a single
// transaction. The returned spend check covers the start date's month.
func (s *Store) CreateRecurring(ctx context.Context, re core.RecurringExpense) (recurringID, expenseID int64, check SpendCheck, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, check, core.Storef("add recurring expense", err)
	}
	defer tx.Rollback()

	var endDate any
	if !re.EndDate.IsZero() {
		endDate = re.EndDate.String()
	}
	res, err := tx.ExecContext(ctx,
		`INSERT INTO recurring_expenses
		(amount_cents, category, subcategory, note, frequency, start_date, end_date, last_applied)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		re.Amount.Cents, re.Category, re.Subcategory, re.Note,
		string(re.Frequency), re.StartDate.String(), endDate, re.StartDate.String())
	if err != nil {
		return 0, 0, check, core.Storef("insert recurring expense", err)
	}
	recurringID, err = res.LastInsertId()
	if err != nil {
		return 0, 0, check, core.Storef("insert recurring expense", err)
	}

	first := core.Expense{
		Date:        re.StartDate,
		Amount:      re.Amount,
		Category:    re.Category,
		Subcategory: re.Subcategory,
		Note:        re.InstanceNote(),
	}
	expenseID, err = insertExpense(ctx, tx, first)
	if err != nil {
		return 0, 0, check, err
	}

	check, err = categorySpend(ctx, tx, re.Category, re.StartDate)
	if err != nil {
		return 0, 0, check, err
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, check, core.Storef("commit add recurring expense", err)
	}
	return recurringID, expenseID, check, nil
}

// ListRecurring returns recurring definitions newest first. With
// activeOnly, deactivated definitions are excluded.
func (s *Store) ListRecurring(ctx context.Context, activeOnly bool) ([]core.RecurringExpense, error) {
	query := `SELECT id, amount_cents, category, subcategory, note, frequency,
		start_date, end_date, last_applied, active, created_at
		FROM recurring_expenses`
	if activeOnly {
		query += ` WHERE active = 1`
	}
	query += ` ORDER BY id DESC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, core.Storef("list recurring expenses", err)
	}
	defer rows.Close()

	var out []core.RecurringExpense
	for rows.Next() {
		var (
			re          core.RecurringExpense
			frequency   string
			start       string
			end         sql.NullString
			lastApplied string
			active      int64
			created     sql.NullString
		)
		if err := rows.Scan(&re.ID, &re.Amount.Cents, &re.Category, &re.Subcategory,
			&re.Note, &frequency, &start, &end, &lastApplied, &active, &created); err != nil {
			return nil, core.Storef("scan recurring expense", err)
		}
		re.Frequency = core.Frequency(frequency)
		if re.StartDate, err = core.ParseDate(start); err != nil {
			return nil, core.Storef("scan recurring expense", err)
		}
		if end.Valid {
			if re.EndDate, err = core.ParseDate(end.String); err != nil {
				return nil, core.Storef("scan recurring expense", err)
			}
		}
		if re.LastApplied, err = core.ParseDate(lastApplied); err != nil {
			return nil, core.Storef("scan recurring expense", err)
		}
		re.Active = active != 0
		re.CreatedAt = parseTimestamp(created)
		out = append(out, re)
	}
	if err := rows.Err(); err != nil {
		return nil, core.Storef("iterate recurring expenses", err)
	}
	return out, nil
}

// DeactivateRecurring flips the definition to inactive. The transition
// is one-way; there is no reactivation operation.
func (s *Store) DeactivateRecurring(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE recurring_expenses SET active = 0 WHERE id = ?`, id)
	if err != nil {
		return core.Storef("deactivate recurring expense", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return core.Storef("deactivate recurring expense", err)
	}
	if n == 0 {
		return core.NotFoundf("recurring expense with id %d not found", id)
	}
	return nil
}
