package storage

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"ledger/internal/core"
)

// SpendCheck carries what the threshold engine needs after a ledger
// write: the category's budget (nil when none is configured, in which
// case the alert is silently skipped) and the category's in-month spend
// including the row just written.
type SpendCheck struct {
	Budget *core.Budget
	Spent  core.Money
}

// ExpenseUpdate is a closed set of optional field updates. Nil fields
// are left untouched. The SET list is resolved from these variants only,
// never from caller-supplied column names.
type ExpenseUpdate struct {
	Date        *core.Date
	Amount      *core.Money
	Category    *string
	Subcategory *string
	Note        *string
}

// Empty reports whether no field was provided.
func (u ExpenseUpdate) Empty() bool {
	return u.Date == nil && u.Amount == nil && u.Category == nil &&
		u.Subcategory == nil && u.Note == nil
}

// DeleteSelector is the tagged union of delete addressing modes. The
// façade resolves request fields to exactly one variant, so the
// id > ids > conditions > all precedence lives in one place instead of a
// chain of if checks scattered over the store.
type DeleteSelector interface{ deleteSelector() }

type (
	// DeleteByID removes a single expense; missing id is an error.
	DeleteByID struct{ ID int64 }

	// DeleteByIDs removes a set of expenses; rows that exist are removed
	// and the true count reported, zero matches is an error.
	DeleteByIDs struct{ IDs []int64 }

	// DeleteWhere combines an optional inclusive date range and an
	// optional category filter with AND.
	DeleteWhere struct {
		Start    *core.Date
		End      *core.Date
		Category string
	}

	// DeleteAll clears the ledger; an already-empty ledger is an error,
	// not a no-op, so callers cannot mistake "nothing happened" for
	// success.
	DeleteAll struct{}
)

func (DeleteByID) deleteSelector()  {}
func (DeleteByIDs) deleteSelector() {}
func (DeleteWhere) deleteSelector() {}
func (DeleteAll) deleteSelector()   {}

const expenseColumns = "id, date, amount_cents, category, subcategory, note, created_at"

// CreateExpense inserts e and, when the category has a budget, reads the
// month spend back in the same transaction so the caller's alert check
// sees a consistent figure.
func (s *Store) CreateExpense(ctx context.Context, e core.Expense) (int64, SpendCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var check SpendCheck
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, check, core.Storef("add expense", err)
	}
	defer tx.Rollback()

	id, err := insertExpense(ctx, tx, e)
	if err != nil {
		return 0, check, err
	}

	check, err = categorySpend(ctx, tx, e.Category, e.Date)
	if err != nil {
		return 0, check, err
	}

	if err := tx.Commit(); err != nil {
		return 0, check, core.Storef("commit add expense", err)
	}
	return id, check, nil
}

func insertExpense(ctx context.Context, tx *sql.Tx, e core.Expense) (int64, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (date, amount_cents, category, subcategory, note) VALUES (?, ?, ?, ?, ?)`,
		e.Date.String(), e.Amount.Cents, e.Category, e.Subcategory, e.Note)
	if err != nil {
		return 0, core.Storef("insert expense", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, core.Storef("insert expense", err)
	}
	return id, nil
}

// categorySpend resolves the budget for category and, when one exists,
// sums the category's spend over the month containing day. The month
// window comes from core.MonthBounds so every alert site agrees on it.
func categorySpend(ctx context.Context, q querier, category string, day core.Date) (SpendCheck, error) {
	var check SpendCheck

	b, err := budgetByCategory(ctx, q, category)
	if errors.Is(err, sql.ErrNoRows) {
		return check, nil
	}
	if err != nil {
		return check, core.Storef("lookup budget", err)
	}

	start, end := core.MonthBounds(day.Year(), day.Month())
	var cents int64
	err = q.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount_cents), 0) FROM expenses WHERE category = ? AND date BETWEEN ? AND ?`,
		category, start.String(), end.String()).Scan(&cents)
	if err != nil {
		return check, core.Storef("sum month spend", err)
	}

	check.Budget = &b
	check.Spent = core.Money{Cents: cents}
	return check, nil
}

// GetExpense returns a single expense by id.
func (s *Store) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return getExpense(ctx, s.db, id)
}

func getExpense(ctx context.Context, q querier, id int64) (core.Expense, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return core.Expense{}, core.NotFoundf("expense with id %d not found", id)
	}
	if err != nil {
		return core.Expense{}, core.Storef("get expense", err)
	}
	return e, nil
}

// ListExpenses returns expenses in the inclusive [start, end] range,
// optionally filtered by category, most recent first with insertion
// order as the tie-break.
func (s *Store) ListExpenses(ctx context.Context, start, end core.Date, category string) ([]core.Expense, error) {
	query := `SELECT ` + expenseColumns + ` FROM expenses WHERE date BETWEEN ? AND ?`
	args := []any{start.String(), end.String()}
	if category != "" {
		query += ` AND category = ?`
		args = append(args, category)
	}
	query += ` ORDER BY date DESC, id DESC`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, core.Storef("list expenses", err)
	}
	defer rows.Close()
	return collectExpenses(rows)
}

// UpdateExpense applies the provided fields to the row and returns the
// resulting expense plus the spend check for its (possibly new)
// category and month, all within one transaction.
func (s *Store) UpdateExpense(ctx context.Context, id int64, upd ExpenseUpdate) (core.Expense, SpendCheck, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var check SpendCheck
	if upd.Empty() {
		return core.Expense{}, check, core.Validationf("no fields provided to update")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return core.Expense{}, check, core.Storef("update expense", err)
	}
	defer tx.Rollback()

	if _, err := getExpense(ctx, tx, id); err != nil {
		return core.Expense{}, check, err
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 6)
	if upd.Date != nil {
		sets = append(sets, "date = ?")
		args = append(args, upd.Date.String())
	}
	if upd.Amount != nil {
		sets = append(sets, "amount_cents = ?")
		args = append(args, upd.Amount.Cents)
	}
	if upd.Category != nil {
		sets = append(sets, "category = ?")
		args = append(args, *upd.Category)
	}
	if upd.Subcategory != nil {
		sets = append(sets, "subcategory = ?")
		args = append(args, *upd.Subcategory)
	}
	if upd.Note != nil {
		sets = append(sets, "note = ?")
		args = append(args, *upd.Note)
	}
	args = append(args, id)

	if _, err := tx.ExecContext(ctx,
		`UPDATE expenses SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...); err != nil {
		return core.Expense{}, check, core.Storef("update expense", err)
	}

	e, err := getExpense(ctx, tx, id)
	if err != nil {
		return core.Expense{}, check, err
	}

	check, err = categorySpend(ctx, tx, e.Category, e.Date)
	if err != nil {
		return core.Expense{}, check, err
	}

	if err := tx.Commit(); err != nil {
		return core.Expense{}, check, core.Storef("commit update expense", err)
	}
	return e, check, nil
}

// DeleteExpenses removes the rows addressed by sel and reports how many
// went away.
func (s *Store) DeleteExpenses(ctx context.Context, sel DeleteSelector) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, core.Storef("delete expenses", err)
	}
	defer tx.Rollback()

	var deleted int64
	switch v := sel.(type) {
	case DeleteByID:
		deleted, err = deleteByID(ctx, tx, v.ID)
	case DeleteByIDs:
		deleted, err = deleteByIDs(ctx, tx, v.IDs)
	case DeleteWhere:
		deleted, err = deleteWhere(ctx, tx, v)
	case DeleteAll:
		deleted, err = deleteAll(ctx, tx)
	default:
		return 0, core.Validationf("no deletion criteria provided: specify id, ids, date range, category, or delete_all")
	}
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, core.Storef("commit delete expenses", err)
	}
	return deleted, nil
}

func deleteByID(ctx context.Context, tx *sql.Tx, id int64) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return 0, core.Storef("delete expense", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, core.Storef("delete expense", err)
	}
	if n == 0 {
		return 0, core.NotFoundf("expense with id %d not found", id)
	}
	return n, nil
}

func deleteByIDs(ctx context.Context, tx *sql.Tx, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, core.Validationf("no expense ids provided")
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	res, err := tx.ExecContext(ctx,
		`DELETE FROM expenses WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		return 0, core.Storef("delete expenses", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, core.Storef("delete expenses", err)
	}
	if n == 0 {
		return 0, core.NotFoundf("no expenses found with the provided ids")
	}
	return n, nil
}

func deleteWhere(ctx context.Context, tx *sql.Tx, w DeleteWhere) (int64, error) {
	conditions := make([]string, 0, 2)
	args := make([]any, 0, 3)
	if w.Start != nil && w.End != nil {
		conditions = append(conditions, "date BETWEEN ? AND ?")
		args = append(args, w.Start.String(), w.End.String())
	}
	if w.Category != "" {
		conditions = append(conditions, "category = ?")
		args = append(args, w.Category)
	}
	if len(conditions) == 0 {
		return 0, core.Validationf("no deletion criteria provided: specify id, ids, date range, category, or delete_all")
	}

	res, err := tx.ExecContext(ctx,
		`DELETE FROM expenses WHERE `+strings.Join(conditions, " AND "), args...)
	if err != nil {
		return 0, core.Storef("delete expenses", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, core.Storef("delete expenses", err)
	}
	if n == 0 {
		return 0, core.NotFoundf("no expenses found matching the criteria")
	}
	return n, nil
}

func deleteAll(ctx context.Context, tx *sql.Tx) (int64, error) {
	res, err := tx.ExecContext(ctx, `DELETE FROM expenses`)
	if err != nil {
		return 0, core.Storef("delete all expenses", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, core.Storef("delete all expenses", err)
	}
	if n == 0 {
		return 0, core.NotFoundf("no expenses to delete")
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (core.Expense, error) {
	var (
		e       core.Expense
		date    string
		created sql.NullString
	)
	if err := row.Scan(&e.ID, &date, &e.Amount.Cents, &e.Category, &e.Subcategory, &e.Note, &created); err != nil {
		return core.Expense{}, err
	}
	d, err := core.ParseDate(date)
	if err != nil {
		return core.Expense{}, err
	}
	e.Date = d
	e.CreatedAt = parseTimestamp(created)
	return e, nil
}

func collectExpenses(rows *sql.Rows) ([]core.Expense, error) {
	var out []core.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, core.Storef("scan expense", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, core.Storef("iterate expenses", err)
	}
	return out, nil
}
