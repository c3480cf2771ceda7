package core

import (
	"strings"
	"time"
)

const (
	Daily   Frequency = "daily"
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

type (
	// Frequency is how often a recurring expense repeats.
	Frequency string

	// Expense is one recorded spend event in the ledger.
	Expense struct {
		ID          int64
		Date        Date
		Amount      Money
		Category    string
		Subcategory string
		Note        string
		CreatedAt   time.Time
	}

	// Budget is the monthly spending cap for one category. AlertThreshold
	// is the fraction of the limit, in (0,1], at which a warning fires.
	Budget struct {
		Category       string
		MonthlyLimit   Money
		AlertThreshold float64
		CreatedAt      time.Time
	}

	// RecurringExpense is a template that materializes ledger entries.
	// EndDate is optional; LastApplied starts at StartDate.
	RecurringExpense struct {
		ID          int64
		Amount      Money
		Category    string
		Subcategory string
		Note        string
		Frequency   Frequency
		StartDate   Date
		EndDate     Date
		LastApplied Date
		Active      bool
		CreatedAt   time.Time
	}
)

// ParseFrequency validates and converts a frequency string.
func ParseFrequency(s string) (Frequency, error) {
	switch f := Frequency(s); f {
	case Daily, Weekly, Monthly, Yearly:
		return f, nil
	}
	return "", Validationf("invalid frequency %q: must be daily, weekly, monthly, or yearly", s)
}

// Validate checks the invariants the ledger enforces on every write.
// Taxonomy membership is checked separately by the caller.
func (e Expense) Validate() error {
	if e.Date.IsZero() {
		return Validationf("date is required")
	}
	if err := e.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(e.Category) == "" {
		return Validationf("category is required")
	}
	return nil
}

// Validate checks limit and threshold ranges.
func (b Budget) Validate() error {
	if strings.TrimSpace(b.Category) == "" {
		return Validationf("category is required")
	}
	if b.MonthlyLimit.Cents <= 0 {
		return Validationf("monthly limit must be a positive number")
	}
	if b.AlertThreshold <= 0 || b.AlertThreshold > 1 {
		return Validationf("alert threshold must be between 0 and 1")
	}
	return nil
}

// Validate checks a recurring definition before it is persisted.
func (re RecurringExpense) Validate() error {
	if err := re.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(re.Category) == "" {
		return Validationf("category is required")
	}
	if _, err := ParseFrequency(string(re.Frequency)); err != nil {
		return err
	}
	if re.StartDate.IsZero() {
		return Validationf("start date is required")
	}
	if !re.EndDate.IsZero() && re.EndDate.Time.Before(re.StartDate.Time) {
		return Validationf("end date must not be before start date")
	}
	return nil
}

// InstanceNote is the note written on a materialized occurrence. A
// user-supplied note is prefixed with the recurrence marker; an empty
// note gets a generated one.
func (re RecurringExpense) InstanceNote() string {
	if re.Note != "" {
		return "[Recurring " + string(re.Frequency) + "] " + re.Note
	}
	return "Recurring " + string(re.Frequency) + " expense"
}
